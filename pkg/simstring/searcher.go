package simstring

import "sort"

// RankedResult pairs a matched string with its similarity score.
type RankedResult struct {
	Text  string
	Score float64
}

// Searcher drives the CPQ (Cosine/Dice/Jaccard/Overlap/Exact-match
// Pruning by Quantity) retrieval algorithm over a Database under a
// chosen Measure. A Searcher holds only a reference to its database and
// measure; multiple searchers may share one database for concurrent
// read-only queries provided no writer is active.
type Searcher struct {
	db      *Database
	measure Measure
}

// NewSearcher returns a Searcher over db using measure.
func NewSearcher(db *Database, measure Measure) *Searcher {
	return &Searcher{db: db, measure: measure}
}

// candidate tracks, for one query, the best size/overlap pair discovered
// for a given indexed string id. Because the index partitions ids by
// feature-set size, a given id can only ever be produced at one size
// (its own), so no merging across sizes is required.
type candidate struct {
	size    int
	overlap int
}

// Search returns every indexed string whose similarity to query meets
// alpha, deduplicated and sorted lexicographically ascending.
func (s *Searcher) Search(query string, alpha float64) ([]string, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}

	ids, _, err := s.collect(query, alpha)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, s.db.stringAt(id))
	}
	sort.Strings(out)
	return out, nil
}

// RankedSearch returns every indexed string whose similarity to query
// meets alpha, paired with its score, sorted by descending score with
// ties broken lexicographically ascending.
func (s *Searcher) RankedSearch(query string, alpha float64) ([]RankedResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}

	ids, x, err := s.collect(query, alpha)
	if err != nil {
		return nil, err
	}

	results := make([]RankedResult, 0, len(ids))
	for id, c := range ids {
		score := s.measure.Similarity(x, c.size, c.overlap)
		results = append(results, RankedResult{Text: s.db.stringAt(id), Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Text < results[j].Text
	})
	return results, nil
}

func validateAlpha(alpha float64) error {
	if alpha <= 0 || alpha > 1 {
		return ErrInvalidThreshold
	}
	return nil
}

// collect runs the CPQ algorithm and returns the accepted string ids
// (each mapped to the size/overlap it was accepted under) together with
// the query's feature-set size x.
func (s *Searcher) collect(query string, alpha float64) (map[uint32]candidate, int, error) {
	accepted := make(map[uint32]candidate)

	features, err := FeatureSet(s.db.extractor, query)
	if err != nil {
		return nil, 0, err
	}
	x := len(features)
	if x == 0 {
		return accepted, 0, nil
	}

	tauMin := s.measure.MinFeatureSize(x, alpha)
	if tauMin < 1 {
		tauMin = 1
	}
	tauMax := s.measure.MaxFeatureSize(x, alpha)
	if maxIndexed := s.db.MaxIndexedSize(); tauMax > maxIndexed {
		tauMax = maxIndexed
	}

	for tau := tauMin; tau <= tauMax; tau++ {
		mu := s.measure.MinCommonFeatureCount(x, tau, alpha)
		if mu > x || mu > tau {
			continue
		}
		s.collectSize(features, tau, mu, accepted)
	}

	return accepted, x, nil
}

// collectSize gathers the posting lists for every query feature present
// at feature-set size tau, then performs threshold-counted intersection:
// the (m-mu+1) shortest lists are fully scanned to seed overlap counts,
// and every remaining list (shortest to longest) is probed for
// membership of each seeded candidate. Probing continues after a
// candidate reaches mu, so the overlap recorded for it is exact and can
// be used for ranking.
func (s *Searcher) collectSize(features []Feature, tau, mu int, accepted map[uint32]candidate) {
	var lists []posting
	for _, f := range features {
		if p, ok := s.db.lookup(tau, f); ok {
			lists = append(lists, p)
		}
	}
	m := len(lists)
	if m < mu {
		return
	}

	sort.Slice(lists, func(i, j int) bool { return lists[i].Len() < lists[j].Len() })

	k := m - mu + 1
	counts := make(map[uint32]int)
	for i := 0; i < k; i++ {
		ids := lists[i].ToSlice(nil)
		for _, id := range ids {
			counts[id]++
		}
	}

	done := make(map[uint32]bool, len(counts))
	for id, c := range counts {
		if c >= mu {
			done[id] = true
		}
	}

	for i := k; i < m; i++ {
		list := lists[i]
		for id := range counts {
			if list.Contains(id) {
				counts[id]++
				if counts[id] >= mu {
					done[id] = true
				}
			}
		}
	}

	for id := range done {
		accepted[id] = candidate{size: tau, overlap: counts[id]}
	}
}

