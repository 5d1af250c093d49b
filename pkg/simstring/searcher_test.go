package simstring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, strs ...string) *Database {
	t.Helper()
	db := newBigramDB(t)
	for _, s := range strs {
		_, err := db.Insert(s)
		require.NoError(t, err)
	}
	return db
}

func TestSearchAppleApplyBanana(t *testing.T) {
	db := newTestDB(t, "apple", "apply", "banana")

	s := NewSearcher(db, Cosine())
	got, err := s.Search("apple", 0.8)
	require.NoError(t, err)
	require.Equal(t, []string{"apple"}, got)

	ranked, err := s.RankedSearch("apple", 0.8)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	require.Equal(t, "apple", ranked[0].Text)
	require.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}

func TestSearchAppleApplyBananaLowerAlpha(t *testing.T) {
	db := newTestDB(t, "apple", "apply", "banana")

	s := NewSearcher(db, Cosine())
	got, err := s.Search("apple", 0.6)
	require.NoError(t, err)
	require.Equal(t, []string{"apple", "apply"}, got)

	ranked, err := s.RankedSearch("apple", 0.6)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, "apple", ranked[0].Text)
	require.InDelta(t, 1.0, ranked[0].Score, 1e-9)
	require.Equal(t, "apply", ranked[1].Text)
	require.InDelta(t, 4.0/6.0, ranked[1].Score, 1e-6)
}

func TestRankedSearchDice(t *testing.T) {
	db := newTestDB(t, "foo", "bar", "fooo")
	s := NewSearcher(db, Dice())

	ranked, err := s.RankedSearch("foo", 0.8)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, "foo", ranked[0].Text)
	require.InDelta(t, 1.0, ranked[0].Score, 1e-9)
	require.Equal(t, "fooo", ranked[1].Text)
	require.InDelta(t, 8.0/9.0, ranked[1].Score, 1e-6)
}

func TestRankedSearchJaccard(t *testing.T) {
	db := newTestDB(t, "foo", "bar", "fooo")
	s := NewSearcher(db, Jaccard())

	ranked, err := s.RankedSearch("foo", 0.8)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, "foo", ranked[0].Text)
	require.InDelta(t, 1.0, ranked[0].Score, 1e-9)
	require.Equal(t, "fooo", ranked[1].Text)
	require.InDelta(t, 0.8, ranked[1].Score, 1e-6)
}

func TestRankedSearchOverlap(t *testing.T) {
	db := newTestDB(t, "foo", "bar", "fooo")
	s := NewSearcher(db, Overlap())

	ranked, err := s.RankedSearch("foo", 0.8)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	for _, r := range ranked {
		require.InDelta(t, 1.0, r.Score, 1e-9)
	}
}

func TestSearchInvalidThreshold(t *testing.T) {
	db := newTestDB(t, "test")
	s := NewSearcher(db, Cosine())

	_, err := s.Search("test", 1.1)
	require.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = s.Search("test", 0.0)
	require.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = s.RankedSearch("test", -0.5)
	require.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestSearchEmptyQueryReturnsEmpty(t *testing.T) {
	e, err := NewCharacterNgrams(2, "")
	require.NoError(t, err)
	db := NewDatabase(e)
	_, err = db.Insert("hello")
	require.NoError(t, err)

	s := NewSearcher(db, Cosine())
	got, err := s.Search("", 0.5)
	require.NoError(t, err)
	require.Empty(t, got)
}

// Self-similarity: ranked_search(s, 1.0) against a database containing s
// returns (s, 1.0) for every measure.
func TestSelfSimilarityAcrossMeasures(t *testing.T) {
	measures := []Measure{Cosine(), Dice(), Jaccard(), Overlap(), ExactMatch()}
	for _, m := range measures {
		db := newTestDB(t, "hello world")
		s := NewSearcher(db, m)
		ranked, err := s.RankedSearch("hello world", 1.0)
		require.NoError(t, err)
		require.NotEmpty(t, ranked)

		found := false
		for _, r := range ranked {
			if r.Text == "hello world" {
				found = true
				require.InDelta(t, 1.0, r.Score, 1e-9)
			}
		}
		require.True(t, found, "expected self-match for measure %T", m)
	}
}

// Monotonicity in alpha: search(q, a1) superset of search(q, a2) when a1 <= a2.
func TestMonotonicityInAlpha(t *testing.T) {
	db := newTestDB(t, "apple", "apply", "ample", "banana")
	s := NewSearcher(db, Jaccard())

	loose, err := s.Search("apple", 0.3)
	require.NoError(t, err)
	strict, err := s.Search("apple", 0.9)
	require.NoError(t, err)

	looseSet := make(map[string]bool)
	for _, v := range loose {
		looseSet[v] = true
	}
	for _, v := range strict {
		require.True(t, looseSet[v], "%q in the strict result must also appear in the loose result", v)
	}
}

// Insertion-order independence: permuting insertion order must not change
// the multiset of search/ranked_search results.
func TestInsertionOrderIndependence(t *testing.T) {
	orderA := []string{"apple", "apply", "banana", "ample"}
	orderB := []string{"banana", "ample", "apply", "apple"}

	dbA := newTestDB(t, orderA...)
	dbB := newTestDB(t, orderB...)

	sA := NewSearcher(dbA, Cosine())
	sB := NewSearcher(dbB, Cosine())

	gotA, err := sA.Search("apple", 0.5)
	require.NoError(t, err)
	gotB, err := sB.Search("apple", 0.5)
	require.NoError(t, err)
	require.Equal(t, gotA, gotB)
}

// Clear correctness: after clear(), len == 0 and search returns empty.
func TestClearCorrectness(t *testing.T) {
	db := newTestDB(t, "apple", "apply")
	db.Clear()
	require.Equal(t, 0, db.Size())

	s := NewSearcher(db, Cosine())
	got, err := s.Search("apple", 0.1)
	require.NoError(t, err)
	require.Empty(t, got)
}

// Ranked and unranked outputs agree on the set of matched strings.
func TestRankedAndUnrankedAgreeOnSet(t *testing.T) {
	db := newTestDB(t, "apple", "apply", "ample", "banana", "candle")
	s := NewSearcher(db, Dice())

	unranked, err := s.Search("apple", 0.4)
	require.NoError(t, err)
	ranked, err := s.RankedSearch("apple", 0.4)
	require.NoError(t, err)

	rankedSet := make(map[string]bool, len(ranked))
	for _, r := range ranked {
		rankedSet[r.Text] = true
	}
	require.Len(t, rankedSet, len(unranked))
	for _, v := range unranked {
		require.True(t, rankedSet[v])
	}
}

func TestRankedSearchSortOrderTiesBrokenLexicographically(t *testing.T) {
	// Unigram features are order-insensitive, so "ab" and "ba" produce the
	// exact same feature set {(a,1),(b,1)} and must tie on score.
	e, err := NewCharacterNgrams(1, "")
	require.NoError(t, err)
	db := NewDatabase(e)
	_, err = db.Insert("ba")
	require.NoError(t, err)
	_, err = db.Insert("ab")
	require.NoError(t, err)

	s := NewSearcher(db, Jaccard())
	ranked, err := s.RankedSearch("ab", 1.0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.InDelta(t, ranked[0].Score, ranked[1].Score, 1e-9)
	require.Equal(t, "ab", ranked[0].Text)
	require.Equal(t, "ba", ranked[1].Text)
}

func TestExactMatchRejectsPartialOverlap(t *testing.T) {
	db := newTestDB(t, "foo", "fooo")
	s := NewSearcher(db, ExactMatch())

	ranked, err := s.RankedSearch("foo", 1.0)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	require.Equal(t, "foo", ranked[0].Text)
	require.InDelta(t, 1.0, ranked[0].Score, 1e-9)
}

func TestScoreIsWithinUnitInterval(t *testing.T) {
	db := newTestDB(t, "apple", "apply", "ample", "maple", "banana")
	for _, m := range []Measure{Cosine(), Dice(), Jaccard(), Overlap()} {
		s := NewSearcher(db, m)
		ranked, err := s.RankedSearch("apple", 0.2)
		require.NoError(t, err)
		for _, r := range ranked {
			require.True(t, r.Score >= 0 && r.Score <= 1+1e-9, "score %f out of range for %T", r.Score, m)
			require.False(t, math.IsNaN(r.Score))
		}
	}
}
