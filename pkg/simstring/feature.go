package simstring

// Feature is an occurrence-tagged token: the atomic unit compared by
// similarity measures. Occurrence is the 1-based count of prior
// occurrences of Token within the same FeatureSet, which turns a
// multiset of tokens into a set of distinguishable features.
type Feature struct {
	Token      string
	Occurrence int
}

// Extractor converts a string into an ordered sequence of tokens. The
// core tags each returned token with its occurrence index; extractors
// themselves never see or produce occurrence indices.
type Extractor interface {
	Apply(text string) ([]string, error)
}

// FeatureSet runs an extractor over text and tags the resulting tokens
// with occurrence indices, producing the ordered feature sequence the
// rest of the package operates on. A failing extractor's error is
// returned unchanged, with no features computed.
func FeatureSet(e Extractor, text string) ([]Feature, error) {
	tokens, err := e.Apply(text)
	if err != nil {
		return nil, err
	}
	return tagOccurrences(tokens), nil
}

// tagOccurrences attaches a 1-based occurrence index to each token,
// counting prior occurrences of the same token in emission order.
func tagOccurrences(tokens []string) []Feature {
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]int, len(tokens))
	features := make([]Feature, len(tokens))
	for i, t := range tokens {
		counts[t]++
		features[i] = Feature{Token: t, Occurrence: counts[t]}
	}
	return features
}
