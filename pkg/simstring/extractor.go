package simstring

import "strings"

// CharacterNgrams extracts contiguous length-n byte substrings from text
// padded on both sides with n-1 copies of EndMarker. It is a value type:
// immutable, holds no mutable state, and safe for unlimited concurrent
// use.
type CharacterNgrams struct {
	N         int
	EndMarker string
}

// NewCharacterNgrams validates n and returns a CharacterNgrams extractor.
func NewCharacterNgrams(n int, endmarker string) (*CharacterNgrams, error) {
	if n < 1 {
		return nil, ErrInvalidN
	}
	return &CharacterNgrams{N: n, EndMarker: endmarker}, nil
}

// Apply implements Extractor.
func (c *CharacterNgrams) Apply(text string) ([]string, error) {
	pad := strings.Repeat(c.EndMarker, c.N-1)
	padded := pad + text + pad
	if len(padded) < c.N {
		return nil, nil
	}
	tokens := make([]string, 0, len(padded)-c.N+1)
	for i := 0; i <= len(padded)-c.N; i++ {
		tokens = append(tokens, padded[i:i+c.N])
	}
	return tokens, nil
}

// WordNgrams extracts contiguous length-n windows of words, split on the
// Splitter string with empty pieces dropped, joined by a single space, after padding both ends of the token
// sequence with n-1 copies of Padder. Like CharacterNgrams it is an
// immutable value type.
type WordNgrams struct {
	N        int
	Splitter string
	Padder   string
}

// NewWordNgrams validates n and returns a WordNgrams extractor.
func NewWordNgrams(n int, splitter, padder string) (*WordNgrams, error) {
	if n < 1 {
		return nil, ErrInvalidN
	}
	return &WordNgrams{N: n, Splitter: splitter, Padder: padder}, nil
}

// Apply implements Extractor.
func (w *WordNgrams) Apply(text string) ([]string, error) {
	var words []string
	for _, part := range strings.Split(text, w.Splitter) {
		if part != "" {
			words = append(words, part)
		}
	}

	padded := make([]string, 0, len(words)+2*(w.N-1))
	for i := 0; i < w.N-1; i++ {
		padded = append(padded, w.Padder)
	}
	padded = append(padded, words...)
	for i := 0; i < w.N-1; i++ {
		padded = append(padded, w.Padder)
	}

	if len(padded) < w.N {
		return nil, nil
	}

	tokens := make([]string, 0, len(padded)-w.N+1)
	for i := 0; i <= len(padded)-w.N; i++ {
		tokens = append(tokens, strings.Join(padded[i:i+w.N], " "))
	}
	return tokens, nil
}

// CustomExtractor delegates to a host-supplied callable. It is the
// dynamic escape hatch of the extractor capability set: unlike
// CharacterNgrams and WordNgrams, whose conformance to Extractor is
// checked by the Go compiler, a CustomExtractor's callable is validated
// at construction time, mirroring how a language binding would validate
// a foreign callback.
type CustomExtractor struct {
	apply Extractor
}

// NewCustomExtractor validates that callable satisfies Extractor and
// wraps it. callable is typed any so the constructor can reject anything
// that does not implement Apply(text string) ([]string, error), exactly
// as a dynamic-language binding would reject an object lacking the
// apply capability.
func NewCustomExtractor(callable any) (*CustomExtractor, error) {
	a, ok := callable.(Extractor)
	if !ok {
		return nil, ErrInvalidExtractor
	}
	return &CustomExtractor{apply: a}, nil
}

// Apply implements Extractor by delegating to the wrapped callable.
func (c *CustomExtractor) Apply(text string) ([]string, error) {
	return c.apply.Apply(text)
}
