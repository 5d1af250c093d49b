package simstring

import "errors"

// ErrInvalidThreshold is returned by Search and RankedSearch when alpha
// falls outside (0, 1].
var ErrInvalidThreshold = errors.New("simstring: alpha must be in (0, 1]")

// ErrInvalidExtractor is returned by NewCustomExtractor when the supplied
// callable does not satisfy Apply(text string) ([]string, error).
var ErrInvalidExtractor = errors.New("simstring: extractor does not implement Apply(text string) ([]string, error)")

// ErrInvalidN is returned by the n-gram extractor constructors when n < 1.
var ErrInvalidN = errors.New("simstring: n must be >= 1")
