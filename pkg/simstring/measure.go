package simstring

import "math"

// tolerance absorbs floating-point rounding error when computing integer
// ceilings and floors near exact boundaries (e.g. alpha*x landing on an
// integer but coming out as 3.9999999999 from the multiplication).
const tolerance = 1e-9

func ceilTol(v float64) int {
	return int(math.Ceil(v - tolerance))
}

func floorTol(v float64) int {
	return int(math.Floor(v + tolerance))
}

// Measure is a similarity measure: a set of pure, stateless functions
// over feature-set sizes, overlap counts, and a threshold. Measures hold
// no state and may be shared across any number of concurrent searchers.
type Measure interface {
	// MinFeatureSize returns the smallest candidate feature-set size
	// that could satisfy alpha against a query of size x.
	MinFeatureSize(x int, alpha float64) int

	// MaxFeatureSize returns the largest candidate feature-set size
	// that could satisfy alpha against a query of size x.
	MaxFeatureSize(x int, alpha float64) int

	// MinCommonFeatureCount returns the minimum overlap mu required
	// between a query of size x and a candidate of size y to meet alpha.
	MinCommonFeatureCount(x, y int, alpha float64) int

	// Similarity computes the final score from the query size, the
	// candidate size, and their overlap count.
	Similarity(x, y, overlap int) float64
}

type cosineMeasure struct{}

// Cosine returns the cosine similarity measure.
func Cosine() Measure { return cosineMeasure{} }

func (cosineMeasure) MinFeatureSize(x int, alpha float64) int {
	return ceilTol(alpha * alpha * float64(x))
}

func (cosineMeasure) MaxFeatureSize(x int, alpha float64) int {
	return floorTol(float64(x) / (alpha * alpha))
}

func (cosineMeasure) MinCommonFeatureCount(x, y int, alpha float64) int {
	return ceilTol(alpha * math.Sqrt(float64(x)*float64(y)))
}

func (cosineMeasure) Similarity(x, y, overlap int) float64 {
	if x == 0 || y == 0 {
		return 0
	}
	return float64(overlap) / math.Sqrt(float64(x)*float64(y))
}

type diceMeasure struct{}

// Dice returns the Sørensen–Dice similarity measure.
func Dice() Measure { return diceMeasure{} }

func (diceMeasure) MinFeatureSize(x int, alpha float64) int {
	return ceilTol(alpha * float64(x) / (2 - alpha))
}

func (diceMeasure) MaxFeatureSize(x int, alpha float64) int {
	return floorTol((2 - alpha) * float64(x) / alpha)
}

func (diceMeasure) MinCommonFeatureCount(x, y int, alpha float64) int {
	return ceilTol(alpha * float64(x+y) / 2)
}

func (diceMeasure) Similarity(x, y, overlap int) float64 {
	if x+y == 0 {
		return 0
	}
	return 2 * float64(overlap) / float64(x+y)
}

type jaccardMeasure struct{}

// Jaccard returns the Jaccard similarity measure.
func Jaccard() Measure { return jaccardMeasure{} }

func (jaccardMeasure) MinFeatureSize(x int, alpha float64) int {
	return ceilTol(alpha * float64(x))
}

func (jaccardMeasure) MaxFeatureSize(x int, alpha float64) int {
	return floorTol(float64(x) / alpha)
}

func (jaccardMeasure) MinCommonFeatureCount(x, y int, alpha float64) int {
	return ceilTol(alpha * float64(x+y) / (1 + alpha))
}

func (jaccardMeasure) Similarity(x, y, overlap int) float64 {
	denom := x + y - overlap
	if denom <= 0 {
		return 0
	}
	return float64(overlap) / float64(denom)
}

type overlapMeasure struct{}

// Overlap returns the overlap (Simpson) similarity measure.
func Overlap() Measure { return overlapMeasure{} }

func (overlapMeasure) MinFeatureSize(x int, alpha float64) int {
	// The source clamps this to 1 unconditionally, without a paper
	// citation; this module preserves that behavior.
	return 1
}

func (overlapMeasure) MaxFeatureSize(x int, alpha float64) int {
	return math.MaxInt
}

func (overlapMeasure) MinCommonFeatureCount(x, y int, alpha float64) int {
	return ceilTol(alpha * float64(min(x, y)))
}

func (overlapMeasure) Similarity(x, y, overlap int) float64 {
	m := min(x, y)
	if m == 0 {
		return 0
	}
	return float64(overlap) / float64(m)
}

type exactMatchMeasure struct{}

// ExactMatch returns the measure that only accepts identical feature sets.
func ExactMatch() Measure { return exactMatchMeasure{} }

func (exactMatchMeasure) MinFeatureSize(x int, alpha float64) int { return x }

func (exactMatchMeasure) MaxFeatureSize(x int, alpha float64) int { return x }

func (exactMatchMeasure) MinCommonFeatureCount(x, y int, alpha float64) int { return x }

func (exactMatchMeasure) Similarity(x, y, overlap int) float64 {
	if x == y && overlap == x {
		return 1
	}
	return 0
}
