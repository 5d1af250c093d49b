package simstring

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// DefaultBitmapThreshold is the bucket cardinality at which a posting is
// promoted from a sorted slice to a Roaring bitmap. SimString feature
// buckets are typically much smaller than the q-gram document postings
// this scheme was originally tuned for, so the threshold sits far lower
// than a general full-text index would use.
const DefaultBitmapThreshold = 64

// posting unifies slice- and bitmap-backed representations of a
// (size, feature) bucket's string ids.
type posting interface {
	// Len returns the number of ids in the posting.
	Len() int

	// Add inserts an id, promoting representation if needed.
	Add(id uint32)

	// Contains reports whether id is present.
	Contains(id uint32) bool

	// ToSlice appends every id to dst in ascending order and returns it.
	ToSlice(dst []uint32) []uint32
}

// slicePosting is a sorted, deduplicated []uint32. Cache-friendly for the
// small buckets most SimString feature lookups produce.
type slicePosting struct {
	ids []uint32
}

func newSlicePosting() *slicePosting {
	return &slicePosting{}
}

func (p *slicePosting) Len() int { return len(p.ids) }

func (p *slicePosting) Add(id uint32) {
	i := sort.Search(len(p.ids), func(i int) bool { return p.ids[i] >= id })
	if i < len(p.ids) && p.ids[i] == id {
		return
	}
	p.ids = append(p.ids, 0)
	copy(p.ids[i+1:], p.ids[i:])
	p.ids[i] = id
}

func (p *slicePosting) Contains(id uint32) bool {
	i := sort.Search(len(p.ids), func(i int) bool { return p.ids[i] >= id })
	return i < len(p.ids) && p.ids[i] == id
}

func (p *slicePosting) ToSlice(dst []uint32) []uint32 {
	return append(dst, p.ids...)
}

// bitmapPosting is a Roaring-bitmap-backed posting, used once a bucket
// crosses DefaultBitmapThreshold (or a caller-configured threshold).
type bitmapPosting struct {
	bm *roaring.Bitmap
}

func newBitmapPostingFrom(ids []uint32) *bitmapPosting {
	bm := roaring.New()
	bm.AddMany(ids)
	return &bitmapPosting{bm: bm}
}

func (p *bitmapPosting) Len() int { return int(p.bm.GetCardinality()) }

func (p *bitmapPosting) Add(id uint32) { p.bm.Add(id) }

func (p *bitmapPosting) Contains(id uint32) bool { return p.bm.Contains(id) }

func (p *bitmapPosting) ToSlice(dst []uint32) []uint32 {
	return append(dst, p.bm.ToArray()...)
}

// thresholdPosting wraps a posting and promotes from slicePosting to
// bitmapPosting once its cardinality reaches threshold, mirroring the
// teacher's GramEntry promotion scheme.
type thresholdPosting struct {
	threshold uint32
	inner     posting
}

func newThresholdPosting(threshold uint32) *thresholdPosting {
	if threshold == 0 {
		threshold = DefaultBitmapThreshold
	}
	return &thresholdPosting{threshold: threshold, inner: newSlicePosting()}
}

func (p *thresholdPosting) Len() int { return p.inner.Len() }

func (p *thresholdPosting) Contains(id uint32) bool { return p.inner.Contains(id) }

func (p *thresholdPosting) ToSlice(dst []uint32) []uint32 { return p.inner.ToSlice(dst) }

func (p *thresholdPosting) Add(id uint32) {
	p.inner.Add(id)
	if sp, ok := p.inner.(*slicePosting); ok && uint32(len(sp.ids)) >= p.threshold {
		p.inner = newBitmapPostingFrom(sp.ids)
	}
}
