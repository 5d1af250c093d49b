// Package simstring implements the SimString approximate string-matching
// algorithm: given a collection of indexed strings and a query string,
// retrieve every indexed string whose similarity to the query under a
// chosen set-based measure meets a caller-supplied threshold alpha.
package simstring

// IndexedString is a single string held by a Database, along with the
// feature-set size that was computed for it at insertion time.
type IndexedString struct {
	ID   uint32
	Text string
	Size int
}

// DatabaseOptions tunes storage behavior for a Database. A zero
// BitmapThreshold is replaced by DefaultBitmapThreshold, so the zero
// value behaves like DefaultDatabaseOptions.
type DatabaseOptions struct {
	// BitmapThreshold is the (size, feature) bucket cardinality at which
	// the bucket is promoted from a sorted slice to a Roaring bitmap.
	BitmapThreshold uint32
}

// DefaultDatabaseOptions returns the options a plain NewDatabase uses.
func DefaultDatabaseOptions() DatabaseOptions {
	return DatabaseOptions{BitmapThreshold: DefaultBitmapThreshold}
}

// Database owns a set of indexed strings and the size-partitioned
// inverted index from (size, feature) to posting. It is not internally
// synchronized: concurrent mutation is not supported, and concurrent
// read-only access is safe only while no writer is active — the same
// discipline the package's Searcher relies on.
type Database struct {
	extractor Extractor
	opts      DatabaseOptions

	strings []IndexedString
	index   map[int]map[Feature]*thresholdPosting
	maxSize int
}

// NewDatabase creates an empty Database using default storage options.
func NewDatabase(extractor Extractor) *Database {
	return NewDatabaseWithOptions(extractor, DefaultDatabaseOptions())
}

// NewDatabaseWithOptions creates an empty Database with explicit options.
func NewDatabaseWithOptions(extractor Extractor, opts DatabaseOptions) *Database {
	if opts.BitmapThreshold == 0 {
		opts.BitmapThreshold = DefaultBitmapThreshold
	}
	return &Database{
		extractor: extractor,
		opts:      opts,
		index:     make(map[int]map[Feature]*thresholdPosting),
	}
}

// Insert extracts features for s, assigns it the next dense string id,
// and records its postings. If the extractor fails, the error is
// returned unchanged and the database is left exactly as it was: feature
// extraction is completed in full before any mutation is made.
func (db *Database) Insert(s string) (uint32, error) {
	features, err := FeatureSet(db.extractor, s)
	if err != nil {
		return 0, err
	}

	id := uint32(len(db.strings))
	size := len(features)

	bucket := db.index[size]
	if bucket == nil {
		bucket = make(map[Feature]*thresholdPosting)
		db.index[size] = bucket
	}
	for _, f := range features {
		p := bucket[f]
		if p == nil {
			p = newThresholdPosting(db.opts.BitmapThreshold)
			bucket[f] = p
		}
		p.Add(id)
	}

	db.strings = append(db.strings, IndexedString{ID: id, Text: s, Size: size})
	if size > db.maxSize {
		db.maxSize = size
	}
	return id, nil
}

// Size returns the number of indexed strings.
func (db *Database) Size() int { return len(db.strings) }

// Strings returns the original strings in insertion order.
func (db *Database) Strings() []string {
	out := make([]string, len(db.strings))
	for i, s := range db.strings {
		out[i] = s.Text
	}
	return out
}

// Clear removes all indexed strings and resets the string-id counter.
func (db *Database) Clear() {
	db.strings = nil
	db.index = make(map[int]map[Feature]*thresholdPosting)
	db.maxSize = 0
}

// MaxIndexedSize returns the largest feature-set size currently present
// in the index, or 0 if the database is empty.
func (db *Database) MaxIndexedSize() int { return db.maxSize }

// lookup returns the posting for (size, feature), and whether it exists.
func (db *Database) lookup(size int, f Feature) (posting, bool) {
	bucket, ok := db.index[size]
	if !ok {
		return nil, false
	}
	p, ok := bucket[f]
	return p, ok
}

// stringAt returns the original text for a string id.
func (db *Database) stringAt(id uint32) string {
	return db.strings[id].Text
}
