// Package interner deduplicates identifier strings consulted by the
// name resolver, so repeated occurrences of the same source spelling
// share one backing string (spec.md §2 "String interner").
package interner

// Interner is a mutable, single-owner string cache. It is not
// safe for concurrent use — the generator that owns it is itself
// single-threaded (spec.md §5 "Concurrency & resource model").
type Interner struct {
	cache map[string]string
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{cache: make(map[string]string)}
}

// Get returns the interned copy of s, inserting it on first sight.
func (in *Interner) Get(s string) string {
	if cached, ok := in.cache[s]; ok {
		return cached
	}
	in.cache[s] = s
	return s
}

// GetAll interns every string of ss and returns the interned copies in
// a new slice; ss itself is left unchanged.
func (in *Interner) GetAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = in.Get(s)
	}
	return out
}

// Len reports how many distinct strings have been interned.
func (in *Interner) Len() int { return len(in.cache) }
