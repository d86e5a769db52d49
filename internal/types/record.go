package types

import (
	"iter"
	"slices"
)

// Pair is a single key/value assignment as read from a tag stream.
type Pair struct {
	Key   string
	Value string
}

// Record is an ordered list of pairs describing one track.
//
// Unlike a map, a Record keeps insertion order and allows a key to appear
// more than once. Lookups return the most recent occurrence, which is the
// value a later assignment in the tag file intended.
//
// The zero value is an empty record ready for use.
type Record struct {
	pairs []Pair
}

// NewRecord returns a record holding a copy of pairs.
func NewRecord(pairs ...Pair) Record {
	return Record{pairs: slices.Clone(pairs)}
}

// Add appends a pair.
func (r *Record) Add(key, value string) {
	r.pairs = append(r.pairs, Pair{Key: key, Value: value})
}

// Len reports the number of pairs.
func (r *Record) Len() int {
	return len(r.pairs)
}

// Index returns the position of the first pair with key, or -1.
func (r *Record) Index(key string) int {
	return slices.IndexFunc(r.pairs, func(p Pair) bool { return p.Key == key })
}

// Lookup returns the most recent value stored for key.
func (r *Record) Lookup(key string) (string, bool) {
	for i := len(r.pairs) - 1; i >= 0; i-- {
		if r.pairs[i].Key == key {
			return r.pairs[i].Value, true
		}
	}
	return "", false
}

// Get returns the most recent value stored for key, or "" if absent.
//
// Example:
//
//	title := rec.Get("TITLE")
func (r *Record) Get(key string) string {
	v, _ := r.Lookup(key)
	return v
}

// At returns the pair at position i.
func (r *Record) At(i int) Pair {
	return r.pairs[i]
}

// Set replaces the value of the pair at position i.
func (r *Record) Set(i int, value string) {
	r.pairs[i].Value = value
}

// Truncate drops the pair at position i and everything after it.
func (r *Record) Truncate(i int) {
	clear(r.pairs[i:])
	r.pairs = r.pairs[:i]
}

// Delete removes every pair with key, keeping the order of the rest.
func (r *Record) Delete(key string) {
	r.pairs = slices.DeleteFunc(r.pairs, func(p Pair) bool { return p.Key == key })
}

// Reset empties the record, keeping its storage.
func (r *Record) Reset() {
	clear(r.pairs)
	r.pairs = r.pairs[:0]
}

// Pairs returns a copy of the pairs in insertion order.
func (r *Record) Pairs() []Pair {
	return slices.Clone(r.pairs)
}

// All returns an iterator over the pairs in insertion order.
//
//	for key, value := range rec.All() {
//		fmt.Printf("%s=%s\n", key, value)
//	}
func (r *Record) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range r.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() Record {
	return Record{pairs: slices.Clone(r.pairs)}
}
