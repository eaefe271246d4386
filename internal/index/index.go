// Package index provides the in-memory filename index for spot.
// It is a fixed-size hash table mapping lowercased filenames to the
// records sharing that name hash. The table is built once per run by
// the scanner and consulted read-only by every search.
package index

// TableSize is the number of hash buckets. Fixed power of two, sized to
// keep average chains short for typical filesystem scans (tens of
// thousands of files). There is no rehashing: pathological inputs
// degrade to long chains and linear scan cost, which is accepted.
const TableSize = 16384

// Record is one indexed file: its base name and fully qualified path.
// Records are immutable once inserted and owned by the Store; search
// results reference them and must not outlive a Clear or rebuild.
type Record struct {
	Name string
	Path string
}

// Store is the bucketed filename index. It is not safe for concurrent
// mutation and iteration; the single-threaded session discipline
// (index once, then search) means no locking is required.
type Store struct {
	buckets [TableSize][]*Record
	total   int
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Hash computes the DJB2 bucket index for a filename. Input bytes are
// ASCII-lowercased before mixing so that bucketing is case-insensitive.
func Hash(name string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(name); i++ {
		h = h*33 + uint32(lowerByte(name[i]))
	}
	return h % TableSize
}

// Insert adds a record for the given filename and full path.
// Records are appended to their bucket; scans walk buckets newest-first,
// so insertion keeps the most-recently-indexed-first order the session
// depends on while staying O(1).
func (s *Store) Insert(name, path string) {
	b := Hash(name)
	s.buckets[b] = append(s.buckets[b], &Record{Name: name, Path: path})
	s.total++
}

// Clear drops every record and resets the counter. Safe to call on an
// already-empty store.
func (s *Store) Clear() {
	for i := range s.buckets {
		s.buckets[i] = nil
	}
	s.total = 0
}

// Size returns the number of indexed files.
func (s *Store) Size() int {
	return s.total
}

// Walk visits every record in table order and, within each bucket,
// newest-first. It stops as soon as fn returns false.
func (s *Store) Walk(fn func(*Record) bool) {
	for i := range s.buckets {
		b := s.buckets[i]
		for j := len(b) - 1; j >= 0; j-- {
			if !fn(b[j]) {
				return
			}
		}
	}
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
