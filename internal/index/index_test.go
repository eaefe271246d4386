package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_CaseInsensitive(t *testing.T) {
	// Same filename in different cases must land in the same bucket.
	assert.Equal(t, Hash("Report.PDF"), Hash("report.pdf"))
	assert.Equal(t, Hash("MAIN.GO"), Hash("main.go"))
	assert.Equal(t, Hash("MiXeD.TxT"), Hash("mixed.txt"))
}

func TestHash_DJB2KnownValues(t *testing.T) {
	// DJB2: acc starts at 5381, acc = acc*33 + lowercased byte, mod 16384.
	tests := []struct {
		name string
		in   string
	}{
		{name: "single char", in: "a"},
		{name: "upper folds to lower", in: "A"},
		{name: "short name", in: "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want uint32 = 5381
			for i := 0; i < len(tt.in); i++ {
				c := tt.in[i]
				if c >= 'A' && c <= 'Z' {
					c += 'a' - 'A'
				}
				want = want*33 + uint32(c)
			}
			assert.Equal(t, want%TableSize, Hash(tt.in))
		})
	}
}

func TestStore_InsertAndSize(t *testing.T) {
	s := New()
	require.Equal(t, 0, s.Size())

	s.Insert("a.txt", "/tmp/a.txt")
	s.Insert("b.txt", "/tmp/b.txt")
	s.Insert("a.txt", "/tmp/sub/a.txt")

	assert.Equal(t, 3, s.Size())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := New()
	s.Insert("a.txt", "/tmp/a.txt")
	s.Insert("b.txt", "/tmp/b.txt")

	s.Clear()
	assert.Equal(t, 0, s.Size())

	// Clearing an already-empty store is safe.
	s.Clear()
	assert.Equal(t, 0, s.Size())

	// Store remains usable after clear.
	s.Insert("c.txt", "/tmp/c.txt")
	assert.Equal(t, 1, s.Size())
}

func TestStore_WalkNewestFirstWithinBucket(t *testing.T) {
	s := New()

	// Same name hashes to the same bucket; the scan must see the most
	// recently indexed record first.
	s.Insert("dup.txt", "/one/dup.txt")
	s.Insert("dup.txt", "/two/dup.txt")
	s.Insert("dup.txt", "/three/dup.txt")

	var paths []string
	s.Walk(func(r *Record) bool {
		paths = append(paths, r.Path)
		return true
	})

	require.Len(t, paths, 3)
	assert.Equal(t, []string{"/three/dup.txt", "/two/dup.txt", "/one/dup.txt"}, paths)
}

func TestStore_WalkShortCircuits(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.Insert(fmt.Sprintf("f%d.txt", i), fmt.Sprintf("/tmp/f%d.txt", i))
	}

	var seen int
	s.Walk(func(*Record) bool {
		seen++
		return seen < 3
	})

	assert.Equal(t, 3, seen)
}

func TestStore_WalkVisitsEveryRecordExactlyOnce(t *testing.T) {
	s := New()
	want := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("file-%03d.log", i)
		s.Insert(name, "/var/log/"+name)
		want[name] = false
	}

	s.Walk(func(r *Record) bool {
		seen, ok := want[r.Name]
		require.True(t, ok, "unexpected record %q", r.Name)
		require.False(t, seen, "record %q visited twice", r.Name)
		want[r.Name] = true
		return true
	})

	for name, seen := range want {
		assert.True(t, seen, "record %q never visited", name)
	}
}
