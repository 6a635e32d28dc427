// Package bench compares CuckooSet's concurrent membership operations
// against a spread of concurrent maps, a sibling single-threaded set, and
// a couple of tree-backed ordered sets.
//
// These are benchmarks of membership structures, not all apples-to-apples:
// google/btree, GoLLRB and HashSet are single-threaded (wrapped here in a
// mutex), while the hashmap-based entries are lock-free maps repurposed as
// sets via a placeholder value.
package bench

import (
	"sync"
	"testing"

	"github.com/alphadose/haxmap"
	"github.com/cornelk/hashmap"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"

	"github.com/twostay/cuckooset/Sets/CuckooSet"
	"github.com/twostay/cuckooset/Sets/HashSet"
)

const benchmarkItemCount = 1024

type intItem int

func (a intItem) Less(than llrb.Item) bool {
	return a < than.(intItem)
}

func setupCuckooSet(b *testing.B) *CuckooSet.CuckooSet[CuckooSet.Int] {
	b.Helper()
	m, err := CuckooSet.New[CuckooSet.Int](benchmarkItemCount)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < benchmarkItemCount; i++ {
		m.Add(CuckooSet.Int(i))
	}
	return m
}

func setupSyncMap(b *testing.B) *sync.Map {
	b.Helper()
	m := &sync.Map{}
	for i := 0; i < benchmarkItemCount; i++ {
		m.Store(i, struct{}{})
	}
	return m
}

func setupHashMap(b *testing.B) *hashmap.Map[int, struct{}] {
	b.Helper()
	m := hashmap.New[int, struct{}]()
	for i := 0; i < benchmarkItemCount; i++ {
		m.Set(i, struct{}{})
	}
	return m
}

func setupHaxMap(b *testing.B) *haxmap.Map[int, struct{}] {
	b.Helper()
	m := haxmap.New[int, struct{}]()
	for i := 0; i < benchmarkItemCount; i++ {
		m.Set(i, struct{}{})
	}
	return m
}

func setupGodsHashSet(b *testing.B) (*hashset.Set, *sync.Mutex) {
	b.Helper()
	s := hashset.New()
	for i := 0; i < benchmarkItemCount; i++ {
		s.Add(i)
	}
	return s, &sync.Mutex{}
}

func setupLLRB(b *testing.B) (*llrb.LLRB, *sync.Mutex) {
	b.Helper()
	t := llrb.New()
	for i := 0; i < benchmarkItemCount; i++ {
		t.ReplaceOrInsert(intItem(i))
	}
	return t, &sync.Mutex{}
}

func setupBTree(b *testing.B) (*btree.BTreeG[int], *sync.Mutex) {
	b.Helper()
	t := btree.NewOrderedG[int](32)
	for i := 0; i < benchmarkItemCount; i++ {
		t.ReplaceOrInsert(i)
	}
	return t, &sync.Mutex{}
}

func setupHopscotch(b *testing.B) (*HashSet.HashSet[int], *sync.Mutex) {
	b.Helper()
	s := HashSet.New[int](16, benchmarkItemCount, 0)
	for i := 0; i < benchmarkItemCount; i++ {
		s.Put(i)
	}
	return s, &sync.Mutex{}
}

func BenchmarkReadCuckooSet(b *testing.B) {
	m := setupCuckooSet(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := 0; i < benchmarkItemCount; i++ {
				if !m.Contains(CuckooSet.Int(i)) {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkReadSyncMap(b *testing.B) {
	m := setupSyncMap(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := 0; i < benchmarkItemCount; i++ {
				if _, ok := m.Load(i); !ok {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkReadHashMap(b *testing.B) {
	m := setupHashMap(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := 0; i < benchmarkItemCount; i++ {
				if _, ok := m.Get(i); !ok {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkReadHaxMap(b *testing.B) {
	m := setupHaxMap(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := 0; i < benchmarkItemCount; i++ {
				if _, ok := m.Get(i); !ok {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkReadGodsHashSet(b *testing.B) {
	s, mu := setupGodsHashSet(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := 0; i < benchmarkItemCount; i++ {
				mu.Lock()
				ok := s.Contains(i)
				mu.Unlock()
				if !ok {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkReadLLRB(b *testing.B) {
	t, mu := setupLLRB(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := 0; i < benchmarkItemCount; i++ {
				mu.Lock()
				ok := t.Has(intItem(i))
				mu.Unlock()
				if !ok {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkReadBTree(b *testing.B) {
	t, mu := setupBTree(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := 0; i < benchmarkItemCount; i++ {
				mu.Lock()
				ok := t.Has(i)
				mu.Unlock()
				if !ok {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkReadHopscotch(b *testing.B) {
	s, mu := setupHopscotch(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for i := 0; i < benchmarkItemCount; i++ {
				mu.Lock()
				ok := s.Has(i)
				mu.Unlock()
				if !ok {
					b.Fail()
				}
			}
		}
	})
}

func BenchmarkWriteCuckooSet(b *testing.B) {
	m, err := CuckooSet.New[CuckooSet.Int](benchmarkItemCount)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := 0; i < benchmarkItemCount; i++ {
			m.Add(CuckooSet.Int(i))
			m.Remove(CuckooSet.Int(i))
		}
	}
}

func BenchmarkWriteHashMap(b *testing.B) {
	m := hashmap.New[int, struct{}]()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := 0; i < benchmarkItemCount; i++ {
			m.Set(i, struct{}{})
			m.Del(i)
		}
	}
}

func BenchmarkWriteHaxMap(b *testing.B) {
	m := haxmap.New[int, struct{}]()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := 0; i < benchmarkItemCount; i++ {
			m.Set(i, struct{}{})
			m.Del(i)
		}
	}
}

func BenchmarkWriteHopscotch(b *testing.B) {
	s := HashSet.New[int](16, benchmarkItemCount, 0)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := 0; i < benchmarkItemCount; i++ {
			s.Put(i)
			s.Remove(i)
		}
	}
}
