// Package CuckooSet implements a concurrent cuckoo hash set: a set of
// comparable, hashable elements stored across two rows of short buckets,
// placed and displaced using cuckoo hashing, and protected by a fixed grid
// of striped recursive locks so that contains/add/remove and the internal
// displacement and resize machinery can run under concurrent access.
//
// Unlike Sets/HashSet (hopscotch hashing, single-threaded), CuckooSet
// trades a flatter table for two candidate positions per element and pays
// for it with an explicit concurrency protocol: every operation acquires
// the two lock stripes covering an element in a fixed order before
// touching its candidate buckets, and a resize acquires every row-0 stripe
// to get exclusive logical access to the whole table without ever
// resizing the lock grid itself.
package CuckooSet

import (
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	Go_Utils "github.com/twostay/cuckooset"
	"github.com/sirupsen/logrus"
)

const (
	// PROBE_SIZE is the hard upper bound on bucket length.
	PROBE_SIZE = 8
	// THRESHOLD is the soft target bucket length; at or above this,
	// Add prefers displacement over a plain append.
	THRESHOLD = PROBE_SIZE / 2
)

// CuckooSet is a concurrent set of E, safe for concurrent Contains/Add/Remove
// from multiple goroutines. The zero value is not usable; construct with New.
type CuckooSet[E Element] struct {
	capacity Go_Utils.AtomicUint
	limit    Go_Utils.AtomicUint
	salt0    atomic.Uint64
	salt1    atomic.Uint64

	stripes int // L: fixed lock-stripe count per row, set at construction.
	rows    [2][]stripeLock
	table   [2][]bucket[E]

	logger *logrus.Logger

	resizeCount      atomic.Uint64
	resizeRetryCount atomic.Uint64
}

// New constructs a CuckooSet with the given initial capacity (buckets per
// row). capacity must be positive; a power of two is recommended but not
// required.
func New[E Element](capacity int, opts ...Option) (*CuckooSet[E], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	stripes := cfg.stripes
	if stripes == 0 {
		stripes = capacity
	}
	if stripes <= 0 || capacity%stripes != 0 {
		return nil, ErrInvalidStripes
	}

	logger := cfg.logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	s := &CuckooSet[E]{
		stripes: stripes,
		logger:  logger,
	}
	s.capacity.Store(uint(capacity))
	s.limit.Store(uint(capacity / 2))
	s.rows[0] = newStripes(stripes)
	s.rows[1] = newStripes(stripes)
	s.table[0] = make([]bucket[E], capacity)
	s.table[1] = make([]bucket[E], capacity)

	now := uint64(time.Now().UnixNano())
	s.salt0.Store(now)
	s.salt1.Store(combine(now, uint64(capacity)))

	return s, nil
}

func (s *CuckooSet[E]) hashes(v E) (h0, h1 uint64) {
	base := v.Hash()
	h0 = saltedHash(base, s.salt0.Load())
	h1 = saltedHash(base, s.salt1.Load())
	return
}

// acquire locks the two stripes covering v, in the fixed row-0-then-row-1
// order required for deadlock freedom, and returns their indices plus the
// already-computed H0(v)/H1(v). When skipRow0 is set, the row-0 stripe is
// not locked: it is assumed already held under tok by the caller — used only by
// the resizer's internal reinsertion, which holds every row-0 stripe for
// the duration of a resize.
func (s *CuckooSet[E]) acquire(v E, tok token, skipRow0 bool) (row0, row1 int, h0, h1 uint64) {
	h0, h1 = s.hashes(v)
	L := uint64(s.stripes)
	row0 = int(h0 % L)
	row1 = int(h1 % L)
	if !skipRow0 {
		s.rows[0][row0].Lock(tok)
	}
	s.rows[1][row1].Lock(tok)
	return
}

func (s *CuckooSet[E]) release(row0, row1 int, tok token, skipRow0 bool) {
	s.rows[1][row1].Unlock(tok)
	if !skipRow0 {
		s.rows[0][row0].Unlock(tok)
	}
}

// Contains reports whether v is present.
func (s *CuckooSet[E]) Contains(v E) bool {
	tok := newToken()
	row0, row1, h0, h1 := s.acquire(v, tok, false)
	defer s.release(row0, row1, tok, false)

	C := uint64(s.capacity.Load())
	if s.table[0][h0%C].find(v) >= 0 {
		return true
	}
	return s.table[1][h1%C].find(v) >= 0
}

// Has is an alias for Contains, satisfying Sets.Set[E].
func (s *CuckooSet[E]) Has(v E) bool { return s.Contains(v) }

// Remove deletes v if present. Returns true if v was removed.
func (s *CuckooSet[E]) Remove(v E) bool {
	tok := newToken()
	row0, row1, h0, h1 := s.acquire(v, tok, false)
	defer s.release(row0, row1, tok, false)

	C := uint64(s.capacity.Load())
	if pos := s.table[0][h0%C].find(v); pos >= 0 {
		s.table[0][h0%C].eraseAt(pos)
		return true
	}
	if pos := s.table[1][h1%C].find(v); pos >= 0 {
		s.table[1][h1%C].eraseAt(pos)
		return true
	}
	return false
}

// Add inserts v. Returns true if v was inserted, false if already present.
func (s *CuckooSet[E]) Add(v E) bool {
	for {
		tok := newToken()
		row0, row1, h0, h1 := s.acquire(v, tok, false)
		C := uint64(s.capacity.Load())
		b0idx, b1idx := h0%C, h1%C

		if s.table[0][b0idx].find(v) >= 0 || s.table[1][b1idx].find(v) >= 0 {
			s.release(row0, row1, tok, false)
			return false
		}

		b0, b1 := &s.table[0][b0idx], &s.table[1][b1idx]

		if b0.len() < THRESHOLD {
			b0.append(v)
			s.release(row0, row1, tok, false)
			return true
		}
		if b1.len() < THRESHOLD {
			b1.append(v)
			s.release(row0, row1, tok, false)
			return true
		}

		var relocRow int
		var relocIdx uint64
		mustResize := false
		switch {
		case b0.len() < PROBE_SIZE:
			b0.append(v)
			relocRow, relocIdx = 0, b0idx
		case b1.len() < PROBE_SIZE:
			b1.append(v)
			relocRow, relocIdx = 1, b1idx
		default:
			mustResize = true
		}
		s.release(row0, row1, tok, false)

		if mustResize {
			s.Resize()
			continue // retry the whole add against the grown table
		}
		if !s.relocate(relocRow, relocIdx) {
			s.Resize()
		}
		return true
	}
}

// Put is an alias for Add, satisfying Sets.Set[E].
func (s *CuckooSet[E]) Put(v E) bool { return s.Add(v) }

// Size returns the advisory element count: the sum of all bucket lengths,
// taken one lock stripe pair at a time rather than under a single global
// lock. Under concurrent mutation the total can be momentarily
// inconsistent; it is exact only once the set is quiescent.
func (s *CuckooSet[E]) Size() uint {
	var total uint
	L := s.stripes
	for k := 0; k < L; k++ {
		tok := newToken()
		s.rows[0][k].Lock(tok)
		s.rows[1][k].Lock(tok)
		C := int(s.capacity.Load())
		for idx := k; idx < C; idx += L {
			total += uint(s.table[0][idx].len())
			total += uint(s.table[1][idx].len())
		}
		s.rows[1][k].Unlock(tok)
		s.rows[0][k].Unlock(tok)
	}
	return total
}

// Populate bulk-inserts entries. It is explicitly not safe for concurrent
// use with other operations on the same set; call it only before
// concurrent activity begins. Returns false and stops at the first
// duplicate, leaving prior inserts in place. An empty slice returns true.
func (s *CuckooSet[E]) Populate(entries []E) bool {
	for _, e := range entries {
		if !s.Add(e) {
			s.logger.WithField("element", e).Warn("CuckooSet: Populate aborted on duplicate entry")
			return false
		}
	}
	return true
}

// Take returns an arbitrary present element, or the zero value if empty.
// It does not guarantee which element it returns, and is cheaper than
// Range for this purpose since it can stop at the first hit.
func (s *CuckooSet[E]) Take() E {
	L := s.stripes
	for k := 0; k < L; k++ {
		tok := newToken()
		s.rows[0][k].Lock(tok)
		s.rows[1][k].Lock(tok)
		C := int(s.capacity.Load())
		for idx := k; idx < C; idx += L {
			if v, ok := s.table[0][idx].front(); ok {
				s.rows[1][k].Unlock(tok)
				s.rows[0][k].Unlock(tok)
				return v
			}
			if v, ok := s.table[1][idx].front(); ok {
				s.rows[1][k].Unlock(tok)
				s.rows[0][k].Unlock(tok)
				return v
			}
		}
		s.rows[1][k].Unlock(tok)
		s.rows[0][k].Unlock(tok)
	}
	var zero E
	return zero
}

// Range calls f for every element present in a snapshot taken at the time
// of the call, stopping early if f returns false. It acquires every row-0
// stripe (the same exclusive-access trick Resize uses) for the duration of
// the snapshot copy, then releases before calling f.
func (s *CuckooSet[E]) Range(f func(E) bool) {
	tok := newToken()
	L := s.stripes
	for k := 0; k < L; k++ {
		s.rows[0][k].Lock(tok)
	}
	C := int(s.capacity.Load())
	snap := make([]E, 0, C)
	for r := 0; r < 2; r++ {
		for idx := 0; idx < C; idx++ {
			snap = append(snap, s.table[r][idx].snapshot()...)
		}
	}
	for k := 0; k < L; k++ {
		s.rows[0][k].Unlock(tok)
	}

	for _, v := range snap {
		if !f(v) {
			return
		}
	}
}

func (s *CuckooSet[E]) reseed() {
	now := uint64(time.Now().UnixNano())
	jitter := rand.Uint64()
	salt0 := combine(now, jitter)
	s.salt0.Store(salt0)
	s.salt1.Store(combine(salt0, uint64(s.capacity.Load())))
}
