package CuckooSet

import "github.com/sirupsen/logrus"

// Resize doubles the table's capacity (and lock-independent limit) and
// reinserts every element under freshly re-mixed salts. It acquires every
// row-0 stripe, in index order, before touching anything: since no
// ordinary operation can hold a row-1 stripe without holding its row-0
// stripe first, owning every row-0 stripe is sufficient for exclusive
// logical access to the whole table even though row-1 stripes are never
// touched directly.
//
// If another goroutine already resized while this one was waiting for the
// row-0 stripes, Resize is a no-op: the capacity check after acquiring the
// stripes detects this and returns immediately.
//
// A reinsertion pass that cannot place every element at the doubled
// capacity is never allowed to call back into Resize: it goes exclusively
// through insertDuringResize, which reports failure up to Resize instead
// of recursing. Resize then re-mixes the salts and retries at the same
// capacity a bounded number of times before giving up and doubling the
// capacity again, escalating until a shape is found.
func (s *CuckooSet[E]) Resize() {
	oldCapacity := s.capacity.Load()
	resizeTok := newToken()
	L := s.stripes

	for k := 0; k < L; k++ {
		s.rows[0][k].Lock(resizeTok)
	}
	defer func() {
		for k := 0; k < L; k++ {
			s.rows[0][k].Unlock(resizeTok)
		}
	}()

	if s.capacity.Load() != oldCapacity {
		return
	}

	s.logger.WithField("oldCapacity", oldCapacity).Debug("CuckooSet: resize starting")

	oldTable := s.table
	growFactor := uint(2)

	const maxAttemptsPerFactor = 8
	const maxFactorEscalations = 10

	for escalation := 0; ; escalation++ {
		succeeded := false
		for attempt := 0; attempt < maxAttemptsPerFactor; attempt++ {
			s.reseed()
			newCapacity := oldCapacity * growFactor
			s.table[0] = make([]bucket[E], newCapacity)
			s.table[1] = make([]bucket[E], newCapacity)
			s.capacity.Store(newCapacity)
			s.limit.Store(newCapacity / 2)

			if s.reinsertAll(oldTable, oldCapacity, resizeTok) {
				succeeded = true
				break
			}
			s.resizeRetryCount.Add(1)
			s.logger.WithFields(logrus.Fields{
				"attempt":    attempt + 1,
				"growFactor": growFactor,
			}).Warn("CuckooSet: resize reinsertion exhausted, re-mixing salts and retrying")
		}
		if succeeded {
			break
		}
		if escalation+1 >= maxFactorEscalations {
			panic("CuckooSet: resize could not find a table shape accommodating all elements")
		}
		growFactor *= 2
		s.logger.WithField("growFactor", growFactor).Warn("CuckooSet: escalating resize growth factor")
	}

	s.resizeCount.Add(1)
	s.logger.WithField("newCapacity", s.capacity.Load()).Debug("CuckooSet: resize complete")
}

func (s *CuckooSet[E]) reinsertAll(oldTable [2][]bucket[E], oldCapacity uint, tok token) bool {
	for r := 0; r < 2; r++ {
		for idx := uint(0); idx < oldCapacity; idx++ {
			for _, v := range oldTable[r][idx].items {
				if !s.insertDuringResize(v, tok) {
					return false
				}
			}
		}
	}
	return true
}

// insertDuringResize places v into the table currently being built by
// Resize. It mirrors Add's structure (plain append under THRESHOLD,
// displacement under PROBE_SIZE, failure past that) but never triggers
// another resize itself: a failure here only tells the caller that this
// reinsertion pass didn't find room, so Resize can retry with fresh salts
// or a larger capacity instead.
func (s *CuckooSet[E]) insertDuringResize(v E, tok token) bool {
	row0, row1, h0, h1 := s.acquire(v, tok, true)
	C := uint64(s.capacity.Load())
	b0idx, b1idx := h0%C, h1%C
	b0, b1 := &s.table[0][b0idx], &s.table[1][b1idx]

	if b0.find(v) >= 0 || b1.find(v) >= 0 {
		s.release(row0, row1, tok, true)
		return true
	}
	if b0.len() < THRESHOLD {
		b0.append(v)
		s.release(row0, row1, tok, true)
		return true
	}
	if b1.len() < THRESHOLD {
		b1.append(v)
		s.release(row0, row1, tok, true)
		return true
	}

	var relocRow int
	var relocIdx uint64
	full := false
	switch {
	case b0.len() < PROBE_SIZE:
		b0.append(v)
		relocRow, relocIdx = 0, b0idx
	case b1.len() < PROBE_SIZE:
		b1.append(v)
		relocRow, relocIdx = 1, b1idx
	default:
		full = true
	}
	s.release(row0, row1, tok, true)

	if full {
		return false
	}
	return s.relocateDuringResize(relocRow, relocIdx, tok)
}
