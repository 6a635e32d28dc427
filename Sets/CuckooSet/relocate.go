package CuckooSet

// relocate attempts to migrate the front element of the overfull bucket at
// (i, h) into its other candidate bucket, repeating for up to limit rounds
// if that bucket is itself overfull. Returns false if no round finds room.
// When a round fails because the other bucket is full, the element evicted
// in that round is put back into the bucket it was taken from; moves made
// by earlier rounds are not undone.
//
// The front element is peeked under two short-lived "scout" locks rather
// than the full two-stripe pair the real acquisition uses: the row-0
// stripe at bucket-index-mod-L is always taken, because Resize only ever
// holds row-0 stripes while it swaps the table arrays, so only a row-0
// stripe serializes a peek against a resize in flight; the row-1 stripe at
// the same index is additionally taken when the bucket being peeked is
// itself in row 1, because that is the exact stripe an ordinary mutation
// of a row-1 bucket holds. Since a lock stripe always protects bucket
// index mod L regardless of which element currently occupies it, this is
// enough to safely read the front element — and to observe a consistent
// table slice header, not a torn one — without risking a data race with
// either a concurrent table-array swap or a concurrent bucket mutation.
// The element is re-found under the real two-stripe acquisition before it
// is acted on, so a stale or since-removed peek is simply treated the same
// way a concurrent remove would be.
func (s *CuckooSet[E]) relocate(i int, h uint64) bool {
	limit := int(s.limit.Load())
	L := uint64(s.stripes)

	for round := 0; round < limit; round++ {
		j := 1 - i

		scoutTok := newToken()
		s.rows[0][h%L].Lock(scoutTok)
		if i == 1 {
			s.rows[1][h%L].Lock(scoutTok)
		}
		v, ok := s.table[i][h].front()
		if i == 1 {
			s.rows[1][h%L].Unlock(scoutTok)
		}
		s.rows[0][h%L].Unlock(scoutTok)
		if !ok {
			return true
		}

		tok := newToken()
		row0, row1, h0, h1 := s.acquire(v, tok, false)

		C := uint64(s.capacity.Load())
		var hi, hj uint64
		if i == 0 {
			hi, hj = h0%C, h1%C
		} else {
			hi, hj = h1%C, h0%C
		}

		pos := s.table[i][hi].find(v)
		if pos < 0 {
			belowThreshold := s.table[i][hi].len() < THRESHOLD
			s.release(row0, row1, tok, false)
			if belowThreshold {
				return true
			}
			continue
		}
		s.table[i][hi].eraseAt(pos)

		dst := &s.table[j][hj]
		switch {
		case dst.len() < THRESHOLD:
			dst.append(v)
			s.release(row0, row1, tok, false)
			return true
		case dst.len() < PROBE_SIZE:
			dst.append(v)
			s.release(row0, row1, tok, false)
			i, h = j, hj
		default:
			s.table[i][hi].append(v)
			s.release(row0, row1, tok, false)
			return false
		}
	}
	return false
}

// relocateDuringResize is relocate's counterpart for the resizer's
// reinsertion pass: the resizer is the table's sole reader and writer for
// the duration of a resize (it holds every row-0 stripe and no ordinary
// operation can hold a row-1 stripe without row-0 first), so peeking the
// front element needs no scout lock at all. Its acquisitions skip the
// row-0 stripes (already held by the resizer under tok) and take row-1
// locks under tok, which are real but always uncontended.
func (s *CuckooSet[E]) relocateDuringResize(i int, h uint64, tok token) bool {
	limit := int(s.limit.Load())

	for round := 0; round < limit; round++ {
		j := 1 - i

		v, ok := s.table[i][h].front()
		if !ok {
			return true
		}

		row0, row1, h0, h1 := s.acquire(v, tok, true)
		C := uint64(s.capacity.Load())
		var hi, hj uint64
		if i == 0 {
			hi, hj = h0%C, h1%C
		} else {
			hi, hj = h1%C, h0%C
		}

		pos := s.table[i][hi].find(v)
		if pos < 0 {
			belowThreshold := s.table[i][hi].len() < THRESHOLD
			s.release(row0, row1, tok, true)
			if belowThreshold {
				return true
			}
			continue
		}
		s.table[i][hi].eraseAt(pos)

		dst := &s.table[j][hj]
		switch {
		case dst.len() < THRESHOLD:
			dst.append(v)
			s.release(row0, row1, tok, true)
			return true
		case dst.len() < PROBE_SIZE:
			dst.append(v)
			s.release(row0, row1, tok, true)
			i, h = j, hj
		default:
			s.table[i][hi].append(v)
			s.release(row0, row1, tok, true)
			return false
		}
	}
	return false
}
