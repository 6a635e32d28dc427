package CuckooSet

// cuckooSetInternalStats exposes resize bookkeeping for this package's own
// tests. It is deliberately unexported: callers outside the package have
// no business depending on how many times a salt re-mix was needed.
type cuckooSetInternalStats struct {
	Resizes      uint64
	FalseResizes uint64 // reinsertion attempts abandoned for fresh salts
}

func (s *CuckooSet[E]) internalStats() cuckooSetInternalStats {
	return cuckooSetInternalStats{
		Resizes:      s.resizeCount.Load(),
		FalseResizes: s.resizeRetryCount.Load(),
	}
}
