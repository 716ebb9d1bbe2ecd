package runs

// Snapshot is an immutable run partition captured at a specific store
// revision. It is safe for concurrent read access and will not change if
// the store is mutated afterwards; mutation simply makes the snapshot
// stale, and the next Builder.Runs call produces a fresh one.
//
// Callers must treat the returned runs as read-only.
type Snapshot struct {
	runs     []Run
	revision uint64
	length   int
}

// Runs returns the ordered run list. The slice and the run value maps are
// shared with the snapshot and must not be modified.
func (s *Snapshot) Runs() []Run {
	return s.runs
}

// Len returns the number of runs.
func (s *Snapshot) Len() int {
	return len(s.runs)
}

// At returns the run at index i.
func (s *Snapshot) At(i int) Run {
	return s.runs[i]
}

// Revision returns the store revision the snapshot was built at.
func (s *Snapshot) Revision() uint64 {
	return s.revision
}

// TextLen returns the buffer length the snapshot partitions.
func (s *Snapshot) TextLen() int {
	return s.length
}

// RunAt returns the run containing the given byte offset.
// The bool is false if the offset is outside [0, TextLen).
func (s *Snapshot) RunAt(offset int) (Run, bool) {
	if offset < 0 || offset >= s.length {
		return Run{}, false
	}

	lo, hi := 0, len(s.runs)
	for lo < hi {
		mid := (lo + hi) / 2
		r := s.runs[mid]
		switch {
		case offset < r.Span.Start:
			hi = mid
		case offset >= r.Span.End:
			lo = mid + 1
		default:
			return r, true
		}
	}
	return Run{}, false
}
