package attr

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/styledtext/span"
	"github.com/dshills/styledtext/textbuf"
)

// Errors returned by store operations.
var (
	ErrInvalidSpan = errors.New("invalid span")
	ErrNotFound    = errors.New("assertion not found")
)

// Store holds ranged attribute assertions over a text buffer.
// All methods are thread-safe, but the intended usage is a single writer
// during a build phase followed by shared read-only consumption of run
// snapshots (see the runs package).
type Store struct {
	mu        sync.RWMutex
	buf       *textbuf.Buffer
	kinds     map[Kind][]Assertion // each slice sorted by Span.Start
	policies  map[Kind]OverlapPolicy
	behaviors map[Kind]EditBehavior
	nextSeq   Seq
	revision  uint64
	count     int
}

// NewStore creates an empty store anchored to the given buffer.
func NewStore(buf *textbuf.Buffer) *Store {
	return &Store{
		buf:       buf,
		kinds:     make(map[Kind][]Assertion),
		policies:  make(map[Kind]OverlapPolicy),
		behaviors: make(map[Kind]EditBehavior),
	}
}

// Buffer returns the buffer the store is anchored to.
func (s *Store) Buffer() *textbuf.Buffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf
}

// Insert validates sp and appends an assertion of kind with the given
// value. It returns the freshly allocated sequence id. A rejected insert
// has no effect on the store.
func (s *Store) Insert(kind Kind, sp span.Span, value Value) (Seq, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateSpan(sp); err != nil {
		return 0, err
	}

	s.nextSeq++
	a := Assertion{Kind: kind, Span: sp, Value: value, Seq: s.nextSeq}

	list := s.kinds[kind]
	// Insert keeping the slice sorted by start offset. Equal starts keep
	// insertion order, so Seq stays ascending within a start.
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Span.Start > sp.Start
	})
	list = append(list, Assertion{})
	copy(list[i+1:], list[i:])
	list[i] = a
	s.kinds[kind] = list

	s.count++
	s.revision++
	return a.Seq, nil
}

// validateSpan rejects spans that are inverted, empty, out of bounds, or
// anchored off a character boundary. Callers hold the lock.
func (s *Store) validateSpan(sp span.Span) error {
	switch {
	case !sp.IsValid():
		return fmt.Errorf("%w: %s is inverted", ErrInvalidSpan, sp)
	case sp.IsEmpty():
		return fmt.Errorf("%w: %s is empty", ErrInvalidSpan, sp)
	case sp.Start < 0 || sp.End > s.buf.Len():
		return fmt.Errorf("%w: %s outside buffer of length %d", ErrInvalidSpan, sp, s.buf.Len())
	case !s.buf.IsBoundary(sp.Start):
		return fmt.Errorf("%w: start %d splits a character", ErrInvalidSpan, sp.Start)
	case !s.buf.IsBoundary(sp.End):
		return fmt.Errorf("%w: end %d splits a character", ErrInvalidSpan, sp.End)
	}
	return nil
}

// Remove deletes the assertion with the given sequence id.
// Returns ErrNotFound if no assertion has that id.
func (s *Store) Remove(seq Seq) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for kind, list := range s.kinds {
		for i, a := range list {
			if a.Seq != seq {
				continue
			}
			s.kinds[kind] = append(list[:i:i], list[i+1:]...)
			if len(s.kinds[kind]) == 0 {
				delete(s.kinds, kind)
			}
			s.count--
			s.revision++
			return nil
		}
	}
	return fmt.Errorf("%w: seq %d", ErrNotFound, seq)
}

// Clear removes all assertions of a kind.
func (s *Store) Clear(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.kinds[kind]
	if !ok {
		return
	}
	s.count -= len(list)
	delete(s.kinds, kind)
	s.revision++
}

// Kinds returns every kind with at least one assertion, sorted by name so
// run building is deterministic.
func (s *Store) Kinds() []Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Kind, 0, len(s.kinds))
	for k := range s.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Assertions returns a copy of the assertions for a kind, sorted by start
// offset.
func (s *Store) Assertions(kind Kind) []Assertion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.kinds[kind]
	out := make([]Assertion, len(list))
	copy(out, list)
	return out
}

// Len returns the total assertion count across all kinds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Revision returns a counter that increases on every mutation. Cached run
// partitions are valid only for the revision they were built at.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// AssertionsAt returns every assertion, of any kind, whose span contains
// the given offset. Results are ordered by kind name, then by sequence.
func (s *Store) AssertionsAt(offset int) []Assertion {
	return s.AssertionsOverlapping(span.Span{Start: offset, End: offset + 1})
}

// AssertionsOverlapping returns every assertion whose span shares at
// least one byte with sp. Results are ordered by kind name, then by
// sequence.
func (s *Store) AssertionsOverlapping(sp span.Span) []Assertion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kinds := make([]Kind, 0, len(s.kinds))
	for k := range s.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var out []Assertion
	for _, k := range kinds {
		matched := make([]Assertion, 0, 4)
		for _, a := range s.kinds[k] {
			if a.Span.Start >= sp.End {
				break
			}
			if a.Span.Overlaps(sp) {
				matched = append(matched, a)
			}
		}
		sort.Slice(matched, func(i, j int) bool { return matched[i].Seq < matched[j].Seq })
		out = append(out, matched...)
	}
	return out
}

// SetOverlapPolicy installs the policy used when several assertions of
// kind cover the same byte. A nil policy restores last-writer-wins.
func (s *Store) SetOverlapPolicy(kind Kind, policy OverlapPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if policy == nil {
		delete(s.policies, kind)
	} else {
		s.policies[kind] = policy
	}
	s.revision++
}

// OverlapPolicyFor returns the policy for a kind, defaulting to
// last-writer-wins.
func (s *Store) OverlapPolicyFor(kind Kind) OverlapPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.policies[kind]; ok {
		return p
	}
	return LastWriterWins
}

// SetEditBehavior sets how assertions of kind react to text deletion.
// The default is EditKeep.
func (s *Store) SetEditBehavior(kind Kind, behavior EditBehavior) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.behaviors[kind] = behavior
}

// EditBehaviorFor returns the edit behavior for a kind.
func (s *Store) EditBehaviorFor(kind Kind) EditBehavior {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.behaviors[kind]
}

// ApplyDelete rebinds the store to newBuf, which must be the old text
// with the del range removed, and adjusts every assertion span according
// to its kind's edit behavior. Assertions left empty by the adjustment
// are dropped.
func (s *Store) ApplyDelete(del span.Span, newBuf *textbuf.Buffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !del.IsValid() || del.Start < 0 || del.End > s.buf.Len() {
		return fmt.Errorf("%w: deletion %s outside buffer of length %d", ErrInvalidSpan, del, s.buf.Len())
	}
	if newBuf.Len() != s.buf.Len()-del.Len() {
		return fmt.Errorf("%w: replacement buffer length %d does not match deletion of %s", ErrInvalidSpan, newBuf.Len(), del)
	}

	deleted := del.Len()
	for kind, list := range s.kinds {
		behavior := s.behaviors[kind]
		kept := list[:0]
		for _, a := range list {
			switch {
			case a.Span.End <= del.Start:
				// Entirely before the deletion.
				kept = append(kept, a)
			case a.Span.Start >= del.End:
				a.Span = a.Span.Shift(-deleted)
				kept = append(kept, a)
			case behavior == EditRemove:
				s.count--
			default:
				if a.Span.Start < del.Start && a.Span.End > del.End {
					// Span fully covers the deletion: close the gap.
					a.Span.End -= deleted
				} else {
					if a.Span.Start > del.Start {
						a.Span.Start = del.Start
					}
					if a.Span.End > del.Start {
						a.Span.End = del.Start
					}
				}
				if a.Span.IsEmpty() {
					s.count--
				} else {
					kept = append(kept, a)
				}
			}
		}
		if len(kept) == 0 {
			delete(s.kinds, kind)
		} else {
			s.kinds[kind] = kept
		}
	}

	s.buf = newBuf
	s.revision++
	return nil
}
