package runs

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/styledtext/attr"
	"github.com/dshills/styledtext/span"
)

// Builder computes and caches the run partition for an attribute store.
// The cache is invalidated by the store's revision counter, so a Builder
// may be queried repeatedly while the store is edited in between.
type Builder struct {
	mu     sync.Mutex
	store  *attr.Store
	cached *Snapshot
}

// NewBuilder creates a builder over the given store.
func NewBuilder(store *attr.Store) *Builder {
	return &Builder{store: store}
}

// Store returns the attribute store the builder reads from.
func (b *Builder) Store() *attr.Store {
	return b.store
}

// Runs returns the current run partition as an immutable snapshot.
// The snapshot is rebuilt only if the store changed since the last call;
// otherwise the cached snapshot is returned unchanged.
func (b *Builder) Runs() (*Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rev := b.store.Revision()
	if b.cached != nil && b.cached.revision == rev {
		return b.cached, nil
	}

	list, err := Build(b.store)
	if err != nil {
		return nil, err
	}

	b.cached = &Snapshot{
		runs:     list,
		revision: rev,
		length:   b.store.Buffer().Len(),
	}
	return b.cached, nil
}

// Invalidate drops the cached snapshot so the next Runs call rebuilds.
// Normally unnecessary: the revision check covers every store mutation.
func (b *Builder) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cached = nil
}

// Build computes the run partition for the store's current contents.
// An empty buffer yields zero runs. A non-empty buffer with no assertions
// yields a single run with no values.
func Build(store *attr.Store) ([]Run, error) {
	length := store.Buffer().Len()
	if length == 0 {
		return nil, nil
	}

	kinds := store.Kinds()
	byKind := make(map[attr.Kind][]attr.Assertion, len(kinds))
	for _, k := range kinds {
		byKind[k] = store.Assertions(k)
	}

	breaks := breakpoints(byKind, length)

	intervals := make([]Run, 0, len(breaks)-1)
	covering := make([]attr.Assertion, 0, 8)
	for i := 0; i+1 < len(breaks); i++ {
		iv := span.New(breaks[i], breaks[i+1])
		values := make(map[attr.Kind]attr.Value, len(kinds))
		for _, k := range kinds {
			covering = coveringAt(byKind[k], iv.Start, covering[:0])
			if len(covering) == 0 {
				continue
			}
			sort.Slice(covering, func(a, b int) bool { return covering[a].Seq < covering[b].Seq })
			values[k] = store.OverlapPolicyFor(k)(covering)
		}
		intervals = append(intervals, Run{Span: iv, Values: values})
	}

	merged := mergeAdjacent(intervals)
	if err := verifyPartition(merged, length); err != nil {
		return nil, err
	}
	return merged, nil
}

// breakpoints returns the sorted distinct offsets where any assertion of
// any kind starts or ends, always including 0 and length.
func breakpoints(byKind map[attr.Kind][]attr.Assertion, length int) []int {
	set := map[int]struct{}{0: {}, length: {}}
	for _, list := range byKind {
		for _, a := range list {
			set[a.Span.Start] = struct{}{}
			set[a.Span.End] = struct{}{}
		}
	}

	out := make([]int, 0, len(set))
	for off := range set {
		out = append(out, off)
	}
	sort.Ints(out)
	return out
}

// coveringAt appends to dst every assertion whose span contains offset.
// The list is sorted by start, so the scan stops at the first assertion
// starting past the offset.
func coveringAt(list []attr.Assertion, offset int, dst []attr.Assertion) []attr.Assertion {
	for _, a := range list {
		if a.Span.Start > offset {
			break
		}
		if a.Span.Contains(offset) {
			dst = append(dst, a)
		}
	}
	return dst
}

// mergeAdjacent collapses neighboring runs whose resolved values are
// identical across every kind.
func mergeAdjacent(intervals []Run) []Run {
	if len(intervals) == 0 {
		return intervals
	}

	merged := intervals[:1]
	for _, r := range intervals[1:] {
		last := &merged[len(merged)-1]
		if last.Span.End == r.Span.Start && last.sameValues(r) {
			last.Span.End = r.Span.End
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// verifyPartition checks that the runs cover [0, length) with no gaps or
// overlaps. Failure is an engine defect, surfaced as *InvariantError.
func verifyPartition(list []Run, length int) error {
	if len(list) == 0 {
		return &InvariantError{Message: fmt.Sprintf("no runs for buffer of length %d", length)}
	}
	if list[0].Span.Start != 0 {
		return &InvariantError{Message: fmt.Sprintf("first run starts at %d, not 0", list[0].Span.Start), Runs: list}
	}
	for i := 1; i < len(list); i++ {
		if list[i].Span.Start != list[i-1].Span.End {
			return &InvariantError{
				Message: fmt.Sprintf("gap or overlap between %s and %s", list[i-1].Span, list[i].Span),
				Runs:    list,
			}
		}
		if list[i].Span.IsEmpty() {
			return &InvariantError{Message: fmt.Sprintf("empty run %s", list[i].Span), Runs: list}
		}
	}
	if end := list[len(list)-1].Span.End; end != length {
		return &InvariantError{Message: fmt.Sprintf("last run ends at %d, not %d", end, length), Runs: list}
	}
	return nil
}
