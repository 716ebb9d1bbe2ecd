// Package attr provides the attribute store: ranged, possibly overlapping
// assertions of attribute values over a text buffer.
//
// The attr package provides:
//
//   - Kind-scoped collections of span assertions, sorted by start offset
//   - Validated insertion with monotonically increasing sequence ids
//   - Removal by sequence id and per-kind clearing
//   - Pluggable same-kind overlap resolution (last-writer-wins by default)
//   - Per-kind edit behavior for span adjustment when text is deleted
//   - A revision counter used by the run builder to invalidate caches
//
// Assertions are raw input: they may overlap freely within a kind. The
// runs package normalizes them into a non-overlapping partition.
//
// Basic usage:
//
//	store := attr.NewStore(buf)
//	seq, err := store.Insert("weight", span.New(0, 6), attr.String("bold"))
//	if err != nil {
//	    // span was empty, out of bounds, or off a character boundary
//	}
//	store.Remove(seq)
package attr
