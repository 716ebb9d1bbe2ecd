// Package runs normalizes raw attribute assertions into a flat partition
// of non-overlapping runs.
//
// A run is a maximal span over which every attribute kind resolves to a
// single value (or is absent). The builder collects every assertion edge
// into a sorted breakpoint set, resolves each interval per kind using the
// store's overlap policy, and merges adjacent intervals whose resolved
// values are identical. The resulting run list:
//
//   - covers [0, buffer length) exactly, with no gaps and no overlaps
//   - never contains two adjacent runs with identical resolved values
//   - is deterministic for a given store state
//
// A violation of the partition invariant is an engine defect, reported as
// *InvariantError rather than an ordinary validation error.
//
// Builders cache the computed partition per store revision; any store
// mutation makes the next Runs call rebuild. Snapshots handed out are
// immutable and safe to share across goroutines once building is done.
package runs
