// Package styledtext manages text annotated with ranged, possibly
// overlapping attributes and resolves them into a flat sequence of
// non-overlapping styled runs for a shaping or layout pipeline.
//
// The engine is split into small packages:
//
//   - textbuf: the immutable text buffer and boundary validation
//   - span: half-open byte intervals
//   - attr: the attribute store of ranged value assertions
//   - runs: normalization of assertions into a run partition
//   - style: mapping of resolved runs onto style properties
//   - theme: declarative rule sets loaded from TOML or JSON
//
// This package provides AttributedText, a facade over the engine:
//
//	at := styledtext.New("Hello World")
//	at.ApplyAttribute("weight", span.New(0, 5), attr.String("bold"))
//	styled, err := at.Runs()
//
// Attributed text follows a build/query cycle: mutate with
// ApplyAttribute, RemoveAttribute, ClearKind or Delete, then query with
// Runs or RawRuns. Query results are immutable snapshots that may be
// shared across goroutines; any later mutation makes previously obtained
// snapshots stale, and the next query returns fresh ones.
package styledtext
