// Package textbuf provides the immutable UTF-8 text buffer that attribute
// spans are anchored to. It serves as the leaf of the styledtext engine.
//
// The textbuf package provides:
//
//   - Immutable byte storage safe for concurrent readers
//   - Boundary validation at rune or grapheme-cluster granularity
//   - Optional NFC normalization at construction time
//   - Byte-offset slicing and rune access
//
// Basic usage:
//
//	// Create a buffer with grapheme-aware boundaries
//	buf := textbuf.NewFromString("héllo", textbuf.WithGraphemeBoundaries())
//
//	// Check whether an offset may anchor an attribute span
//	ok := buf.IsBoundary(2)
//
// Buffers never change after construction. Editing is modeled by building
// a new buffer and re-anchoring attributes, which keeps previously issued
// snapshots trivially valid for their original text.
package textbuf
