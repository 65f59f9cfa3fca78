// Package framevisx implements per-primitive frame visibility for
// annotations overlaid on multi-frame datasets (image stacks, sweep
// recordings).
//
// Each annotation Primitive owns a sequence of Records; every record
// carries an Association deciding the frames it is visible in: everywhere
// (ubiquitous), everywhere except one frame (avoiding), or exactly one
// frame (single). The engine guarantees at most one record is visible per
// frame and rewrites the sequence on reassignment so that guarantee, and
// the rest of the sequence invariants, always hold.
//
// The package is the pure core: no locking, no logging, no I/O. Runtime
// concerns (many primitives, concurrency, undo, dataset change feeds) live
// in the overlay runtime built on top of it.
package framevisx
