// Package schema defines the declarative scene description for framevisx:
// a serializable model of a dataset's frame count and the annotation
// primitives overlaid on it, with each record's frame association spelled
// out by kind.
//
// Scene files are input configuration, not state persistence: the live
// engine never writes its sequences back through this package.
//
// Validation mirrors the engine's sequence invariants so that a scene which
// validates here always materializes cleanly.
package schema
