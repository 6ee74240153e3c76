// Package store holds the in-memory ordered task collection and the
// monotonic id allocator.
//
// The store keeps tasks in insertion order, which is the base ordering
// before any sort is applied. Ids start at 0, strictly increase for the
// lifetime of the process, and are never reused after deletion. The store
// is not safe for concurrent use; commands execute serially and each gets
// whole-command atomicity from that serialization.
package store
