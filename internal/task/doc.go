// Package task defines the task record and the closed vocabularies that
// describe it: addressable properties, priorities, repeat intervals, and
// the textual date formats used on the wire.
//
// All user-facing values are validated at the input boundary and converted
// to and from text only at the interfaces. The stringified form of a
// property (see Task.Value) is the canonical representation used for
// filtering, batch deletion, and table rendering.
package task
