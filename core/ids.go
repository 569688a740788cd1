package core

// ElementID identifies a single node (vector) within an index layer.
// It is issued and recycled entirely by the caller; the graph treats it
// as an opaque, copyable handle with value equality.
type ElementID uint64

// MaxElementID is the maximum possible value for an ElementID.
const MaxElementID = ^ElementID(0)
