// Package idgen produces process-unique integer identifiers for orders,
// customers, restaurants and riders. Uniqueness is guaranteed only within
// the lifetime of the process; no format is promised beyond that.
package idgen

import "sync/atomic"

// Generator hands out monotonically increasing integer IDs.
// The zero value is ready to use; the first ID issued is 1.
// Safe for concurrent use.
type Generator struct {
	next atomic.Int64
}

// New creates a fresh Generator starting from 1.
func New() *Generator {
	return &Generator{}
}

// Next returns the next unique identifier.
func (g *Generator) Next() int64 {
	return g.next.Add(1)
}
