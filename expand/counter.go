package expand

import (
	"sync"
	"sync/atomic"

	"github.com/rubiojr/quill/ast"
)

// ModuleCounters hands out per-module hygiene counters. Values increase
// monotonically and are never reused. It is safe for concurrent use.
type ModuleCounters struct {
	m sync.Map // ast.Atom -> *atomic.Int64
}

// Next returns the next counter value for module, starting at 1.
func (c *ModuleCounters) Next(module ast.Atom) int64 {
	v, ok := c.m.Load(module)
	if !ok {
		v, _ = c.m.LoadOrStore(module, new(atomic.Int64))
	}
	return v.(*atomic.Int64).Add(1)
}

// Peek returns the last value handed out for module.
func (c *ModuleCounters) Peek(module ast.Atom) int64 {
	v, ok := c.m.Load(module)
	if !ok {
		return 0
	}
	return v.(*atomic.Int64).Load()
}
