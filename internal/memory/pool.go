package memory

import "sync"

// Pool is a typed object pool. Safe for normal Get/Put use, and can also
// participate in epoch-based reclamation through PutAny.
type Pool[T any] struct {
	p *sync.Pool
}

func NewPool[T any](ctor func() *T) *Pool[T] {
	return &Pool[T]{p: &sync.Pool{New: func() any { return ctor() }}}
}

func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}

// PutAny is the type-erased adapter that lets a reclaimer hold a slice of
// ReclaimablePool without knowing each one's T.
func (p *Pool[T]) PutAny(v any) {
	obj, ok := v.(*T)
	if !ok {
		panic("memory.Pool: PutAny received wrong type")
	}
	p.Put(obj)
}

// ReclaimablePool is the only requirement a reclaimer imposes on a pool.
type ReclaimablePool interface {
	PutAny(any)
}
