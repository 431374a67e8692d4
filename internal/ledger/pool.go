package ledger

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// PoolAttrs carries the attributes dependent stages sample against.
type PoolAttrs struct {
	Active bool
	Price  decimal.Decimal
}

// Pool is an arena-style identifier allocator for one entity type: a
// monotonic counter plus the set of registered identifiers and their
// attributes. Later stages draw foreign keys from it.
type Pool struct {
	name   string
	next   int64
	ids    []int64
	active []int64
	attrs  map[int64]PoolAttrs
	rng    *rand.Rand
}

func NewPool(name string, rng *rand.Rand) *Pool {
	return &Pool{
		name:  name,
		attrs: make(map[int64]PoolAttrs),
		rng:   rng,
	}
}

// Next allocates the next sequence number. The identifier only becomes
// sampleable once Register is called with it.
func (p *Pool) Next() int64 {
	p.next++
	return p.next
}

// StartAfter moves the sequence counter past id, so identifiers allocated
// later cannot collide with rows already present in a live store.
func (p *Pool) StartAfter(id int64) {
	if id > p.next {
		p.next = id
	}
}

func (p *Pool) Register(id int64, attrs PoolAttrs) {
	if _, ok := p.attrs[id]; ok {
		return
	}
	p.ids = append(p.ids, id)
	if attrs.Active {
		p.active = append(p.active, id)
	}
	p.attrs[id] = attrs
}

func (p *Pool) Len() int { return len(p.ids) }

// Sample returns a uniformly random registered identifier. The second
// return is false when the pool is empty; callers must treat that as fatal
// for their stage.
func (p *Pool) Sample() (int64, bool) {
	if len(p.ids) == 0 {
		return 0, false
	}
	return p.ids[p.rng.Intn(len(p.ids))], true
}

// SampleActive is Sample restricted to records with the active flag set.
func (p *Pool) SampleActive() (int64, bool) {
	if len(p.active) == 0 {
		return 0, false
	}
	return p.active[p.rng.Intn(len(p.active))], true
}

// Attrs returns the attributes registered for id.
func (p *Pool) Attrs(id int64) PoolAttrs {
	return p.attrs[id]
}

// SampleDistinctActive returns up to n distinct active identifiers, or all
// of them when fewer than n exist.
func (p *Pool) SampleDistinctActive(n int) []int64 {
	if len(p.active) == 0 {
		return nil
	}
	if n >= len(p.active) {
		out := make([]int64, len(p.active))
		copy(out, p.active)
		return out
	}
	picked := make([]int64, len(p.active))
	copy(picked, p.active)
	for i := 0; i < n; i++ {
		j := i + p.rng.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n]
}
