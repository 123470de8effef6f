package tuio

import "sort"

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
	changeRemove
)

type change[T comparable] struct {
	kind  changeKind
	id    int64
	value T
}

// profile stages set/alive messages for one TUIO profile until fseq commits them.
type profile[T comparable] struct {
	active  map[int64]T
	staged  map[int64]T
	pending []change[T]
	// carry copies client-assigned fields from the known value onto an update.
	carry func(prev, next T) T
	// assign sets client-assigned fields when an entity is committed as new.
	assign func(v T, active map[int64]T) T
}

func newProfile[T comparable]() *profile[T] {
	return &profile[T]{
		active: make(map[int64]T),
		staged: make(map[int64]T),
	}
}

// set stages an add for unknown sessions or an update when values changed.
func (p *profile[T]) set(id int64, v T) {
	prev, known := p.staged[id]
	if !known {
		p.staged[id] = v
		p.pending = append(p.pending, change[T]{kind: changeAdd, id: id, value: v})
		return
	}
	if p.carry != nil {
		v = p.carry(prev, v)
	}
	if prev == v {
		return
	}
	p.staged[id] = v
	p.pending = append(p.pending, change[T]{kind: changeUpdate, id: id, value: v})
}

// alive stages removal of every known session missing from ids.
func (p *profile[T]) alive(ids []int64) {
	keep := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	var gone []int64
	for id := range p.staged {
		if _, ok := keep[id]; !ok {
			gone = append(gone, id)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	for _, id := range gone {
		p.pending = append(p.pending, change[T]{kind: changeRemove, id: id, value: p.staged[id]})
		delete(p.staged, id)
	}
}

// discard drops staged changes from a late frame.
func (p *profile[T]) discard() {
	p.pending = nil
	p.staged = cloneMap(p.active)
}

// commit applies staged changes in message order and returns them.
func (p *profile[T]) commit() []change[T] {
	out := make([]change[T], 0, len(p.pending))
	for _, c := range p.pending {
		switch c.kind {
		case changeAdd:
			if _, exists := p.active[c.id]; exists {
				c.kind = changeUpdate
			} else if p.assign != nil {
				c.value = p.assign(c.value, p.active)
			}
		case changeUpdate:
			prev, exists := p.active[c.id]
			if !exists {
				continue
			}
			if p.carry != nil {
				c.value = p.carry(prev, c.value)
			}
		case changeRemove:
			prev, exists := p.active[c.id]
			if !exists {
				continue
			}
			c.value = prev
			delete(p.active, c.id)
			out = append(out, c)
			continue
		}
		p.active[c.id] = c.value
		out = append(out, c)
	}
	p.pending = nil
	p.staged = cloneMap(p.active)
	return out
}

func cloneMap[T any](in map[int64]T) map[int64]T {
	out := make(map[int64]T, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// lowestFreeID returns the smallest non-negative id not in use.
func lowestFreeID(used map[int]struct{}) int {
	id := 0
	for {
		if _, taken := used[id]; !taken {
			return id
		}
		id++
	}
}
