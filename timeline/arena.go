package timeline

// slot holds one arena entry. generation increments every time the slot is
// freed and reused, so a handle minted before a free never resolves to the
// entity that replaced it.
type slot[T any] struct {
	value      T
	generation uint32
	alive      bool
}

// arena is a dense, reusable store with generation-checked handles. It
// generalizes node.go's nodeIDCounter (a counter that never goes down,
// because willow's nodes are garbage collected directly) to a free list:
// motif's timeline repeatedly adds and removes clips/tracks/effects over an
// editing session, so slots must be reclaimed rather than grown forever.
type arena[T any] struct {
	slots    []slot[T]
	freeList []uint32
}

// insert stores v in a free (or new) slot and returns its index and the
// slot's current generation.
func (a *arena[T]) insert(v T) (index uint32, generation uint32) {
	if n := len(a.freeList); n > 0 {
		index = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		s := &a.slots[index]
		s.value = v
		s.alive = true
		return index, s.generation
	}
	index = uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{value: v, generation: 1, alive: true})
	return index, 1
}

// get returns a pointer to the live value at (index, generation), or false
// if the slot is empty, the generation is stale, or the index is out of
// range.
func (a *arena[T]) get(index, generation uint32) (*T, bool) {
	if generation == 0 || int(index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[index]
	if !s.alive || s.generation != generation {
		return nil, false
	}
	return &s.value, true
}

// remove frees the slot at (index, generation), bumping its generation so
// stale handles are rejected by future get calls. Reports whether anything
// was removed.
func (a *arena[T]) remove(index, generation uint32) bool {
	if generation == 0 || int(index) >= len(a.slots) {
		return false
	}
	s := &a.slots[index]
	if !s.alive || s.generation != generation {
		return false
	}
	var zero T
	s.value = zero
	s.alive = false
	s.generation++
	a.freeList = append(a.freeList, index)
	return true
}

// forEach visits every live value in slot order. fn may not mutate the
// arena's shape (no insert/remove from within fn).
func (a *arena[T]) forEach(fn func(index, generation uint32, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.alive {
			fn(uint32(i), s.generation, &s.value)
		}
	}
}

// count returns the number of live entries.
func (a *arena[T]) count() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].alive {
			n++
		}
	}
	return n
}
