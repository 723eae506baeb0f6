package accumulator

import (
	"github.com/forestrie/go-merkleaccumulator/bloom"
)

const defaultHistoryCapacity = 1024

// RootHistory is the set of every root an accumulator has held.
//
// The roots are also kept in the order they were first produced so that the
// history can be persisted and checked against the leaves on restore. A bloom
// prefilter answers most "never held" queries without consulting the set.
type RootHistory struct {
	roots  []Hash
	set    map[Hash]struct{}
	filter *bloom.Filter
}

// NewRootHistory returns a history containing only the empty tree root
func NewRootHistory() *RootHistory {
	h := &RootHistory{
		set: make(map[Hash]struct{}),
	}
	h.rebuildFilter(defaultHistoryCapacity)
	h.Add(ZeroHash)
	return h
}

// Add inserts root. Returns false if the root was already present.
func (h *RootHistory) Add(root Hash) bool {
	if _, ok := h.set[root]; ok {
		return false
	}
	h.set[root] = struct{}{}
	h.roots = append(h.roots, root)

	if h.filter != nil && h.filter.Full() {
		h.rebuildFilter(h.filter.Capacity() * 2)
		return true
	}
	h.filterInsert(root)
	return true
}

// Contains reports whether root has ever been added
func (h *RootHistory) Contains(root Hash) bool {
	if h.filter != nil {
		maybe, err := h.filter.MaybeContains(root[:])
		if err == nil && !maybe {
			return false
		}
	}
	_, ok := h.set[root]
	return ok
}

func (h *RootHistory) Len() int {
	return len(h.roots)
}

// Roots returns the roots in the order they were first produced
func (h *RootHistory) Roots() []Hash {
	return h.roots[:len(h.roots):len(h.roots)]
}

// Clone returns an independent copy
func (h *RootHistory) Clone() *RootHistory {
	c := &RootHistory{
		roots: make([]Hash, len(h.roots)),
		set:   make(map[Hash]struct{}, len(h.set)),
	}
	copy(c.roots, h.roots)
	for r := range h.set {
		c.set[r] = struct{}{}
	}
	capacity := uint64(defaultHistoryCapacity)
	if h.filter != nil {
		capacity = h.filter.Capacity()
	}
	c.rebuildFilter(capacity)
	return c
}

func (h *RootHistory) rebuildFilter(capacity uint64) {
	for capacity <= uint64(len(h.roots)) {
		capacity *= 2
	}
	f, err := bloom.NewFilter(capacity, bloom.DefaultBitsPerElement, bloom.DefaultK)
	if err != nil {
		// the set alone is still exact
		h.filter = nil
		return
	}
	h.filter = f
	for _, r := range h.roots {
		h.filterInsert(r)
	}
}

func (h *RootHistory) filterInsert(root Hash) {
	if h.filter == nil {
		return
	}
	if err := h.filter.Insert(root[:]); err != nil {
		h.filter = nil
	}
}
