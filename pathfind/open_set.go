package pathfind

// openSet is a min-heap of arena indices ordered by f, then h, then the order
// in which nodes were first discovered.
type openSet struct {
	nodes []node
	items []int
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	a := &o.nodes[o.items[i]]
	b := &o.nodes[o.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (o *openSet) Swap(i, j int) {
	o.items[i], o.items[j] = o.items[j], o.items[i]
	o.nodes[o.items[i]].heapIndex = i
	o.nodes[o.items[j]].heapIndex = j
}

func (o *openSet) Push(x any) {
	idx := x.(int)
	o.nodes[idx].heapIndex = len(o.items)
	o.items = append(o.items, idx)
}

func (o *openSet) Pop() any {
	old := o.items
	n := len(old)
	idx := old[n-1]
	o.items = old[:n-1]
	o.nodes[idx].heapIndex = -1
	return idx
}
