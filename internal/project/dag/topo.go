package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []FileID
	Batches [][]FileID // файлы одной волны не зависят друг от друга
	Cyclic  bool
	Cycles  []FileID // файлы, не вошедшие в Order
}

// ToposortKahn layers present files by Kahn's algorithm.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Edges)
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{Order: make([]FileID, 0, n)}

	active := 0
	var current []FileID
	for i := 0; i < n; i++ {
		if !g.Present[i] {
			continue
		}
		active++
		if indeg[i] == 0 {
			current = append(current, toID(i))
		}
	}

	for len(current) > 0 {
		topo.Batches = append(topo.Batches, current)
		var next []FileID
		for _, id := range current {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[id] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != active {
		topo.Cyclic = true
		for i := 0; i < n; i++ {
			if g.Present[i] && indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, toID(i))
			}
		}
	}
	return topo
}

// Schedule is the build order: the batches, then the cyclic files as one
// final batch.
func (t *Topo) Schedule() [][]FileID {
	if len(t.Cycles) == 0 {
		return t.Batches
	}
	return append(slices.Clone(t.Batches), t.Cycles)
}

func toID(i int) FileID {
	id, err := safecast.Conv[FileID](i)
	if err != nil {
		panic(fmt.Errorf("file id overflow: %w", err))
	}
	return id
}
