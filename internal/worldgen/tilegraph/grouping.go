package tilegraph

// LabelGroupings assigns a dense, per-component GroupingID to every
// tile (spec §3's "grouping_id"), connected-component flood-filling
// tiles that share a Grouping value and are adjacent, so e.g. two
// separate Continent landmasses get distinct ids. Iterates g.Range's
// id-ascending order for both the outer scan and the component id
// counter, so the labeling is deterministic for a given graph (spec
// §5).
func LabelGroupings(g *Graph) {
	visited := make(map[int]bool, g.Len())
	nextID := 1
	g.Range(func(t *Tile) bool {
		if visited[t.ID] {
			return true
		}
		component := floodGrouping(g, t, visited)
		for _, ct := range component {
			ct.GroupingID = nextID
		}
		nextID++
		return true
	})
}

func floodGrouping(g *Graph, start *Tile, visited map[int]bool) []*Tile {
	visited[start.ID] = true
	queue := []*Tile{start}
	component := []*Tile{start}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, n := range g.NeighborTiles(cur) {
			if visited[n.ID] || n.Grouping != cur.Grouping {
				continue
			}
			visited[n.ID] = true
			queue = append(queue, n)
			component = append(component, n)
		}
	}
	return component
}
