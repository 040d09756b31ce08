package voronoi

import (
	"cosmopoeia/internal/spatial"
	"cosmopoeia/internal/worldgen/tilegraph"
)

// assignNeighbors writes each tile's Neighbors list from the Delaunay
// adjacency graph, adding a synthetic off-map/cross-map entry for
// tiles that sit on the grid's outer boundary (spec §4.2).
func assignNeighbors(g *tilegraph.Graph, grid siteGrid, adjacency [][]int, rect Rectangle, wrap bool) {
	for idx, neighborIdx := range adjacency {
		tile := g.Get(idx + 1)
		site := tile.Site
		for _, nIdx := range neighborIdx {
			other := g.Get(nIdx + 1)
			bearing := spatial.Bearing(site[1], site[0], other.Site[1], other.Site[0])
			tile.Neighbors = append(tile.Neighbors, tilegraph.NeighborEdge{
				Neighbor: tilegraph.TileNeighbor(other.ID),
				Bearing:  bearing,
			})
		}

		if edge, isBoundary := boundaryEdge(grid, idx); isBoundary {
			tile.Edge = &edge
			tile.Neighbors = append(tile.Neighbors, boundaryNeighbor(g, grid, idx, edge, wrap))
		}
	}
}

// boundaryEdge reports the compass octant of a grid-boundary tile, or
// ok=false for interior tiles.
func boundaryEdge(grid siteGrid, idx int) (tilegraph.Edge, bool) {
	row, col := grid.row[idx], grid.col[idx]
	north := row == grid.rows-1
	south := row == 0
	west := col == 0
	east := col == grid.cols-1

	switch {
	case south && west:
		return tilegraph.EdgeSW, true
	case south && east:
		return tilegraph.EdgeSE, true
	case north && west:
		return tilegraph.EdgeNW, true
	case north && east:
		return tilegraph.EdgeNE, true
	case south:
		return tilegraph.EdgeS, true
	case north:
		return tilegraph.EdgeN, true
	case west:
		return tilegraph.EdgeW, true
	case east:
		return tilegraph.EdgeE, true
	default:
		return "", false
	}
}

// boundaryNeighbor builds the OffMap or, when the world wraps the
// antimeridian and the tile's edge is W or E (not a corner), CrossMap
// neighbor entry for a boundary tile (spec §4.2).
func boundaryNeighbor(g *tilegraph.Graph, grid siteGrid, idx int, edge tilegraph.Edge, wrap bool) tilegraph.NeighborEdge {
	row, col := grid.row[idx], grid.col[idx]

	if wrap {
		switch edge {
		case tilegraph.EdgeW:
			mirrorID := grid.ids[row][grid.cols-1] + 1
			return tilegraph.NeighborEdge{Neighbor: tilegraph.CrossMapNeighbor(mirrorID, edge), Bearing: 270}
		case tilegraph.EdgeE:
			mirrorID := grid.ids[row][0] + 1
			return tilegraph.NeighborEdge{Neighbor: tilegraph.CrossMapNeighbor(mirrorID, edge), Bearing: 90}
		}
	}

	bearingFor := map[tilegraph.Edge]float64{
		tilegraph.EdgeN: 0, tilegraph.EdgeNE: 45, tilegraph.EdgeE: 90, tilegraph.EdgeSE: 135,
		tilegraph.EdgeS: 180, tilegraph.EdgeSW: 225, tilegraph.EdgeW: 270, tilegraph.EdgeNW: 315,
	}
	_ = col
	return tilegraph.NeighborEdge{Neighbor: tilegraph.OffMapNeighbor(edge), Bearing: bearingFor[edge]}
}
