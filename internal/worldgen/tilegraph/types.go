// Package tilegraph implements the Tile Graph Store (spec §4.1): the
// in-memory representation of tiles, their neighbours, and every
// per-tile attribute later stages read and write, iterated in a
// deterministic order equal to tile-id insertion order.
package tilegraph

import (
	"github.com/paulmach/orb"
)

// Grouping is a tile's land/water class (spec §3).
type Grouping string

const (
	Continent Grouping = "Continent"
	Island    Grouping = "Island"
	Islet     Grouping = "Islet"
	Ocean     Grouping = "Ocean"
	Lake      Grouping = "Lake"
	LakeIsland Grouping = "LakeIsland"
)

// Edge labels a map-boundary compass octant.
type Edge string

const (
	EdgeN  Edge = "N"
	EdgeNE Edge = "NE"
	EdgeE  Edge = "E"
	EdgeSE Edge = "SE"
	EdgeS  Edge = "S"
	EdgeSW Edge = "SW"
	EdgeW  Edge = "W"
	EdgeNW Edge = "NW"
)

// NeighborKind tags which variant of the Neighbor sum a value holds
// (spec §3: Neighbor is Tile(id) | CrossMap(id, edge) | OffMap(edge)).
type NeighborKind uint8

const (
	NeighborTile NeighborKind = iota
	NeighborCrossMap
	NeighborOffMap
)

// Neighbor is the tagged-sum adjacency reference. TileID is valid for
// Tile and CrossMap; Edge is valid for CrossMap and OffMap.
type Neighbor struct {
	Kind   NeighborKind
	TileID int
	Edge   Edge
}

func TileNeighbor(id int) Neighbor { return Neighbor{Kind: NeighborTile, TileID: id} }
func CrossMapNeighbor(id int, e Edge) Neighbor {
	return Neighbor{Kind: NeighborCrossMap, TileID: id, Edge: e}
}
func OffMapNeighbor(e Edge) Neighbor { return Neighbor{Kind: NeighborOffMap, Edge: e} }

// IsTile reports whether n references an actual tile (Tile or CrossMap).
func (n Neighbor) IsTile() bool { return n.Kind == NeighborTile || n.Kind == NeighborCrossMap }

// NeighborEdge pairs a neighbor with the bearing (degrees clockwise from
// north) from the owning tile's site to it.
type NeighborEdge struct {
	Neighbor Neighbor
	Bearing  float64
}

// Tile is the unit of the world: one Voronoi cell plus every attribute
// later stages attach to it (spec §3).
type Tile struct {
	ID      int
	Site    orb.Point // (lon, lat)
	Polygon orb.Polygon

	Elevation       float64
	ElevationScaled int
	Grouping        Grouping
	GroupingID      int

	Temperature       float64
	Wind              float64
	Precipitation     float64
	WaterFlow         float64
	WaterAccumulation float64

	LakeID   *int
	FlowTo   []Neighbor
	OutletFrom *Neighbor

	ShoreDistance int
	HarborTileID  *int
	WaterCount    *int

	Biome        string
	Habitability float64
	Population   float64

	CultureID    *int
	TownID       *int
	NationID     *int
	SubnationID  *int

	Neighbors []NeighborEdge
	Edge      *Edge
}

// LakeType classifies a lake's water (spec §3).
type LakeType string

const (
	LakeFresh  LakeType = "Fresh"
	LakeSalt   LakeType = "Salt"
	LakeFrozen LakeType = "Frozen"
	LakePluvial LakeType = "Pluvial"
	LakeDry    LakeType = "Dry"
	LakeMarsh  LakeType = "Marsh"
)

// LakeRecord is a formed lake (spec §3, §4.5).
type LakeRecord struct {
	ID          int
	Surface     float64
	Type        LakeType
	Flow        float64
	Size        int
	Temperature float64
	Evaporation float64
	OutletTileID *int
}

// CultureType distinguishes a culture's terrain preference archetype.
type CultureType string

const (
	CultureGeneric  CultureType = "Generic"
	CultureHighland CultureType = "Highland"
	CultureHunting  CultureType = "Hunting"
	CultureLake     CultureType = "Lake"
	CultureNaval    CultureType = "Naval"
	CultureNomadic  CultureType = "Nomadic"
	CultureRiver    CultureType = "River"
)

// Culture is a named people with a territorial expansion profile
// (spec §3, §4.7).
type Culture struct {
	ID           int
	Name         string
	Namer        string
	Type         CultureType
	Expansionism float64
	CenterTileID int
	Color        string
}

// PolityType distinguishes nation/subnation government character; reuses
// the same vocabulary the culture/namer machinery already has for
// state-name suffix policy selection (spec §4.11).
type PolityType string

const (
	PolityGeneric  PolityType = "Generic"
	PolityHighland PolityType = "Highland"
	PolityNaval    PolityType = "Naval"
	PolityNomadic  PolityType = "Nomadic"
)

// Nation is a territorial polity expanded from a capital (spec §3, §4.9).
type Nation struct {
	ID           int
	Name         string
	CultureID    int
	CenterTileID int
	Type         PolityType
	Expansionism float64
	CapitalTownID int
	Color        string
}

// Subnation is a nation's internal administrative division (spec §3, §4.9).
type Subnation struct {
	ID           int
	Name         string
	CultureID    int
	CenterTileID int
	Type         PolityType
	SeatTownID   *int
	NationID     int
	Color        string
}

// Town is a populated settlement (spec §3, §4.8).
type Town struct {
	ID         int
	Name       string
	CultureID  *int
	IsCapital  bool
	TileID     int
	GroupingID int
	Population float64
	IsPort     bool
}

// RiverEndpointType enumerates the topology a river segment's endpoint
// was observed at (spec §3).
type RiverEndpointType string

const (
	RiverSource               RiverEndpointType = "Source"
	RiverContinuing           RiverEndpointType = "Continuing"
	RiverConfluence           RiverEndpointType = "Confluence"
	RiverBranch               RiverEndpointType = "Branch"
	RiverBranchingConfluence  RiverEndpointType = "BranchingConfluence"
	RiverBranchingLake        RiverEndpointType = "BranchingLake"
	RiverLake                 RiverEndpointType = "Lake"
	RiverMouth                RiverEndpointType = "Mouth"
)

// RiverSegment is one smoothed polyline hop of a river (spec §3, §4.5).
type RiverSegment struct {
	ID         int
	FromTileID int
	FromType   RiverEndpointType
	FromFlow   float64
	ToTileID   int
	ToType     RiverEndpointType
	ToFlow     float64
	Geometry   orb.LineString
}
