package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "world.gpkg"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func square(x, y float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
	}}
}

func sampleGraph() *tilegraph.Graph {
	g := tilegraph.NewGraph()
	a := g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 0}, Polygon: square(0, 0), Grouping: tilegraph.Continent, Biome: "Grassland", Habitability: 0.8})
	b := g.CreateTile(&tilegraph.Tile{Site: orb.Point{1, 0}, Polygon: square(1, 0), Grouping: tilegraph.Ocean})
	a.Neighbors = []tilegraph.NeighborEdge{{Neighbor: tilegraph.TileNeighbor(b.ID), Bearing: 90}}
	b.Neighbors = []tilegraph.NeighborEdge{{Neighbor: tilegraph.TileNeighbor(a.ID), Bearing: 270}}

	cultureID := 1
	a.CultureID = &cultureID
	g.Cultures = append(g.Cultures, &tilegraph.Culture{ID: 1, Name: "Solheim", Namer: "markov-1", Type: tilegraph.CultureGeneric, Expansionism: 1, CenterTileID: a.ID, Color: "#ff0000"})

	townID := 1
	a.TownID = &townID
	g.Towns = append(g.Towns, &tilegraph.Town{ID: 1, Name: "Port Vesra", CultureID: &cultureID, IsCapital: true, TileID: a.ID, Population: 1200, IsPort: true})

	nationID := 1
	a.NationID = &nationID
	g.Nations = append(g.Nations, &tilegraph.Nation{ID: 1, Name: "Solheim", CultureID: 1, CenterTileID: a.ID, Type: tilegraph.PolityGeneric, Expansionism: 1, CapitalTownID: 1, Color: "#ff0000"})

	return g
}

func TestOpen_CreatesSchemaAndContents(t *testing.T) {
	s := openTemp(t)
	_, ok, err := s.GetProperty(context.Background(), "run_id")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveAndLoad_RoundTripsGraphAndRunMetadata(t *testing.T) {
	s := openTemp(t)
	g := sampleGraph()
	runID := uuid.New()

	err := s.Save(context.Background(), g, runID, 42, map[string]bool{"terrain": true}, 100)
	require.NoError(t, err)

	loaded, loadedRunID, seed, completed, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, runID, loadedRunID)
	assert.Equal(t, int64(42), seed)
	assert.True(t, completed["terrain"])

	require.Equal(t, g.Len(), loaded.Len())
	a := loaded.Get(1)
	require.NotNil(t, a)
	assert.Equal(t, "Grassland", a.Biome)
	assert.Equal(t, tilegraph.Continent, a.Grouping)
	require.Len(t, a.Neighbors, 1)
	assert.Equal(t, 2, a.Neighbors[0].Neighbor.TileID)
	require.NotNil(t, a.CultureID)
	assert.Equal(t, 1, *a.CultureID)

	require.Len(t, loaded.Cultures, 1)
	assert.Equal(t, "Solheim", loaded.Cultures[0].Name)
	require.Len(t, loaded.Towns, 1)
	assert.True(t, loaded.Towns[0].IsCapital)
	assert.True(t, loaded.Towns[0].IsPort)
	require.Len(t, loaded.Nations, 1)
	assert.Equal(t, 1, loaded.Nations[0].CapitalTownID)
}

func TestBeginStage_RollsBackOnError(t *testing.T) {
	s := openTemp(t)
	runID := uuid.New()
	require.NoError(t, s.Save(context.Background(), sampleGraph(), runID, 1, map[string]bool{"terrain": true}, 100))

	stageErr := errors.New("boom")
	err := s.BeginStage(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM tiles`); err != nil {
			return err
		}
		return stageErr
	})
	require.ErrorIs(t, err, stageErr)

	loaded, loadedRunID, seed, _, loadErr := s.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, runID, loadedRunID)
	assert.Equal(t, int64(1), seed)
}

func TestOceans_SavedWhenOceanTilesPresent(t *testing.T) {
	s := openTemp(t)
	g := sampleGraph()
	require.NoError(t, s.Save(context.Background(), g, uuid.New(), 1, map[string]bool{}, 100))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM oceans`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestProperties_SetAndGetRoundTrip(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.SetProperty(context.Background(), "notes", "first pass"))
	v, ok, err := s.GetProperty(context.Background(), "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first pass", v)

	require.NoError(t, s.SetProperty(context.Background(), "notes", "second pass"))
	v, ok, err = s.GetProperty(context.Background(), "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second pass", v)
}
