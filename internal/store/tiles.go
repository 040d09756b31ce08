package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
)

// saveTiles rewrites the tiles layer in full: spec §5's "commit whole
// or not at all" means a stage's tile writes never try to diff against
// what is already on disk.
func saveTiles(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tiles`); err != nil {
		return errs.Wrap(errs.IO, "store", "tiles", "failed to clear tiles layer", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tiles (
		fid, geom, polygon_json, neighbors_json, site_lon, site_lat,
		elevation, elevation_scaled, grouping, grouping_id, temperature, wind,
		precipitation, water_flow, water_accumulation, shore_distance,
		harbor_tile_id, water_count,
		biome, habitability, population, lake_id, culture_id, town_id,
		nation_id, subnation_id
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "tiles", "failed to prepare tile insert", err)
	}
	defer stmt.Close()

	var writeErr error
	g.Range(func(t *tilegraph.Tile) bool {
		polygonJSON, err := json.Marshal(t.Polygon)
		if err != nil {
			writeErr = errs.Wrap(errs.IO, "store", "tiles", "failed to marshal polygon", err)
			return false
		}
		neighborsJSON, err := json.Marshal(t.Neighbors)
		if err != nil {
			writeErr = errs.Wrap(errs.IO, "store", "tiles", "failed to marshal neighbors", err)
			return false
		}
		_, err = stmt.ExecContext(ctx, t.ID, polygonWKT(t.Polygon), string(polygonJSON), string(neighborsJSON),
			t.Site[0], t.Site[1], t.Elevation, t.ElevationScaled, string(t.Grouping), t.GroupingID,
			t.Temperature, t.Wind, t.Precipitation, t.WaterFlow, t.WaterAccumulation,
			t.ShoreDistance, nullableInt(t.HarborTileID), nullableInt(t.WaterCount),
			t.Biome, t.Habitability, t.Population,
			nullableInt(t.LakeID), nullableInt(t.CultureID), nullableInt(t.TownID),
			nullableInt(t.NationID), nullableInt(t.SubnationID))
		if err != nil {
			writeErr = errs.Wrap(errs.IO, "store", "tiles", "failed to insert tile", err)
			return false
		}
		return true
	})
	return writeErr
}

// loadTiles reconstructs a *tilegraph.Graph from the tiles layer.
// Rows are read in ascending fid order, the same order CreateTile
// would have assigned ids in originally, so ids line back up exactly.
func loadTiles(ctx context.Context, db *sql.DB) (*tilegraph.Graph, error) {
	g := tilegraph.NewGraph()

	rows, err := db.QueryContext(ctx, `SELECT
		fid, polygon_json, neighbors_json, site_lon, site_lat,
		elevation, grouping, grouping_id, temperature, wind, precipitation, water_flow,
		water_accumulation, shore_distance, harbor_tile_id, water_count,
		biome, habitability, population,
		lake_id, culture_id, town_id, nation_id, subnation_id
	FROM tiles ORDER BY fid ASC`)
	if err != nil {
		return nil, errs.Wrap(errs.IO, "store", "tiles", "failed to query tiles", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			fid                                        int
			polygonJSON, neighborsJSON, grouping, biome string
			siteLon, siteLat, elevation                 float64
			groupingID                                   int
			temperature, wind, precipitation            float64
			waterFlow, waterAccumulation                float64
			shoreDistance                                int
			harborTileID, waterCount                     sql.NullInt64
			habitability, population                    float64
			lakeID, cultureID, townID, nationID, subID  sql.NullInt64
		)
		if err := rows.Scan(&fid, &polygonJSON, &neighborsJSON, &siteLon, &siteLat,
			&elevation, &grouping, &groupingID, &temperature, &wind, &precipitation, &waterFlow,
			&waterAccumulation, &shoreDistance, &harborTileID, &waterCount,
			&biome, &habitability, &population,
			&lakeID, &cultureID, &townID, &nationID, &subID); err != nil {
			return nil, errs.Wrap(errs.IO, "store", "tiles", "failed to scan tile row", err)
		}

		var polygon orb.Polygon
		if err := json.Unmarshal([]byte(polygonJSON), &polygon); err != nil {
			return nil, errs.Wrap(errs.IO, "store", "tiles", "failed to unmarshal polygon", err)
		}
		var neighbors []tilegraph.NeighborEdge
		if err := json.Unmarshal([]byte(neighborsJSON), &neighbors); err != nil {
			return nil, errs.Wrap(errs.IO, "store", "tiles", "failed to unmarshal neighbors", err)
		}

		t := &tilegraph.Tile{
			Site:              orb.Point{siteLon, siteLat},
			Polygon:           polygon,
			Elevation:         elevation,
			Grouping:          tilegraph.Grouping(grouping),
			GroupingID:        groupingID,
			Temperature:       temperature,
			Wind:              wind,
			Precipitation:     precipitation,
			WaterFlow:         waterFlow,
			WaterAccumulation: waterAccumulation,
			ShoreDistance:     shoreDistance,
			HarborTileID:      nullToIntPtr(harborTileID),
			WaterCount:        nullToIntPtr(waterCount),
			Biome:             biome,
			Habitability:      habitability,
			Population:        population,
			Neighbors:         neighbors,
			LakeID:            nullToIntPtr(lakeID),
			CultureID:         nullToIntPtr(cultureID),
			TownID:            nullToIntPtr(townID),
			NationID:          nullToIntPtr(nationID),
			SubnationID:       nullToIntPtr(subID),
		}
		g.CreateTile(t)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.IO, "store", "tiles", "failed reading tile rows", err)
	}
	return g, nil
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullToIntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
