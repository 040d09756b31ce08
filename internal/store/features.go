package store

import (
	"context"
	"database/sql"
	"sort"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/worldgen/region"
	"cosmopoeia/internal/worldgen/tilegraph"
)

func saveCultures(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM cultures`); err != nil {
		return errs.Wrap(errs.IO, "store", "cultures", "failed to clear cultures layer", err)
	}
	byCulture := region.GroupByCulture(g)
	for _, c := range g.Cultures {
		geom := region.Union(byCulture[c.ID])
		_, err := tx.ExecContext(ctx, `INSERT INTO cultures
			(fid, name, namer, type, expansionism, center_tile_id, color, geom)
			VALUES (?,?,?,?,?,?,?,?)`,
			c.ID, c.Name, c.Namer, string(c.Type), c.Expansionism, c.CenterTileID, c.Color, multiPolygonWKT(geom))
		if err != nil {
			return errs.Wrap(errs.IO, "store", "cultures", "failed to insert culture", err)
		}
	}
	return nil
}

func saveNations(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM nations`); err != nil {
		return errs.Wrap(errs.IO, "store", "nations", "failed to clear nations layer", err)
	}
	byNation := region.GroupByNation(g)
	for _, n := range g.Nations {
		geom := region.Union(byNation[n.ID])
		_, err := tx.ExecContext(ctx, `INSERT INTO nations
			(fid, name, culture_id, center_tile_id, type, expansionism, capital_town_id, color, geom)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			n.ID, n.Name, n.CultureID, n.CenterTileID, string(n.Type), n.Expansionism, n.CapitalTownID, n.Color, multiPolygonWKT(geom))
		if err != nil {
			return errs.Wrap(errs.IO, "store", "nations", "failed to insert nation", err)
		}
	}
	return nil
}

func saveSubnations(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM subnations`); err != nil {
		return errs.Wrap(errs.IO, "store", "subnations", "failed to clear subnations layer", err)
	}
	bySub := region.GroupBySubnation(g)
	for _, sn := range g.Subnations {
		geom := region.Union(bySub[sn.ID])
		_, err := tx.ExecContext(ctx, `INSERT INTO subnations
			(fid, name, culture_id, center_tile_id, type, seat_town_id, nation_id, color, geom)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			sn.ID, sn.Name, sn.CultureID, sn.CenterTileID, string(sn.Type), nullableInt(sn.SeatTownID), sn.NationID, sn.Color, multiPolygonWKT(geom))
		if err != nil {
			return errs.Wrap(errs.IO, "store", "subnations", "failed to insert subnation", err)
		}
	}
	return nil
}

func saveTowns(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM towns`); err != nil {
		return errs.Wrap(errs.IO, "store", "towns", "failed to clear towns layer", err)
	}
	for _, town := range g.Towns {
		t := g.Get(town.TileID)
		if t == nil {
			continue
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO towns
			(fid, name, culture_id, is_capital, tile_id, grouping_id, population, is_port, geom)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			town.ID, town.Name, nullableInt(town.CultureID), boolInt(town.IsCapital), town.TileID,
			town.GroupingID, town.Population, boolInt(town.IsPort), pointWKT(t.Site))
		if err != nil {
			return errs.Wrap(errs.IO, "store", "towns", "failed to insert town", err)
		}
	}
	return nil
}

func saveLakes(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM lakes`); err != nil {
		return errs.Wrap(errs.IO, "store", "lakes", "failed to clear lakes layer", err)
	}
	byLake := map[int][]*tilegraph.Tile{}
	g.Range(func(t *tilegraph.Tile) bool {
		if t.LakeID != nil {
			byLake[*t.LakeID] = append(byLake[*t.LakeID], t)
		}
		return true
	})
	for _, lk := range g.Lakes {
		geom := region.Union(byLake[lk.ID])
		_, err := tx.ExecContext(ctx, `INSERT INTO lakes
			(fid, type, surface, flow, size, temperature, evaporation, outlet_tile_id, geom)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			lk.ID, string(lk.Type), lk.Surface, lk.Flow, lk.Size, lk.Temperature, lk.Evaporation,
			nullableInt(lk.OutletTileID), multiPolygonWKT(geom))
		if err != nil {
			return errs.Wrap(errs.IO, "store", "lakes", "failed to insert lake", err)
		}
	}
	return nil
}

func saveRivers(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph, bezierScale float64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM rivers`); err != nil {
		return errs.Wrap(errs.IO, "store", "rivers", "failed to clear rivers layer", err)
	}
	for _, r := range g.Rivers {
		smoothed := region.SmoothRiver(r.Geometry, bezierScale)
		_, err := tx.ExecContext(ctx, `INSERT INTO rivers
			(fid, from_tile_id, from_type, from_flow, to_tile_id, to_type, to_flow, geom)
			VALUES (?,?,?,?,?,?,?,?)`,
			r.ID, r.FromTileID, string(r.FromType), r.FromFlow, r.ToTileID, string(r.ToType), r.ToFlow,
			lineStringWKT(smoothed))
		if err != nil {
			return errs.Wrap(errs.IO, "store", "rivers", "failed to insert river", err)
		}
	}
	return nil
}

func saveBiomes(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM biomes`); err != nil {
		return errs.Wrap(errs.IO, "store", "biomes", "failed to clear biomes layer", err)
	}
	byBiome := region.GroupByBiome(g)
	names := make([]string, 0, len(byBiome))
	for name := range byBiome {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		geom := region.Union(byBiome[name])
		if _, err := tx.ExecContext(ctx, `INSERT INTO biomes (name, geom) VALUES (?, ?)`, name, multiPolygonWKT(geom)); err != nil {
			return errs.Wrap(errs.IO, "store", "biomes", "failed to insert biome", err)
		}
	}
	return nil
}

func saveOceans(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM oceans`); err != nil {
		return errs.Wrap(errs.IO, "store", "oceans", "failed to clear oceans layer", err)
	}
	byGrouping := region.GroupByGrouping(g)
	geom := region.Union(byGrouping[tilegraph.Ocean])
	if len(geom) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO oceans (geom) VALUES (?)`, multiPolygonWKT(geom)); err != nil {
		return errs.Wrap(errs.IO, "store", "oceans", "failed to insert ocean", err)
	}
	return nil
}

func saveCoastlines(ctx context.Context, tx *sql.Tx, g *tilegraph.Graph) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM coastlines`); err != nil {
		return errs.Wrap(errs.IO, "store", "coastlines", "failed to clear coastlines layer", err)
	}
	for _, line := range region.Coastline(g) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO coastlines (geom) VALUES (?)`, lineStringWKT(line)); err != nil {
			return errs.Wrap(errs.IO, "store", "coastlines", "failed to insert coastline", err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func loadCultures(ctx context.Context, db *sql.DB, g *tilegraph.Graph) error {
	rows, err := db.QueryContext(ctx, `SELECT fid, name, namer, type, expansionism, center_tile_id, color FROM cultures ORDER BY fid ASC`)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "cultures", "failed to query cultures", err)
	}
	defer rows.Close()
	for rows.Next() {
		c := &tilegraph.Culture{}
		var typ string
		if err := rows.Scan(&c.ID, &c.Name, &c.Namer, &typ, &c.Expansionism, &c.CenterTileID, &c.Color); err != nil {
			return errs.Wrap(errs.IO, "store", "cultures", "failed to scan culture row", err)
		}
		c.Type = tilegraph.CultureType(typ)
		g.Cultures = append(g.Cultures, c)
	}
	return rows.Err()
}

func loadNations(ctx context.Context, db *sql.DB, g *tilegraph.Graph) error {
	rows, err := db.QueryContext(ctx, `SELECT fid, name, culture_id, center_tile_id, type, expansionism, capital_town_id, color FROM nations ORDER BY fid ASC`)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "nations", "failed to query nations", err)
	}
	defer rows.Close()
	for rows.Next() {
		n := &tilegraph.Nation{}
		var typ string
		if err := rows.Scan(&n.ID, &n.Name, &n.CultureID, &n.CenterTileID, &typ, &n.Expansionism, &n.CapitalTownID, &n.Color); err != nil {
			return errs.Wrap(errs.IO, "store", "nations", "failed to scan nation row", err)
		}
		n.Type = tilegraph.PolityType(typ)
		g.Nations = append(g.Nations, n)
	}
	return rows.Err()
}

func loadSubnations(ctx context.Context, db *sql.DB, g *tilegraph.Graph) error {
	rows, err := db.QueryContext(ctx, `SELECT fid, name, culture_id, center_tile_id, type, seat_town_id, nation_id, color FROM subnations ORDER BY fid ASC`)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "subnations", "failed to query subnations", err)
	}
	defer rows.Close()
	for rows.Next() {
		sn := &tilegraph.Subnation{}
		var typ string
		var seatTown sql.NullInt64
		if err := rows.Scan(&sn.ID, &sn.Name, &sn.CultureID, &sn.CenterTileID, &typ, &seatTown, &sn.NationID, &sn.Color); err != nil {
			return errs.Wrap(errs.IO, "store", "subnations", "failed to scan subnation row", err)
		}
		sn.Type = tilegraph.PolityType(typ)
		sn.SeatTownID = nullToIntPtr(seatTown)
		g.Subnations = append(g.Subnations, sn)
	}
	return rows.Err()
}

func loadTowns(ctx context.Context, db *sql.DB, g *tilegraph.Graph) error {
	rows, err := db.QueryContext(ctx, `SELECT fid, name, culture_id, is_capital, tile_id, grouping_id, population, is_port FROM towns ORDER BY fid ASC`)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "towns", "failed to query towns", err)
	}
	defer rows.Close()
	for rows.Next() {
		t := &tilegraph.Town{}
		var cultureID sql.NullInt64
		var isCapital, isPort int
		if err := rows.Scan(&t.ID, &t.Name, &cultureID, &isCapital, &t.TileID, &t.GroupingID, &t.Population, &isPort); err != nil {
			return errs.Wrap(errs.IO, "store", "towns", "failed to scan town row", err)
		}
		t.CultureID = nullToIntPtr(cultureID)
		t.IsCapital = isCapital != 0
		t.IsPort = isPort != 0
		g.Towns = append(g.Towns, t)
	}
	return rows.Err()
}

func loadLakes(ctx context.Context, db *sql.DB, g *tilegraph.Graph) error {
	rows, err := db.QueryContext(ctx, `SELECT fid, type, surface, flow, size, temperature, evaporation, outlet_tile_id FROM lakes ORDER BY fid ASC`)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "lakes", "failed to query lakes", err)
	}
	defer rows.Close()
	for rows.Next() {
		lk := &tilegraph.LakeRecord{}
		var typ string
		var outlet sql.NullInt64
		if err := rows.Scan(&lk.ID, &typ, &lk.Surface, &lk.Flow, &lk.Size, &lk.Temperature, &lk.Evaporation, &outlet); err != nil {
			return errs.Wrap(errs.IO, "store", "lakes", "failed to scan lake row", err)
		}
		lk.Type = tilegraph.LakeType(typ)
		lk.OutletTileID = nullToIntPtr(outlet)
		g.Lakes = append(g.Lakes, lk)
	}
	return rows.Err()
}

func loadRivers(ctx context.Context, db *sql.DB, g *tilegraph.Graph) error {
	rows, err := db.QueryContext(ctx, `SELECT fid, from_tile_id, from_type, from_flow, to_tile_id, to_type, to_flow FROM rivers ORDER BY fid ASC`)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "rivers", "failed to query rivers", err)
	}
	defer rows.Close()
	for rows.Next() {
		r := &tilegraph.RiverSegment{}
		var fromType, toType string
		if err := rows.Scan(&r.ID, &r.FromTileID, &fromType, &r.FromFlow, &r.ToTileID, &toType, &r.ToFlow); err != nil {
			return errs.Wrap(errs.IO, "store", "rivers", "failed to scan river row", err)
		}
		r.FromType = tilegraph.RiverEndpointType(fromType)
		r.ToType = tilegraph.RiverEndpointType(toType)
		g.Rivers = append(g.Rivers, r)
	}
	return rows.Err()
}
