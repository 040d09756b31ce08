// Package store persists the Tile Graph Store to a GeoPackage-shaped
// SQLite file (spec §6): one layer per table, every layer keyed by an
// auto-increment `fid`, one session per stage committed whole or not
// at all (spec §5, §7).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps one SQLite database file shaped like a GeoPackage,
// following the repository's thin struct-around-a-handle shape
// (`NewXRepository(db) *XRepository`).
type Store struct {
	db *sql.DB
}

// Open creates or opens the vector data file at path and ensures its
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Wrap(errs.IO, "store", path, "failed to open store", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.IO, "store", path, "failed to initialize schema", err)
	}
	if err := seedContents(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func seedContents(db *sql.DB) error {
	stmt, err := db.Prepare(`INSERT OR IGNORE INTO gpkg_contents (table_name, data_type, identifier) VALUES (?, ?, ?)`)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "schema", "failed to prepare gpkg_contents seed", err)
	}
	defer stmt.Close()
	for _, c := range contentsSeed {
		if _, err := stmt.Exec(c.table, c.dataType, c.table); err != nil {
			return errs.Wrap(errs.IO, "store", c.table, "failed to seed gpkg_contents", err)
		}
		if c.geomType == "" {
			continue
		}
		if _, err := db.Exec(`INSERT OR IGNORE INTO gpkg_geometry_columns (table_name, column_name, geometry_type_name) VALUES (?, 'geom', ?)`, c.table, c.geomType); err != nil {
			return errs.Wrap(errs.IO, "store", c.table, "failed to seed gpkg_geometry_columns", err)
		}
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SetProperty upserts a (name, value) pair into the properties layer
// (spec §6: "including stored seed").
func (s *Store) SetProperty(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO properties (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value`, name, value)
	if err != nil {
		return errs.Wrap(errs.IO, "store", name, "failed to write property", err)
	}
	return nil
}

// GetProperty returns a property's value, or "" with ok=false if unset.
func (s *Store) GetProperty(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM properties WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.Wrap(errs.IO, "store", name, "failed to read property", err)
	}
	return value, true, nil
}

const (
	propRunID     = "run_id"
	propSeed      = "seed"
	propCompleted = "completed_stages"
)

// SaveRun persists run metadata (run id, seed, completed-stage set) to
// the properties layer, in the same transaction as the graph write
// (spec §5: "one session per stage, committed at stage end").
func (s *Store) SaveRun(ctx context.Context, tx *sql.Tx, runID uuid.UUID, seed int64, completed map[string]bool) error {
	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "properties", "failed to marshal completed stages", err)
	}
	for _, kv := range [][2]string{
		{propRunID, runID.String()},
		{propSeed, strconv.FormatInt(seed, 10)},
		{propCompleted, string(completedJSON)},
	} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO properties (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value`, kv[0], kv[1]); err != nil {
			return errs.Wrap(errs.IO, "store", kv[0], "failed to write run property", err)
		}
	}
	return nil
}

// LoadRun reads run metadata back out of the properties layer.
func (s *Store) LoadRun(ctx context.Context) (uuid.UUID, int64, map[string]bool, error) {
	runIDStr, ok, err := s.GetProperty(ctx, propRunID)
	if err != nil || !ok {
		return uuid.UUID{}, 0, nil, err
	}
	runID, err := uuid.Parse(runIDStr)
	if err != nil {
		return uuid.UUID{}, 0, nil, errs.Wrap(errs.State, "store", propRunID, "malformed run id in store", err)
	}
	seedStr, _, err := s.GetProperty(ctx, propSeed)
	if err != nil {
		return uuid.UUID{}, 0, nil, err
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return uuid.UUID{}, 0, nil, errs.Wrap(errs.State, "store", propSeed, "malformed seed property", err)
	}

	completedStr, _, err := s.GetProperty(ctx, propCompleted)
	if err != nil {
		return uuid.UUID{}, 0, nil, err
	}
	completed := map[string]bool{}
	if completedStr != "" {
		if err := json.Unmarshal([]byte(completedStr), &completed); err != nil {
			return uuid.UUID{}, 0, nil, errs.Wrap(errs.State, "store", propCompleted, "malformed completed-stages property", err)
		}
	}
	return runID, seed, completed, nil
}

// BeginStage opens the one session a stage is allowed (spec §5):
// every Save call within fn shares this transaction, and a failure
// anywhere rolls the whole stage back.
func (s *Store) BeginStage(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(errs.IO, "store", "begin", "failed to start stage transaction", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errs.Wrap(errs.IO, "store", "commit", "failed to commit stage transaction", err)
	}
	return nil
}

// Save rewrites every layer from g, plus run metadata, in a single
// stage transaction (spec §5, §7: a failed stage leaves the previous
// commit untouched). bezierScale feeds river-geometry smoothing the
// same way the Region Assembler's river pass does.
func (s *Store) Save(ctx context.Context, g *tilegraph.Graph, runID uuid.UUID, seed int64, completed map[string]bool, bezierScale float64) error {
	return s.BeginStage(ctx, func(tx *sql.Tx) error {
		if err := saveTiles(ctx, tx, g); err != nil {
			return err
		}
		if err := saveCultures(ctx, tx, g); err != nil {
			return err
		}
		if err := saveNations(ctx, tx, g); err != nil {
			return err
		}
		if err := saveSubnations(ctx, tx, g); err != nil {
			return err
		}
		if err := saveTowns(ctx, tx, g); err != nil {
			return err
		}
		if err := saveLakes(ctx, tx, g); err != nil {
			return err
		}
		if err := saveRivers(ctx, tx, g, bezierScale); err != nil {
			return err
		}
		if err := saveBiomes(ctx, tx, g); err != nil {
			return err
		}
		if err := saveOceans(ctx, tx, g); err != nil {
			return err
		}
		if err := saveCoastlines(ctx, tx, g); err != nil {
			return err
		}
		return s.SaveRun(ctx, tx, runID, seed, completed)
	})
}

// Load reconstructs the Tile Graph Store and run metadata from the
// tiles layer and the domain-record tables; the derived layers
// (biomes, coastlines, oceans, and the culture/nation/subnation/lake
// geometries) are not reloaded since region.Union/Coastline rebuild
// them from tile state alone.
func (s *Store) Load(ctx context.Context) (*tilegraph.Graph, uuid.UUID, int64, map[string]bool, error) {
	g, err := loadTiles(ctx, s.db)
	if err != nil {
		return nil, uuid.UUID{}, 0, nil, err
	}
	if err := loadCultures(ctx, s.db, g); err != nil {
		return nil, uuid.UUID{}, 0, nil, err
	}
	if err := loadNations(ctx, s.db, g); err != nil {
		return nil, uuid.UUID{}, 0, nil, err
	}
	if err := loadSubnations(ctx, s.db, g); err != nil {
		return nil, uuid.UUID{}, 0, nil, err
	}
	if err := loadTowns(ctx, s.db, g); err != nil {
		return nil, uuid.UUID{}, 0, nil, err
	}
	if err := loadLakes(ctx, s.db, g); err != nil {
		return nil, uuid.UUID{}, 0, nil, err
	}
	if err := loadRivers(ctx, s.db, g); err != nil {
		return nil, uuid.UUID{}, 0, nil, err
	}

	runID, seed, completed, err := s.LoadRun(ctx)
	if err != nil {
		return nil, uuid.UUID{}, 0, nil, err
	}
	return g, runID, seed, completed, nil
}

