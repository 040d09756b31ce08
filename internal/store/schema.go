package store

// schema creates the GeoPackage-shaped layer tables spec §6 lists, plus
// a thin subset of GeoPackage's own `gpkg_contents` /
// `gpkg_geometry_columns` metadata tables so the file is recognizable
// to GIS tooling inspecting those tables, even though the geometry
// columns hold WKT text rather than a real GeoPackage WKB envelope
// (see geometry.go).
const schema = `
CREATE TABLE IF NOT EXISTS gpkg_contents (
	table_name TEXT PRIMARY KEY,
	data_type  TEXT NOT NULL,
	identifier TEXT
);

CREATE TABLE IF NOT EXISTS gpkg_geometry_columns (
	table_name     TEXT PRIMARY KEY,
	column_name    TEXT NOT NULL,
	geometry_type_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS properties (
	fid   INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL UNIQUE,
	value TEXT
);

CREATE TABLE IF NOT EXISTS tiles (
	fid              INTEGER PRIMARY KEY,
	geom             TEXT,
	polygon_json     TEXT,
	neighbors_json    TEXT,
	site_lon         REAL,
	site_lat         REAL,
	elevation        REAL,
	elevation_scaled INTEGER,
	grouping         TEXT,
	grouping_id      INTEGER,
	temperature      REAL,
	wind             REAL,
	precipitation    REAL,
	water_flow       REAL,
	water_accumulation REAL,
	shore_distance   INTEGER,
	harbor_tile_id   INTEGER,
	water_count      INTEGER,
	biome            TEXT,
	habitability     REAL,
	population       REAL,
	lake_id          INTEGER,
	culture_id       INTEGER,
	town_id          INTEGER,
	nation_id        INTEGER,
	subnation_id     INTEGER
);

CREATE TABLE IF NOT EXISTS biomes (
	fid  INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	geom TEXT
);

CREATE TABLE IF NOT EXISTS coastlines (
	fid  INTEGER PRIMARY KEY AUTOINCREMENT,
	geom TEXT
);

CREATE TABLE IF NOT EXISTS oceans (
	fid  INTEGER PRIMARY KEY AUTOINCREMENT,
	geom TEXT
);

CREATE TABLE IF NOT EXISTS cultures (
	fid          INTEGER PRIMARY KEY,
	name         TEXT,
	namer        TEXT,
	type         TEXT,
	expansionism REAL,
	center_tile_id INTEGER,
	color        TEXT,
	geom         TEXT
);

CREATE TABLE IF NOT EXISTS lakes (
	fid             INTEGER PRIMARY KEY,
	type            TEXT,
	surface         REAL,
	flow            REAL,
	size            INTEGER,
	temperature     REAL,
	evaporation     REAL,
	outlet_tile_id  INTEGER,
	geom            TEXT
);

CREATE TABLE IF NOT EXISTS nations (
	fid             INTEGER PRIMARY KEY,
	name            TEXT,
	culture_id      INTEGER,
	center_tile_id  INTEGER,
	type            TEXT,
	expansionism    REAL,
	capital_town_id INTEGER,
	color           TEXT,
	geom            TEXT
);

CREATE TABLE IF NOT EXISTS subnations (
	fid            INTEGER PRIMARY KEY,
	name           TEXT,
	culture_id     INTEGER,
	center_tile_id INTEGER,
	type           TEXT,
	seat_town_id   INTEGER,
	nation_id      INTEGER,
	color          TEXT,
	geom           TEXT
);

CREATE TABLE IF NOT EXISTS towns (
	fid         INTEGER PRIMARY KEY,
	name        TEXT,
	culture_id  INTEGER,
	is_capital  INTEGER,
	tile_id     INTEGER,
	grouping_id INTEGER,
	population  REAL,
	is_port     INTEGER,
	geom        TEXT
);

CREATE TABLE IF NOT EXISTS rivers (
	fid         INTEGER PRIMARY KEY AUTOINCREMENT,
	from_tile_id INTEGER,
	from_type    TEXT,
	from_flow    REAL,
	to_tile_id   INTEGER,
	to_type      TEXT,
	to_flow      REAL,
	geom         TEXT
);
`

var contentsSeed = []struct {
	table, dataType, geomType string
}{
	{"tiles", "features", "POLYGON"},
	{"biomes", "features", "MULTIPOLYGON"},
	{"coastlines", "features", "POLYGON"},
	{"cultures", "features", "MULTIPOLYGON"},
	{"lakes", "features", "MULTIPOLYGON"},
	{"nations", "features", "MULTIPOLYGON"},
	{"oceans", "features", "POLYGON"},
	{"properties", "attributes", ""},
	{"rivers", "features", "MULTILINESTRING"},
	{"subnations", "features", "MULTIPOLYGON"},
	{"towns", "features", "POINT"},
}
