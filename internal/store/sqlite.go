// Package store exports built networks to SQLite databases.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nvandessel/bionet/internal/models"
)

// Meta keys written to network_meta.
const (
	MetaNumNeurons = "num_neurons"
	MetaNumSensors = "num_sensors"
	MetaNumMotors  = "num_motors"
	MetaSeed       = "seed"
	MetaSynapses   = "synapse_count"
)

// DB is an exported network database.
type DB struct {
	db   *sql.DB
	path string
}

// Stats summarizes an exported network.
type Stats struct {
	Neurons    int   `json:"neurons"`
	Sensors    int   `json:"sensors"`
	Motors     int   `json:"motors"`
	Excitatory int   `json:"excitatory"`
	Groups     int   `json:"groups"`
	Synapses   int   `json:"synapses"`
	Seed       int64 `json:"seed"`
}

func openDB(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &DB{db: db, path: path}, nil
}

// Open opens a database previously written by Export.
func Open(ctx context.Context, path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return openDB(ctx, path)
}

// Export writes n to a new database at path, replacing any existing file.
func Export(ctx context.Context, path string, n *models.Network) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	d, err := openDB(ctx, path)
	if err != nil {
		return err
	}
	if err := d.insert(ctx, n); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}

func (d *DB) insert(ctx context.Context, n *models.Network) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	neuronStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO neurons (idx, name, band, excitatory) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare neuron insert: %w", err)
	}
	defer neuronStmt.Close()

	for _, nr := range n.Neurons {
		if _, err := neuronStmt.ExecContext(ctx, nr.Index, nr.Name, string(nr.Band), boolToInt(nr.Excitatory)); err != nil {
			return fmt.Errorf("failed to insert neuron %s: %w", nr.Name, err)
		}
	}

	synapseStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO synapses (origin, target, type, connections, transmitter, weight) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare synapse insert: %w", err)
	}
	defer synapseStmt.Close()

	for _, g := range n.SortedGroups() {
		if _, err := synapseStmt.ExecContext(ctx,
			g.Origin, g.Target, g.Type, g.Connections, g.Transmitter, float64(g.Weight)); err != nil {
			return fmt.Errorf("failed to insert synapse %d->%d: %w", g.Origin, g.Target, err)
		}
	}

	meta := map[string]string{
		MetaNumNeurons: strconv.Itoa(n.NumNeurons),
		MetaNumSensors: strconv.Itoa(n.NumSensors),
		MetaNumMotors:  strconv.Itoa(n.NumMotors),
		MetaSeed:       strconv.FormatInt(n.Seed, 10),
		MetaSynapses:   strconv.Itoa(n.ExpandedCount()),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO network_meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to write meta %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// Stats counts what the database holds.
func (d *DB) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM neurons`, &s.Neurons},
		{`SELECT COUNT(*) FROM neurons WHERE band = 'sensory'`, &s.Sensors},
		{`SELECT COUNT(*) FROM neurons WHERE band = 'motor'`, &s.Motors},
		{`SELECT COUNT(*) FROM neurons WHERE excitatory = 1`, &s.Excitatory},
		{`SELECT COUNT(*) FROM synapses`, &s.Groups},
		{`SELECT COALESCE(SUM(connections), 0) FROM synapses`, &s.Synapses},
	}
	for _, c := range counts {
		if err := d.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("failed to query stats: %w", err)
		}
	}

	seed, err := d.meta(ctx, MetaSeed)
	if err != nil {
		return Stats{}, err
	}
	if s.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
		return Stats{}, fmt.Errorf("invalid seed %q in network_meta: %w", seed, err)
	}
	return s, nil
}

// Network reads the stored network back.
func (d *DB) Network(ctx context.Context) (*models.Network, error) {
	var counts [3]int
	for i, key := range []string{MetaNumNeurons, MetaNumSensors, MetaNumMotors} {
		v, err := d.meta(ctx, key)
		if err != nil {
			return nil, err
		}
		if counts[i], err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid %s %q in network_meta: %w", key, v, err)
		}
	}
	n := models.NewNetwork(counts[0], counts[1], counts[2])

	seed, err := d.meta(ctx, MetaSeed)
	if err != nil {
		return nil, err
	}
	if n.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid seed %q in network_meta: %w", seed, err)
	}

	rows, err := d.db.QueryContext(ctx, `SELECT idx, name, band, excitatory FROM neurons ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("failed to query neurons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var nr models.Neuron
		var band string
		var excitatory int
		if err := rows.Scan(&nr.Index, &nr.Name, &band, &excitatory); err != nil {
			return nil, fmt.Errorf("failed to scan neuron: %w", err)
		}
		if nr.Index < 0 || nr.Index >= n.NumNeurons {
			return nil, fmt.Errorf("neuron index %d out of range", nr.Index)
		}
		nr.Band = models.Band(band)
		nr.Excitatory = excitatory != 0
		n.Neurons[nr.Index] = nr
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srows, err := d.db.QueryContext(ctx,
		`SELECT origin, target, type, connections, transmitter, weight FROM synapses ORDER BY origin, target`)
	if err != nil {
		return nil, fmt.Errorf("failed to query synapses: %w", err)
	}
	defer srows.Close()
	for srows.Next() {
		var g models.SynapseGroup
		var weight float64
		if err := srows.Scan(&g.Origin, &g.Target, &g.Type, &g.Connections, &g.Transmitter, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan synapse: %w", err)
		}
		g.Weight = float32(weight)
		n.Groups[models.PairKey{Origin: g.Origin, Target: g.Target}] = &g
	}
	return n, srows.Err()
}

func (d *DB) meta(ctx context.Context, key string) (string, error) {
	var v string
	err := d.db.QueryRowContext(ctx, `SELECT value FROM network_meta WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return "", fmt.Errorf("failed to read %s from network_meta: %w", key, err)
	}
	return v, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
