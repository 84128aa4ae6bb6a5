// Package indexdb records each converter run and the catalog it produced in a
// SQLite file for ad hoc querying.
package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/items"
)

const schemaVersion = "1"

type SQLiteIndex struct {
	db   *sql.DB
	once sync.Once
}

// Run describes one converter invocation.
type Run struct {
	ID         string
	RecordedAt time.Time
	InputDir   string
	OutputPath string
	Digest     string
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			output_path TEXT NOT NULL,
			digest TEXT NOT NULL,
			item_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			creator TEXT NOT NULL,
			create_time REAL NOT NULL,
			output INTEGER NOT NULL,
			minimum_tool TEXT NOT NULL,
			maximum_tool TEXT NOT NULL,
			width INTEGER,
			height INTEGER,
			optional_outputs_json TEXT,
			PRIMARY KEY (run_id, name, creator)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_creator ON items(creator, run_id);`,
		`CREATE TABLE IF NOT EXISTS item_requirements (
			run_id TEXT NOT NULL,
			name TEXT NOT NULL,
			creator TEXT NOT NULL,
			seq INTEGER NOT NULL,
			requirement TEXT NOT NULL,
			amount INTEGER NOT NULL,
			PRIMARY KEY (run_id, name, creator, seq),
			FOREIGN KEY (run_id, name, creator) REFERENCES items(run_id, name, creator) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_item_requirements_requirement ON item_requirements(requirement, run_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}

// RecordRun stores run and its catalog in one transaction.
func (s *SQLiteIndex) RecordRun(ctx context.Context, run Run, catalog []items.Item) error {
	if s == nil {
		return nil
	}
	if run.ID == "" {
		return fmt.Errorf("empty run id")
	}
	recordedAt := run.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version',?)`, schemaVersion); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs(run_id,recorded_at,input_dir,output_path,digest,item_count) VALUES(?,?,?,?,?,?)`,
		run.ID, recordedAt.UTC().Format(time.RFC3339Nano), run.InputDir, run.OutputPath, run.Digest, len(catalog)); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	insertItem, err := tx.PrepareContext(ctx, `INSERT INTO items(run_id,name,creator,create_time,output,minimum_tool,maximum_tool,width,height,optional_outputs_json) VALUES(?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer insertItem.Close()
	insertReq, err := tx.PrepareContext(ctx, `INSERT INTO item_requirements(run_id,name,creator,seq,requirement,amount) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer insertReq.Close()

	for _, it := range catalog {
		var width, height, optional any
		if it.Size != nil {
			width, height = it.Size.Width, it.Size.Height
		}
		if len(it.OptionalOutputs) > 0 {
			b, err := json.Marshal(it.OptionalOutputs)
			if err != nil {
				return err
			}
			optional = string(b)
		}
		if _, err := insertItem.ExecContext(ctx, run.ID, it.Name, it.Creator, it.CreateTime, it.Output,
			string(it.MinimumTool), string(it.MaximumTool), width, height, optional); err != nil {
			return fmt.Errorf("insert item %s created by %s: %w", it.Name, it.Creator, err)
		}
		for i, r := range it.Requires {
			if _, err := insertReq.ExecContext(ctx, run.ID, it.Name, it.Creator, i, r.Name, r.Amount); err != nil {
				return fmt.Errorf("insert requirement %s of %s: %w", r.Name, it.Name, err)
			}
		}
	}
	return tx.Commit()
}
