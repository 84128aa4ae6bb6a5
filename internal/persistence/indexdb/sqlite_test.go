package indexdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/items"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"
)

func sampleCatalog() []items.Item {
	return []items.Item{
		{
			Name:        "Wheat",
			Creator:     "Wheat farmer",
			CreateTime:  870,
			Output:      100,
			Requires:    []items.Requirement{},
			MinimumTool: tooltier.None,
			MaximumTool: tooltier.None,
			Size:        &items.Size{Width: 10, Height: 10},
		},
		{
			Name:            "Flour",
			Creator:         "Grinder",
			CreateTime:      15,
			Output:          1,
			Requires:        []items.Requirement{{Name: "Wheat", Amount: 3}},
			MinimumTool:     tooltier.None,
			MaximumTool:     tooltier.None,
			OptionalOutputs: []items.OptionalOutput{{Name: "Bran", Amount: 1, Likelihood: 0.5}},
		},
	}
}

func TestSQLiteIndex_RecordRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "catalog.sqlite")

	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	run := Run{
		ID:         "run-1",
		RecordedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		InputDir:   "/game",
		OutputPath: "/out/items.json",
		Digest:     "abc123",
	}
	if err := idx.RecordRun(context.Background(), run, sampleCatalog()); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	var (
		recordedAt string
		digest     string
		count      int
	)
	if err := db.QueryRow(`SELECT recorded_at,digest,item_count FROM runs WHERE run_id='run-1'`).Scan(&recordedAt, &digest, &count); err != nil {
		t.Fatalf("Scan run: %v", err)
	}
	if recordedAt != "2024-05-01T12:00:00Z" || digest != "abc123" || count != 2 {
		t.Fatalf("run mismatch: recorded_at=%q digest=%q count=%d", recordedAt, digest, count)
	}

	var (
		width, height sql.NullInt64
		optional      sql.NullString
	)
	if err := db.QueryRow(`SELECT width,height,optional_outputs_json FROM items WHERE name='Wheat'`).Scan(&width, &height, &optional); err != nil {
		t.Fatalf("Scan wheat: %v", err)
	}
	if width.Int64 != 10 || height.Int64 != 10 || optional.Valid {
		t.Fatalf("wheat mismatch: width=%v height=%v optional=%v", width, height, optional)
	}
	if err := db.QueryRow(`SELECT width,optional_outputs_json FROM items WHERE name='Flour'`).Scan(&width, &optional); err != nil {
		t.Fatalf("Scan flour: %v", err)
	}
	if width.Valid || optional.String != `[{"name":"Bran","amount":1,"likelihood":0.5}]` {
		t.Fatalf("flour mismatch: width=%v optional=%q", width, optional.String)
	}

	var (
		name   string
		amount int
	)
	if err := db.QueryRow(`SELECT name,amount FROM item_requirements WHERE requirement='Wheat'`).Scan(&name, &amount); err != nil {
		t.Fatalf("Scan requirement: %v", err)
	}
	if name != "Flour" || amount != 3 {
		t.Fatalf("requirement mismatch: name=%q amount=%d", name, amount)
	}
}

func TestSQLiteIndex_RejectsRepeatedRunID(t *testing.T) {
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer idx.Close()

	run := Run{ID: "same", Digest: "d"}
	if err := idx.RecordRun(context.Background(), run, sampleCatalog()); err != nil {
		t.Fatalf("first RecordRun: %v", err)
	}
	if err := idx.RecordRun(context.Background(), run, nil); err == nil {
		t.Fatalf("expected error for repeated run id")
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatalf("expected error")
	}
}
