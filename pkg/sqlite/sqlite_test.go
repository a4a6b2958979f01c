package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"testing"
)

func TestVecExtensionLoaded(t *testing.T) {
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	var version string
	if err := db.QueryRow("SELECT vec_version()").Scan(&version); err != nil {
		t.Fatalf("vec_version() failed, extension not loaded: %v", err)
	}
	if version == "" {
		t.Error("expected a version string, got empty")
	}
}

func TestPassageVectorRelation(t *testing.T) {
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE passages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT
	)`)
	if err != nil {
		t.Fatal(err)
	}

	// vec0 virtual tables key rows by rowid.
	_, err = db.Exec(`CREATE VIRTUAL TABLE passages_vec USING vec0(embedding float[3])`)
	if err != nil {
		t.Fatal(err)
	}

	content := "Friction opposes relative motion between surfaces."
	res, err := db.Exec(`INSERT INTO passages (content) VALUES (?)`, content)
	if err != nil {
		t.Fatal(err)
	}
	passageID, err := res.LastInsertId()
	if err != nil {
		t.Fatal(err)
	}

	embedding := []float32{0.1, 0.2, 0.3}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, embedding); err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`INSERT INTO passages_vec (rowid, embedding) VALUES (?, ?)`, passageID, buf.Bytes())
	if err != nil {
		t.Fatalf("failed to insert vector with rowid: %v", err)
	}

	var got string
	err = db.QueryRow(`
		SELECT p.content
		FROM passages p
		JOIN passages_vec v ON p.id = v.rowid
		WHERE v.rowid = ?`, passageID).Scan(&got)
	if err != nil {
		t.Fatalf("join query failed: %v", err)
	}
	if got != content {
		t.Errorf("expected content %q, got %q", content, got)
	}
}
