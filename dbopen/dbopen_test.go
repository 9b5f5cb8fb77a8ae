package dbopen

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestOpenMemoryWithSchema(t *testing.T) {
	db := OpenMemory(t, WithSchema(`CREATE TABLE quizzes (id TEXT PRIMARY KEY, title TEXT)`))

	if _, err := db.Exec(`INSERT INTO quizzes (id, title) VALUES ('q1', 'Biology')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var title string
	if err := db.QueryRow(`SELECT title FROM quizzes WHERE id = 'q1'`).Scan(&title); err != nil {
		t.Fatalf("select: %v", err)
	}
	if title != "Biology" {
		t.Fatalf("title = %q, want Biology", title)
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	db := OpenMemory(t)

	var fk int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}
}

func TestOpenMkdirAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.db")
	db, err := Open(path, WithMkdirAll())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE t (x INT)`); err != nil {
		t.Fatalf("exec: %v", err)
	}
}

func TestOpenBadSchema(t *testing.T) {
	_, err := Open(":memory:", WithSchema(`CREATE SYNTAX ERROR`))
	if err == nil {
		t.Fatal("expected error for broken schema")
	}
}

func TestRunTxCommitsAndRollsBack(t *testing.T) {
	db := OpenMemory(t, WithSchema(`CREATE TABLE t (x INT)`))
	ctx := context.Background()

	if err := RunTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO t (x) VALUES (1)`)
		return err
	}); err != nil {
		t.Fatalf("RunTx: %v", err)
	}

	boom := errors.New("boom")
	err := RunTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO t (x) VALUES (2)`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunTx error = %v, want boom", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("row count = %d, want 1 (rollback discarded the second insert)", n)
	}
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("database is locked"), true},
		{errors.New("SQLITE_BUSY: db busy"), true},
		{errors.New("syntax error"), false},
	}
	for _, tt := range tests {
		if got := IsBusy(tt.err); got != tt.want {
			t.Errorf("IsBusy(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
