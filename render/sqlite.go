// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package render

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	// Registers the sqlite3 database/sql driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/ianlewis/go-glossary"
)

// SQLiteDriver is the database/sql driver name used for SQLite output.
const SQLiteDriver = "sqlite3"

const sqliteSchema = `
create table term (
	id        integer primary key,
	letter    text    not null,
	position  integer not null,
	word      text    not null,
	meaning   text    not null,
	footnotes text    not null default ''
);
create index term_word on term (word collate nocase);
create table footnote (
	id     integer primary key,
	number integer not null unique,
	text   text    not null
);
`

// renderSQLite writes g to a new SQLite database. An existing file at path
// is replaced.
func renderSQLite(ctx context.Context, g *glossary.Glossary, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %q: %w", path, err)
	}

	db, err := sql.Open(SQLiteDriver, path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := insertGlossary(ctx, tx, g); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func insertGlossary(ctx context.Context, tx *sql.Tx, g *glossary.Glossary) error {
	termStmt, err := tx.PrepareContext(ctx,
		"insert into term (letter, position, word, meaning, footnotes) values (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing term insert: %w", err)
	}
	defer termStmt.Close()

	for _, group := range g.Groups() {
		for i, e := range group.Entries {
			if _, err := termStmt.ExecContext(ctx, group.Letter, i, e.Word, e.Meaning, footnoteRefs(e.Footnotes)); err != nil {
				return fmt.Errorf("inserting term %q: %w", e.Word, err)
			}
		}
	}

	noteStmt, err := tx.PrepareContext(ctx, "insert into footnote (number, text) values (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing footnote insert: %w", err)
	}
	defer noteStmt.Close()

	for _, n := range g.SortedFootnotes() {
		if _, err := noteStmt.ExecContext(ctx, n.Number, n.Text); err != nil {
			return fmt.Errorf("inserting footnote %d: %w", n.Number, err)
		}
	}
	return nil
}
