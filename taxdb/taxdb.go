// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package taxdb provides read access to the genome taxonomy database.
//
// The database is an SQLite file holding three tables keyed by genome
// index:
//
//	ids(IDX, AccessionNumber)
//	taxonomy(IDX, ScientificName, Authority, taxGroup)
//	habitats(IDX, isMarine, isBrackish, isFresh, isTerrestrial)
package taxdb

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "modernc.org/sqlite" // register the sqlite database/sql driver
)

var (
	// ErrNoDatabase is returned by Open when the database file does
	// not exist.
	ErrNoDatabase = errors.New("taxdb: database does not exist")

	// ErrNotFound is returned when a genome is not in the database.
	ErrNotFound = errors.New("taxdb: genome not found")

	// ErrNoTaxonomy is returned when a genome in the database has no
	// taxonomy record.
	ErrNoTaxonomy = errors.New("taxdb: no taxonomy record")
)

// DB is a taxonomy database.
type DB struct {
	db *sql.DB
}

// Open opens the existing database file at path.
func Open(path string) (*DB, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, path)
		}
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNoDatabase, path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("taxdb: open %s: %w", path, err)
	}
	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("taxdb: open %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error { return d.db.Close() }

// Index returns the genome index for the accession number acc.
func (d *DB) Index(acc string) (int64, error) {
	var idx int64
	err := d.db.QueryRow("SELECT IDX FROM ids WHERE AccessionNumber = ?", acc).Scan(&idx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, acc)
	}
	return idx, err
}

// Taxonomy is the taxonomic classification of a genome.
type Taxonomy struct {
	Name      string
	Authority string
	Group     string
}

// Taxonomy returns the taxonomy of the genome with index idx.
func (d *DB) Taxonomy(idx int64) (Taxonomy, error) {
	var name, auth, group sql.NullString
	err := d.db.QueryRow("SELECT ScientificName, Authority, taxGroup FROM taxonomy WHERE IDX = ?", idx).Scan(&name, &auth, &group)
	if errors.Is(err, sql.ErrNoRows) {
		return Taxonomy{}, fmt.Errorf("%w for index %d", ErrNoTaxonomy, idx)
	}
	if err != nil {
		return Taxonomy{}, err
	}
	return Taxonomy{Name: name.String, Authority: auth.String, Group: group.String}, nil
}

// Habitat names in database column order.
var habitatNames = [...]string{"marine", "brackish", "freshwater", "terrestrial"}

// Habitats returns the names of the habitats recorded for the genome
// with index idx. A genome without a habitat record has no habitats.
func (d *DB) Habitats(idx int64) ([]string, error) {
	var flags [len(habitatNames)]sql.NullInt64
	err := d.db.QueryRow("SELECT isMarine, isBrackish, isFresh, isTerrestrial FROM habitats WHERE IDX = ?", idx).
		Scan(&flags[0], &flags[1], &flags[2], &flags[3])
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var habitats []string
	for i, f := range flags {
		if f.Valid && f.Int64 == 1 {
			habitats = append(habitats, habitatNames[i])
		}
	}
	return habitats, nil
}

// Species is the database record for a genome.
type Species struct {
	Index    int64
	Taxonomy Taxonomy
	Habitats []string
}

// Species returns the complete record for the accession number acc.
func (d *DB) Species(acc string) (Species, error) {
	idx, err := d.Index(acc)
	if err != nil {
		return Species{}, err
	}
	tax, err := d.Taxonomy(idx)
	if err != nil {
		return Species{}, err
	}
	hab, err := d.Habitats(idx)
	if err != nil {
		return Species{}, err
	}
	return Species{Index: idx, Taxonomy: tax, Habitats: hab}, nil
}

func (s Species) String() string {
	hab := "habitats unknown"
	if len(s.Habitats) != 0 {
		hab = strings.Join(s.Habitats, ", ")
	}
	return fmt.Sprintf("Index %d / %s %s - %s (%s)", s.Index, s.Taxonomy.Name, s.Taxonomy.Authority, s.Taxonomy.Group, hab)
}

// Entry maps a genome accession number to its index label.
type Entry struct {
	Index     string
	Accession string
}

// Entries returns all accession entries in the database in table order.
func (d *DB) Entries() ([]Entry, error) {
	rows, err := d.db.Query("SELECT IDX, AccessionNumber FROM ids")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		err = rows.Scan(&e.Index, &e.Accession)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReadTable reads accession entries from a tab separated table with a
// header line naming Index and AccessionNumber columns. Other columns
// are ignored.
func ReadTable(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("taxdb: empty table")
		}
		return nil, err
	}
	idxCol, accCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Index":
			idxCol = i
		case "AccessionNumber":
			accCol = i
		}
	}
	if idxCol < 0 || accCol < 0 {
		return nil, errors.New("taxdb: table missing Index or AccessionNumber column")
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		e := Entry{Index: strings.TrimSpace(rec[idxCol]), Accession: strings.TrimSpace(rec[accCol])}
		if e.Accession == "" {
			continue
		}
		entries = append(entries, e)
	}
}
