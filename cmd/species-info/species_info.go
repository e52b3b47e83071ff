// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// species-info prints the taxonomy and habitats recorded in the taxonomy
// database for a genome accession number.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/phylomine/phylomine/config"
	"github.com/phylomine/phylomine/taxdb"
)

var (
	acc      = flag.String("n", "", "genome accession number (required)")
	database = flag.String("d", "", "taxonomy SQLite database (required)")
	cfgFile  = flag.String("config", "", "YAML configuration file")
)

func main() {
	flag.Parse()
	if *cfgFile != "" && *database == "" {
		cfg, err := config.Read(*cfgFile)
		if err != nil {
			log.Fatalf("failed to read configuration: %v", err)
		}
		*database = cfg.Database
	}
	if *acc == "" || *database == "" {
		flag.Usage()
		os.Exit(1)
	}

	db, err := taxdb.Open(*database)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	err = describe(os.Stdout, db, *acc)
	if err != nil {
		log.Fatalf("failed to retrieve %s: %v", *acc, err)
	}
}

func describe(w io.Writer, db *taxdb.DB, acc string) error {
	s, err := db.Species(acc)
	if errors.Is(err, taxdb.ErrNotFound) {
		_, err = fmt.Fprintln(w, "genome not found in database")
		return err
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}
