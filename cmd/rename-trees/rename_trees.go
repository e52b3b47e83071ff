// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// rename-trees replaces genome accession numbers in the tips of a Newick
// tree with their database index and strips gene name clutter from the
// tip labels.
//
// The accession table is read from the taxonomy database given by -d or
// from the tab separated table given by -x. The renamed tree is written
// to <locus>-<n>_genomes-renamed.treefile, where n is the number of
// genomes found, and the genomes are listed in genome_list.log.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/phylomine/phylomine/config"
	"github.com/phylomine/phylomine/taxdb"
	"github.com/phylomine/phylomine/tree"
)

var (
	treeFile = flag.String("t", "", "input tree file (required)")
	database = flag.String("d", "", "taxonomy SQLite database")
	table    = flag.String("x", "", "tab separated accession table with Index and AccessionNumber columns")
	locus    = flag.String("l", "", "locus ID (default from tree file name)")
	outDir   = flag.String("o", "", "output directory")
	legacy   = flag.Bool("legacy", false, "strip deduplicated alignment hit suffixes instead of gene names")
	cfgFile  = flag.String("config", "", "YAML configuration file")
)

func main() {
	flag.Parse()
	if *cfgFile != "" {
		cfg, err := config.Read(*cfgFile)
		if err != nil {
			log.Fatalf("failed to read configuration: %v", err)
		}
		set := config.Explicit(flag.CommandLine)
		if !set["d"] && *table == "" {
			*database = cfg.Database
		}
		if !set["o"] {
			*outDir = cfg.OutDir
		}
	}
	if *treeFile == "" || (*database == "") == (*table == "") {
		fmt.Fprintln(os.Stderr, "invalid argument: must have tree and exactly one of database or table set")
		flag.Usage()
		os.Exit(1)
	}

	entries, err := readEntries(*database, *table)
	if err != nil {
		log.Fatalf("failed to read accession entries: %v", err)
	}

	l := *locus
	if l == "" {
		l = locusOf(*treeFile)
	}
	clutter := tree.DefaultClutter
	if *legacy {
		clutter = tree.LegacyClutter
	}
	out, n, err := rename(*treeFile, l, *outDir, entries, clutter)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Renamed treefile saved to %s\n", out)
	fmt.Printf("List of %d genomes saved to %s\n", n, filepath.Join(*outDir, "genome_list.log"))
}

func readEntries(database, table string) ([]taxdb.Entry, error) {
	if database != "" {
		db, err := taxdb.Open(database)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Entries()
	}
	f, err := os.Open(table)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return taxdb.ReadTable(f)
}

// locusOf returns the locus ID prefix of a tree file name.
func locusOf(path string) string {
	return strings.Split(filepath.Base(path), "-")[0]
}

// rename writes the renamed tree and appends the genome list log entry,
// returning the name of the tree written and the number of genomes
// renamed.
func rename(treeFile, locus, outDir string, entries []taxdb.Entry, clutter []*regexp.Regexp) (string, int, error) {
	b, err := os.ReadFile(treeFile)
	if err != nil {
		return "", 0, err
	}
	text, found := tree.Rename(string(b), entries)
	text = tree.Strip(text, clutter)

	out := filepath.Join(outDir, tree.OutName(locus, len(found)))
	err = os.WriteFile(out, []byte(text), 0o644)
	if err != nil {
		return "", 0, err
	}

	f, err := os.OpenFile(filepath.Join(outDir, "genome_list.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, err
	}
	err = tree.AppendLog(f, treeFile, found)
	if err != nil {
		f.Close()
		return "", 0, err
	}
	return out, len(found), f.Close()
}
