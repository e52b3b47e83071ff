// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// phylomine extracts the genomic sequence of homologous gene hits reported
// by an nhmmer tabular search of a genome assembly.
//
// The hit table is expected to be named <accession>-<locus>-table.txt and
// the genome <accession>.<ext>. Hits at least -min-length long with a bit
// score of at least -min-score are written to <accession>-<locus>-hits.<ext>.
// Minus strand hits are written as the reverse complement of the genome.
// No output file is written when no hit qualifies.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/phylomine/phylomine/config"
	"github.com/phylomine/phylomine/hits"
	"github.com/phylomine/phylomine/nhmmer"
	"github.com/phylomine/phylomine/seqstore"
)

var (
	table   = flag.String("table", "", "input nhmmer --tblout hit table file name (required)")
	genome  = flag.String("genome", "", "input genome sequence file name (required)")
	genomes = flag.String("genomes", "", "directory holding genome sequence files")
	taxon   = flag.String("taxon", "", "taxon ID for output (default from table file name)")
	locus   = flag.String("locus", "", "locus ID for output (default from table file name)")
	outDir  = flag.String("out", "", "output directory")

	minLength = flag.Int("min-length", hits.DefaultThresholds.MinLength, "minimum hit alignment length")
	minScore  = flag.Float64("min-score", hits.DefaultThresholds.MinScore, "minimum hit bit score")
	minCplx   = flag.Float64("min-complexity", 0, "minimum Wootton-Federhen complexity of extracted hits (0 to disable)")
	width     = flag.Int("width", 60, "fasta line width")
	gffOut    = flag.Bool("gff", false, "output GFF file of extracted hits")

	run        = flag.Bool("run-nhmmer", false, "run nhmmer to create the hit table")
	query      = flag.String("query", "", "nhmmer query hmm or sequence file (required for -run-nhmmer)")
	nhmmerPath = flag.String("nhmmer", "", "path to nhmmer if not in $PATH")
	cpus       = flag.Int("cpu", 0, "number of nhmmer worker threads (0 for nhmmer default)")
	evalue     = flag.Float64("evalue", 0, "nhmmer reporting E-value threshold (0 for nhmmer default)")

	cfgFile = flag.String("config", "", "YAML configuration file")
	errFile = flag.String("err", "", "log file name (default to stderr)")
)

func main() {
	flag.Parse()
	if *table == "" || *genome == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: must have table and genome set")
		flag.Usage()
		os.Exit(1)
	}
	if *run && *query == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: must have query set to run nhmmer")
		flag.Usage()
		os.Exit(1)
	}

	errStream := os.Stderr
	if *errFile != "" {
		var err error
		errStream, err = os.Create(*errFile)
		if err != nil {
			// Oh, the irony.
			log.Fatalf("failed to create log file: %v", err)
		}
		defer errStream.Close()
		log.SetOutput(errStream)
	}

	if *cfgFile != "" {
		cfg, err := config.Read(*cfgFile)
		if err != nil {
			log.Fatalf("failed to read configuration: %v", err)
		}
		applyConfig(cfg, config.Explicit(flag.CommandLine))
	}

	p := params{
		table:  *table,
		genome: filepath.Join(*genomes, *genome),
		taxon:  *taxon,
		locus:  *locus,
		outDir: *outDir,

		thresholds: hits.Thresholds{MinLength: *minLength, MinScore: *minScore},
		complexity: *minCplx,
		width:      *width,
		gff:        *gffOut,
	}
	if p.taxon == "" || p.locus == "" {
		t, l, err := tableName(p.table)
		if err != nil {
			log.Fatal(err)
		}
		if p.taxon == "" {
			p.taxon = t
		}
		if p.locus == "" {
			p.locus = l
		}
	}

	if *run {
		n := nhmmer.NHMMER{
			Cmd:     *nhmmerPath,
			Output:  os.DevNull,
			Table:   p.table,
			NoAlign: true,
			EValue:  *evalue,
			CPU:     *cpus,
			Query:   *query,
			Target:  p.genome,
		}
		log.Printf("searching %q for %q", p.genome, *query)
		cmd, err := n.BuildCommand()
		if err != nil {
			log.Fatalf("failed to build nhmmer command: %v", err)
		}
		cmd.Stdout = errStream
		cmd.Stderr = errStream
		err = cmd.Run()
		if err != nil {
			log.Fatalf("failed nhmmer search: %v", err)
		}
	}

	_, err := findHits(p)
	if err != nil {
		log.Fatalf("failed hit extraction: %v", err)
	}
}

// applyConfig sets flag values from cfg for flags not explicitly set.
func applyConfig(cfg *config.Config, set map[string]bool) {
	if !set["genomes"] && cfg.Genomes != "" {
		*genomes = cfg.Genomes
	}
	if !set["out"] && cfg.OutDir != "" {
		*outDir = cfg.OutDir
	}
	if !set["min-length"] {
		*minLength = cfg.Hits.MinLength
	}
	if !set["min-score"] {
		*minScore = cfg.Hits.MinScore
	}
	if !set["min-complexity"] {
		*minCplx = cfg.Hits.MinComplexity
	}
	if !set["width"] {
		*width = cfg.Hits.Width
	}
	if !set["nhmmer"] && cfg.NHMMER.Path != "" {
		*nhmmerPath = cfg.NHMMER.Path
	}
	if !set["cpu"] {
		*cpus = cfg.NHMMER.CPU
	}
	if !set["evalue"] {
		*evalue = cfg.NHMMER.EValue
	}
}

// tableName returns the taxon and locus IDs encoded in an nhmmer hit
// table file name of the form <taxon>-<locus>-table.txt.
func tableName(path string) (taxon, locus string, err error) {
	base := strings.TrimSuffix(filepath.Base(path), ".txt")
	fields := strings.Split(base, "-")
	if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
		return "", "", fmt.Errorf("invalid hit table name %q: want <taxon>-<locus>-table.txt", path)
	}
	return fields[0], fields[1], nil
}

// params holds the parameters for a hit extraction run.
type params struct {
	table  string
	genome string
	taxon  string
	locus  string
	outDir string

	thresholds hits.Thresholds
	complexity float64
	width      int
	gff        bool
}

// findHits extracts the hits listed in p.table from p.genome and writes
// them to a fasta file in p.outDir, returning the name of the file. If
// no hit qualifies, no file is written and the empty string is returned.
// No output is written if any qualifying hit refers to a sequence that
// is not in the genome.
func findHits(p params) (string, error) {
	f, err := os.Open(p.table)
	if err != nil {
		return "", err
	}
	all, err := hits.ReadAll(f)
	f.Close()
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		log.Printf("No hits found for locus %s", p.locus)
		return "", nil
	}
	log.Printf("%d hits found for locus %s", len(all), p.locus)

	ext, err := seqstore.Format(p.genome)
	if err != nil {
		return "", err
	}
	log.Printf("loading genome %q", p.genome)
	g, err := seqstore.Load(p.genome)
	if err != nil {
		return "", err
	}

	e := hits.Extractor{Taxon: p.taxon, Genome: g, Thresholds: p.thresholds, MinComplexity: p.complexity}
	filtered, err := e.ExtractAll(all)
	if err != nil {
		return "", err
	}
	if len(filtered) == 0 {
		log.Printf("0 hits passed filtering for locus %s", p.locus)
		return "", nil
	}

	base := filepath.Join(p.outDir, fmt.Sprintf("%s-%s-hits", p.taxon, p.locus))
	out := base + "." + ext
	err = writeHits(out, filtered, func(w *os.File) writer { return hits.NewWriter(w, p.width) })
	if err != nil {
		return "", err
	}
	log.Printf("wrote %d hits to %q", len(filtered), out)

	if p.gff {
		err = writeHits(base+".gff", filtered, func(w *os.File) writer { return hits.NewGFFWriter(w, "phylomine") })
		if err != nil {
			return "", err
		}
	}
	return out, nil
}

type writer interface {
	Write(hits.Filtered) error
}

// writeHits writes filtered to the named file using the writer returned
// by fn. The file is removed if writing fails.
func writeHits(name string, filtered []hits.Filtered, fn func(*os.File) writer) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(name)
		}
	}()
	w := fn(f)
	for _, h := range filtered {
		err = w.Write(h)
		if err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
