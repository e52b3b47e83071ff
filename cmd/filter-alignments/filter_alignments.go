// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// filter-alignments drops sequences from a locus alignment that score
// poorly in an AliGROOVE pairwise comparison matrix.
//
// Every matrix score at or below the threshold is written to
// <locus>_<threshold>-values.csv and each sequence named as a row or
// column of such a score is omitted from <locus>-<threshold>-filtered.fasta.
// No files are written if no score is at or below the threshold.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/phylomine/phylomine/aligroove"
	"github.com/phylomine/phylomine/config"
)

var (
	matrix    = flag.String("d", "", "input AliGROOVE score matrix (required)")
	alignment = flag.String("a", "", "input alignment file (required)")
	locus     = flag.String("l", "", "locus ID (required)")
	threshold = flag.Float64("t", 0.2, "maximum score considered low")
	outDir    = flag.String("o", "", "output directory")
	width     = flag.Int("width", 60, "fasta line width")
	cfgFile   = flag.String("config", "", "YAML configuration file")
)

func main() {
	flag.Parse()
	if *matrix == "" || *alignment == "" || *locus == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *cfgFile != "" {
		cfg, err := config.Read(*cfgFile)
		if err != nil {
			log.Fatalf("failed to read configuration: %v", err)
		}
		set := config.Explicit(flag.CommandLine)
		if !set["t"] {
			*threshold = cfg.Threshold
		}
		if !set["o"] {
			*outDir = cfg.OutDir
		}
		if !set["width"] {
			*width = cfg.Hits.Width
		}
	}

	values, filtered, err := filter(*matrix, *alignment, *locus, *threshold, *outDir, *width)
	if err != nil {
		log.Fatal(err)
	}
	if values == "" {
		fmt.Printf("No values found below the threshold (%s). Exiting.\n", formatThreshold(*threshold))
		return
	}
	fmt.Printf("Low values saved as %s\n", values)
	fmt.Printf("Filtered alignment written to %s\n", filtered)
}

// filter writes the low score table and filtered alignment for locus,
// returning the names of the files written. Both names are empty if no
// score is at or below thresh.
func filter(matrixFile, alignmentFile, locus string, thresh float64, outDir string, width int) (values, filtered string, err error) {
	f, err := os.Open(matrixFile)
	if err != nil {
		return "", "", err
	}
	m, err := aligroove.ReadMatrix(f)
	f.Close()
	if err != nil {
		return "", "", fmt.Errorf("failed to read score matrix %q: %w", matrixFile, err)
	}

	low := m.Below(thresh)
	if len(low) == 0 {
		return "", "", nil
	}

	t := formatThreshold(thresh)
	values = filepath.Join(outDir, fmt.Sprintf("%s_%s-values.csv", locus, t))
	err = create(values, func(f *os.File) error {
		return aligroove.WritePairs(f, low)
	})
	if err != nil {
		return "", "", err
	}

	in, err := os.Open(alignmentFile)
	if err != nil {
		return "", "", err
	}
	defer in.Close()
	filtered = filepath.Join(outDir, fmt.Sprintf("%s-%s-filtered.fasta", locus, t))
	err = create(filtered, func(f *os.File) error {
		kept, dropped, err := aligroove.Filter(in, f, aligroove.Labels(low), width)
		if err != nil {
			return err
		}
		log.Printf("kept %d sequences, dropped %d", kept, dropped)
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return values, filtered, nil
}

func create(name string, fn func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	err = fn(f)
	if err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	return f.Close()
}

func formatThreshold(t float64) string {
	return strconv.FormatFloat(t, 'g', -1, 64)
}
