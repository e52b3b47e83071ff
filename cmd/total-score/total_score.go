// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// total-score summarises the AliGROOVE scores in a scoring file and
// appends the locus mean and median to total_scores.csv.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/phylomine/phylomine/config"
	"github.com/phylomine/phylomine/scores"
)

var (
	in      = flag.String("f", "", "input scoring file (required)")
	locus   = flag.String("l", "", "locus ID (required)")
	outDir  = flag.String("o", "", "output directory")
	plotOut = flag.String("plot", "", "write a histogram of scores to this image file (format from extension)")
	cfgFile = flag.String("config", "", "YAML configuration file")
)

func main() {
	flag.Parse()
	if *in == "" || *locus == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *cfgFile != "" && !config.Explicit(flag.CommandLine)["o"] {
		cfg, err := config.Read(*cfgFile)
		if err != nil {
			log.Fatalf("failed to read configuration: %v", err)
		}
		*outDir = cfg.OutDir
	}

	values, s, err := summarise(*in, *locus, filepath.Join(*outDir, "total_scores.csv"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Scores for locus %s\n", *locus)
	fmt.Printf("Mean: %v\n", s.Mean)
	fmt.Printf("Median: %v\n", s.Median)

	if *plotOut != "" {
		err = scores.Plot(values, *locus, *plotOut)
		if err != nil {
			log.Fatalf("failed to plot scores: %v", err)
		}
	}
}

// summarise reads the scores in the file in and appends their summary
// for locus to the table file.
func summarise(in, locus, table string) ([]float64, scores.Summary, error) {
	b, err := os.ReadFile(in)
	if err != nil {
		return nil, scores.Summary{}, err
	}
	values := scores.Extract(string(b))
	s, err := scores.Summarise(values)
	if err != nil {
		return nil, scores.Summary{}, fmt.Errorf("%s: %w", in, err)
	}

	f, err := os.OpenFile(table, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, scores.Summary{}, err
	}
	err = scores.AppendRow(f, locus, s)
	if err != nil {
		f.Close()
		return nil, scores.Summary{}, err
	}
	return values, s, f.Close()
}
