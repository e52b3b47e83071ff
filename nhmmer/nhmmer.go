// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nhmmer provides interaction with the HMMER nhmmer DNA homology
// search tool.
package nhmmer

import (
	"errors"
	"os/exec"
	"strconv"
	"text/template"

	"github.com/biogo/external"
)

var ErrMissingRequired = errors.New("nhmmer: missing required argument")

// NHMMER defines parameters for the nhmmer homology search.
type NHMMER struct {
	// Usage: nhmmer [options] <query hmmfile|alignfile|seqfile> <target seqfile>
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}nhmmer{{end}}"` // nhmmer

	// Output options:
	Output    string `buildarg:"{{if .}}-o{{split}}{{.}}{{end}}"`            // -o: direct main output to file
	Table     string `buildarg:"{{if .}}--tblout{{split}}{{.}}{{end}}"`      // --tblout: tabular per-hit output
	DfamTable string `buildarg:"{{if .}}--dfamtblout{{split}}{{.}}{{end}}"`  // --dfamtblout: Dfam format output
	Alignment string `buildarg:"{{if .}}-A{{split}}{{.}}{{end}}"`            // -A: save multiple alignment of hits
	NoAlign   bool   `buildarg:"{{if .}}--noali{{end}}"`                     // --noali: don't output alignments
	Width     int    `buildarg:"{{if .}}--textw{{split}}{{.}}{{end}}"`       // --textw: alignment line width
	QFormat   string `buildarg:"{{if .}}--qformat{{split}}{{.}}{{end}}"`     // --qformat: query file format
	TFormat   string `buildarg:"{{if .}}--tformat{{split}}{{.}}{{end}}"`     // --tformat: target file format
	DNA       bool   `buildarg:"{{if .}}--dna{{end}}"`                       // --dna: query is DNA
	Watson    bool   `buildarg:"{{if .}}--watson{{end}}"`                    // --watson: only search the top strand
	Crick     bool   `buildarg:"{{if .}}--crick{{end}}"`                     // --crick: only search the bottom strand
	Block     int    `buildarg:"{{if .}}--block_length{{split}}{{.}}{{end}}"` // --block_length: window length

	// Reporting and inclusion thresholds:
	EValue     float64 `buildarg:"{{if .}}-E{{split}}{{float .}}{{end}}"`      // -E: report sequences <= this E-value
	Score      float64 `buildarg:"{{if .}}-T{{split}}{{float .}}{{end}}"`      // -T: report sequences >= this score
	IncEValue  float64 `buildarg:"{{if .}}--incE{{split}}{{float .}}{{end}}"`  // --incE: include sequences <= this E-value
	IncScore   float64 `buildarg:"{{if .}}--incT{{split}}{{float .}}{{end}}"`  // --incT: include sequences >= this score
	CutGA      bool    `buildarg:"{{if .}}--cut_ga{{end}}"`                    // --cut_ga: use profile GA gathering cutoffs
	Max        bool    `buildarg:"{{if .}}--max{{end}}"`                       // --max: turn off all filters
	F1         float64 `buildarg:"{{if .}}--F1{{split}}{{float .}}{{end}}"`    // --F1: MSV filter threshold
	F2         float64 `buildarg:"{{if .}}--F2{{split}}{{float .}}{{end}}"`    // --F2: Viterbi filter threshold
	F3         float64 `buildarg:"{{if .}}--F3{{split}}{{float .}}{{end}}"`    // --F3: Forward filter threshold
	NoBias     bool    `buildarg:"{{if .}}--nobias{{end}}"`                    // --nobias: turn off composition bias filter
	Seed       int     `buildarg:"{{if .}}--seed{{split}}{{.}}{{end}}"`        // --seed: RNG seed
	SearchSize float64 `buildarg:"{{if .}}-Z{{split}}{{float .}}{{end}}"`      // -Z: database size in Mb for E-values

	// Parallel options:
	CPU int `buildarg:"{{if .}}--cpu{{split}}{{.}}{{end}}"` // --cpu: number of worker threads

	// Input files:
	Query  string `buildarg:"{{.}}"` // "query.hmm|query.fasta"
	Target string `buildarg:"{{.}}"` // "genome.fasta"
}

// BuildCommand returns an exec.Cmd built from the parameters in n.
func (n NHMMER) BuildCommand() (*exec.Cmd, error) {
	if n.Query == "" || n.Target == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(n, template.FuncMap{"float": float}))
	return exec.Command(cl[0], cl[1:]...), nil
}

// float returns the shortest representation of a float64 parameter.
func float(a interface{}) string {
	return strconv.FormatFloat(a.(float64), 'g', -1, 64)
}
