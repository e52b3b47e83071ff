// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aligroove filters multiple sequence alignments using an
// AliGROOVE pairwise score matrix.
package aligroove

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"gonum.org/v1/gonum/mat"
)

// ErrEmptyMatrix is returned by ReadMatrix when the input holds no
// scores.
var ErrEmptyMatrix = errors.New("aligroove: empty score matrix")

// Matrix is a labelled score matrix.
type Matrix struct {
	Rows    []string
	Columns []string
	Scores  *mat.Dense
}

// ReadMatrix reads a tab separated score matrix from r. The first line
// holds the column labels, preceded by an optional index label, and each
// subsequent line holds a row label followed by the row's scores. Empty,
// NA and nan cells are read as NaN.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrEmptyMatrix
	}

	header := records[0]
	records = records[1:]
	nc := len(records[0]) - 1
	if nc < 1 {
		return nil, ErrEmptyMatrix
	}
	if len(header) != nc && len(header) != nc+1 {
		return nil, fmt.Errorf("aligroove: header has %d labels for %d columns", len(header), nc)
	}
	m := &Matrix{
		Columns: header[len(header)-nc:],
		Scores:  mat.NewDense(len(records), nc, nil),
	}
	for i, rec := range records {
		if len(rec)-1 != nc {
			return nil, fmt.Errorf("aligroove: row %d has %d scores, want %d", i+1, len(rec)-1, nc)
		}
		m.Rows = append(m.Rows, rec[0])
		for j, f := range rec[1:] {
			v, err := parseScore(f)
			if err != nil {
				return nil, fmt.Errorf("aligroove: row %q column %q: %w", rec[0], m.Columns[j], err)
			}
			m.Scores.Set(i, j, v)
		}
	}
	return m, nil
}

func parseScore(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Pair is a score between two labelled sequences.
type Pair struct {
	Row    string
	Column string
	Value  float64
}

// Below returns the scores in m that are less than or equal to thresh,
// in row-major order, rounded half to even at two decimal places. NaN
// scores are ignored.
func (m *Matrix) Below(thresh float64) []Pair {
	var pairs []Pair
	r, c := m.Scores.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.Scores.At(i, j)
			if math.IsNaN(v) || v > thresh {
				continue
			}
			pairs = append(pairs, Pair{
				Row:    m.Rows[i],
				Column: m.Columns[j],
				Value:  math.RoundToEven(v*100) / 100,
			})
		}
	}
	return pairs
}

// WritePairs writes pairs to w as semicolon separated values with a
// header line.
func WritePairs(w io.Writer, pairs []Pair) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	err := cw.Write([]string{"Row", "Column", "Value (rounded)"})
	if err != nil {
		return err
	}
	for _, p := range pairs {
		err = cw.Write([]string{p.Row, p.Column, strconv.FormatFloat(p.Value, 'f', -1, 64)})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Labels returns the set of sequence labels named by pairs.
func Labels(pairs []Pair) map[string]bool {
	set := make(map[string]bool)
	for _, p := range pairs {
		set[p.Row] = true
		set[p.Column] = true
	}
	return set
}

// Filter copies the fasta alignment in r to w, omitting sequences whose
// ID or full description line is in exclude. Sequence lines are wrapped
// at width columns. Filter returns the number of sequences kept and
// dropped.
func Filter(r io.Reader, w io.Writer, exclude map[string]bool, width int) (kept, dropped int, err error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		name := s.ID
		if s.Desc != "" {
			name += " " + s.Desc
		}
		if exclude[s.ID] || exclude[name] {
			dropped++
			continue
		}
		_, err = fmt.Fprintf(w, "%*a\n", width, s)
		if err != nil {
			return kept, dropped, err
		}
		kept++
	}
	return kept, dropped, sc.Error()
}
