// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scores summarises the pairwise AliGROOVE scores of a locus.
package scores

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoScores is returned by Summarise when there are no scores.
var ErrNoScores = errors.New("scores: no scores")

var scorePattern = regexp.MustCompile(`\b0\.\d+`)

// Extract returns all values in text that begin with "0.".
func Extract(text string) []float64 {
	var values []float64
	for _, m := range scorePattern.FindAllString(text, -1) {
		// The pattern guarantees a valid float.
		v, _ := strconv.ParseFloat(m, 64)
		values = append(values, v)
	}
	return values
}

// Summary holds the location statistics of a set of scores.
type Summary struct {
	Mean   float64
	Median float64
}

// Summarise returns the mean and median of values. The median of an
// even number of values is the mean of the two middle values.
func Summarise(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoScores
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return Summary{Mean: stat.Mean(values, nil), Median: median}, nil
}

// AppendRow writes a locus row to a semicolon separated score table.
func AppendRow(w io.Writer, locus string, s Summary) error {
	_, err := fmt.Fprintf(w, "\n%s;%s;%s", locus, format(s.Mean), format(s.Median))
	return err
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Plot saves a histogram of values to path. The image format is taken
// from the path's extension.
func Plot(values []float64, title, path string) error {
	if len(values) == 0 {
		return ErrNoScores
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "score"
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), 20)
	if err != nil {
		return err
	}
	p.Add(h)

	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, path)
}
