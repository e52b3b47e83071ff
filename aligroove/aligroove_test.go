// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aligroove

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrix = "\tsp_A\tsp_B\tsp_C\n" +
	"sp_A\t\t0.15\t0.8\n" +
	"sp_B\t0.15\tNA\t0.199\n" +
	"sp_C\t0.8\t0.2\t-0.31\n"

func TestReadMatrix(t *testing.T) {
	m, err := ReadMatrix(strings.NewReader(matrix))
	require.NoError(t, err)
	assert.Equal(t, []string{"sp_A", "sp_B", "sp_C"}, m.Rows)
	assert.Equal(t, []string{"sp_A", "sp_B", "sp_C"}, m.Columns)

	r, c := m.Scores.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.True(t, math.IsNaN(m.Scores.At(0, 0)))
	assert.True(t, math.IsNaN(m.Scores.At(1, 1)))
	assert.Equal(t, 0.199, m.Scores.At(1, 2))
	assert.Equal(t, -0.31, m.Scores.At(2, 2))
}

func TestReadMatrixNoIndexLabel(t *testing.T) {
	m, err := ReadMatrix(strings.NewReader("x\ty\nx\t0.5\t0.1\ny\t0.1\t0.5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, m.Columns)
	assert.Equal(t, 0.1, m.Scores.At(1, 0))
}

func TestReadMatrixErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"\ta\tb\n",
		"\ta\tb\na\t0.1\n",
		"\ta\tb\na\t0.1\t0.2\nb\t0.3\n",
		"\ta\tb\na\t0.1\tlow\nb\t0.3\t0.4\n",
	} {
		_, err := ReadMatrix(strings.NewReader(in))
		assert.Error(t, err, "%q", in)
	}
}

func TestBelow(t *testing.T) {
	m, err := ReadMatrix(strings.NewReader(matrix))
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Row: "sp_A", Column: "sp_B", Value: 0.15},
		{Row: "sp_B", Column: "sp_A", Value: 0.15},
		{Row: "sp_B", Column: "sp_C", Value: 0.2},
		{Row: "sp_C", Column: "sp_B", Value: 0.2},
		{Row: "sp_C", Column: "sp_C", Value: -0.31},
	}, m.Below(0.2))

	assert.Equal(t, []Pair{{Row: "sp_C", Column: "sp_C", Value: -0.31}}, m.Below(0.1))
	assert.Len(t, m.Below(1), 7)
}

func TestBelowRounding(t *testing.T) {
	m, err := ReadMatrix(strings.NewReader("\tx\ty\tz\nx\t0.125\t0.625\t0.135\n"))
	require.NoError(t, err)
	assert.Equal(t, []Pair{
		{Row: "x", Column: "x", Value: 0.12},
		{Row: "x", Column: "y", Value: 0.62},
		{Row: "x", Column: "z", Value: 0.14},
	}, m.Below(1))
}

func TestWritePairs(t *testing.T) {
	var buf bytes.Buffer
	err := WritePairs(&buf, []Pair{
		{Row: "sp_A", Column: "sp_B", Value: 0.15},
		{Row: "sp_B", Column: "sp_C", Value: 0.2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Row;Column;Value (rounded)\nsp_A;sp_B;0.15\nsp_B;sp_C;0.2\n", buf.String())
}

func TestLabels(t *testing.T) {
	got := Labels([]Pair{
		{Row: "sp_A", Column: "sp_B"},
		{Row: "sp_B", Column: "sp_D"},
	})
	assert.Equal(t, map[string]bool{"sp_A": true, "sp_B": true, "sp_D": true}, got)
}

func TestFilter(t *testing.T) {
	const alignment = `>sp_A
ACGT--ACGT
>sp_B some description
ACGTTTACGT
>sp_D
ACG---ACGT
>sp_E full name
ACGTAAACGT
`
	var buf bytes.Buffer
	kept, dropped, err := Filter(strings.NewReader(alignment), &buf, map[string]bool{
		"sp_A":           true,
		"sp_B":           true,
		"sp_E full name": true,
	}, 60)
	require.NoError(t, err)
	assert.Equal(t, 1, kept)
	assert.Equal(t, 3, dropped)
	assert.Equal(t, ">sp_D\nACG---ACGT\n", buf.String())
}
