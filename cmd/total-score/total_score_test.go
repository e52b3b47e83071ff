// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phylomine/phylomine/scores"
)

func TestSummarise(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "locus_E1_0.2-values.csv")
	require.NoError(t, os.WriteFile(in, []byte("Row;Column;Value (rounded)\na;b;0.25\nb;a;0.5\nc;a;0.75\n"), 0o644))
	table := filepath.Join(dir, "total_scores.csv")

	values, s, err := summarise(in, "locus_E1", table)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, values)
	assert.Equal(t, scores.Summary{Mean: 0.5, Median: 0.5}, s)

	_, _, err = summarise(in, "locus_E2", table)
	require.NoError(t, err)
	got, err := os.ReadFile(table)
	require.NoError(t, err)
	assert.Equal(t, "\nlocus_E1;0.5;0.5\nlocus_E2;0.5;0.5", string(got))
}

func TestSummariseNoScores(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(in, []byte("Row;Column;Value (rounded)\n"), 0o644))
	table := filepath.Join(dir, "total_scores.csv")

	_, _, err := summarise(in, "locus_E1", table)
	assert.ErrorIs(t, err, scores.ErrNoScores)
	assert.NoFileExists(t, table)
}
