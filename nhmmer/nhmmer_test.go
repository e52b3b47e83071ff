// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nhmmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	for _, test := range []struct {
		n    NHMMER
		want []string
	}{
		{
			n:    NHMMER{Query: "locus_E1.hmm", Target: "GCA_1.1.fasta"},
			want: []string{"nhmmer", "locus_E1.hmm", "GCA_1.1.fasta"},
		},
		{
			n: NHMMER{
				Cmd:     "/opt/hmmer/bin/nhmmer",
				Table:   "GCA_1.1-locus_E1-table.txt",
				NoAlign: true,
				EValue:  1e-10,
				CPU:     4,
				Query:   "locus_E1.hmm",
				Target:  "GCA_1.1.fasta",
			},
			want: []string{
				"/opt/hmmer/bin/nhmmer",
				"--tblout", "GCA_1.1-locus_E1-table.txt",
				"--noali",
				"-E", "1e-10",
				"--cpu", "4",
				"locus_E1.hmm", "GCA_1.1.fasta",
			},
		},
		{
			n: NHMMER{
				Output: "/dev/null",
				DNA:    true,
				Score:  100,
				Query:  "locus_E1.fasta",
				Target: "GCA_1.1.fasta",
			},
			want: []string{
				"nhmmer",
				"-o", "/dev/null",
				"--dna",
				"-T", "100",
				"locus_E1.fasta", "GCA_1.1.fasta",
			},
		},
	} {
		cmd, err := test.n.BuildCommand()
		require.NoError(t, err)
		assert.Equal(t, test.want, cmd.Args)
	}
}

func TestBuildCommandMissing(t *testing.T) {
	_, err := NHMMER{Query: "locus_E1.hmm"}.BuildCommand()
	assert.ErrorIs(t, err, ErrMissingRequired)
	_, err = NHMMER{Target: "GCA_1.1.fasta"}.BuildCommand()
	assert.ErrorIs(t, err, ErrMissingRequired)
}
