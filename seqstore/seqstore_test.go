// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqstore

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(l alphabet.Letters) string {
	b := make([]byte, len(l))
	for i, c := range l {
		b[i] = byte(c)
	}
	return string(b)
}

const genome = `>scaffold_1 some description
ACGTACGTAC
GTAC
>scaffold_2
ggccaattN
`

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(genome))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"scaffold_1", "scaffold_2"}, s.IDs())

	seq, err := s.Lookup("scaffold_1")
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGTACGTAC", str(seq.Seq))

	seq, err = s.Lookup("scaffold_2")
	require.NoError(t, err)
	assert.Equal(t, "ggccaattN", str(seq.Seq))
}

func TestLookupMissing(t *testing.T) {
	s, err := Read(strings.NewReader(genome))
	require.NoError(t, err)

	_, err = s.Lookup("scaffold_3")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "scaffold_3", nf.ID)
}

func TestReadDuplicate(t *testing.T) {
	_, err := Read(strings.NewReader(">a\nAC\n>a\nGT\n"))
	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "a", dup.ID)
}

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "GCA_000001.1.fasta", want: "fasta"},
		{path: "dir/GCA_000001.1.fna", want: "fna"},
		{path: "GCA_000001.1.fa.gz", want: "fa"},
		{path: "GCA_000001.1.txt", wantErr: true},
		{path: "GCA_000001", wantErr: true},
	} {
		got, err := Format(test.path)
		if test.wantErr {
			assert.ErrorIs(t, err, ErrUnknownFormat, test.path)
			continue
		}
		require.NoError(t, err, test.path)
		assert.Equal(t, test.want, got, test.path)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "GCA_1.1.fasta")
	require.NoError(t, os.WriteFile(plain, []byte(genome), 0o644))
	s, err := Load(plain)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	compressed := filepath.Join(dir, "GCA_2.1.fna.gz")
	f, err := os.Create(compressed)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(genome))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	s, err = Load(compressed)
	require.NoError(t, err)
	seq, err := s.Lookup("scaffold_2")
	require.NoError(t, err)
	assert.Equal(t, "ggccaattN", str(seq.Seq))

	_, err = Load(filepath.Join(dir, "missing.fasta"))
	assert.Error(t, err)
}

func TestReverseComplement(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{in: "", want: ""},
		{in: "AGTC", want: "GACT"},
		{in: "aacg", want: "cgtt"},
		{in: "ACGTN", want: "NACGT"},
		{in: "RYSWKMBDHVN", want: "NBDHVKMWSRY"},
		{in: "AC-GT", want: "AC-GT"},
		{in: "AJ*c", want: "gnNT"},
	} {
		s := linear.NewSeq("s", alphabet.BytesToLetters([]byte(test.in)), alphabet.DNAredundant)
		got := ReverseComplement(s)
		assert.Equal(t, test.want, str(got), "reverse complement of %q", test.in)
		assert.Equal(t, test.in, str(s.Seq), "input modified")
	}
}

func TestReverseComplementRoundTrip(t *testing.T) {
	for _, in := range []string{
		"ACGTTGCAAGGCTTAA",
		"acgtRYKMBVDHnn",
		"GATTACA",
	} {
		s := linear.NewSeq("s", alphabet.BytesToLetters([]byte(in)), alphabet.DNAredundant)
		rc := linear.NewSeq("rc", ReverseComplement(s), alphabet.DNAredundant)
		assert.Equal(t, in, str(ReverseComplement(rc)))
	}
}
