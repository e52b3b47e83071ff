// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seqstore provides an in-memory collection of genome sequences
// keyed by sequence identifier.
package seqstore

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ErrUnknownFormat is returned by Load and Format when a sequence file
// does not have a recognised extension.
var ErrUnknownFormat = errors.New("seqstore: unknown sequence file format")

// NotFoundError is returned when a sequence identifier is not held by
// a Store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("seqstore: sequence %q not found", e.ID)
}

// DuplicateError is returned when a sequence identifier occurs more
// than once in the loaded input.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("seqstore: duplicate sequence id %q", e.ID)
}

// fastaExts lists the extensions accepted as FASTA input.
var fastaExts = map[string]bool{
	"fasta": true,
	"fa":    true,
	"fna":   true,
	"fas":   true,
	"ffn":   true,
}

// Format returns the sequence format extension of path, ignoring any
// trailing .gz compression suffix.
func Format(path string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(path), ".gz")
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if !fastaExts[strings.ToLower(ext)] {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	return ext, nil
}

// Store holds the sequences of a genome. A Store is read-only once
// loaded.
type Store struct {
	seqs map[string]*linear.Seq
	ids  []string
}

// Load returns a Store holding all sequences in the FASTA file at path.
// Files with a .gz suffix are decompressed.
func Load(path string) (*Store, error) {
	_, err := Format(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("seqstore: %q: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	s, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("seqstore: %q: %w", path, err)
	}
	return s, nil
}

// Read returns a Store holding all FASTA sequences read from r.
func Read(r io.Reader) (*Store, error) {
	s := &Store{seqs: make(map[string]*linear.Seq)}
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		if _, ok := s.seqs[seq.ID]; ok {
			return nil, &DuplicateError{ID: seq.ID}
		}
		s.seqs[seq.ID] = seq
		s.ids = append(s.ids, seq.ID)
	}
	err := sc.Error()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Lookup returns the sequence with the given id. If id is not held by
// the Store, a *NotFoundError is returned.
func (s *Store) Lookup(id string) (*linear.Seq, error) {
	seq, ok := s.seqs[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return seq, nil
}

// Len returns the number of sequences in the Store.
func (s *Store) Len() int { return len(s.ids) }

// IDs returns the sequence identifiers in input order.
func (s *Store) IDs() []string {
	return append([]string(nil), s.ids...)
}

// ReverseComplement returns the reverse complement of the letters of s
// without modifying s. IUPAC ambiguity codes are complemented to their
// IUPAC partners, gaps are kept and letter case is retained. Other
// letters are complemented to N, or n when they are not upper case.
func ReverseComplement(s *linear.Seq) alphabet.Letters {
	return revComp(s.Seq)
}

func revComp(l alphabet.Letters) alphabet.Letters {
	rc := make(alphabet.Letters, len(l))
	for i, j := 0, len(l)-1; j >= 0; i, j = i+1, j-1 {
		rc[i] = complement(l[j])
	}
	return rc
}

func complement(l alphabet.Letter) alphabet.Letter {
	if l == '-' || l == '.' {
		return l
	}
	upper := 'A' <= l && l <= 'Z'
	if upper {
		l += 'a' - 'A'
	}
	c, ok := alphabet.DNAredundant.Complement(l)
	if !ok || c < 'a' || 'z' < c {
		c = 'n'
	}
	if upper {
		c -= 'a' - 'A'
	}
	return c
}
