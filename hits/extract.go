// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hits

import (
	"fmt"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/complexity"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"

	"github.com/phylomine/phylomine/seqstore"
)

// Thresholds specifies the minimum alignment length and bit score for
// a hit to be extracted.
type Thresholds struct {
	MinLength int
	MinScore  float64
}

// DefaultThresholds are the thresholds used when none are configured.
var DefaultThresholds = Thresholds{MinLength: 100, MinScore: 100}

// Accept returns whether h satisfies the thresholds.
func (t Thresholds) Accept(h Hit) bool {
	return h.Len() >= t.MinLength && h.Score >= t.MinScore
}

// Span returns the slice bounds of h within a target sequence of the
// given length. For minus strand hits the bounds index the reverse
// complement of the target and reverse is true. Span returns ok false
// for hits with equal start and end; these hits are not extracted.
//
// The minus strand end is calculated as start+Start-End-1, one shorter
// than the forward strand extent of the hit. Existing hit sets depend on
// this, so it is retained.
func Span(h Hit, length int) (start, end int, reverse, ok bool) {
	switch {
	case h.Start < h.End:
		return h.Start, h.End, false, true
	case h.Start > h.End:
		start = length - h.Start - 1
		end = start + h.Start - h.End - 1
		return start, end, true, true
	default:
		return 0, 0, false, false
	}
}

// bounds returns the slice indices of [i, j) within a sequence of
// length n, with negative indices counted back from the end and both
// indices clamped to [0, n]. An inverted range is empty.
func bounds(i, j, n int) (int, int) {
	i = clamp(i, n)
	j = clamp(j, n)
	if j < i {
		j = i
	}
	return i, j
}

func clamp(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// CompositeID returns the FASTA identifier of an extracted hit.
func CompositeID(taxon string, h Hit) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", taxon, h.Query, h.Scaffold, h.Start, h.End)
}

// Filtered is an extracted hit. Start and End give the zero-based,
// half-open forward strand region of the scaffold holding the bases
// of Seq.
type Filtered struct {
	Hit Hit
	Seq *linear.Seq

	Start, End int
}

// Extractor extracts hit sequences from a genome.
type Extractor struct {
	Taxon  string
	Genome *seqstore.Store
	Thresholds

	// MinComplexity is the minimum sequence complexity of an
	// extracted hit. Zero disables the complexity filter.
	MinComplexity float64
	// Complexity is the complexity measure used with MinComplexity.
	// If nil, complexity.WF is used.
	Complexity func(s seq.Sequence, start, end int) (float64, error)
}

// Extract returns the sequence of h if it satisfies the Extractor's
// thresholds. ok is false when h is rejected. If the hit's scaffold is not
// in the genome, a *seqstore.NotFoundError is returned.
func (e Extractor) Extract(h Hit) (f Filtered, ok bool, err error) {
	if !e.Accept(h) {
		return Filtered{}, false, nil
	}
	if h.Strand() == seq.None {
		return Filtered{}, false, nil
	}
	target, err := e.Genome.Lookup(h.Scaffold)
	if err != nil {
		return Filtered{}, false, err
	}
	n := target.Len()
	start, end, reverse, _ := Span(h, n)
	bases := target.Seq
	if reverse {
		bases = seqstore.ReverseComplement(target)
	}
	start, end = bounds(start, end, n)
	sub := append(alphabet.Letters(nil), bases[start:end]...)
	if reverse {
		start, end = n-end, n-start
	}
	s := linear.NewSeq(CompositeID(e.Taxon, h), sub, target.Alpha)
	if e.MinComplexity > 0 {
		ok, err = e.complex(s)
		if !ok || err != nil {
			return Filtered{}, false, err
		}
	}
	return Filtered{Hit: h, Seq: s, Start: start, End: end}, true, nil
}

func (e Extractor) complex(s *linear.Seq) (bool, error) {
	if s.Len() == 0 {
		return false, nil
	}
	cfn := e.Complexity
	if cfn == nil {
		cfn = complexity.WF
	}
	c, err := cfn(s, s.Start(), s.End())
	if err != nil {
		return false, fmt.Errorf("complexity of %s: %w", s.ID, err)
	}
	return c >= e.MinComplexity, nil
}

// ExtractAll returns the extracted sequences of all qualifying hits in
// order. The first lookup failure is returned and no hits are returned
// with it.
func (e Extractor) ExtractAll(hits []Hit) ([]Filtered, error) {
	var filtered []Filtered
	for _, h := range hits {
		f, ok, err := e.Extract(h)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}
