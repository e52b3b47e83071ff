// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hits reads nhmmer tabular hit reports and extracts the genomic
// sequence of qualifying hits.
package hits

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/seq"
)

// nhmmer --tblout columns.
const (
	targetNameField = iota
	_               // target accession
	queryNameField
	_ // query accession
	_ // hmm from
	_ // hmm to
	aliFromField
	aliToField
	_ // env from
	_ // env to
	_ // sequence length
	_ // strand
	_ // E-value
	scoreField

	numFields
)

// ErrTooFewFields is wrapped by a ParseError when a table line does not
// have enough columns.
var ErrTooFewFields = errors.New("hits: too few fields")

// ParseError is returned when a hit table line cannot be parsed.
type ParseError struct {
	Line int    // 1-based line number.
	Text string // Text of the offending line.
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hits: line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Hit is a single alignment of a query to a target sequence. Start and
// End are zero-based; End is less than Start for hits on the minus
// strand.
type Hit struct {
	Scaffold string
	Query    string
	Start    int
	End      int
	Score    float64
}

// Len returns the alignment length of the hit.
func (h Hit) Len() int {
	if h.Start < h.End {
		return h.End - h.Start
	}
	return h.Start - h.End
}

// Strand returns the target strand the hit aligns to. Hits with equal
// start and end have no strand.
func (h Hit) Strand() seq.Strand {
	switch {
	case h.Start < h.End:
		return seq.Plus
	case h.Start > h.End:
		return seq.Minus
	default:
		return seq.None
	}
}

// Reader reads hits from an nhmmer tabular report.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	return &Reader{sc: sc}
}

// Read returns the next hit in the report. Comment lines starting with
// '#' and blank lines are skipped. At the end of the input Read returns
// io.EOF.
func (r *Reader) Read() (Hit, error) {
	for r.sc.Scan() {
		r.line++
		line := r.sc.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		h, err := parseHit(line)
		if err != nil {
			return Hit{}, &ParseError{Line: r.line, Text: line, Err: err}
		}
		return h, nil
	}
	err := r.sc.Err()
	if err != nil {
		return Hit{}, err
	}
	return Hit{}, io.EOF
}

// ReadAll returns all the hits in the report read by r.
func ReadAll(r io.Reader) ([]Hit, error) {
	var hits []Hit
	hr := NewReader(r)
	for {
		h, err := hr.Read()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			return hits, nil
		}
		hits = append(hits, h)
	}
}

func parseHit(line string) (Hit, error) {
	fields := strings.Fields(line)
	if len(fields) < numFields {
		return Hit{}, fmt.Errorf("%w: have %d want %d", ErrTooFewFields, len(fields), numFields)
	}
	start, err := strconv.Atoi(fields[aliFromField])
	if err != nil {
		return Hit{}, err
	}
	end, err := strconv.Atoi(fields[aliToField])
	if err != nil {
		return Hit{}, err
	}
	score, err := strconv.ParseFloat(fields[scoreField], 64)
	if err != nil {
		return Hit{}, err
	}
	return Hit{
		Scaffold: fields[targetNameField],
		Query:    fields[queryNameField],

		// nhmmer reports one-based alignment coordinates.
		Start: feat.OneToZero(start),
		End:   feat.OneToZero(end),

		Score: score,
	}, nil
}
