// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hits

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/io/featio/gff"
)

// Writer writes extracted hits as FASTA records.
type Writer struct {
	w     io.Writer
	width int
}

// NewWriter returns a Writer that writes to w wrapping sequence lines
// at width columns. If width is not positive, lines are wrapped at 60
// columns.
func NewWriter(w io.Writer, width int) *Writer {
	if width <= 0 {
		width = 60
	}
	return &Writer{w: w, width: width}
}

// Write writes f as a FASTA record.
func (w *Writer) Write(f Filtered) error {
	_, err := fmt.Fprintf(w.w, "%*a\n", w.width, f.Seq)
	return err
}

// GFFWriter writes extracted hits as GFF features on their scaffold.
type GFFWriter struct {
	w      *gff.Writer
	source string
}

// NewGFFWriter returns a GFFWriter writing to w. Features are attributed
// to source.
func NewGFFWriter(w io.Writer, source string) *GFFWriter {
	return &GFFWriter{w: gff.NewWriter(w, 60, true), source: source}
}

// Write writes the scaffold region of f as a GFF feature.
func (w *GFFWriter) Write(f Filtered) error {
	h := f.Hit
	score := h.Score
	_, err := w.w.Write(&gff.Feature{
		SeqName:    h.Scaffold,
		Source:     w.source,
		Feature:    "hit",
		FeatStart:  f.Start,
		FeatEnd:    f.End,
		FeatScore:  &score,
		FeatStrand: h.Strand(),
		FeatFrame:  gff.NoFrame,
		FeatAttributes: gff.Attributes{
			{Tag: "Query", Value: h.Query},
			{Tag: "Name", Value: f.Seq.ID},
		},
	})
	return err
}
