// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// rename does name mangling on extracted hit alignments and the trees
// built from them.
//
// For .fasta files, hit IDs of the form accession|locus|scaffold|start|end
// are rewritten to accession-scaffold-start-end. For .treefile files, the
// locus and hit suffix of deduplicated tip labels is removed. The result
// is written to <out>/<locus>-renamed.<ext>, where locus is the input
// file name prefix before the first hyphen.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/phylomine/phylomine/tree"
)

var (
	in     = flag.String("f", "", "input fasta or treefile (required)")
	outDir = flag.String("d", "", "output directory (required)")
	width  = flag.Int("width", 60, "fasta line width")
)

var errUnknownType = errors.New("file type not recognized")

func main() {
	flag.Parse()
	if *in == "" || *outDir == "" {
		flag.Usage()
		os.Exit(1)
	}
	out, err := rename(*in, *outDir, *width)
	if err != nil {
		log.Fatalf("failed to rename %q: %v", *in, err)
	}
	log.Printf("wrote %q", out)
}

// hitID matches the composite ID of an extracted hit.
var hitID = regexp.MustCompile(`([A-Za-z0-9_]+\.\d+)\|[^|]+\|([A-Za-z0-9_.]+)\|(\d+)\|(\d+)`)

func mangle(s string) string {
	return hitID.ReplaceAllString(s, "${1}-${2}-${3}-${4}")
}

func rename(path, outDir string, width int) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	var fn func(io.Reader, io.Writer) error
	switch ext {
	case "fasta":
		fn = func(r io.Reader, w io.Writer) error { return renameFasta(r, w, width) }
	case "treefile":
		fn = renameTree
	default:
		return "", fmt.Errorf("%w: %q", errUnknownType, ext)
	}

	locus := strings.Split(filepath.Base(path), "-")[0]
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	out := filepath.Join(outDir, locus+"-renamed."+ext)
	o, err := os.Create(out)
	if err != nil {
		return "", err
	}
	err = fn(f, o)
	if err != nil {
		o.Close()
		os.Remove(out)
		return "", err
	}
	return out, o.Close()
}

func renameFasta(r io.Reader, w io.Writer, width int) error {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		s.ID = mangle(s.ID)
		s.Desc = mangle(s.Desc)
		_, err := fmt.Fprintf(w, "%*a\n", width, s)
		if err != nil {
			return err
		}
	}
	return sc.Error()
}

func renameTree(r io.Reader, w io.Writer) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, tree.Strip(string(b), tree.LegacyClutter))
	return err
}
