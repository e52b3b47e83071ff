// Copyright ©2026 The phylomine Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree renames the tips of Newick format phylogenetic trees.
package tree

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/phylomine/phylomine/taxdb"
)

// DefaultClutter matches gene name suffixes left on tip labels by the
// consensus supertree and cryptochrome gene tree pipelines.
var DefaultClutter = []*regexp.Regexp{
	regexp.MustCompile(`-[A-Za-z0-9_.]+-?\d*-\d+-\d+:`),
	regexp.MustCompile(`__g\d+_t1_ORF_\d+:`),
	regexp.MustCompile(`__TRINITY_DN\d+_c\d+_g\d+_i\d+_len_\d+_path__[\w-]+__ORF_\d+:`),
	regexp.MustCompile(`__sprottn3_rep_c\d+____cov_[\d_]+_len_\d+_gc_[\d_]+_nseq_\d+_ORF_\d+:`),
}

// LegacyClutter matches the locus and hit suffix of tip labels written
// by the deduplicating alignment pipeline.
var LegacyClutter = []*regexp.Regexp{
	regexp.MustCompile(`\|locus_E\d+-NoDups_OK\|[^:]+:`),
}

// Rename replaces every occurrence of each entry's accession number in
// text with the entry's index. Entries are applied in order, so an
// index may itself be rewritten by a later entry. Rename returns the
// renamed text and the accession numbers that were found.
func Rename(text string, entries []taxdb.Entry) (string, []string) {
	var found []string
	for _, e := range entries {
		if e.Accession == "" || !strings.Contains(text, e.Accession) {
			continue
		}
		text = strings.ReplaceAll(text, e.Accession, e.Index)
		found = append(found, e.Accession)
	}
	return text, found
}

// Strip replaces each match of patterns in text with a branch length
// separator.
func Strip(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		text = re.ReplaceAllLiteralString(text, ":")
	}
	return text
}

// AppendLog writes a genome list entry for treeFile to w.
func AppendLog(w io.Writer, treeFile string, accessions []string) error {
	quoted := make([]string, len(accessions))
	for i, a := range accessions {
		quoted[i] = "'" + a + "'"
	}
	_, err := fmt.Fprintf(w, "\n%s: %d genomes\n[%s]", treeFile, len(accessions), strings.Join(quoted, ", "))
	return err
}

// OutName returns the file name for the renamed tree of locus holding
// n genomes.
func OutName(locus string, n int) string {
	return fmt.Sprintf("%s-%d_genomes-renamed.treefile", locus, n)
}
