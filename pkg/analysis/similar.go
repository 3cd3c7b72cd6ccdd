package analysis

import (
	"regexp"
	"slices"
	"strings"

	"lukechampine.com/blake3"

	"github.com/matzehuels/graphslick/pkg/flowchart"
)

// FingerprintFinder groups blocks whose normalized text hashes to the same
// blake3 digest. Normalization masks hexadecimal and decimal literals and
// location labels, and collapses whitespace, so blocks that differ only in
// addresses and constants match. Blocks without text are ignored.
//
// Groups with a single member are dropped. Groups are ordered by their
// first member; members keep the order of the input.
type FingerprintFinder struct{}

var (
	labelRe   = regexp.MustCompile(`\b(loc|sub|off|unk|byte|word|dword|qword)_[0-9A-Fa-f]+\b`)
	hexRe     = regexp.MustCompile(`\b(0[xX][0-9A-Fa-f]+|[0-9][0-9A-Fa-f]*h)\b`)
	decimalRe = regexp.MustCompile(`\b[0-9]+\b`)
)

// FindSimilar implements [SimilarityFinder].
func (FingerprintFinder) FindSimilar(fc *flowchart.Flowchart, nids []int) ([][]int, error) {
	if len(nids) == 0 {
		nids = make([]int, fc.Size())
		for n := range nids {
			nids[n] = n
		}
	}

	var order [][32]byte
	byDigest := make(map[[32]byte][]int)
	for _, n := range nids {
		if n < 0 || n >= fc.Size() || fc.Blocks[n].Text == "" {
			continue
		}
		d := Fingerprint(fc.Blocks[n].Text)
		if _, ok := byDigest[d]; !ok {
			order = append(order, d)
		}
		if !slices.Contains(byDigest[d], n) {
			byDigest[d] = append(byDigest[d], n)
		}
	}

	var groups [][]int
	for _, d := range order {
		if members := byDigest[d]; len(members) > 1 {
			groups = append(groups, members)
		}
	}
	return groups, nil
}

// Fingerprint returns the blake3 digest of the normalized form of text.
func Fingerprint(text string) [32]byte {
	return blake3.Sum256([]byte(Normalize(text)))
}

// Normalize masks literals and labels in disassembly text and collapses
// whitespace.
func Normalize(text string) string {
	s := labelRe.ReplaceAllString(text, "${1}_#")
	s = hexRe.ReplaceAllString(s, "#")
	s = decimalRe.ReplaceAllString(s, "#")

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if f := strings.Fields(line); len(f) > 0 {
			out = append(out, strings.Join(f, " "))
		}
	}
	return strings.Join(out, "\n")
}
