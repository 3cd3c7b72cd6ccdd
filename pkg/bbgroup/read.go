package bbgroup

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/graphslick/pkg/errors"
	"github.com/matzehuels/graphslick/pkg/groupman"
)

// Field keys.
const (
	keyID         = "ID"
	keyGroupName  = "GROUPNAME"
	keyNodeSet    = "NODESET"
	keyInstCount  = "IC"
	keyMatchCount = "MC"
	keyGrouped    = "GROUPPED"
	keySelected   = "SELECTED"
)

// maxLineSize bounds a single line; very large functions produce long
// NODESET values.
const maxLineSize = 16 << 20

// ReadStats counts what a read recovered from.
type ReadStats struct {
	Lines          int // Lines that defined a super group
	SuperGroups    [2]int
	NodeDefs       int
	SkippedLines   int // Lines inside an unknown section
	UnknownKeys    int
	BadFields      int // Fields without ':' or with an unparsable number
	BadTriples     int
	DuplicateNIDs  int
	UnmatchedParen int
}

// Recovered reports whether any fragment was skipped.
func (s ReadStats) Recovered() bool {
	return s.BadFields+s.BadTriples+s.DuplicateNIDs+s.UnmatchedParen > 0
}

// Read parses a bbgroup document from r into a fresh, indexed Manager.
func Read(r io.Reader) (*groupman.Manager, error) {
	m, _, err := ReadWithStats(r)
	return m, err
}

// ReadWithStats is [Read] that also reports recovery statistics.
func ReadWithStats(r io.Reader) (*groupman.Manager, ReadStats, error) {
	p := parser{m: groupman.New()}
	p.seen[groupman.PathForest] = make(map[int]bool)
	p.seen[groupman.SimilarForest] = make(map[int]bool)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		p.line(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, p.stats, errors.Wrap(errors.ErrCodeInvalidInput, err, "read bbgroup")
	}

	p.m.InitializeLookups()
	return p.m, p.stats, nil
}

// Import reads the bbgroup file at path. The file name is recorded as the
// Manager's source file.
func Import(path string) (*groupman.Manager, error) {
	m, _, err := ImportWithStats(path)
	return m, err
}

// ImportWithStats is [Import] that also reports recovery statistics.
func ImportWithStats(path string) (*groupman.Manager, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	m, stats, err := ReadWithStats(f)
	if err != nil {
		return nil, stats, err
	}
	m.SetSourceFile(path)
	return m, stats, nil
}

type parser struct {
	m        *groupman.Manager
	forest   groupman.Forest
	disabled bool
	seen     [2]map[int]bool
	stats    ReadStats
}

// superDef is one parsed line before it is committed to the manager.
type superDef struct {
	info   groupman.SuperInfo
	groups [][]groupman.NodeDef
	fields int
}

func (p *parser) line(s string) {
	s = strings.TrimSuffix(s, "\r")
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}
	if name, ok := strings.CutPrefix(trimmed, "--"); ok {
		p.section(strings.TrimSpace(name))
		return
	}
	if p.disabled {
		p.stats.SkippedLines++
		return
	}

	def := p.fields(s)
	if def.fields == 0 {
		return
	}
	p.commit(def)
}

func (p *parser) section(name string) {
	switch {
	case strings.EqualFold(name, groupman.PathForest.String()):
		p.forest, p.disabled = groupman.PathForest, false
	case strings.EqualFold(name, groupman.SimilarForest.String()):
		p.forest, p.disabled = groupman.SimilarForest, false
	default:
		p.disabled = true
	}
}

func (p *parser) fields(s string) superDef {
	var def superDef
	for _, tok := range strings.Split(s, ";") {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		key, val, ok := strings.Cut(tok, ":")
		if !ok {
			p.stats.BadFields++
			continue
		}
		val = strings.TrimLeft(val, " \t")

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case keyID:
			def.info.ID = val
		case keyGroupName:
			def.info.Name = val
		case keyNodeSet:
			def.groups = p.nodeSet(val)
		case keyInstCount:
			def.info.InstCount = p.hexField(val)
		case keyMatchCount:
			def.info.MatchCount = p.hexField(val)
		case keyGrouped:
			def.info.Grouped = flag(val)
		case keySelected:
			def.info.Selected = flag(val)
		default:
			p.stats.UnknownKeys++
			continue
		}
		def.fields++
	}
	return def
}

// nodeSet splits "(a, b), (c)" into node groups. An unmatched '(' ends the
// set.
func (p *parser) nodeSet(s string) [][]groupman.NodeDef {
	var groups [][]groupman.NodeDef
	for {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return groups
		}
		s = s[open+1:]
		end := strings.IndexByte(s, ')')
		if end < 0 {
			p.stats.UnmatchedParen++
			return groups
		}
		body := s[:end]
		s = s[end+1:]

		group := []groupman.NodeDef{}
		for _, tok := range strings.Split(body, ",") {
			if strings.TrimSpace(tok) == "" {
				continue
			}
			nd, ok := parseTriple(tok)
			if !ok {
				p.stats.BadTriples++
				continue
			}
			group = append(group, nd)
		}
		groups = append(groups, group)
	}
}

func (p *parser) hexField(s string) uint64 {
	v, ok := parseHex(s)
	if !ok {
		p.stats.BadFields++
	}
	return v
}

// commit creates the super group for def, dropping node ids already used in
// the current forest.
func (p *parser) commit(def superDef) {
	seen := p.seen[p.forest]
	sg := p.m.NewSuperGroup(def.info)
	for _, defs := range def.groups {
		g := p.m.AddNodeGroup(sg)
		for _, nd := range defs {
			if seen[nd.NID] {
				p.stats.DuplicateNIDs++
				continue
			}
			seen[nd.NID] = true
			p.m.AddNode(g, nd)
			p.stats.NodeDefs++
		}
	}
	p.m.AddSuperGroup(p.forest, sg)
	p.stats.Lines++
	p.stats.SuperGroups[p.forest]++
}

// parseTriple scans "nid : start : end". Spaces around the separators and a
// 0x prefix on the addresses are accepted.
func parseTriple(s string) (groupman.NodeDef, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return groupman.NodeDef{}, false
	}
	nid, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || nid < 0 {
		return groupman.NodeDef{}, false
	}
	start, ok := parseHex(parts[1])
	if !ok {
		return groupman.NodeDef{}, false
	}
	end, ok := parseHex(parts[2])
	if !ok {
		return groupman.NodeDef{}, false
	}
	return groupman.NodeDef{NID: nid, Start: start, End: end}, true
}

func parseHex(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func flag(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n == 1
}
