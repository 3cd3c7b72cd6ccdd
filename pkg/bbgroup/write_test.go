package bbgroup

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphslick/pkg/errors"
	"github.com/matzehuels/graphslick/pkg/groupman"
)

func TestWrite(t *testing.T) {
	m := groupman.New()
	sg := m.AddSuperGroup(groupman.PathForest, groupman.SuperRef{})
	m.SetInfo(sg, groupman.SuperInfo{ID: "A", Name: "outer", InstCount: 0x1f, Selected: true})
	g := m.AddNodeGroup(sg)
	m.AddNode(g, groupman.NodeDef{NID: 0, Start: 0x1000, End: 0x1010})
	m.AddNode(g, groupman.NodeDef{NID: 1, Start: 0x1010, End: 0x1020})
	m.AddNode(m.AddNodeGroup(sg), groupman.NodeDef{NID: 2, Start: 0x1020, End: 0x10AB})

	anon := m.AddSuperGroup(groupman.PathForest, groupman.SuperRef{})
	m.AddNode(m.AddNodeGroup(anon), groupman.NodeDef{NID: 3, Start: 0x10ab, End: 0x10c0})

	sim := m.AddSuperGroup(groupman.SimilarForest, groupman.SuperRef{})
	m.SetInfo(sim, groupman.SuperInfo{ID: "s0"})
	m.AddNode(m.AddNodeGroup(sim), groupman.NodeDef{NID: 0, Start: 0x1000, End: 0x1010})

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "--PATHINFO\n" +
		"ID:A;GROUPNAME:outer;IC:1f;SELECTED:1;NODESET:(0:1000:1010, 1:1010:1020), (2:1020:10ab)\n" +
		"NODESET:(3:10ab:10c0)\n"
	if buf.String() != want {
		t.Errorf("Write =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := WriteForests(&buf, m, groupman.PathForest, groupman.SimilarForest); err != nil {
		t.Fatalf("WriteForests: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "--SIMILARINFO\nID:s0;NODESET:(0:1000:1010)\n") {
		t.Errorf("similar section missing:\n%s", buf.String())
	}
}

func TestWriteRejectsBadField(t *testing.T) {
	tests := []struct {
		name string
		info groupman.SuperInfo
	}{
		{"separator in id", groupman.SuperInfo{ID: "a;b"}},
		{"newline in name", groupman.SuperInfo{ID: "A", Name: "outer\nloop"}},
		{"carriage return in id", groupman.SuperInfo{ID: "a\rb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := groupman.New()
			sg := m.AddSuperGroup(groupman.PathForest, groupman.SuperRef{})
			m.SetInfo(sg, tt.info)

			var buf bytes.Buffer
			err := Write(&buf, m)
			if !errors.Is(err, errors.ErrCodeInvalidField) {
				t.Fatalf("Write error = %v, want %v", err, errors.ErrCodeInvalidField)
			}
			if buf.Len() != 0 {
				t.Errorf("nothing should be written on validation failure, got %q", buf.String())
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := map[string]string{
		"simple": "ID:A;NODESET:(0:1000:1010, 1:1010:1020)\n",
		"sections": "--PATHINFO\n" +
			"ID:A;GROUPNAME:loop;NODESET:(0:10:20), (1:20:30, 2:30:40)\n" +
			"# comment\n" +
			"GROUPNAME:unnamed id;IC:3;MC:4;GROUPPED:1;NODESET:(3 : 0x40 : 0x50)\n" +
			"--SIMILARINFO\n" +
			"ID:s;NODESET:(0:10:20), (3:40:50)\n",
		"orphans":   "ID:orphan_nodes;NODESET:(5:a0:b0), (6:b0:c0)\n",
		"hash id":   "ID:#1;NODESET:(0:1000:1010)\n",
		"dash id":   "ID:--x;NODESET:(0:1000:1010)\n",
		"tab name":  "ID:A;GROUPNAME:outer\tloop;NODESET:(0:1000:1010)\n",
		"long name": "ID:A;GROUPNAME:" + strings.Repeat("n", 300) + ";NODESET:(0:1000:1010)\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			first, err := Read(strings.NewReader(input))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			var buf bytes.Buffer
			if err := Write(&buf, first); err != nil {
				t.Fatalf("Write: %v", err)
			}
			second, err := Read(&buf)
			if err != nil {
				t.Fatalf("re-Read: %v", err)
			}

			if a, b := layout(first, groupman.PathForest), layout(second, groupman.PathForest); !equalLayout(a, b) {
				t.Errorf("layout changed: %v -> %v", a, b)
			}
			walkA := defs(first)
			walkB := defs(second)
			if len(walkA) != len(walkB) {
				t.Fatalf("node defs = %d -> %d", len(walkA), len(walkB))
			}
			for i := range walkA {
				if walkA[i] != walkB[i] {
					t.Errorf("def %d: %+v -> %+v", i, walkA[i], walkB[i])
				}
			}
			sgA, sgB := first.SuperGroups(groupman.PathForest), second.SuperGroups(groupman.PathForest)
			for i := range sgA {
				a, _ := first.Info(sgA[i])
				b, _ := second.Info(sgB[i])
				if a != b {
					t.Errorf("info %d: %+v -> %+v", i, a, b)
				}
			}
		})
	}
}

func defs(m *groupman.Manager) []groupman.NodeDef {
	var out []groupman.NodeDef
	m.Walk(groupman.PathForest, func(_ groupman.SuperRef, _ groupman.GroupRef, _ groupman.NodeRef, nd groupman.NodeDef) bool {
		out = append(out, nd)
		return true
	})
	return out
}

func TestExport(t *testing.T) {
	m, err := Read(strings.NewReader("ID:A;NODESET:(0:10:20)\n"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.bbgroup")
	if err := Export(m, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "--PATHINFO\nID:A;NODESET:(0:10:20)\n" {
		t.Errorf("file = %q", data)
	}

	err = Export(m, filepath.Join(t.TempDir(), "missing", "out.bbgroup"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Export into a missing directory: %v", err)
	}
}
