package flowchart

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/graphslick/pkg/errors"
)

// diamond is 0 -> {1, 2} -> 3 with a back edge 3 -> 0 and a self loop on 2.
func diamond(t *testing.T) *Flowchart {
	t.Helper()
	fc, err := New("sub_1000", 0, []Block{
		{Start: 0x1000, End: 0x1010, Succs: []int{1, 2}, Text: "cmp eax, 0\n"},
		{Start: 0x1010, End: 0x1020, Succs: []int{3}},
		{Start: 0x1020, End: 0x1030, Succs: []int{2, 3}},
		{Start: 0x1030, End: 0x1040, Succs: []int{0}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return fc
}

func TestNew(t *testing.T) {
	fc := diamond(t)
	if fc.Start != 0x1000 {
		t.Errorf("Start = %#x, want first block start", fc.Start)
	}
	if fc.Size() != 4 || fc.EdgeCount() != 6 {
		t.Errorf("Size, EdgeCount = %d, %d; want 4, 6", fc.Size(), fc.EdgeCount())
	}
	if fc.NSucc(0) != 2 || fc.Succ(0, 1) != 2 {
		t.Errorf("successors of 0 = %v", fc.Blocks[0].Succs)
	}
	if s, e := fc.Bounds(2); s != 0x1020 || e != 0x1030 {
		t.Errorf("Bounds(2) = %#x, %#x", s, e)
	}
	if got := fc.Preds(3); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Preds(3) = %v, want [1 2]", got)
	}
	if got := fc.Preds(2); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Preds(2) = %v, want [0 2]", got)
	}
	if n, ok := fc.BlockAt(0x1030); !ok || n != 3 {
		t.Errorf("BlockAt(0x1030) = %d, %v", n, ok)
	}
	if _, ok := fc.BlockAt(0x1031); ok {
		t.Error("BlockAt inside a block should miss")
	}
	if got := fc.String(); got != "sub_1000 (4 blocks)" {
		t.Errorf("String = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
	}{
		{"SuccessorOutOfRange", []Block{{Start: 0, End: 1, Succs: []int{1}}}},
		{"NegativeSuccessor", []Block{{Start: 0, End: 1, Succs: []int{-1}}}},
		{"EndBeforeStart", []Block{{Start: 0x10, End: 0x8}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("", 0, tt.blocks)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("New error = %v, want %v", err, errors.ErrCodeInvalidInput)
			}
		})
	}

	if _, err := New("empty", 0, nil); err != nil {
		t.Errorf("empty flowchart: %v", err)
	}
}

func TestDirected(t *testing.T) {
	g := diamond(t).Directed()

	if got := g.Nodes().Len(); got != 4 {
		t.Errorf("nodes = %d, want 4", got)
	}
	if !g.HasEdgeFromTo(3, 0) {
		t.Error("missing back edge 3 -> 0")
	}
	if g.HasEdgeFromTo(2, 2) {
		t.Error("self loop should be dropped")
	}
	if got := g.Edges().Len(); got != 5 {
		t.Errorf("edges = %d, want 5", got)
	}
}

func TestTextRenderer(t *testing.T) {
	r := NewTextRenderer(diamond(t))

	if got := r.Render(0x1000, 0x1010); got != "cmp eax, 0\n" {
		t.Errorf("Render(block 0) = %q", got)
	}
	if got := r.Render(0x1010, 0x1020); got != "loc_1010\n" {
		t.Errorf("Render(block without text) = %q", got)
	}
	if got := r.Render(0x9999, 0x99a0); got != "loc_9999\n" {
		t.Errorf("Render(unknown) = %q", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	fc := diamond(t)

	var buf bytes.Buffer
	if err := WriteJSON(fc, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if back.Name != fc.Name || back.Start != fc.Start || back.Size() != fc.Size() {
		t.Fatalf("header changed: %v -> %v", fc, back)
	}
	for n := range fc.Blocks {
		a, b := fc.Blocks[n], back.Blocks[n]
		if a.Start != b.Start || a.End != b.End || a.Text != b.Text || !slices.Equal(a.Succs, b.Succs) {
			t.Errorf("block %d: %+v -> %+v", n, a, b)
		}
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Malformed", `{"blocks": [`},
		{"BadSuccessor", `{"blocks": [{"start": 0, "end": 16, "succs": [4]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ReadJSON error = %v, want %v", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestImportExportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fc.json")

	if err := ExportJSON(diamond(t), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	fc, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if fc.Size() != 4 {
		t.Errorf("Size = %d, want 4", fc.Size())
	}

	if _, err := ImportJSON(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file: %v", err)
	}
}
