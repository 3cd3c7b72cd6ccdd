package bbgroup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/graphslick/pkg/errors"
	"github.com/matzehuels/graphslick/pkg/groupman"
)

// Write emits the path forest of m in bbgroup format.
func Write(w io.Writer, m *groupman.Manager) error {
	return WriteForests(w, m, groupman.PathForest)
}

// WriteForests emits the given forests of m, each under its own section
// header. Synthetic super groups are written like any other so that a
// sanitized partition can be saved and reloaded.
//
// Identifiers and names are validated before anything is written; a value
// that would break the line structure fails with an INVALID_FIELD error.
func WriteForests(w io.Writer, m *groupman.Manager, forests ...groupman.Forest) error {
	for _, f := range forests {
		for _, sg := range m.SuperGroups(f) {
			info, _ := m.Info(sg)
			if err := errors.ValidateFieldValue(keyID, info.ID); err != nil {
				return err
			}
			if err := errors.ValidateFieldValue(keyGroupName, info.Name); err != nil {
				return err
			}
		}
	}

	bw := bufio.NewWriter(w)
	for _, f := range forests {
		fmt.Fprintf(bw, "--%s\n", f)
		for _, sg := range m.SuperGroups(f) {
			bw.WriteString(formatLine(m, sg))
			bw.WriteByte('\n')
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write bbgroup")
	}
	return nil
}

// Export writes the path forest of m to the file at path.
func Export(m *groupman.Manager, path string) error {
	return ExportForests(m, path, groupman.PathForest)
}

// ExportForests writes the given forests of m to the file at path.
func ExportForests(m *groupman.Manager, path string, forests ...groupman.Forest) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "create %s", path)
	}
	if err := WriteForests(f, m, forests...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}

func formatLine(m *groupman.Manager, sg groupman.SuperRef) string {
	info, _ := m.Info(sg)

	var b strings.Builder
	if info.ID != "" {
		fmt.Fprintf(&b, "%s:%s;", keyID, info.ID)
	}
	if info.Name != "" {
		fmt.Fprintf(&b, "%s:%s;", keyGroupName, info.Name)
	}
	if info.InstCount != 0 {
		fmt.Fprintf(&b, "%s:%x;", keyInstCount, info.InstCount)
	}
	if info.MatchCount != 0 {
		fmt.Fprintf(&b, "%s:%x;", keyMatchCount, info.MatchCount)
	}
	if info.Grouped {
		fmt.Fprintf(&b, "%s:1;", keyGrouped)
	}
	if info.Selected {
		fmt.Fprintf(&b, "%s:1;", keySelected)
	}

	b.WriteString(keyNodeSet)
	b.WriteByte(':')
	for i, g := range m.Groups(sg) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, nd := range m.GroupNodes(g) {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatNode(nd))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// FormatNode renders nd as a nid:start:end triple with lowercase hex
// addresses.
func FormatNode(nd groupman.NodeDef) string {
	return strconv.Itoa(nd.NID) + ":" + strconv.FormatUint(nd.Start, 16) + ":" + strconv.FormatUint(nd.End, 16)
}
