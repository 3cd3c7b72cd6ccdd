package groupman_test

import (
	"fmt"

	"github.com/matzehuels/graphslick/pkg/groupman"
)

func ExampleManager_FindNodeIDLoc() {
	// One super group "A" holding blocks 0 and 1 in a single node group
	m := groupman.New()
	sg := m.AddSuperGroup(groupman.PathForest, groupman.SuperRef{})
	m.SetInfo(sg, groupman.SuperInfo{ID: "A"})
	g := m.AddNodeGroup(sg)
	m.AddNode(g, groupman.NodeDef{NID: 0, Start: 0x1000, End: 0x1010})
	m.AddNode(g, groupman.NodeDef{NID: 1, Start: 0x1010, End: 0x1020})
	m.InitializeLookups()

	loc, _ := m.FindNodeIDLoc(1)
	info, _ := m.Info(loc.Super)
	fmt.Println("Super group:", info.ID)
	fmt.Println("Group members:", m.GroupNIDs(loc.Group))
	fmt.Printf("Block range: %#x-%#x\n", loc.Def.Start, loc.Def.End)
	// Output:
	// Super group: A
	// Group members: [0 1]
	// Block range: 0x1010-0x1020
}

func ExampleManager_CombineGroups() {
	m := groupman.New()
	var groups []groupman.GroupRef
	for i, nids := range [][]int{{0, 1, 2}, {3, 4}} {
		sg := m.AddSuperGroup(groupman.PathForest, groupman.SuperRef{})
		m.SetInfo(sg, groupman.SuperInfo{ID: fmt.Sprint(i)})
		g := m.AddNodeGroup(sg)
		for _, nid := range nids {
			m.AddNode(g, groupman.NodeDef{NID: nid})
		}
		groups = append(groups, g)
	}

	dst, _ := m.CombineGroups(groups)
	fmt.Println("Combined:", m.GroupNIDs(dst))
	fmt.Println("Super groups left:", len(m.SuperGroups(groupman.PathForest)))
	// Output:
	// Combined: [0 1 2 3 4]
	// Super groups left: 1
}

type ranges [][2]uint64

func (r ranges) Size() int { return len(r) }

func (r ranges) Bounds(n int) (uint64, uint64) { return r[n][0], r[n][1] }

func ExampleSanitize() {
	fc := ranges{{0x10, 0x20}, {0x20, 0x30}, {0x30, 0x40}, {0x40, 0x50}}

	// The loaded partition only covers blocks 0 and 1
	m := groupman.New()
	g := m.AddNodeGroup(m.AddSuperGroup(groupman.PathForest, groupman.SuperRef{}))
	m.AddNode(g, groupman.NodeDef{NID: 0, Start: 0x10, End: 0x20})
	m.AddNode(g, groupman.NodeDef{NID: 1, Start: 0x20, End: 0x30})
	m.InitializeLookups()

	orphan, _ := groupman.Sanitize(m, fc)
	m.InitializeLookups()

	info, _ := m.Info(orphan)
	fmt.Println("Orphan group:", info.ID)
	for _, og := range m.Groups(orphan) {
		fmt.Println("  members:", m.GroupNIDs(og))
	}
	// Output:
	// Orphan group: orphan_nodes
	//   members: [2]
	//   members: [3]
}
