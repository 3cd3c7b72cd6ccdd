// Package bbgroup reads and writes basic-block partitions in the bbgroup text
// format.
//
// # Format
//
// A bbgroup file is line oriented. Blank lines and lines starting with '#'
// are ignored. A line starting with "--" selects the forest that the
// following lines populate:
//
//	--PATHINFO
//	ID:A;GROUPNAME:outer loop;NODESET:(0:1000:1010, 1:1010:1020), (2:1020:1030)
//	ID:B;NODESET:(3:1030:1040)
//	--SIMILARINFO
//	ID:similar_0;NODESET:(0:1000:1010), (3:1030:1040)
//
// Any other section name switches parsing off until PATHINFO or SIMILARINFO
// appears again. Lines before the first header belong to the path forest.
//
// Every other line defines one super group as ';'-separated KEY:VALUE fields.
// Keys are case-insensitive:
//
//   - ID: identifier
//   - GROUPNAME: display name
//   - NODESET: the node groups, see below
//   - IC, MC: instance and match counts reported by a matcher (hex)
//   - GROUPPED, SELECTED: flags, set when the value is 1
//
// Unknown keys are ignored. A NODESET value is a list of parenthesized node
// groups, each holding comma-separated nid:start:end triples with start and
// end in hexadecimal.
//
// # Recovery
//
// Structural problems never fail a read. Triples that do not scan, node ids
// already used in the same forest and unterminated groups are skipped, and
// counted in [ReadStats]. The resulting partition may have gaps; pass it
// through [groupman.Sanitize] before building a collapsed graph.
//
// Only I/O failures are reported as errors. [Read] and [Import] always build a
// fresh [groupman.Manager], so a failed reload leaves the caller's current
// partition untouched.
//
// # Writing
//
// [Write] emits the path forest only. [WriteForests] also emits the similar
// forest. Output is not byte-identical to hand-edited input but preserves
// the super group, node group and node def structure:
//
//	m, _ := bbgroup.Import("sub_401000.bbgroup")
//	_ = bbgroup.Export(m, "copy.bbgroup")
package bbgroup
