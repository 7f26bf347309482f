package grammar

import "github.com/lk16/peggen"

// rawTree holds the file name, text and token array of one grammar file,
// the data needed to read back a parse-tree leaf's covered text, so the
// translator can walk Nodes without re-threading those three values
// through every call.
type rawTree struct {
	file   string
	text   string
	tokens []peggen.Token
}

func (t *rawTree) lexeme(n *peggen.Node) string {
	tok := t.tokens[n.Offset]
	return t.text[tok.Offset:tok.End()]
}

func (t *rawTree) offset(n *peggen.Node) int {
	return t.tokens[n.Offset].Offset
}

// labelOf returns a node's label as a string, or "" for an unlabeled node
// (which pass 1 should have already eliminated everywhere but the root's
// immediate call site, so callers of labelOf always expect a label).
func labelOf(n *peggen.Node) string {
	if n.Label == nil {
		return ""
	}
	return n.Label.String()
}

// childrenLabeled returns n's direct children whose label equals label,
// preserving order.
func childrenLabeled(n *peggen.Node, label string) []*peggen.Node {
	var out []*peggen.Node
	for _, c := range n.Children {
		if labelOf(c) == label {
			out = append(out, c)
		}
	}
	return out
}

// soleChild returns n's only child, panicking if there isn't exactly one —
// every call site names a non-terminal whose bootstrap rule guarantees
// arity, so a mismatch means the bootstrap grammar and this walker have
// drifted apart.
func soleChild(n *peggen.Node) *peggen.Node {
	if len(n.Children) != 1 {
		panic("grammar: bootstrap/walker arity mismatch for " + labelOf(n))
	}
	return n.Children[0]
}
