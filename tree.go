package peggen

// Label is a closed sum: a node is either labeled with a terminal kind, a
// non-terminal name, or carries no label at all (an intermediate node
// produced by a combinator, pending the lift-unlabeled pass). A nil Label
// is Go's native absent-value idiom for "Unlabeled" — not a sentinel layered
// on top of a concrete always-present type (§9, "Nullable-as-sentinel
// labels").
type Label interface {
	isLabel()
	String() string
}

// TerminalLabel marks a leaf node produced by TerminalExpr.
type TerminalLabel TokenKind

func (TerminalLabel) isLabel()        {}
func (l TerminalLabel) String() string { return string(l) }

// NonTerminalLabel marks a node produced by NonTerminalExpr, wrapping the
// covered range of the rule it named.
type NonTerminalLabel string

func (NonTerminalLabel) isLabel()        {}
func (l NonTerminalLabel) String() string { return string(l) }

// Node is a concrete parse tree node. It covers tokens
// [Offset, Offset+Count) of the token array. Count equals the sum of the
// children's Count for every non-leaf node, an invariant preserved by
// construction, by pass 1 and by pass 2's lift mode. DropByLabel's hard mode
// discards a subtree without adjusting the parent's Count.
type Node struct {
	Label    Label // nil => unlabeled, lifted by pass 1
	Offset   int
	Count    int
	Children []*Node
}

// End returns the exclusive end of the node's covered token range.
func (n *Node) End() int {
	return n.Offset + n.Count
}

// leaf builds a childless node covering a single token, labeled with its
// terminal kind.
func leaf(kind TokenKind, offset int) *Node {
	return &Node{Label: TerminalLabel(kind), Offset: offset, Count: 1}
}

// unlabeled builds an intermediate node, used by Concatenation/Alternation/
// Repeat/Optional to pass matched spans up to their caller before any
// non-terminal wraps them.
func unlabeled(offset, count int, children []*Node) *Node {
	return &Node{Offset: offset, Count: count, Children: children}
}

// wrapNonTerminal wraps child's covered range in a node labeled name,
// keeping child as the sole descendant — NonTerminal(n)'s semantics in
// §4.2.
func wrapNonTerminal(name string, offset, count int, child *Node) *Node {
	return &Node{
		Label:    NonTerminalLabel(name),
		Offset:   offset,
		Count:    count,
		Children: []*Node{child},
	}
}
