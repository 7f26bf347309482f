package grammar

import "github.com/lk16/peggen"

// translator walks the bootstrap-grammar parse tree of one grammar file and
// builds up the terminal/non-terminal rule tables for it. An inline literal
// appearing anywhere in a non-terminal's body is interned as an anonymous
// terminal keyed by its own text, so two appearances of the same literal
// resolve to the same TerminalRule. A regex is only well-formed as the
// entire body of an @token entry, so it never goes through interning — it
// is keyed by the declared name instead (translateTerminalBody).
type translator struct {
	tree *rawTree

	terminalKinds   []peggen.TokenKind
	terminalRules   map[peggen.TokenKind]peggen.TerminalRule
	prunedTerminals map[peggen.TokenKind]bool
	terminalNames   map[string]bool // names declared via an @token entry

	nonTerminalNames []string
	nonTerminalSet   map[string]bool // == set of nonTerminalNames, for O(1) lookup
	nonTerminalRules map[string]peggen.Expr
	prunedNonTerms   map[string]bool
}

func newTranslator(tree *rawTree) *translator {
	return &translator{
		tree:             tree,
		terminalRules:    make(map[peggen.TokenKind]peggen.TerminalRule),
		prunedTerminals:  make(map[peggen.TokenKind]bool),
		terminalNames:    make(map[string]bool),
		nonTerminalSet:   make(map[string]bool),
		nonTerminalRules: make(map[string]peggen.Expr),
		prunedNonTerms:   make(map[string]bool),
	}
}

// internLiteral registers (or reuses) the anonymous terminal for a literal
// expression's unescaped text.
func (tr *translator) internLiteral(kind peggen.TokenKind, text string) {
	if _, ok := tr.terminalRules[kind]; ok {
		return
	}
	tr.terminalKinds = append(tr.terminalKinds, kind)
	tr.terminalRules[kind] = peggen.Literal(kind, text)
}

// translateExpression converts the "expression" subtree rooted at n into an
// Expr, per §4.4's translation rules. It is only ever called on a
// non-terminal's body — an @token entry's body goes through
// translateTerminalBody instead, which is why a regex leaf found here is
// always the §4.4 "non-terminal-well-formedness" violation.
func (tr *translator) translateExpression(n *peggen.Node) (peggen.Expr, error) {
	alts := childrenLabeled(n, nameConcat)
	parts := make([]peggen.Expr, 0, len(alts))
	for _, alt := range alts {
		e, err := tr.translateConcatenation(alt)
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
	}
	return peggen.Alt(parts...), nil
}

func (tr *translator) translateConcatenation(n *peggen.Node) (peggen.Expr, error) {
	atoms := childrenLabeled(n, nameAtom)
	parts := make([]peggen.Expr, 0, len(atoms))
	for _, atom := range atoms {
		e, err := tr.translateAtom(atom)
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
	}
	return peggen.Concat(parts...), nil
}

func (tr *translator) translateAtom(n *peggen.Node) (peggen.Expr, error) {
	child := soleChild(n)
	switch labelOf(child) {
	case nameTerminalExpr:
		return tr.translateTerminalExpr(child)
	case nameBracket:
		return tr.translateBracket(child)
	default:
		panic("grammar: unexpected atom child " + labelOf(child))
	}
}

func (tr *translator) translateBracket(n *peggen.Node) (peggen.Expr, error) {
	inner := childrenLabeled(n, nameExpression)[0]
	e, err := tr.translateExpression(inner)
	if err != nil {
		return nil, err
	}

	suffix := n.Children[len(n.Children)-1]
	switch labelOf(suffix) {
	case "RPAREN":
		return e, nil
	case "RPAREN_STAR":
		return peggen.Repeat(0, e), nil
	case "RPAREN_PLUS":
		return peggen.OnceOrMore(e), nil
	case "RPAREN_QUESTION":
		return peggen.Optional(e), nil
	default:
		panic("grammar: unexpected bracket suffix " + labelOf(suffix))
	}
}

// translateTerminalExpr translates a terminal_expr found inside a
// non-terminal's body. A regex_expr is only well-formed as the entire body
// of an @token entry (handled by translateTerminalBody), so finding one
// here is always the §4.4 "regex in non-terminal" violation.
func (tr *translator) translateTerminalExpr(n *peggen.Node) (peggen.Expr, error) {
	child := soleChild(n)
	switch labelOf(child) {
	case "TOKEN_NAME":
		return tr.translateNameRef(child)
	case "LITERAL_EXPRESSION":
		text, err := unquote(tr.tree.lexeme(child))
		if err != nil {
			return nil, &peggen.InvalidRuleBodyError{
				File: tr.tree.file, Text: tr.tree.text, Offset: tr.tree.offset(child),
				Name: tr.tree.lexeme(child), Violation: peggen.RuleBodyViolation("malformed-literal"),
			}
		}
		kind := peggen.TokenKind(text)
		tr.internLiteral(kind, text)
		return peggen.Term(kind), nil
	case nameRegexExpr:
		return nil, &peggen.InvalidRuleBodyError{
			File: tr.tree.file, Text: tr.tree.text, Offset: tr.tree.offset(child),
			Violation: peggen.ViolationRegexInNonTerminal,
		}
	default:
		panic("grammar: unexpected terminal_expr child " + labelOf(child))
	}
}

// translateNameRef resolves a bare NAME reference: a declared terminal
// wins over a declared non-terminal of the same name (an Open Question in
// the source spec; decision recorded in DESIGN.md). Both declaration sets
// are fully known by the time this runs — Load translates every terminal
// entry before translating any non-terminal body.
func (tr *translator) translateNameRef(n *peggen.Node) (peggen.Expr, error) {
	name := tr.tree.lexeme(n)
	if tr.terminalNames[name] {
		return peggen.Term(peggen.TokenKind(name)), nil
	}
	if tr.nonTerminalSet[name] {
		return peggen.NonTerm(name), nil
	}
	return nil, &peggen.UnknownTokenReferenceError{
		File: tr.tree.file, Text: tr.tree.text, Offset: tr.tree.offset(n), Name: name,
	}
}

// translateTerminalBody validates and translates the body of an
// @token-decorated entry: it must be a single literal or a single regex
// expression, no composition permitted (§4.4 terminal-well-formedness).
// Unlike an inline literal/regex inside another rule's body, the resulting
// TerminalRule's kind is the declared name itself, not an interned
// anonymous kind.
func (tr *translator) translateTerminalBody(exprNode *peggen.Node, name string, offset int) (peggen.TerminalRule, error) {
	violation := func() (peggen.TerminalRule, error) {
		return nil, &peggen.InvalidRuleBodyError{
			File: tr.tree.file, Text: tr.tree.text, Offset: offset,
			Name: name, Violation: peggen.ViolationCompositionInTerminal,
		}
	}

	alts := childrenLabeled(exprNode, nameConcat)
	if len(alts) != 1 {
		return violation()
	}
	atoms := childrenLabeled(alts[0], nameAtom)
	if len(atoms) != 1 {
		return violation()
	}
	body := soleChild(atoms[0])
	if labelOf(body) != nameTerminalExpr {
		return violation()
	}
	leaf := soleChild(body)

	switch labelOf(leaf) {
	case "LITERAL_EXPRESSION":
		text, err := unquote(tr.tree.lexeme(leaf))
		if err != nil {
			return nil, &peggen.InvalidRuleBodyError{
				File: tr.tree.file, Text: tr.tree.text, Offset: tr.tree.offset(leaf),
				Name: name, Violation: peggen.RuleBodyViolation("malformed-literal"),
			}
		}
		return peggen.Literal(peggen.TokenKind(name), text), nil
	case nameRegexExpr:
		litNode := childrenLabeled(leaf, "LITERAL_EXPRESSION")[0]
		source, err := unquote(tr.tree.lexeme(litNode))
		if err != nil {
			return nil, &peggen.InvalidRuleBodyError{
				File: tr.tree.file, Text: tr.tree.text, Offset: tr.tree.offset(litNode),
				Name: name, Violation: peggen.RuleBodyViolation("malformed-literal"),
			}
		}
		rule, err := peggen.Regex(peggen.TokenKind(name), source)
		if err != nil {
			return nil, &peggen.InvalidRuleBodyError{
				File: tr.tree.file, Text: tr.tree.text, Offset: offset,
				Name: name, Violation: peggen.RuleBodyViolation("invalid-regex: " + err.Error()),
			}
		}
		return rule, nil
	case "TOKEN_NAME":
		return violation()
	default:
		panic("grammar: unexpected terminal_expr leaf " + labelOf(leaf))
	}
}
