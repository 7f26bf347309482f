package peggen

import "sort"

// matchResult is the purely-functional replacement for exception-based
// control flow inside combinators (§9): every combinator returns one of
// "matched N tokens, producing node" or "failed at offset". Alternation,
// Optional and Repeat branch on ok; no unwinding machinery is required.
type matchResult struct {
	ok     bool
	n      int // tokens consumed
	node   *Node
	offset int // only meaningful when !ok
}

func matched(n int, node *Node) matchResult {
	return matchResult{ok: true, n: n, node: node}
}

func failed(offset int) matchResult {
	return matchResult{ok: false, offset: offset}
}

// parser carries the per-call state shared by every recursion frame: the
// rule map, the token array, and original text (for diagnostics only). No
// field is mutated by a recursive call except through its own return value
// — the token cursor is always passed and returned explicitly as "at".
type parser struct {
	file    string
	text    string
	tokens  []Token
	ruleMap map[string]Expr
}

// Parse is the interpreter's public entry point (§4.2). ruleMap's key set
// must equal declaredNonTerminals and must contain root; this is validated
// before any recursion starts. The returned tree has already had pass 1
// (LiftUnlabeled) applied, so it holds no unlabeled combinator nodes; pass 2
// (DropByLabel) is left to the caller, which holds the pruned label set.
func Parse(file, text string, tokens []Token, ruleMap map[string]Expr, declaredNonTerminals map[string]bool, root string) (*Node, error) {
	if err := validateNonTerminalRules(ruleMap, declaredNonTerminals, root); err != nil {
		return nil, err
	}

	p := &parser{file: file, text: text, tokens: tokens, ruleMap: ruleMap}
	result := p.execNonTerminal(root, 0)
	if !result.ok {
		return nil, &ParseError{File: file, Text: text, Offset: result.offset}
	}

	// Completeness check (§4.2): the root must cover every token.
	if result.n != len(tokens) {
		return nil, &ParseError{File: file, Text: text, Offset: p.offsetAt(result.n)}
	}

	return LiftUnlabeled(result.node), nil
}

// offsetAt returns the byte offset of token index at, or the end of the
// last token (or 0) if at is past the end — the "end-of-input" rule in
// §4.2 used both for normal failures and the completeness check.
func (p *parser) offsetAt(at int) int {
	if at < len(p.tokens) {
		return p.tokens[at].Offset
	}
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].End()
}

// exec dispatches on the expression variant, the single match-per-frame
// replacement for the source's dynamic-dispatch subclasses (§9).
func (p *parser) exec(e Expr, at int) matchResult {
	switch e := e.(type) {
	case *TerminalExpr:
		return p.execTerminal(e, at)
	case *NonTerminalExpr:
		return p.execNonTerminal(e.Name, at)
	case *ConcatExpr:
		return p.execConcat(e, at)
	case *AltExpr:
		return p.execAlt(e, at)
	case *RepeatExpr:
		return p.execRepeat(e, at)
	case *OptionalExpr:
		return p.execOptional(e, at)
	default:
		panic(errorCornerCase)
	}
}

func (p *parser) execTerminal(e *TerminalExpr, at int) matchResult {
	if at >= len(p.tokens) || p.tokens[at].Kind != e.Kind {
		return failed(p.offsetAt(at))
	}
	return matched(1, leaf(e.Kind, at))
}

func (p *parser) execNonTerminal(name string, at int) matchResult {
	rule, ok := p.ruleMap[name]
	if !ok {
		panic(errorCornerCase) // validated at Parse entry; unreachable
	}
	r := p.exec(rule, at)
	if !r.ok {
		return r
	}
	return matched(r.n, wrapNonTerminal(name, at, r.n, r.node))
}

func (p *parser) execConcat(e *ConcatExpr, at int) matchResult {
	children := make([]*Node, 0, len(e.Subs))
	cur := at
	for _, sub := range e.Subs {
		r := p.exec(sub, cur)
		if !r.ok {
			return r
		}
		children = append(children, r.node)
		cur += r.n
	}
	return matched(cur-at, unlabeled(at, cur-at, children))
}

func (p *parser) execAlt(e *AltExpr, at int) matchResult {
	for _, sub := range e.Subs {
		if r := p.exec(sub, at); r.ok {
			return r
		}
	}
	return failed(p.offsetAt(at))
}

func (p *parser) execRepeat(e *RepeatExpr, at int) matchResult {
	var children []*Node
	cur := at
	count := 0
	for {
		r := p.exec(e.Sub, cur)
		if !r.ok {
			break
		}
		children = append(children, r.node)
		cur += r.n
		count++
	}
	if count < e.Min {
		return failed(p.offsetAt(at)) // fails at the original offset, per §4.2
	}
	return matched(cur-at, unlabeled(at, cur-at, children))
}

func (p *parser) execOptional(e *OptionalExpr, at int) matchResult {
	r := p.exec(e.Sub, at)
	if !r.ok {
		return matched(0, unlabeled(at, 0, nil))
	}
	return matched(r.n, unlabeled(at, r.n, []*Node{r.node}))
}

// validateNonTerminalRules checks the rule map's key set against
// declaredNonTerminals and confirms the root key is present.
func validateNonTerminalRules(ruleMap map[string]Expr, declaredNonTerminals map[string]bool, root string) error {
	var missing, unexpected []string
	for name := range declaredNonTerminals {
		if _, ok := ruleMap[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range ruleMap {
		if !declaredNonTerminals[name] {
			unexpected = append(unexpected, name)
		}
	}
	_, hasRoot := ruleMap[root]

	if len(missing) == 0 && len(unexpected) == 0 && hasRoot {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(unexpected)
	return &NonTerminalRuleSetError{Missing: missing, Unexpected: unexpected, MissingRoot: !hasRoot}
}
