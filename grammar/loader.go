package grammar

import "github.com/lk16/peggen"

// RuleSet is the translated, ready-to-execute form of one grammar file: an
// ordered terminal rule table plus a non-terminal rule map, exactly what
// peggen.Tokenize and peggen.Parse need (§3 "Non-terminal rule set").
type RuleSet struct {
	Root string

	TerminalKinds   []peggen.TokenKind // declaration/first-appearance order
	TerminalRules   []peggen.TerminalRule
	PrunedTerminals map[peggen.TokenKind]bool

	NonTerminalNames []string // declaration order
	NonTerminalRules map[string]peggen.Expr
	PrunedNonTerms   map[string]bool
}

// nameRootUser is the distinguished start-symbol name every loaded user
// grammar must declare (§3's "contains a distinguished ROOT key").
const nameRootUser = "ROOT"

// DeclaredTerminalKinds returns the set peggen.Tokenize validates the
// terminal rule list against.
func (rs *RuleSet) DeclaredTerminalKinds() map[peggen.TokenKind]bool {
	declared := make(map[peggen.TokenKind]bool, len(rs.TerminalKinds))
	for _, k := range rs.TerminalKinds {
		declared[k] = true
	}
	return declared
}

// DeclaredNonTerminals returns the set peggen.Parse validates the rule map
// against.
func (rs *RuleSet) DeclaredNonTerminals() map[string]bool {
	declared := make(map[string]bool, len(rs.NonTerminalNames))
	for _, n := range rs.NonTerminalNames {
		declared[n] = true
	}
	return declared
}

// Parse is the "interpret directly" execution path (§1): tokenize text
// against rs's terminal rules, run the recursive-descent interpreter
// against rs's non-terminal rules, then apply both pruning passes.
func (rs *RuleSet) Parse(file, text string) ([]peggen.Token, *peggen.Node, error) {
	tokens, err := peggen.Tokenize(file, text, rs.TerminalRules, rs.DeclaredTerminalKinds(), rs.PrunedTerminals)
	if err != nil {
		return nil, nil, err
	}

	tree, err := peggen.Parse(file, text, tokens, rs.NonTerminalRules, rs.DeclaredNonTerminals(), rs.Root)
	if err != nil {
		return tokens, nil, err
	}

	tree = peggen.LiftUnlabeled(tree)
	tree = peggen.DropByLabel(tree, rs.PrunedNonTerms, false)
	return tokens, tree, nil
}

// bootstrapRuleSet packages the hard-coded grammar-of-grammars as a
// RuleSet, so Load can reuse RuleSet.Parse to read a .grammar file instead
// of hand-rolling a second tokenize+parse call (§4.4 "Grammar-of-grammars
// bootstrap").
func bootstrapRuleSet() *RuleSet {
	rules := bootstrapTerminalRules()
	kinds := make([]peggen.TokenKind, len(rules))
	for i, r := range rules {
		kinds[i] = r.Kind()
	}

	nonTerms := bootstrapNonTerminalRules()
	names := make([]string, 0, len(nonTerms))
	for name := range nonTerms {
		names = append(names, name)
	}

	return &RuleSet{
		Root:             nameRoot,
		TerminalKinds:    kinds,
		TerminalRules:    rules,
		PrunedTerminals:  bootstrapPrunedTerminals(),
		NonTerminalNames: names,
		NonTerminalRules: nonTerms,
		PrunedNonTerms:   map[string]bool{},
	}
}

// entryInfo is one "entry" of a grammar file, pulled out of the bootstrap
// parse tree before any translation happens.
type entryInfo struct {
	name       string
	offset     int
	exprNode   *peggen.Node
	isTerminal bool
	isPruned   bool
}

func collectEntries(tree *rawTree, root *peggen.Node) []entryInfo {
	infos := make([]entryInfo, 0, len(root.Children))
	for _, entry := range root.Children {
		decorators := childrenLabeled(entry, nameDecorator)
		tokenDef := childrenLabeled(entry, nameTokenDef)[0]

		nameNode := childrenLabeled(tokenDef, "TOKEN_NAME")[0]
		info := entryInfo{
			name:     tree.lexeme(nameNode),
			offset:   tree.offset(nameNode),
			exprNode: childrenLabeled(tokenDef, nameExpression)[0],
		}
		for _, d := range decorators {
			// d's children are the AT leaf followed by the keyword leaf.
			switch labelOf(d.Children[len(d.Children)-1]) {
			case "KW_TOKEN":
				info.isTerminal = true
			case "KW_PRUNE":
				info.isPruned = true
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// Load parses a grammar file's text (§4.4) and translates it into a
// RuleSet ready for peggen.Tokenize/peggen.Parse, or for codegen.Render.
//
// Translation happens in two passes over the entries: terminals first (so
// every terminal name is known), then non-terminal bodies (so a bare NAME
// reference can be resolved against the full terminal and non-terminal
// name sets at once, per translateNameRef).
func Load(file, text string) (*RuleSet, error) {
	tokens, tree, err := bootstrapRuleSet().Parse(file, text)
	if err != nil {
		return nil, err
	}

	rt := &rawTree{file: file, text: text, tokens: tokens}
	tr := newTranslator(rt)
	entries := collectEntries(rt, tree)

	var nonTerminals []entryInfo
	for _, e := range entries {
		if !e.isTerminal {
			if tr.nonTerminalSet[e.name] {
				return nil, &peggen.DuplicateDeclarationError{File: file, Text: text, Offset: e.offset, Name: e.name}
			}
			tr.nonTerminalSet[e.name] = true
			tr.nonTerminalNames = append(tr.nonTerminalNames, e.name)
			if e.isPruned {
				tr.prunedNonTerms[e.name] = true
			}
			nonTerminals = append(nonTerminals, e)
			continue
		}

		if tr.terminalNames[e.name] {
			return nil, &peggen.DuplicateDeclarationError{File: file, Text: text, Offset: e.offset, Name: e.name}
		}
		rule, err := tr.translateTerminalBody(e.exprNode, e.name, e.offset)
		if err != nil {
			return nil, err
		}
		tr.terminalNames[e.name] = true
		tr.terminalKinds = append(tr.terminalKinds, rule.Kind())
		tr.terminalRules[rule.Kind()] = rule
		if e.isPruned {
			tr.prunedTerminals[rule.Kind()] = true
		}
	}

	for _, e := range nonTerminals {
		expr, err := tr.translateExpression(e.exprNode)
		if err != nil {
			return nil, err
		}
		tr.nonTerminalRules[e.name] = expr
	}

	if !tr.nonTerminalSet[nameRootUser] {
		return nil, &peggen.NonTerminalRuleSetError{MissingRoot: true}
	}

	rules := make([]peggen.TerminalRule, len(tr.terminalKinds))
	for i, k := range tr.terminalKinds {
		rules[i] = tr.terminalRules[k]
	}

	return &RuleSet{
		Root:             nameRootUser,
		TerminalKinds:    tr.terminalKinds,
		TerminalRules:    rules,
		PrunedTerminals:  tr.prunedTerminals,
		NonTerminalNames: tr.nonTerminalNames,
		NonTerminalRules: tr.nonTerminalRules,
		PrunedNonTerms:   tr.prunedNonTerms,
	}, nil
}
