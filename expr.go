package peggen

// Expr is the closed set of expression variants forming the right-hand
// side of a non-terminal rule (§3). The variant family is closed by the
// unexported isExpr method, the same shape hucsmn-peg/combining.go uses for
// its own closed Pattern family (patternSequence, patternAlternative, ...):
// dispatch on the concrete type replaces the source's open class hierarchy
// with dynamic dispatch (§9, "Subclass-based expression variants").
type Expr interface {
	isExpr()
}

// TerminalExpr matches exactly one token of the given kind.
type TerminalExpr struct {
	Kind TokenKind
}

// NonTerminalExpr expands a rule indirectly via the rule map at execution
// time, not inline — this is what keeps the expression graph acyclic to
// walk even though named rules may be mutually (non-left-)recursive (§5).
type NonTerminalExpr struct {
	Name string
}

// ConcatExpr matches all sub-expressions in order; any one failing fails
// the whole. Always flattened: a chain "A B C" is one ConcatExpr of three,
// never nested ConcatExprs (§4.4 translation rules).
type ConcatExpr struct {
	Subs []Expr
}

// AltExpr tries sub-expressions in declared order and accepts the first
// that matches. Always flattened, mirroring ConcatExpr.
type AltExpr struct {
	Subs []Expr
}

// RepeatExpr matches Sub greedily zero or more times, failing if fewer than
// Min matches were found. Min is 0 or 1; "(X)+" is emitted as
// Concat(X, Repeat(X, 0)) rather than Repeat(X, 1) — see OnceOrMore below.
type RepeatExpr struct {
	Sub Expr
	Min int
}

// OptionalExpr attempts Sub once; on failure it yields an empty match
// rather than failing.
type OptionalExpr struct {
	Sub Expr
}

func (*TerminalExpr) isExpr()    {}
func (*NonTerminalExpr) isExpr() {}
func (*ConcatExpr) isExpr()      {}
func (*AltExpr) isExpr()         {}
func (*RepeatExpr) isExpr()      {}
func (*OptionalExpr) isExpr()    {}

// Term builds a TerminalExpr.
func Term(kind TokenKind) Expr {
	return &TerminalExpr{Kind: kind}
}

// NonTerm builds a NonTerminalExpr.
func NonTerm(name string) Expr {
	return &NonTerminalExpr{Name: name}
}

// Concat builds a flattened ConcatExpr. A single sub-expression is returned
// unwrapped; nested ConcatExprs among the arguments are spliced in, keeping
// the invariant that a ConcatExpr never directly contains another.
func Concat(subs ...Expr) Expr {
	flat := make([]Expr, 0, len(subs))
	for _, s := range subs {
		if c, ok := s.(*ConcatExpr); ok {
			flat = append(flat, c.Subs...)
		} else {
			flat = append(flat, s)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &ConcatExpr{Subs: flat}
}

// Alt builds a flattened AltExpr, analogous to Concat.
func Alt(subs ...Expr) Expr {
	flat := make([]Expr, 0, len(subs))
	for _, s := range subs {
		if a, ok := s.(*AltExpr); ok {
			flat = append(flat, a.Subs...)
		} else {
			flat = append(flat, s)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &AltExpr{Subs: flat}
}

// Repeat builds a RepeatExpr matching sub greedily at least min times
// (min ∈ {0, 1}).
func Repeat(min int, sub Expr) Expr {
	return &RepeatExpr{Sub: sub, Min: min}
}

// OnceOrMore builds the "(X)+" shape mandated by the translator: a
// concatenation of one required match followed by zero-or-more, rather than
// RepeatExpr{Min: 1} directly. Semantically equivalent to Repeat(1, sub).
func OnceOrMore(sub Expr) Expr {
	return Concat(sub, Repeat(0, sub))
}

// Optional builds an OptionalExpr.
func Optional(sub Expr) Expr {
	return &OptionalExpr{Sub: sub}
}
