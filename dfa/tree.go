package dfa

// Annotated syntax trees for regular expressions.
//
// Refer to "Compilers: Principles, Techniques & Tools" by Aho/Lam/Sethi/Ullman,
// Section 3.9: converting a regular expression directly to a DFA.

type opKind int8

const (
	leafOp opKind = iota
	concatOp
	unionOp
	starOp
	plusOp
	optionalOp
)

// treeNode is a node of the syntax tree. Leaves carry an input symbol and a
// unique position; inner nodes own their children exclusively. The
// annotation fields are filled bottom-up during construction and are not
// mutated afterwards.
type treeNode struct {
	op          opKind
	sym         rune      // input symbol, leaves only
	pos         int       // leaf position, 1-based; 0 for inner nodes
	end         bool      // is this the end-marker leaf?
	left, right *treeNode // unary operators use left only
	nullable    bool
	firstpos    *posSet
	lastpos     *posSet
}

// SyntaxTree is the annotated syntax tree for a single pattern, together
// with the followpos relation collected during annotation. The end-marker
// leaf appended to the pattern is the unique accepting position: its
// followpos is always empty.
type SyntaxTree struct {
	root   *treeNode
	leaves map[int]rune    // position -> input symbol
	follow map[int]*posSet // the followpos relation
	endPos int             // position of the end-marker leaf
}

// ParsePattern compiles a pattern in the surface syntax into an annotated
// syntax tree. It reports a *PatternError for malformed input: unbalanced
// parentheses, operators with missing operands, empty character classes,
// dangling escapes.
func ParsePattern(pattern string) (*SyntaxTree, error) {
	post, err := postfix(pattern)
	if err != nil {
		return nil, err
	}
	return buildTree(post)
}

// buildTree constructs the tree from a postfix token sequence using an
// explicit stack: operands push leaves, operators pop their children and
// push a combinator node. Nodes are annotated at creation time; since
// children always exist before their parent, this is the bottom-up
// annotation pass of the syntax-tree method, and followpos can be
// accumulated along the way.
func buildTree(post []patToken) (*SyntaxTree, error) {
	t := &SyntaxTree{
		leaves: make(map[int]rune),
		follow: make(map[int]*posSet),
	}
	var stack []*treeNode
	nextPos := 1
	for _, tok := range post {
		switch {
		case tok.kind == literalTok || tok.kind == endmarkTok:
			node := &treeNode{
				op:       leafOp,
				sym:      tok.sym,
				pos:      nextPos,
				end:      tok.kind == endmarkTok,
				firstpos: newPosSet(nextPos),
				lastpos:  newPosSet(nextPos),
			}
			t.leaves[nextPos] = tok.sym
			t.follow[nextPos] = newPosSet()
			if node.end {
				t.endPos = nextPos
			}
			nextPos++
			stack = append(stack, node)
		case tok.isPostfixOp():
			if len(stack) < 1 {
				return nil, malformed(tok.pos, "operator '%c' is missing its operand", tok.sym)
			}
			child := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, t.combineUnary(tok.sym, child))
		default: // binary operator
			if len(stack) < 2 {
				return nil, malformed(tok.pos, "operator '%c' is missing an operand", tok.sym)
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, t.combineBinary(tok.sym, left, right))
		}
	}
	if len(stack) != 1 {
		return nil, malformed(0, "expression does not reduce to a single tree")
	}
	t.root = stack[0]
	tracer().Debugf("syntax tree has %d leaf positions, end marker at %d", len(t.leaves), t.endPos)
	return t, nil
}

// combineUnary creates an annotated node for '*', '+' or '?'.
func (t *SyntaxTree) combineUnary(op rune, child *treeNode) *treeNode {
	node := &treeNode{left: child}
	switch op {
	case '*':
		node.op = starOp
		node.nullable = true
	case '+':
		node.op = plusOp
		node.nullable = child.nullable
	case '?':
		node.op = optionalOp
		node.nullable = true
	}
	node.firstpos = child.firstpos
	node.lastpos = child.lastpos
	if node.op == starOp || node.op == plusOp {
		// every position at the end of the loop body may be followed by
		// every position at its beginning
		for _, p := range node.lastpos.Values() {
			t.follow[p].UnionInPlace(node.firstpos)
		}
	}
	return node
}

// combineBinary creates an annotated node for '.' or '|'.
func (t *SyntaxTree) combineBinary(op rune, left, right *treeNode) *treeNode {
	node := &treeNode{left: left, right: right}
	switch op {
	case '.':
		node.op = concatOp
		node.nullable = left.nullable && right.nullable
		if left.nullable {
			node.firstpos = left.firstpos.Union(right.firstpos)
		} else {
			node.firstpos = left.firstpos
		}
		if right.nullable {
			node.lastpos = left.lastpos.Union(right.lastpos)
		} else {
			node.lastpos = right.lastpos
		}
		for _, p := range left.lastpos.Values() {
			t.follow[p].UnionInPlace(right.firstpos)
		}
	case '|':
		node.op = unionOp
		node.nullable = left.nullable || right.nullable
		node.firstpos = left.firstpos.Union(right.firstpos)
		node.lastpos = left.lastpos.Union(right.lastpos)
	}
	return node
}

// Followpos returns the followpos set for a leaf position, i.e. the set of
// positions which may immediately follow it in some matching string.
func (t *SyntaxTree) Followpos(pos int) []int {
	if s, ok := t.follow[pos]; ok {
		return s.Values()
	}
	return nil
}

// Positions returns the number of leaf positions, the end marker included.
func (t *SyntaxTree) Positions() int {
	return len(t.leaves)
}
