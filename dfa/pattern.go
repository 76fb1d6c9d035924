package dfa

// Tokenizing and postfix conversion of regular expression patterns.
//
// The surface syntax supports alternation '|', Kleene star '*', plus '+',
// optional '?', grouping with parentheses, character classes like [a-z0-9],
// and escaping of metacharacters with a backslash. Concatenation is implicit
// in the input and made explicit (as '.') before conversion to postfix.

type tokKind int8

const (
	literalTok tokKind = iota // a single input symbol, escapes already decoded
	operatorTok               // one of  | . * + ? ( )
	endmarkTok                // the end-marker appended to every pattern
)

type patToken struct {
	kind tokKind
	sym  rune // literal symbol resp. operator character
	pos  int  // rune offset within the original pattern
}

func (t patToken) isOperator(op rune) bool {
	return t.kind == operatorTok && t.sym == op
}

func (t patToken) isPostfixOp() bool {
	return t.kind == operatorTok && (t.sym == '*' || t.sym == '+' || t.sym == '?')
}

// tokenize splits a pattern into tokens. Escaped characters are decoded into
// literals; character classes are kept as-is and expanded by expandClass.
// Whitespace between tokens is ignored.
func tokenize(pattern string) ([]patToken, error) {
	var toks []patToken
	runes := []rune(pattern)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\\':
			if i+1 >= len(runes) {
				return nil, malformed(i, "dangling escape")
			}
			toks = append(toks, patToken{kind: literalTok, sym: runes[i+1], pos: i})
			i += 2
		case r == '[':
			class, length, err := expandClass(runes[i:], i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, class...)
			i += length
		case r == '(' || r == ')' || r == '|' || r == '*' || r == '+' || r == '?':
			toks = append(toks, patToken{kind: operatorTok, sym: r, pos: i})
			i++
		case r == ' ' || r == '\t':
			i++
		default:
			toks = append(toks, patToken{kind: literalTok, sym: r, pos: i})
			i++
		}
	}
	return toks, nil
}

// expandClass reads a character class starting at runes[0] == '[' and expands
// it into an equivalent alternation group  ( a | b | … ). It returns the
// produced tokens and the number of runes consumed.
func expandClass(runes []rune, offset int) ([]patToken, int, error) {
	end := -1
	for j := 1; j < len(runes); j++ {
		if runes[j] == ']' {
			end = j
			break
		}
	}
	if end < 0 {
		return nil, 0, malformed(offset, "unterminated character class")
	}
	content := runes[1:end]
	if len(content) == 0 {
		return nil, 0, malformed(offset, "empty character class")
	}
	var members []rune
	for j := 0; j < len(content); {
		if j+2 < len(content) && content[j+1] == '-' {
			lo, hi := content[j], content[j+2]
			if lo > hi {
				return nil, 0, malformed(offset+1+j, "invalid range %c-%c in character class", lo, hi)
			}
			for r := lo; r <= hi; r++ {
				members = append(members, r)
			}
			j += 3
		} else {
			members = append(members, content[j])
			j++
		}
	}
	toks := make([]patToken, 0, 2*len(members)+1)
	toks = append(toks, patToken{kind: operatorTok, sym: '(', pos: offset})
	for k, r := range members {
		if k > 0 {
			toks = append(toks, patToken{kind: operatorTok, sym: '|', pos: offset})
		}
		toks = append(toks, patToken{kind: literalTok, sym: r, pos: offset})
	}
	toks = append(toks, patToken{kind: operatorTok, sym: ')', pos: offset})
	return toks, end + 1, nil
}

// insertConcat makes implicit concatenation explicit by inserting '.' tokens.
func insertConcat(toks []patToken) []patToken {
	out := make([]patToken, 0, len(toks)*2)
	for j, t := range toks {
		out = append(out, t)
		if j+1 >= len(toks) {
			break
		}
		next := toks[j+1]
		concatLeft := t.kind == literalTok || t.kind == endmarkTok ||
			t.isOperator(')') || t.isPostfixOp()
		concatRight := next.kind == literalTok || next.kind == endmarkTok ||
			next.isOperator('(')
		if concatLeft && concatRight {
			out = append(out, patToken{kind: operatorTok, sym: '.', pos: next.pos})
		}
	}
	return out
}

func precedence(op rune) int {
	switch op {
	case '*', '+', '?':
		return 3
	case '.':
		return 2
	case '|':
		return 1
	}
	return 0
}

// toPostfix converts a token sequence to postfix notation using the
// shunting-yard algorithm. Postfix unary operators follow their operand in
// the input already and go straight to the output. The end-marker is
// concatenated to the converted pattern, so the resulting tree always has a
// unique accepting position.
func toPostfix(toks []patToken) ([]patToken, error) {
	var output, stack []patToken
	for _, t := range toks {
		switch {
		case t.kind == literalTok || t.kind == endmarkTok:
			output = append(output, t)
		case t.isPostfixOp():
			output = append(output, t)
		case t.isOperator('('):
			stack = append(stack, t)
		case t.isOperator(')'):
			for len(stack) > 0 && !stack[len(stack)-1].isOperator('(') {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, malformed(t.pos, "unbalanced parentheses")
			}
			stack = stack[:len(stack)-1] // pop the '('
		default: // binary operator, left-associative
			for len(stack) > 0 && !stack[len(stack)-1].isOperator('(') &&
				precedence(stack[len(stack)-1].sym) >= precedence(t.sym) {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.isOperator('(') {
			return nil, malformed(top.pos, "unbalanced parentheses")
		}
		output = append(output, top)
		stack = stack[:len(stack)-1]
	}
	endpos := 0
	if len(toks) > 0 {
		endpos = toks[len(toks)-1].pos + 1
	}
	output = append(output,
		patToken{kind: endmarkTok, sym: '#', pos: endpos},
		patToken{kind: operatorTok, sym: '.', pos: endpos})
	return output, nil
}

// postfix runs the complete front-end for a pattern: tokenizing, concat
// insertion, and infix-to-postfix conversion.
func postfix(pattern string) ([]patToken, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	return toPostfix(insertConcat(toks))
}
