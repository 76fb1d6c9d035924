package dfa

import "fmt"

// PatternError reports a malformed regular expression. Pos is the rune
// offset of the offending token within the pattern.
type PatternError struct {
	Pos int
	msg string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("malformed pattern, %s (at position %d)", e.msg, e.Pos)
}

func malformed(pos int, format string, args ...interface{}) *PatternError {
	return &PatternError{Pos: pos, msg: fmt.Sprintf(format, args...)}
}
