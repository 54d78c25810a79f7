package pipe

import "fmt"

// 🚫 SyntaxError indicates a malformed chain expression: an unterminated
// quote or a dangling chain operator.
type SyntaxError struct {
	Expr string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %q: %s", e.Expr, e.Msg)
}
