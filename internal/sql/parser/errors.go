package parser

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every grammar violation.
var ErrSyntax = errors.New("parser: syntax error")

func syntaxErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}
