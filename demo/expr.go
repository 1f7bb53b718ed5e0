package demo

import (
	"strings"
	"time"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/wippyai/ownership/errors"
)

// ExprPrefix introduces an expression order, e.g. "expr:unix % n".
const ExprPrefix = "expr:"

// exprEnv is what an order expression can see.
type exprEnv struct {
	N    int   `expr:"n"`
	Unix int64 `expr:"unix"`
}

// ExprSelector picks the branch computed by an expr-lang expression over
// n (the branch count) and unix (wall-clock seconds). The result is
// reduced modulo n; an evaluation failure picks branch 0.
type ExprSelector struct {
	Now        func() time.Time
	program    *exprvm.Program
	expression string
}

// NewExprSelector compiles expression. It must evaluate to an integer.
func NewExprSelector(expression string) (*ExprSelector, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, errors.InvalidInput(errors.PhaseConfig, "order expression must not be empty")
	}
	program, err := exprlang.Compile(expression, exprlang.Env(exprEnv{}), exprlang.AsInt64())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "compile order expression "+expression)
	}
	return &ExprSelector{program: program, expression: expression}, nil
}

// Pick implements Selector.
func (s *ExprSelector) Pick(n int) int {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	out, err := exprlang.Run(s.program, exprEnv{N: n, Unix: now().Unix()})
	if err != nil {
		return 0
	}
	v, ok := out.(int64)
	if !ok {
		return 0
	}
	return mod(v, n)
}

// String returns the source expression.
func (s *ExprSelector) String() string {
	return s.expression
}
