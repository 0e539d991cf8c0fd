package query

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var (
	envOnce sync.Once
	env     *cel.Env
	envErr  error
)

func celEnv() (*cel.Env, error) {
	envOnce.Do(func() {
		env, envErr = cel.NewEnv(
			cel.Variable("doc", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return env, envErr
}

// Expr compiles a CEL boolean expression over the variable doc, e.g.
//
//	doc.complete == true && doc.title.startsWith("Buy")
//
// Records for which evaluation fails, such as a missing key, do not match.
func Expr(src string) (Predicate, error) {
	e, err := celEnv()
	if err != nil {
		return Predicate{}, fmt.Errorf("CEL environment: %w", err)
	}
	ast, issues := e.Compile(src)
	if issues != nil && issues.Err() != nil {
		return Predicate{}, fmt.Errorf("CEL compile error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return Predicate{}, fmt.Errorf("CEL expression %q is not boolean: %s", src, out)
	}
	prg, err := e.Program(ast)
	if err != nil {
		return Predicate{}, fmt.Errorf("CEL program creation error: %w", err)
	}
	return Predicate{Kind: KindExpr, src: src, program: prg}, nil
}

// MustExpr is like Expr but panics on a malformed expression.
func MustExpr(src string) Predicate {
	p, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return p
}

func evalExpr(prg cel.Program, record map[string]any) bool {
	if prg == nil {
		return false
	}
	out, _, err := prg.Eval(map[string]any{"doc": record})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
