// Package searchexpr implements the search expression tree and evaluator
// of spec §4.9: typed constants and equality nodes, boolean combinators
// with short-circuit evaluation, and commit/commit-list nodes evaluated
// against a Repository. Grounded on pkg/gitlib/revwalk.go's BFS-from-tip
// walk idiom, reused here for BranchCommits' ancestor traversal.
package searchexpr

import (
	"fmt"

	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/repository"
)

// Context is the repo a search expression is evaluated against.
type Context struct {
	Repo *repository.Repository
}

// BoolExpr is a node that evaluates to a boolean (spec §4.9: Equal,
// NotEqual, Not, And, Or).
type BoolExpr interface {
	EvalBool(ctx *Context) (bool, error)
	fmt.Stringer
}

// CommitExpr is a node that evaluates to a single commit (spec §4.9:
// TipOf).
type CommitExpr interface {
	EvalCommit(ctx *Context) (*commit.Commit, error)
	fmt.Stringer
}

// CommitListExpr is a node that evaluates to a list of commits (spec
// §4.9: AllRepoCommits, BranchCommits).
type CommitListExpr interface {
	EvalCommitList(ctx *Context) ([]*commit.Commit, error)
	fmt.Stringer
}

// ValueExpr is a node that evaluates to a scalar of type T. Constant is
// the only leaf producer; Equal/NotEqual consume it. The comparable
// constraint covers every scalar spec's Constant<T> realistically carries
// (strings, numbers, booleans); time.Time deliberately isn't used here
// since == on it compares monotonic readings, not wall-clock equality.
type ValueExpr[T comparable] interface {
	EvalValue(ctx *Context) (T, error)
	fmt.Stringer
}

// Constant is a typed literal leaf node (spec §4.9's Constant<T>(type, value)).
type Constant[T comparable] struct {
	TypeName string
	Value    T
}

// EvalValue always succeeds, returning the literal value.
func (c Constant[T]) EvalValue(_ *Context) (T, error) { return c.Value, nil }

// String renders the node's type label and value, per spec's "every node
// carries its result type name" requirement.
func (c Constant[T]) String() string { return fmt.Sprintf("%s(%v)", c.TypeName, c.Value) }

// Equal evaluates to true when L and R produce the same value (spec §4.9).
type Equal[T comparable] struct {
	L, R ValueExpr[T]
}

// EvalBool evaluates both operands and compares them.
func (e Equal[T]) EvalBool(ctx *Context) (bool, error) {
	l, err := e.L.EvalValue(ctx)
	if err != nil {
		return false, err
	}

	r, err := e.R.EvalValue(ctx)
	if err != nil {
		return false, err
	}

	return l == r, nil
}

// String renders the node for diagnostics.
func (e Equal[T]) String() string { return fmt.Sprintf("Equal(%s, %s)", e.L, e.R) }

// NotEqual evaluates to true when L and R produce different values
// (spec §4.9).
type NotEqual[T comparable] struct {
	L, R ValueExpr[T]
}

// EvalBool evaluates both operands and compares them.
func (e NotEqual[T]) EvalBool(ctx *Context) (bool, error) {
	l, err := e.L.EvalValue(ctx)
	if err != nil {
		return false, err
	}

	r, err := e.R.EvalValue(ctx)
	if err != nil {
		return false, err
	}

	return l != r, nil
}

// String renders the node for diagnostics.
func (e NotEqual[T]) String() string { return fmt.Sprintf("NotEqual(%s, %s)", e.L, e.R) }

// Not negates Operand (spec §4.9).
type Not struct {
	Operand BoolExpr
}

// EvalBool evaluates Operand and negates it.
func (n Not) EvalBool(ctx *Context) (bool, error) {
	v, err := n.Operand.EvalBool(ctx)
	if err != nil {
		return false, err
	}

	return !v, nil
}

// String renders the node for diagnostics.
func (n Not) String() string { return fmt.Sprintf("Not(%s)", n.Operand) }

// And evaluates L then, only if L is true, R — short-circuiting without
// evaluating R when L is false (spec §4.9).
type And struct {
	L, R BoolExpr
}

// EvalBool short-circuits: if L is false or errors, R is never evaluated.
func (a And) EvalBool(ctx *Context) (bool, error) {
	l, err := a.L.EvalBool(ctx)
	if err != nil || !l {
		return false, err
	}

	return a.R.EvalBool(ctx)
}

// String renders the node for diagnostics.
func (a And) String() string { return fmt.Sprintf("And(%s, %s)", a.L, a.R) }

// Or evaluates L then, only if L is false, R — short-circuiting without
// evaluating R when L is true (spec §4.9).
type Or struct {
	L, R BoolExpr
}

// EvalBool short-circuits: if L is true, R is never evaluated.
func (o Or) EvalBool(ctx *Context) (bool, error) {
	l, err := o.L.EvalBool(ctx)
	if err != nil || l {
		return l, err
	}

	return o.R.EvalBool(ctx)
}

// String renders the node for diagnostics.
func (o Or) String() string { return fmt.Sprintf("Or(%s, %s)", o.L, o.R) }
