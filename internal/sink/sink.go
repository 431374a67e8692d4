// Package sink persists generated rows either to delimited files or to a
// relational store. Failures carry a kind so callers can tell a constraint
// violation from a connectivity problem.
package sink

import (
	"context"
	"fmt"
)

type Kind int

const (
	KindConnectivity Kind = iota
	KindConstraint
)

func (k Kind) String() string {
	if k == KindConstraint {
		return "constraint"
	}
	return "connectivity"
}

type Error struct {
	Kind  Kind
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failure on %s: %v", e.Kind, e.Table, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Sink accepts a named stream of rows for one entity type. Columns arrive in
// the fixed order the tables define; every call persists all given rows or
// returns an *Error.
type Sink interface {
	WriteRows(ctx context.Context, table string, columns []string, rows [][]any) error
	Close() error
}
