package domain

import (
	"context"
	"strings"
)

// Operator is a predicate comparison operator.
type Operator string

const (
	OpEq       Operator = "eq"
	OpNotEq    Operator = "neq"
	OpContains Operator = "contains"
	OpLt       Operator = "lt"
	OpLte      Operator = "lte"
	OpGt       Operator = "gt"
	OpGte      Operator = "gte"
	OpIn       Operator = "in"
)

func (o Operator) IsValid() bool {
	switch o {
	case OpEq, OpNotEq, OpContains, OpLt, OpLte, OpGt, OpGte, OpIn:
		return true
	}
	return false
}

// Predicate is a single field condition. Values are always bound as query
// parameters by the backends, never spliced into query text.
type Predicate struct {
	Field string
	Op    Operator
	Value any
}

func Eq(field string, v any) Predicate    { return Predicate{Field: field, Op: OpEq, Value: v} }
func NotEq(field string, v any) Predicate { return Predicate{Field: field, Op: OpNotEq, Value: v} }
func Lt(field string, v any) Predicate    { return Predicate{Field: field, Op: OpLt, Value: v} }
func Lte(field string, v any) Predicate   { return Predicate{Field: field, Op: OpLte, Value: v} }
func Gt(field string, v any) Predicate    { return Predicate{Field: field, Op: OpGt, Value: v} }
func Gte(field string, v any) Predicate   { return Predicate{Field: field, Op: OpGte, Value: v} }
func In(field string, v []any) Predicate  { return Predicate{Field: field, Op: OpIn, Value: v} }

// Contains matches rows whose field contains term as a substring. The term is
// matched literally; case sensitivity follows the backend default.
func Contains(field, term string) Predicate {
	return Predicate{Field: field, Op: OpContains, Value: term}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern builds the "%term%" LIKE pattern for a Contains predicate,
// escaping LIKE metacharacters in term with a backslash.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Query is a mutable, in-progress list query against one entity class.
// Where and WhereAny are ANDed onto the query; OrderBy replaces any previous
// ordering. Invalid field names surface as ErrUnknownField from Count/Fetch.
type Query interface {
	EntityClass() string
	Where(preds ...Predicate)
	// WhereAny ANDs the disjunction of preds onto the query.
	WhereAny(preds ...Predicate)
	OrderBy(field string, dir SortDirection)
	// Count returns the number of matching rows, ignoring ordering and window.
	Count(ctx context.Context) (int, error)
	// Fetch returns at most limit matching rows starting at offset.
	Fetch(ctx context.Context, offset, limit int) ([]Entity, error)
}

// QuerySource creates fresh, unconstrained queries scoped to an entity class.
// Unknown classes fail with ErrConfiguration.
type QuerySource interface {
	NewQuery(ctx context.Context, class string) (Query, error)
}
