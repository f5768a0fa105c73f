package conversion

import (
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/values"
	"github.com/diwise/entity-service/pkg/variant"
)

// AliasProvider names the result column of an expression. Implementations
// must be pure.
type AliasProvider func(query.Expression) (string, error)

func columnAlias(e query.Expression) (string, error) {
	column, err := variant.GetAllowed[query.ColumnIdentifier](query.ExpressionAccessor, e, e.ValueCase, query.CaseColumnIdentifier)
	if err != nil {
		return "", err
	}

	if column.Alias != "" {
		return column.Alias, nil
	}

	return column.ColumnName, nil
}

func functionAlias(e query.Expression) (string, error) {
	fn, err := variant.GetAllowed[query.Function](query.ExpressionAccessor, e, e.ValueCase, query.CaseFunction)
	if err != nil {
		return "", err
	}

	if fn.Alias != "" {
		return fn.Alias, nil
	}

	if len(fn.Arguments) != 1 {
		return "", errors.NewConversionError(
			errors.ErrArityMismatch, "%s expects exactly one argument, got %d", fn.FunctionName, len(fn.Arguments),
		)
	}

	// aggregates only accept columns, so the inner alias is a column alias
	inner, err := columnAlias(fn.Arguments[0])
	if err != nil {
		return "", err
	}

	return fn.FunctionName + "_" + inner, nil
}

func literalAlias(e query.Expression) (string, error) {
	literal, err := variant.GetAllowed[query.LiteralConstant](query.ExpressionAccessor, e, e.ValueCase, query.CaseLiteral)
	if err != nil {
		return "", err
	}

	if literal.Alias != "" {
		return literal.Alias, nil
	}

	return values.Canonical(literal.Value), nil
}

// AliasOf returns the result column alias for e
func AliasOf(e query.Expression) (string, error) {
	_, alias, err := DefaultFactory.Lookup(e.ValueCase)
	if err != nil {
		return "", err
	}
	return alias(e)
}
