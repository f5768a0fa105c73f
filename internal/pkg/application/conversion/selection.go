package conversion

import (
	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/values"
	"github.com/diwise/entity-service/pkg/variant"
)

// ConvertSelections lowers the requested expressions in order. The order of
// the result is the column order of the result set.
func ConvertSelections(f *Factory, selection []query.Expression) ([]docstore.Selection, error) {
	result := make([]docstore.Selection, 0, len(selection))

	for _, e := range selection {
		convert, aliasOf, err := f.Lookup(e.ValueCase)
		if err != nil {
			return nil, err
		}

		expr, err := convert(e)
		if err != nil {
			return nil, err
		}

		alias, err := aliasOf(e)
		if err != nil {
			return nil, err
		}

		result = append(result, docstore.Selection{Expression: expr, Alias: alias})
	}

	return result, nil
}

// ConvertGroupBy lowers group by expressions, which must all be column references
func ConvertGroupBy(groupBy []query.Expression) ([]docstore.Identifier, error) {
	result := make([]docstore.Identifier, 0, len(groupBy))

	for _, e := range groupBy {
		column, err := variant.GetAllowed[query.ColumnIdentifier](query.ExpressionAccessor, e, e.ValueCase, query.CaseColumnIdentifier)
		if err != nil {
			return nil, err
		}
		result = append(result, ResolveIdentifier(column.ColumnName))
	}

	return result, nil
}

// ConvertOrderBy lowers order by clauses over columns or aggregates
func ConvertOrderBy(f *Factory, orderBy []query.Expression) ([]docstore.Sort, error) {
	result := make([]docstore.Sort, 0, len(orderBy))

	for _, e := range orderBy {
		clause, err := variant.GetAllowed[query.OrderByExpression](query.ExpressionAccessor, e, e.ValueCase, query.CaseOrderBy)
		if err != nil {
			return nil, err
		}

		inner := clause.Expression
		if inner.ValueCase != query.CaseColumnIdentifier && inner.ValueCase != query.CaseFunction {
			return nil, errors.NewConversionError(errors.ErrDisallowedVariant, "cannot order by %s", inner.ValueCase)
		}

		convert, _, err := f.Lookup(inner.ValueCase)
		if err != nil {
			return nil, err
		}

		expr, err := convert(inner)
		if err != nil {
			return nil, err
		}

		var descending bool
		switch clause.Order {
		case query.SortAscending, "":
		case query.SortDescending:
			descending = true
		default:
			return nil, errors.NewConversionError(errors.ErrUnknownOperator, "unknown sort order %q", clause.Order)
		}

		result = append(result, docstore.Sort{Expression: expr, Descending: descending})
	}

	return result, nil
}

func literalValue(literal query.LiteralConstant) (any, error) {
	native, err := values.Native(literal.Value)
	if err != nil {
		return nil, err
	}
	return native, nil
}
