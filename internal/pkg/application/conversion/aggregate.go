package conversion

import (
	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/variant"
)

var aggregateOperators = map[string]docstore.AggregateOperator{
	"AVG":            docstore.AggregateAvg,
	"MIN":            docstore.AggregateMin,
	"MAX":            docstore.AggregateMax,
	"SUM":            docstore.AggregateSum,
	"COUNT":          docstore.AggregateCount,
	"DISTINCT_COUNT": docstore.AggregateDistinctCount,
	"DISTINCT_ARRAY": docstore.AggregateDistinctArray,
	// deprecated, kept for older clients
	"DISTINCT": docstore.AggregateDistinctArray,
}

// ConvertAggregate lowers an aggregate function call over a single column
func ConvertAggregate(fn query.Function) (docstore.Aggregate, error) {
	if len(fn.Arguments) != 1 {
		return docstore.Aggregate{}, errors.NewConversionError(
			errors.ErrArityMismatch, "%s expects exactly one argument, got %d", fn.FunctionName, len(fn.Arguments),
		)
	}

	operator, ok := aggregateOperators[fn.FunctionName]
	if !ok {
		return docstore.Aggregate{}, errors.NewConversionError(errors.ErrUnknownOperator, "unknown aggregate function %q", fn.FunctionName)
	}

	arg := fn.Arguments[0]
	column, err := variant.GetAllowed[query.ColumnIdentifier](query.ExpressionAccessor, arg, arg.ValueCase, query.CaseColumnIdentifier)
	if err != nil {
		return docstore.Aggregate{}, err
	}

	return docstore.Aggregate{
		Operator:   operator,
		Identifier: ResolveIdentifier(column.ColumnName),
	}, nil
}
