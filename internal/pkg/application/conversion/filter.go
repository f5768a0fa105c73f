package conversion

import (
	"regexp"

	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/values"
	"github.com/diwise/entity-service/pkg/variant"
)

var filterOperators = map[query.FilterOperator]docstore.FilterOperator{
	query.OpAnd:       docstore.FilterAnd,
	query.OpOr:        docstore.FilterOr,
	query.OpEq:        docstore.FilterEq,
	query.OpNeq:       docstore.FilterNeq,
	query.OpGt:        docstore.FilterGt,
	query.OpGe:        docstore.FilterGe,
	query.OpLt:        docstore.FilterLt,
	query.OpLe:        docstore.FilterLe,
	query.OpIn:        docstore.FilterIn,
	query.OpNotIn:     docstore.FilterNotIn,
	query.OpLike:      docstore.FilterLike,
	query.OpExists:    docstore.FilterExists,
	query.OpNotExists: docstore.FilterNotExists,
}

// ConvertFilter lowers a filter tree. Leaves must compare a column with a
// literal, except EXISTS and NOT_EXISTS that take no literal.
func ConvertFilter(f query.Filter) (docstore.Filter, error) {
	operator, ok := filterOperators[f.Operator]
	if !ok {
		return docstore.Filter{}, errors.NewConversionError(errors.ErrUnknownOperator, "unknown filter operator %q", f.Operator)
	}

	if f.IsComposite() {
		if len(f.Children) == 0 {
			return docstore.Filter{}, errors.NewConversionError(errors.ErrArityMismatch, "%s requires at least one child filter", f.Operator)
		}

		children := make([]docstore.Filter, 0, len(f.Children))
		for _, c := range f.Children {
			child, err := ConvertFilter(c)
			if err != nil {
				return docstore.Filter{}, err
			}
			children = append(children, child)
		}

		return docstore.Filter{Operator: operator, Children: children}, nil
	}

	if f.LHS == nil {
		return docstore.Filter{}, errors.NewConversionError(errors.ErrArityMismatch, "%s requires a column on its left hand side", f.Operator)
	}

	column, err := variant.GetAllowed[query.ColumnIdentifier](query.ExpressionAccessor, *f.LHS, f.LHS.ValueCase, query.CaseColumnIdentifier)
	if err != nil {
		return docstore.Filter{}, err
	}

	result := docstore.Filter{Operator: operator, Identifier: ResolveIdentifier(column.ColumnName)}

	if operator == docstore.FilterExists || operator == docstore.FilterNotExists {
		if f.RHS != nil {
			return docstore.Filter{}, errors.NewConversionError(errors.ErrArityMismatch, "%s does not take a right hand side", f.Operator)
		}
		return result, nil
	}

	if f.RHS == nil {
		return docstore.Filter{}, errors.NewConversionError(errors.ErrArityMismatch, "%s requires a literal on its right hand side", f.Operator)
	}

	literal, err := variant.GetAllowed[query.LiteralConstant](query.ExpressionAccessor, *f.RHS, f.RHS.ValueCase, query.CaseLiteral)
	if err != nil {
		return docstore.Filter{}, err
	}

	kind := literal.Value.Type

	switch operator {
	case docstore.FilterIn, docstore.FilterNotIn:
		if !kind.IsArray() {
			return docstore.Filter{}, errors.NewConversionError(errors.ErrDisallowedVariant, "%s requires an array literal, got %s", f.Operator, kind)
		}
	case docstore.FilterLike:
		if kind != values.KindString {
			return docstore.Filter{}, errors.NewConversionError(errors.ErrDisallowedVariant, "%s requires a string literal, got %s", f.Operator, kind)
		}
		if _, err := regexp.Compile(literal.Value.String); err != nil {
			return docstore.Filter{}, errors.NewConversionError(errors.ErrDisallowedVariant, "invalid pattern for %s: %s", f.Operator, err.Error())
		}
	default:
		if kind.IsArray() || kind.IsMap() {
			return docstore.Filter{}, errors.NewConversionError(errors.ErrDisallowedVariant, "%s cannot compare with %s", f.Operator, kind)
		}
	}

	result.Value, err = literalValue(literal)
	if err != nil {
		return docstore.Filter{}, err
	}

	return result, nil
}
