package conversion

import (
	"maps"

	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/variant"
)

// Converter lowers one kind of query expression into a selecting expression
type Converter func(query.Expression) (docstore.SelectingExpression, error)

type registration struct {
	converter Converter
	alias     AliasProvider
}

// Factory resolves the converter and alias provider to use for an
// expression tag. A Factory is immutable once created.
type Factory struct {
	registrations map[query.ExpressionCase]registration
}

type FactoryOption func(map[query.ExpressionCase]registration)

// Register adds or replaces the pair used for tag
func Register(tag query.ExpressionCase, converter Converter, alias AliasProvider) FactoryOption {
	return func(r map[query.ExpressionCase]registration) {
		r[tag] = registration{converter: converter, alias: alias}
	}
}

func NewFactory(options ...FactoryOption) *Factory {
	r := map[query.ExpressionCase]registration{}
	for _, opt := range options {
		opt(r)
	}
	return &Factory{registrations: maps.Clone(r)}
}

func (f *Factory) Lookup(tag query.ExpressionCase) (Converter, AliasProvider, error) {
	reg, ok := f.registrations[tag]
	if !ok {
		return nil, nil, errors.NewConversionError(errors.ErrNoConverterForTag, "no converter registered for %s", tag)
	}
	return reg.converter, reg.alias, nil
}

// DefaultFactory knows how to select columns, literals and aggregates
var DefaultFactory = NewFactory(
	Register(query.CaseColumnIdentifier, convertColumn, columnAlias),
	Register(query.CaseLiteral, convertLiteral, literalAlias),
	Register(query.CaseFunction, convertFunction, functionAlias),
)

func convertColumn(e query.Expression) (docstore.SelectingExpression, error) {
	column, err := variant.GetAllowed[query.ColumnIdentifier](query.ExpressionAccessor, e, e.ValueCase, query.CaseColumnIdentifier)
	if err != nil {
		return nil, err
	}
	return ResolveIdentifier(column.ColumnName), nil
}

func convertLiteral(e query.Expression) (docstore.SelectingExpression, error) {
	literal, err := variant.GetAllowed[query.LiteralConstant](query.ExpressionAccessor, e, e.ValueCase, query.CaseLiteral)
	if err != nil {
		return nil, err
	}

	native, err := literalValue(literal)
	if err != nil {
		return nil, err
	}

	return docstore.Constant{Value: native}, nil
}

func convertFunction(e query.Expression) (docstore.SelectingExpression, error) {
	fn, err := variant.GetAllowed[query.Function](query.ExpressionAccessor, e, e.ValueCase, query.CaseFunction)
	if err != nil {
		return nil, err
	}
	return ConvertAggregate(fn)
}
