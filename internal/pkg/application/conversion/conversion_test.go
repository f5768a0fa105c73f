package conversion

import (
	"errors"
	"testing"

	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
	esErrors "github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/values"
	"github.com/matryer/is"
)

func TestAggregateArityIsAlwaysOne(t *testing.T) {
	is := is.New(t)

	for name := range aggregateOperators {
		_, err := ConvertAggregate(query.Function{FunctionName: name})
		is.True(errors.Is(err, esErrors.ErrArityMismatch))

		_, err = ConvertAggregate(query.Function{FunctionName: name, Arguments: []query.Expression{query.Column("a"), query.Column("b")}})
		is.True(errors.Is(err, esErrors.ErrArityMismatch))
	}

	_, err := ConvertAggregate(query.Function{FunctionName: "MEDIAN"})
	is.True(errors.Is(err, esErrors.ErrArityMismatch)) // arity is checked before the name
}

func TestUnknownAggregateIsRejectedCaseSensitively(t *testing.T) {
	is := is.New(t)

	_, err := ConvertAggregate(query.Func("avg", query.Column("t")).GetFunction())
	is.True(errors.Is(err, esErrors.ErrUnknownOperator))
	is.True(errors.Is(err, esErrors.ErrConversion))
}

func TestDistinctIsAnAliasForDistinctArray(t *testing.T) {
	is := is.New(t)

	a, err := ConvertAggregate(query.Func("DISTINCT", query.Column("attributes.city")).GetFunction())
	is.NoErr(err)
	b, err := ConvertAggregate(query.Func("DISTINCT_ARRAY", query.Column("attributes.city")).GetFunction())
	is.NoErr(err)

	is.Equal(a, b)
	is.Equal(a.Operator, docstore.AggregateDistinctArray)
	is.Equal(a.Identifier.Path, []string{"attributes", "city"})
}

func TestAggregateArgumentMustBeAColumn(t *testing.T) {
	is := is.New(t)

	_, err := ConvertAggregate(query.Func("SUM", query.Literal(values.Long(1))).GetFunction())
	is.True(errors.Is(err, esErrors.ErrDisallowedVariant))
}

func TestAliasesAreDeterministicAndExplicitAliasesWin(t *testing.T) {
	is := is.New(t)

	fn := query.Func("AVG", query.Column("attributes.temperature"))

	first, err := AliasOf(fn)
	is.NoErr(err)
	second, err := AliasOf(fn)
	is.NoErr(err)
	is.Equal(first, second)
	is.Equal(first, "AVG_attributes.temperature")

	alias, _ := AliasOf(query.AliasedFunc("AVG", "avgTemp", query.Column("attributes.temperature")))
	is.Equal(alias, "avgTemp")

	alias, _ = AliasOf(query.Column("id"))
	is.Equal(alias, "id")

	alias, _ = AliasOf(query.AliasedColumn("id", "identity"))
	is.Equal(alias, "identity")

	alias, _ = AliasOf(query.Func("MAX", query.AliasedColumn("attributes.t", "t")))
	is.Equal(alias, "MAX_t")
}

func TestSelectionsKeepTheirOrder(t *testing.T) {
	is := is.New(t)

	selection := []query.Expression{
		query.Func("COUNT", query.Column("id")),
		query.Column("attributes.city"),
		query.Literal(values.Long(1)),
		query.Column("type"),
	}

	converted, err := ConvertSelections(DefaultFactory, selection)
	is.NoErr(err)
	is.Equal(len(converted), 4)

	is.Equal(converted[0].Alias, "COUNT_id")
	is.Equal(converted[0].Expression, docstore.Aggregate{Operator: docstore.AggregateCount, Identifier: docstore.Identifier{Path: []string{"entityId"}}})
	is.Equal(converted[1].Alias, "attributes.city")
	is.Equal(converted[2].Alias, `LONG:1`)
	is.Equal(converted[2].Expression, docstore.Constant{Value: int64(1)})
	is.Equal(converted[3].Expression, docstore.Identifier{Path: []string{"entityType"}})
}

func TestSelectingAnOrderByClauseHasNoConverter(t *testing.T) {
	is := is.New(t)

	_, err := ConvertSelections(DefaultFactory, []query.Expression{query.OrderBy(query.Column("id"), query.SortAscending)})
	is.True(errors.Is(err, esErrors.ErrNoConverterForTag))
}

func TestFactoryWithoutRegistrationsFails(t *testing.T) {
	is := is.New(t)

	_, err := ConvertSelections(NewFactory(), []query.Expression{query.Column("id")})
	is.True(errors.Is(err, esErrors.ErrNoConverterForTag))
}

func TestGroupByAcceptsColumnsOnly(t *testing.T) {
	is := is.New(t)

	ids, err := ConvertGroupBy([]query.Expression{query.Column("attributes.city"), query.Column("type")})
	is.NoErr(err)
	is.Equal(ids[0].String(), "attributes.city")
	is.Equal(ids[1].String(), "entityType")

	_, err = ConvertGroupBy([]query.Expression{query.Func("COUNT", query.Column("id"))})
	is.True(errors.Is(err, esErrors.ErrDisallowedVariant))
}

func TestOrderBy(t *testing.T) {
	is := is.New(t)

	sorts, err := ConvertOrderBy(DefaultFactory, []query.Expression{
		query.OrderBy(query.Column("name"), query.SortDescending),
		query.OrderBy(query.Func("MAX", query.Column("attributes.t")), ""),
	})
	is.NoErr(err)
	is.True(sorts[0].Descending)
	is.True(!sorts[1].Descending)

	_, err = ConvertOrderBy(DefaultFactory, []query.Expression{query.OrderBy(query.Literal(values.Long(1)), query.SortAscending)})
	is.True(errors.Is(err, esErrors.ErrDisallowedVariant))
}

func TestFilterConversion(t *testing.T) {
	is := is.New(t)

	f, err := ConvertFilter(query.And(
		query.Compare("attributes.city", query.OpEq, values.String("Sundsvall")),
		query.Or(
			query.Compare("attributes.t", query.OpGt, values.Double(20)),
			query.Exists("attributes.alarm"),
		),
	))
	is.NoErr(err)
	is.Equal(f.Operator, docstore.FilterAnd)
	is.Equal(f.Children[0].Value, "Sundsvall")
	is.Equal(f.Children[1].Children[0].Value, float64(20))
	is.Equal(f.Children[1].Children[1].Operator, docstore.FilterExists)
}

func TestFilterRejectsMalformedLeaves(t *testing.T) {
	is := is.New(t)

	_, err := ConvertFilter(query.And())
	is.True(errors.Is(err, esErrors.ErrArityMismatch))

	_, err = ConvertFilter(query.Compare("id", query.OpIn, values.String("a")))
	is.True(errors.Is(err, esErrors.ErrDisallowedVariant))

	_, err = ConvertFilter(query.Compare("id", query.OpLike, values.String("(")))
	is.True(errors.Is(err, esErrors.ErrDisallowedVariant))

	_, err = ConvertFilter(query.Filter{Operator: "BETWEEN"})
	is.True(errors.Is(err, esErrors.ErrUnknownOperator))

	lhs, rhs := query.Literal(values.Long(1)), query.Literal(values.Long(1))
	_, err = ConvertFilter(query.Filter{Operator: query.OpEq, LHS: &lhs, RHS: &rhs})
	is.True(errors.Is(err, esErrors.ErrDisallowedVariant))
}
