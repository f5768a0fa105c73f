package query

import (
	"encoding/json"
	"testing"

	"github.com/diwise/entity-service/pkg/values"
	"github.com/diwise/entity-service/pkg/variant"
	"github.com/matryer/is"
)

func TestEveryExpressionCaseHasAnAccessor(t *testing.T) {
	is := is.New(t)

	for _, c := range ExpressionCases() {
		is.True(ExpressionAccessor.Registered(c))
	}
	is.Equal(len(ExpressionAccessor.Tags()), len(ExpressionCases()))
}

func TestGettersReturnZeroValuesForInactiveBranches(t *testing.T) {
	is := is.New(t)

	e := Column("temperature")

	fn, err := variant.Get[Function](ExpressionAccessor, e, CaseFunction)
	is.NoErr(err)
	is.Equal(fn.FunctionName, "")
	is.Equal(len(fn.Arguments), 0)

	col, err := variant.Get[ColumnIdentifier](ExpressionAccessor, e, e.ValueCase)
	is.NoErr(err)
	is.Equal(col.ColumnName, "temperature")
}

func TestExpressionJSONRoundTrip(t *testing.T) {
	is := is.New(t)

	e := AliasedFunc("AVG", "avgTemp", Column("attributes.temperature"))

	b, err := json.Marshal(e)
	is.NoErr(err)

	var decoded Expression
	is.NoErr(json.Unmarshal(b, &decoded))
	is.Equal(decoded.ValueCase, CaseFunction)
	is.Equal(decoded.GetFunction().Alias, "avgTemp")
	is.Equal(decoded.GetFunction().Arguments[0].GetColumnIdentifier().ColumnName, "attributes.temperature")
}

func TestRequestDecodesFromWireFormat(t *testing.T) {
	is := is.New(t)

	body := `{
		"entityType": "WeatherObserved",
		"selection": [{"valueCase":"COLUMN_IDENTIFIER","columnIdentifier":{"columnName":"id"}}],
		"filter": {"operator":"EQ",
			"lhs":{"valueCase":"COLUMN_IDENTIFIER","columnIdentifier":{"columnName":"attributes.city"}},
			"rhs":{"valueCase":"LITERAL","literal":{"value":{"valueType":"STRING","string":"Sundsvall"}}}},
		"limit": 10
	}`

	var req Request
	is.NoErr(json.Unmarshal([]byte(body), &req))
	is.Equal(req.EntityType, "WeatherObserved")
	is.Equal(req.Limit, 10)
	is.Equal(req.Filter.Operator, OpEq)
	is.True(values.Equal(req.Filter.RHS.GetLiteral().Value, values.String("Sundsvall")))
}

func TestUnknownExpressionCaseIsRejected(t *testing.T) {
	is := is.New(t)

	var e Expression
	err := json.Unmarshal([]byte(`{"valueCase":"SUBQUERY"}`), &e)
	is.True(err != nil)
}
