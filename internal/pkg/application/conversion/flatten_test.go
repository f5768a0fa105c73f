package conversion

import (
	"errors"
	"testing"

	esErrors "github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/values"
	"github.com/matryer/is"
)

func metadata(columns ...string) query.ResultSetMetadata {
	md := query.ResultSetMetadata{}
	for _, c := range columns {
		md.Columns = append(md.Columns, query.ColumnMetadata{ColumnName: c})
	}
	return md
}

func TestNestedObjectsAreFlattenedWithDottedPaths(t *testing.T) {
	is := is.New(t)

	row, err := ToRow([]byte(`{"a":{"b":1}}`), metadata("a.b"))
	is.NoErr(err)
	is.Equal(len(row.Columns), 1)
	is.Equal(row.Columns[0].Type, values.KindInt)
	is.Equal(row.Columns[0].Int, int32(1))
}

func TestMissingColumnsYieldDefaultValues(t *testing.T) {
	is := is.New(t)

	row, err := ToRow([]byte(`{"a":{"b":1}}`), metadata("a.b", "a.c", "z"))
	is.NoErr(err)
	is.Equal(len(row.Columns), 3)
	is.Equal(row.Columns[1], values.Value{})
	is.Equal(row.Columns[2], values.Value{})
}

func TestValueMapIsEmittedAsOneMapValue(t *testing.T) {
	is := is.New(t)

	doc := `{"labels":{"valueMap":{"values":{"a":{"value":{"string":"x"}},"b":{"value":{"string":"y"}}}}}}`

	flat, err := Flatten([]byte(doc))
	is.NoErr(err)
	is.Equal(len(flat), 1)

	labels := flat["labels"]
	is.Equal(labels.Type, values.KindStringMap)
	is.Equal(labels.StringMap, map[string]string{"a": "x", "b": "y"})

	_, expanded := flat["labels.valueMap.values.a"]
	is.True(!expanded)
}

func TestMapWithMixedKindsBecomesStringMap(t *testing.T) {
	is := is.New(t)

	doc := `{"m":{"valueMap":{"values":{"a":{"value":{"long":1}},"b":{"value":{"boolean":true}}}}}}`

	flat, err := Flatten([]byte(doc))
	is.NoErr(err)
	is.Equal(flat["m"].Type, values.KindStringMap)
	is.Equal(flat["m"].StringMap["a"], "1")
	is.Equal(flat["m"].StringMap["b"], "true")
}

func TestStoredWrappersAreDecoded(t *testing.T) {
	is := is.New(t)

	doc := `{
		"entityId": "s1",
		"attributes": {
			"temperature": {"value": {"double": 21.5}},
			"serial": {"value": {"long": 9007199254740993}},
			"seen": {"value": {"timestamp": 1700000000000}},
			"levels": {"valueList": {"values": [{"int": 1}, {"int": 2}]}},
			"raw": {"value": {"bytes": "AQI="}},
			"gone": null
		}
	}`

	flat, err := Flatten([]byte(doc))
	is.NoErr(err)

	is.True(values.Equal(flat["entityId"], values.String("s1")))
	is.True(values.Equal(flat["attributes.temperature"], values.Double(21.5)))
	is.Equal(flat["attributes.serial"].Long, int64(9007199254740993))
	is.Equal(flat["attributes.seen"].Type, values.KindTimestamp)
	is.Equal(flat["attributes.levels"].IntArray, []int32{1, 2})
	is.Equal(flat["attributes.raw"].Bytes, []byte{1, 2})

	_, ok := flat["attributes.gone"]
	is.True(!ok)
}

func TestDirectValuesAreTypedByShape(t *testing.T) {
	is := is.New(t)

	flat, err := Flatten([]byte(`{"i":7,"l":3000000000,"d":1.5,"s":"x","b":false,"arr":[1,2.5],"strs":["a","b"],"mixed":["a",1]}`))
	is.NoErr(err)

	is.Equal(flat["i"].Type, values.KindInt)
	is.Equal(flat["l"].Type, values.KindLong)
	is.Equal(flat["d"].Type, values.KindDouble)
	is.Equal(flat["s"].Type, values.KindString)
	is.Equal(flat["b"].Type, values.KindBool)
	is.Equal(flat["arr"].DoubleArray, []float64{1, 2.5})
	is.Equal(flat["strs"].StringArray, []string{"a", "b"})

	_, ok := flat["mixed"]
	is.True(!ok) // heterogeneous arrays have no typed representation
}

func TestAggregateResultsAreFlattened(t *testing.T) {
	is := is.New(t)

	row, err := ToRow([]byte(`{"COUNT_id":3,"city":{"value":{"string":"Sundsvall"}},"DISTINCT_ARRAY_attributes.t":[{"value":{"long":1}}]}`), metadata("city", "COUNT_id"))
	is.NoErr(err)
	is.Equal(row.Columns[0].String, "Sundsvall")
	is.Equal(row.Columns[1].Int, int32(3))
}

func TestMalformedDocumentsFailTheWholeRow(t *testing.T) {
	is := is.New(t)

	_, err := ToRow([]byte(`{"a":`), metadata("a"))
	is.True(errors.Is(err, esErrors.ErrDocumentParseFailure))

	_, err = Flatten([]byte(`[1,2]`))
	is.True(errors.Is(err, esErrors.ErrDocumentParseFailure))

	_, err = Flatten([]byte(`{"raw":{"value":{"bytes":"%%%"}}}`))
	is.True(errors.Is(err, esErrors.ErrDocumentParseFailure))
}
