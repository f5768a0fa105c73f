package postgres

import (
	"strings"
	"testing"

	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
	"github.com/matryer/is"
)

func TestFindWithoutSelectionsReturnsWholeDocuments(t *testing.T) {
	is := is.New(t)

	sql, args, err := buildFind("entities", docstore.Query{
		Filter: &docstore.Filter{Operator: docstore.FilterAnd, Children: []docstore.Filter{
			docstore.Eq("tenantId", "default"),
			docstore.Eq("entityType", "Sensor"),
		}},
		Limit:  10,
		Offset: 20,
	})
	is.NoErr(err)

	is.True(strings.HasPrefix(sql, "SELECT document::text FROM documents WHERE collection = $1 AND ("))
	is.True(strings.HasSuffix(sql, " ORDER BY id LIMIT 10 OFFSET 20"))
	is.Equal(args, []any{"entities", "default", "Sensor"})
}

func TestFindBuildsAliasedObject(t *testing.T) {
	is := is.New(t)

	sql, _, err := buildFind("entities", docstore.Query{
		Selections: []docstore.Selection{
			{Expression: docstore.NewIdentifier("attributes.city"), Alias: "city"},
			{Expression: docstore.Aggregate{Operator: docstore.AggregateAvg, Identifier: docstore.NewIdentifier("attributes.t")}, Alias: "AVG_attributes.t"},
		},
		GroupBy: []docstore.Identifier{docstore.NewIdentifier("attributes.city")},
	})
	is.NoErr(err)

	is.True(strings.Contains(sql, `jsonb_build_object('city', document #> '{"attributes","city"}', 'AVG_attributes.t', AVG((COALESCE(`))
	is.True(strings.Contains(sql, `document #>> '{"attributes","t","value","double"}'`))
	is.True(strings.HasSuffix(sql, ` GROUP BY document #> '{"attributes","city"}'`))
}

func TestIdentifiersAreQuoted(t *testing.T) {
	is := is.New(t)

	is.Equal(pathLiteral("attributes", `it's "odd"`), `'{"attributes","it''s \"odd\""}'`)
}

func TestFilterOperandsFollowTheComparedValue(t *testing.T) {
	is := is.New(t)

	s := newStatement("document")

	cond, err := s.filter(docstore.Filter{Operator: docstore.FilterGe, Identifier: docstore.NewIdentifier("attributes.t"), Value: int64(20)})
	is.NoErr(err)
	is.True(strings.HasSuffix(cond, ")::double precision >= $1"))
	is.Equal(s.args[0], float64(20))

	cond, err = s.filter(docstore.Filter{Operator: docstore.FilterIn, Identifier: docstore.NewIdentifier("entityId"), Value: []string{"a", "b"}})
	is.NoErr(err)
	is.True(strings.HasSuffix(cond, " = ANY($2)"))

	cond, err = s.filter(docstore.Filter{Operator: docstore.FilterNotExists, Identifier: docstore.NewIdentifier("attributes.alarm")})
	is.NoErr(err)
	is.Equal(cond, `document #> '{"attributes","alarm"}' IS NULL`)

	_, err = s.filter(docstore.Filter{Operator: docstore.FilterEq, Identifier: docstore.NewIdentifier("x"), Value: map[string]string{}})
	is.True(err != nil)
}

func TestCountOverGroups(t *testing.T) {
	is := is.New(t)

	sql, _, err := buildCount("entities", docstore.Query{
		GroupBy: []docstore.Identifier{docstore.NewIdentifier("entityType")},
		Limit:   5,
	})
	is.NoErr(err)
	is.Equal(sql, `SELECT COUNT(*) FROM (SELECT 1 FROM documents WHERE collection = $1 GROUP BY document #> '{"entityType"}') grouped`)
}

func TestMergeAndUpsertIsGuardedByCondition(t *testing.T) {
	is := is.New(t)

	sql, args, err := buildMergeAndUpsert("entities", "default:s1", []byte(`{}`), &docstore.Condition{
		Identifier: docstore.NewIdentifier("attributes.version"),
		Operator:   docstore.ConditionLessThan,
		Value:      int64(3),
	})
	is.NoErr(err)

	is.True(strings.Contains(sql, `WHERE (COALESCE(d.document #>> '{"attributes","version","value","double"}'`))
	is.True(strings.HasSuffix(sql, " < $4 RETURNING document::text"))
	is.Equal(len(args), 4)

	_, _, err = buildMergeAndUpsert("entities", "x", []byte(`{}`), &docstore.Condition{Operator: "LIKE"})
	is.True(err != nil)
}
