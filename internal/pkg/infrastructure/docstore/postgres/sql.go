package postgres

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
)

// storage keys probed, in order, when reading a scalar out of a value wrapper
var scalarKeys = []string{"string", "double", "long", "int", "float", "boolean", "timestamp", "bytes"}
var numericKeys = []string{"double", "long", "int", "float", "timestamp"}

type statement struct {
	column string
	sql    strings.Builder
	args   []any
}

func newStatement(column string) *statement {
	return &statement{column: column}
}

func (s *statement) arg(v any) string {
	s.args = append(s.args, v)
	return fmt.Sprintf("$%d", len(s.args))
}

func (s *statement) write(format string, args ...any) {
	s.sql.WriteString(fmt.Sprintf(format, args...))
}

// pathLiteral renders a text[] literal usable with the #> and #>> operators
func pathLiteral(path ...string) string {
	elements := make([]string, 0, len(path))
	for _, p := range path {
		p = strings.ReplaceAll(p, `\`, `\\`)
		p = strings.ReplaceAll(p, `"`, `\"`)
		elements = append(elements, `"`+p+`"`)
	}
	return quoteLiteral("{" + strings.Join(elements, ",") + "}")
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (s *statement) jsonAt(id docstore.Identifier) string {
	return fmt.Sprintf("%s #> %s", s.column, pathLiteral(id.Path...))
}

func (s *statement) textAt(path ...string) string {
	return fmt.Sprintf("%s #>> %s", s.column, pathLiteral(path...))
}

func (s *statement) wrapped(id docstore.Identifier, keys []string) []string {
	probes := make([]string, 0, len(keys))
	for _, k := range keys {
		probes = append(probes, s.textAt(append(append([]string{}, id.Path...), "value", k)...))
	}
	return probes
}

// scalar reads the value at id as text, whether it is stored in a value
// wrapper or directly
func (s *statement) scalar(id docstore.Identifier) string {
	probes := append(s.wrapped(id, scalarKeys), s.textAt(id.Path...))
	return "COALESCE(" + strings.Join(probes, ", ") + ")"
}

func (s *statement) typedScalar(id docstore.Identifier, keys []string, jsonType string) string {
	direct := fmt.Sprintf("CASE WHEN jsonb_typeof(%s) = '%s' THEN %s END", s.jsonAt(id), jsonType, s.textAt(id.Path...))
	probes := append(s.wrapped(id, keys), direct)
	return "COALESCE(" + strings.Join(probes, ", ") + ")"
}

func (s *statement) numeric(id docstore.Identifier) string {
	return "(" + s.typedScalar(id, numericKeys, "number") + ")::double precision"
}

func (s *statement) text(id docstore.Identifier) string {
	return s.typedScalar(id, []string{"string"}, "string")
}

func (s *statement) boolean(id docstore.Identifier) string {
	return "(" + s.typedScalar(id, []string{"boolean"}, "boolean") + ")::boolean"
}

func (s *statement) aggregate(a docstore.Aggregate) (string, error) {
	switch a.Operator {
	case docstore.AggregateAvg, docstore.AggregateMin, docstore.AggregateMax, docstore.AggregateSum:
		return fmt.Sprintf("%s(%s)", a.Operator, s.numeric(a.Identifier)), nil
	case docstore.AggregateCount:
		return fmt.Sprintf("COUNT(%s)", s.scalar(a.Identifier)), nil
	case docstore.AggregateDistinctCount:
		return fmt.Sprintf("COUNT(DISTINCT %s)", s.scalar(a.Identifier)), nil
	case docstore.AggregateDistinctArray:
		sc := s.scalar(a.Identifier)
		return fmt.Sprintf("to_jsonb(ARRAY_AGG(DISTINCT %s) FILTER (WHERE %s IS NOT NULL))", sc, sc), nil
	}
	return "", fmt.Errorf("unsupported aggregate operator %q", a.Operator)
}

func (s *statement) selecting(e docstore.SelectingExpression) (string, error) {
	switch expr := e.(type) {
	case docstore.Identifier:
		return s.jsonAt(expr), nil
	case docstore.Aggregate:
		return s.aggregate(expr)
	case docstore.Constant:
		b, err := json.Marshal(expr.Value)
		if err != nil {
			return "", fmt.Errorf("unable to encode constant: %w", err)
		}
		return s.arg(string(b)) + "::jsonb", nil
	}
	return "", fmt.Errorf("unsupported selecting expression %T", e)
}

var comparisons = map[docstore.FilterOperator]string{
	docstore.FilterEq:  "=",
	docstore.FilterNeq: "<>",
	docstore.FilterGt:  ">",
	docstore.FilterGe:  ">=",
	docstore.FilterLt:  "<",
	docstore.FilterLe:  "<=",
}

// operand picks how the stored value is read based on the type of the
// value it is compared with, and converts that value into a query argument
func (s *statement) operand(id docstore.Identifier, value any) (string, any, error) {
	switch v := value.(type) {
	case string:
		return s.text(id), v, nil
	case bool:
		return s.boolean(id), v, nil
	case int32:
		return s.numeric(id), float64(v), nil
	case int64:
		return s.numeric(id), float64(v), nil
	case float32:
		return s.numeric(id), float64(v), nil
	case float64:
		return s.numeric(id), v, nil
	case []byte:
		return s.textAt(append(append([]string{}, id.Path...), "value", "bytes")...), base64.StdEncoding.EncodeToString(v), nil
	case []string:
		return s.text(id), v, nil
	case []bool:
		return s.boolean(id), v, nil
	case []int32:
		return s.numeric(id), toFloats(v), nil
	case []int64:
		return s.numeric(id), toFloats(v), nil
	case []float32:
		return s.numeric(id), toFloats(v), nil
	case []float64:
		return s.numeric(id), v, nil
	}
	return "", nil, fmt.Errorf("unable to compare with value of type %T", value)
}

func toFloats[T int32 | int64 | float32](v []T) []float64 {
	f := make([]float64, 0, len(v))
	for _, e := range v {
		f = append(f, float64(e))
	}
	return f
}

func (s *statement) filter(f docstore.Filter) (string, error) {
	switch f.Operator {
	case docstore.FilterAnd, docstore.FilterOr:
		parts := make([]string, 0, len(f.Children))
		for _, c := range f.Children {
			part, err := s.filter(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return "(" + strings.Join(parts, " "+string(f.Operator)+" ") + ")", nil
	case docstore.FilterExists:
		return s.jsonAt(f.Identifier) + " IS NOT NULL", nil
	case docstore.FilterNotExists:
		return s.jsonAt(f.Identifier) + " IS NULL", nil
	}

	lhs, value, err := s.operand(f.Identifier, f.Value)
	if err != nil {
		return "", err
	}

	switch f.Operator {
	case docstore.FilterIn:
		return fmt.Sprintf("%s = ANY(%s)", lhs, s.arg(value)), nil
	case docstore.FilterNotIn:
		return fmt.Sprintf("NOT (%s = ANY(%s))", lhs, s.arg(value)), nil
	case docstore.FilterLike:
		return fmt.Sprintf("%s ~ %s", lhs, s.arg(value)), nil
	}

	op, ok := comparisons[f.Operator]
	if !ok {
		return "", fmt.Errorf("unsupported filter operator %q", f.Operator)
	}

	return fmt.Sprintf("%s %s %s", lhs, op, s.arg(value)), nil
}

func (s *statement) where(collection string, f *docstore.Filter) error {
	s.write(" WHERE collection = %s", s.arg(collection))

	if f != nil {
		cond, err := s.filter(*f)
		if err != nil {
			return err
		}
		s.write(" AND %s", cond)
	}

	return nil
}

func (s *statement) groupBy(ids []docstore.Identifier) {
	if len(ids) == 0 {
		return
	}

	groups := make([]string, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, s.jsonAt(id))
	}

	s.write(" GROUP BY %s", strings.Join(groups, ", "))
}

// buildFind renders the query for Find. Each returned row is a json object
// keyed by selection alias, or the whole document when nothing is selected.
func buildFind(collection string, q docstore.Query) (string, []any, error) {
	s := newStatement("document")

	if len(q.Selections) == 0 {
		s.write("SELECT document::text FROM documents")
	} else {
		pairs := make([]string, 0, len(q.Selections))
		for _, sel := range q.Selections {
			expr, err := s.selecting(sel.Expression)
			if err != nil {
				return "", nil, err
			}
			pairs = append(pairs, quoteLiteral(sel.Alias)+", "+expr)
		}
		s.write("SELECT jsonb_build_object(%s)::text FROM documents", strings.Join(pairs, ", "))
	}

	if err := s.where(collection, q.Filter); err != nil {
		return "", nil, err
	}

	s.groupBy(q.GroupBy)

	if len(q.Sort) > 0 {
		sorts := make([]string, 0, len(q.Sort))
		for _, srt := range q.Sort {
			expr, err := s.selecting(srt.Expression)
			if err != nil {
				return "", nil, err
			}
			if srt.Descending {
				expr += " DESC"
			}
			sorts = append(sorts, expr)
		}
		s.write(" ORDER BY %s", strings.Join(sorts, ", "))
	} else if len(q.GroupBy) == 0 {
		s.write(" ORDER BY id")
	}

	if q.Limit > 0 {
		s.write(" LIMIT %d", q.Limit)
	}

	if q.Offset > 0 {
		s.write(" OFFSET %d", q.Offset)
	}

	return s.sql.String(), s.args, nil
}

// buildCount renders a query counting the rows Find would return without
// limit and offset
func buildCount(collection string, q docstore.Query) (string, []any, error) {
	s := newStatement("document")

	if len(q.GroupBy) > 0 {
		s.write("SELECT COUNT(*) FROM (SELECT 1 FROM documents")
	} else {
		s.write("SELECT COUNT(*) FROM documents")
	}

	if err := s.where(collection, q.Filter); err != nil {
		return "", nil, err
	}

	if len(q.GroupBy) > 0 {
		s.groupBy(q.GroupBy)
		s.write(") grouped")
	}

	return s.sql.String(), s.args, nil
}

var conditionOperators = map[docstore.ConditionOperator]docstore.FilterOperator{
	docstore.ConditionEquals:      docstore.FilterEq,
	docstore.ConditionLessThan:    docstore.FilterLt,
	docstore.ConditionGreaterThan: docstore.FilterGt,
}

// buildMergeAndUpsert renders an insert that, on conflict, merges the new
// document into the stored one. The attributes objects are merged key by
// key and the stored creation time is kept.
func buildMergeAndUpsert(collection, id string, document []byte, condition *docstore.Condition) (string, []any, error) {
	s := newStatement("d.document")

	s.write("INSERT INTO documents AS d (collection, id, document) VALUES (%s, %s, %s::jsonb)",
		s.arg(collection), s.arg(id), s.arg(string(document)))

	s.write(" ON CONFLICT (collection, id) DO UPDATE SET document = d.document || (EXCLUDED.document - 'createdTime')" +
		" || CASE WHEN EXCLUDED.document ? 'attributes'" +
		" THEN jsonb_build_object('attributes', COALESCE(d.document -> 'attributes', '{}'::jsonb) || (EXCLUDED.document -> 'attributes'))" +
		" ELSE '{}'::jsonb END, modified_at = NOW()")

	if condition != nil {
		op, ok := conditionOperators[condition.Operator]
		if !ok {
			return "", nil, fmt.Errorf("unsupported condition operator %q", condition.Operator)
		}

		cond, err := s.filter(docstore.Filter{Operator: op, Identifier: condition.Identifier, Value: condition.Value})
		if err != nil {
			return "", nil, err
		}

		s.write(" WHERE %s", cond)
	}

	s.write(" RETURNING document::text")

	return s.sql.String(), s.args, nil
}
