package query

import "github.com/diwise/entity-service/pkg/values"

// FilterOperator names the relation a Filter expresses
type FilterOperator string

const (
	OpAnd       FilterOperator = "AND"
	OpOr        FilterOperator = "OR"
	OpEq        FilterOperator = "EQ"
	OpNeq       FilterOperator = "NEQ"
	OpGt        FilterOperator = "GT"
	OpGe        FilterOperator = "GE"
	OpLt        FilterOperator = "LT"
	OpLe        FilterOperator = "LE"
	OpIn        FilterOperator = "IN"
	OpNotIn     FilterOperator = "NOT_IN"
	OpLike      FilterOperator = "LIKE"
	OpExists    FilterOperator = "EXISTS"
	OpNotExists FilterOperator = "NOT_EXISTS"
)

// Filter is either a composite (AND/OR over Children) or a leaf comparing a
// column (LHS) with a literal (RHS)
type Filter struct {
	Operator FilterOperator `json:"operator"`
	LHS      *Expression    `json:"lhs,omitempty"`
	RHS      *Expression    `json:"rhs,omitempty"`
	Children []Filter       `json:"childFilter,omitempty"`
}

func (f Filter) IsComposite() bool {
	return f.Operator == OpAnd || f.Operator == OpOr
}

func And(children ...Filter) Filter {
	return Filter{Operator: OpAnd, Children: children}
}

func Or(children ...Filter) Filter {
	return Filter{Operator: OpOr, Children: children}
}

// Compare builds a leaf filter comparing column with value
func Compare(column string, op FilterOperator, value values.Value) Filter {
	lhs, rhs := Column(column), Literal(value)
	return Filter{Operator: op, LHS: &lhs, RHS: &rhs}
}

// Exists builds a leaf filter that only tests for the presence of column
func Exists(column string) Filter {
	lhs := Column(column)
	return Filter{Operator: OpExists, LHS: &lhs}
}

// Request is a query over the entities of one entity type
type Request struct {
	EntityType   string       `json:"entityType"`
	Selection    []Expression `json:"selection"`
	Filter       *Filter      `json:"filter,omitempty"`
	GroupBy      []Expression `json:"groupBy,omitempty"`
	OrderBy      []Expression `json:"orderBy,omitempty"`
	Limit        int          `json:"limit,omitempty"`
	Offset       int          `json:"offset,omitempty"`
	IncludeTotal bool         `json:"includeTotal,omitempty"`
}

type ColumnMetadata struct {
	ColumnName string      `json:"columnName"`
	ValueType  values.Kind `json:"valueType"`
}

type ResultSetMetadata struct {
	Columns []ColumnMetadata `json:"columnMetadata"`
}

// ColumnNames returns the names of the columns in order
func (m ResultSetMetadata) ColumnNames() []string {
	names := make([]string, 0, len(m.Columns))
	for _, c := range m.Columns {
		names = append(names, c.ColumnName)
	}
	return names
}

type Row struct {
	Columns []values.Value `json:"columns"`
}

// ResultSetChunk is one piece of a streamed query response. Only the first
// chunk carries metadata and only the last may carry a total.
type ResultSetChunk struct {
	ChunkID           int                `json:"chunkId"`
	IsLastChunk       bool               `json:"isLastChunk"`
	ResultSetMetadata *ResultSetMetadata `json:"resultSetMetadata,omitempty"`
	Rows              []Row              `json:"rows"`
	Total             *int64             `json:"total,omitempty"`
}
