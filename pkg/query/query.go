package query

import (
	"fmt"

	"github.com/diwise/entity-service/pkg/values"
)

// ExpressionCase is the discriminator of an Expression
type ExpressionCase int

const (
	CaseColumnIdentifier ExpressionCase = iota
	CaseLiteral
	CaseFunction
	CaseOrderBy
)

var caseNames = map[ExpressionCase]string{
	CaseColumnIdentifier: "COLUMN_IDENTIFIER",
	CaseLiteral:          "LITERAL",
	CaseFunction:         "FUNCTION",
	CaseOrderBy:          "ORDER_BY",
}

// ExpressionCases lists every ExpressionCase in declaration order
func ExpressionCases() []ExpressionCase {
	return []ExpressionCase{CaseColumnIdentifier, CaseLiteral, CaseFunction, CaseOrderBy}
}

func (c ExpressionCase) String() string {
	if name, ok := caseNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ExpressionCase(%d)", int(c))
}

func (c ExpressionCase) MarshalText() ([]byte, error) {
	name, ok := caseNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown expression case %d", int(c))
	}
	return []byte(name), nil
}

func (c *ExpressionCase) UnmarshalText(text []byte) error {
	for ec, name := range caseNames {
		if name == string(text) {
			*c = ec
			return nil
		}
	}
	return fmt.Errorf("unknown expression case %q", string(text))
}

// Expression is one of a column reference, a literal, a function call or an
// order by clause. ValueCase selects the populated branch.
type Expression struct {
	ValueCase ExpressionCase `json:"valueCase"`

	ColumnIdentifier *ColumnIdentifier  `json:"columnIdentifier,omitempty"`
	Literal          *LiteralConstant   `json:"literal,omitempty"`
	Function         *Function          `json:"function,omitempty"`
	OrderBy          *OrderByExpression `json:"orderBy,omitempty"`
}

type ColumnIdentifier struct {
	ColumnName string `json:"columnName"`
	Alias      string `json:"alias,omitempty"`
}

type LiteralConstant struct {
	Value values.Value `json:"value"`
	Alias string       `json:"alias,omitempty"`
}

type Function struct {
	FunctionName string       `json:"functionName"`
	Arguments    []Expression `json:"arguments"`
	Alias        string       `json:"alias,omitempty"`
}

type SortOrder string

const (
	SortAscending  SortOrder = "ASC"
	SortDescending SortOrder = "DESC"
)

type OrderByExpression struct {
	Expression Expression `json:"expression"`
	Order      SortOrder  `json:"order,omitempty"`
}

func (e Expression) GetColumnIdentifier() ColumnIdentifier {
	if e.ColumnIdentifier == nil {
		return ColumnIdentifier{}
	}
	return *e.ColumnIdentifier
}

func (e Expression) GetLiteral() LiteralConstant {
	if e.Literal == nil {
		return LiteralConstant{}
	}
	return *e.Literal
}

func (e Expression) GetFunction() Function {
	if e.Function == nil {
		return Function{Arguments: []Expression{}}
	}
	return *e.Function
}

func (e Expression) GetOrderBy() OrderByExpression {
	if e.OrderBy == nil {
		return OrderByExpression{Order: SortAscending}
	}
	return *e.OrderBy
}

// Column creates a column reference expression
func Column(name string) Expression {
	return Expression{ValueCase: CaseColumnIdentifier, ColumnIdentifier: &ColumnIdentifier{ColumnName: name}}
}

// AliasedColumn creates a column reference with an explicit alias
func AliasedColumn(name, alias string) Expression {
	return Expression{ValueCase: CaseColumnIdentifier, ColumnIdentifier: &ColumnIdentifier{ColumnName: name, Alias: alias}}
}

func Literal(v values.Value) Expression {
	return Expression{ValueCase: CaseLiteral, Literal: &LiteralConstant{Value: v}}
}

func Func(name string, args ...Expression) Expression {
	return Expression{ValueCase: CaseFunction, Function: &Function{FunctionName: name, Arguments: args}}
}

func AliasedFunc(name, alias string, args ...Expression) Expression {
	return Expression{ValueCase: CaseFunction, Function: &Function{FunctionName: name, Arguments: args, Alias: alias}}
}

func OrderBy(e Expression, order SortOrder) Expression {
	return Expression{ValueCase: CaseOrderBy, OrderBy: &OrderByExpression{Expression: e, Order: order}}
}
