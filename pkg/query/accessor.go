package query

import "github.com/diwise/entity-service/pkg/variant"

// ExpressionAccessor extracts the active branch of an Expression
var ExpressionAccessor = variant.New("expression", func() map[ExpressionCase]func(Expression) any {
	return map[ExpressionCase]func(Expression) any{
		CaseColumnIdentifier: func(e Expression) any { return e.GetColumnIdentifier() },
		CaseLiteral:          func(e Expression) any { return e.GetLiteral() },
		CaseFunction:         func(e Expression) any { return e.GetFunction() },
		CaseOrderBy:          func(e Expression) any { return e.GetOrderBy() },
	}
})
