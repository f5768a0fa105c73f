package conversion

import "github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"

// Query columns that name top level entity fields by a shorter name
var wellKnownColumns = map[string]string{
	"id":         "entityId",
	"type":       "entityType",
	"name":       "entityName",
	"tenant":     "tenantId",
	"created":    "createdTime",
	"tenantId":   "tenantId",
	"entityId":   "entityId",
	"entityType": "entityType",
	"entityName": "entityName",
}

// ResolveIdentifier maps a query column name to a path in the stored document
func ResolveIdentifier(column string) docstore.Identifier {
	if field, ok := wellKnownColumns[column]; ok {
		return docstore.Identifier{Path: []string{field}}
	}
	return docstore.NewIdentifier(column)
}
