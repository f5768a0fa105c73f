package entityservice

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diwise/entity-service/internal/pkg/application/conversion"
	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/values"
)

// Field names of a stored entity document
const (
	fieldTenantID              string = "tenantId"
	fieldEntityType            string = "entityType"
	fieldEntityID              string = "entityId"
	fieldEntityName            string = "entityName"
	fieldIdentifyingAttributes string = "identifyingAttributes"
	fieldAttributes            string = "attributes"
	fieldCreatedTime           string = "createdTime"
)

func encodeEntity(e entities.Entity) ([]byte, error) {
	doc := map[string]any{
		fieldTenantID:    e.TenantID,
		fieldEntityType:  e.EntityType,
		fieldEntityID:    e.EntityID,
		fieldCreatedTime: e.CreatedTime,
	}

	if e.EntityName != "" {
		doc[fieldEntityName] = e.EntityName
	}

	for field, attrs := range map[string]map[string]values.Value{
		fieldIdentifyingAttributes: e.IdentifyingAttributes,
		fieldAttributes:            e.Attributes,
	} {
		wrapped := map[string]any{}
		for k, v := range attrs {
			w, err := values.Wrap(v)
			if err != nil {
				return nil, fmt.Errorf("unable to encode attribute %s: %w", k, err)
			}
			wrapped[k] = w
		}
		doc[field] = wrapped
	}

	return json.Marshal(doc)
}

// decodeEntity rebuilds an entity from a stored document using the same
// flattening that query results go through
func decodeEntity(document []byte) (entities.Entity, error) {
	flat, err := conversion.Flatten(document)
	if err != nil {
		return entities.Entity{}, err
	}

	e := entities.Entity{
		TenantID:              flat[fieldTenantID].String,
		EntityType:            flat[fieldEntityType].String,
		EntityID:              flat[fieldEntityID].String,
		EntityName:            flat[fieldEntityName].String,
		IdentifyingAttributes: map[string]values.Value{},
		Attributes:            map[string]values.Value{},
	}

	if created, ok := flat[fieldCreatedTime]; ok {
		switch created.Type {
		case values.KindLong:
			e.CreatedTime = created.Long
		case values.KindInt:
			e.CreatedTime = int64(created.Int)
		}
	}

	for key, v := range flat {
		if name, ok := strings.CutPrefix(key, fieldAttributes+"."); ok {
			e.Attributes[name] = v
		} else if name, ok := strings.CutPrefix(key, fieldIdentifyingAttributes+"."); ok {
			e.IdentifyingAttributes[name] = v
		}
	}

	return e, nil
}
