package entities

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/diwise/entity-service/pkg/values"
)

// Entity is a tenant scoped, typed document. Its identity is EntityID when
// set and otherwise the full set of identifying attributes.
type Entity struct {
	TenantID              string                  `json:"tenantId,omitempty"`
	EntityType            string                  `json:"entityType"`
	EntityID              string                  `json:"entityId,omitempty"`
	EntityName            string                  `json:"entityName,omitempty"`
	IdentifyingAttributes map[string]values.Value `json:"identifyingAttributes,omitempty"`
	Attributes            map[string]values.Value `json:"attributes,omitempty"`
	CreatedTime           int64                   `json:"createdTimeMillis,omitempty"`
}

// CanonicalIdentifyingAttributes returns a stable encoding of the
// identifying attributes, with keys in sorted order
func (e Entity) CanonicalIdentifyingAttributes() string {
	keys := slices.Sorted(maps.Keys(e.IdentifyingAttributes))

	sb := strings.Builder{}
	sb.WriteString("{")
	for idx, k := range keys {
		if idx > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf("%q=%s", k, values.Canonical(e.IdentifyingAttributes[k])))
	}
	sb.WriteString("}")

	return sb.String()
}

// Created returns CreatedTime as a time.Time
func (e Entity) Created() time.Time {
	return time.UnixMilli(e.CreatedTime).UTC()
}

type Option func(*Entity)

// New creates an entity of the given type and applies the supplied options
func New(entityType string, options ...Option) Entity {
	e := Entity{
		EntityType:            entityType,
		IdentifyingAttributes: map[string]values.Value{},
		Attributes:            map[string]values.Value{},
	}

	for _, opt := range options {
		opt(&e)
	}

	return e
}

func ID(id string) Option {
	return func(e *Entity) { e.EntityID = id }
}

func Name(name string) Option {
	return func(e *Entity) { e.EntityName = name }
}

func Tenant(tenant string) Option {
	return func(e *Entity) { e.TenantID = tenant }
}

func IdentifyingAttribute(key string, v values.Value) Option {
	return func(e *Entity) { e.IdentifyingAttributes[key] = v }
}

func Attribute(key string, v values.Value) Option {
	return func(e *Entity) { e.Attributes[key] = v }
}

type ConditionOperator string

const (
	Equals      ConditionOperator = "EQUALS"
	LessThan    ConditionOperator = "LESS_THAN"
	GreaterThan ConditionOperator = "GREATER_THAN"
)

// UpsertCondition is evaluated against the currently stored entity. When it
// does not hold the stored entity is returned unchanged.
type UpsertCondition struct {
	Attribute string            `json:"attribute"`
	Operator  ConditionOperator `json:"operator"`
	Value     values.Value      `json:"value"`
}

func (c UpsertCondition) Validate() error {
	if c.Attribute == "" {
		return fmt.Errorf("condition attribute must not be empty")
	}

	switch c.Operator {
	case Equals, LessThan, GreaterThan:
	default:
		return fmt.Errorf("unsupported condition operator %q", c.Operator)
	}

	if c.Value.Type.IsArray() || c.Value.Type.IsMap() {
		return fmt.Errorf("operator %s cannot compare values of type %s", c.Operator, c.Value.Type)
	}

	return nil
}

type EntityType struct {
	TenantID              string `json:"tenantId,omitempty"`
	Name                  string `json:"name"`
	AttributeScope        string `json:"attributeScope,omitempty"`
	IDAttributeKey        string `json:"idAttributeKey,omitempty"`
	TimestampAttributeKey string `json:"timestampAttributeKey,omitempty"`
}
