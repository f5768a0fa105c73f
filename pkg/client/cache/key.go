package cache

import (
	"context"
	"fmt"

	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/tenant"
)

// EntityKey identifies an entity within the caches. Two keys are equal iff
// tenant, type and identity are equal, which makes EntityKey usable as a map
// key directly.
type EntityKey struct {
	TenantID   string
	EntityType string
	Identity   string
}

// KeyOf returns the key of e for the tenant carried by ctx
func KeyOf(ctx context.Context, e entities.Entity) EntityKey {
	return NewEntityKey(tenant.FromContext(ctx), e)
}

func NewEntityKey(tenantID string, e entities.Entity) EntityKey {
	if tenantID == "" {
		tenantID = tenant.Default
	}

	identity := "id:" + e.EntityID
	if e.EntityID == "" {
		identity = "attrs:" + e.CanonicalIdentifyingAttributes()
	}

	return EntityKey{
		TenantID:   tenantID,
		EntityType: e.EntityType,
		Identity:   identity,
	}
}

// String quotes every component so that distinct keys never render alike
func (k EntityKey) String() string {
	return fmt.Sprintf("%q/%q/%q", k.TenantID, k.EntityType, k.Identity)
}
