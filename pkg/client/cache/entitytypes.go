package cache

import (
	"context"
	"fmt"
	"slices"

	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/tenant"
)

// EntityTypeClient fetches every entity type of the tenant in ctx
type EntityTypeClient interface {
	GetEntityTypes(ctx context.Context) ([]entities.EntityType, error)
}

// EntityTypeCachingClient memoizes the entity types of each tenant
type EntityTypeCachingClient struct {
	upstream EntityTypeClient
	types    *loadingCache[string, []entities.EntityType]
}

func NewEntityTypeCachingClient(upstream EntityTypeClient, options ...Option) *EntityTypeCachingClient {
	cfg := newConfig(options)

	return &EntityTypeCachingClient{
		upstream: upstream,
		types:    newLoadingCache[string, []entities.EntityType](cfg.maxKeys, cfg.expireAfterWrite),
	}
}

func (c *EntityTypeCachingClient) load(ctx context.Context) ([]entities.EntityType, bool, error) {
	t := tenant.FromContext(ctx)
	return c.types.load(ctx, t, t, c.upstream.GetEntityTypes)
}

// GetAll returns the entity types of the tenant in ctx
func (c *EntityTypeCachingClient) GetAll(ctx context.Context) ([]entities.EntityType, error) {
	types, _, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	return slices.Clone(types), nil
}

// GetByName looks name up in the cached types of the tenant in ctx. A name
// missing from a cached snapshot causes one refetch before NotFound is
// returned.
func (c *EntityTypeCachingClient) GetByName(ctx context.Context, name string) (entities.EntityType, error) {
	for refetched := false; ; refetched = true {
		types, fresh, err := c.load(ctx)
		if err != nil {
			return entities.EntityType{}, err
		}

		if idx := slices.IndexFunc(types, func(et entities.EntityType) bool { return et.Name == name }); idx >= 0 {
			return types[idx], nil
		}

		if fresh || refetched {
			return entities.EntityType{}, errors.NewNotFoundError(fmt.Sprintf("entity type %s not found", name))
		}

		c.Invalidate(ctx)
	}
}

// Invalidate drops the cached types of the tenant in ctx
func (c *EntityTypeCachingClient) Invalidate(ctx context.Context) {
	t := tenant.FromContext(ctx)
	c.types.evict(t, t)
}
