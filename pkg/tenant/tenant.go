package tenant

import "context"

const (
	// Default is used whenever a request does not carry a tenant of its own
	Default string = "default"

	// HeaderName is the HTTP header used to propagate the tenant between services
	HeaderName string = "Tenant-Id"
)

type tenantContextKey struct {
	name string
}

var tenantCtxKey = &tenantContextKey{"entity-service-tenant"}

// NewContext returns a copy of ctx that carries the supplied tenant
func NewContext(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, tenantCtxKey, tenant)
}

// FromContext extracts the tenant from ctx, falling back to Default
func FromContext(ctx context.Context) string {
	tenant, ok := ctx.Value(tenantCtxKey).(string)
	if !ok || tenant == "" {
		return Default
	}

	return tenant
}
