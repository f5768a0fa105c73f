package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const sensorPolicy string = `
package entityservice.authz

default allow = false

allow {
	input.tenant == "default"
	input.token == "secret"
	input.action == "read"
}

allow {
	input.tenant == "default"
	input.token == "secret"
	input.entityType == "Sensor"
}
`

func TestReadsAreAllowedForEveryType(t *testing.T) {
	is, ctx, a := testSetup(t)

	is.NoErr(a.Authorize(ctx, "secret", Access{Tenant: "default", Action: ActionRead}))
	is.NoErr(a.Authorize(ctx, "secret", Access{Tenant: "default", Action: ActionRead, EntityType: "Device"}))
}

func TestWritesAreLimitedToTheGrantedType(t *testing.T) {
	is, ctx, a := testSetup(t)

	is.NoErr(a.Authorize(ctx, "secret", Access{Tenant: "default", Action: ActionWrite, EntityType: "Sensor"}))

	err := a.Authorize(ctx, "secret", Access{Tenant: "default", Action: ActionWrite, EntityType: "Device"})
	is.True(errors.Is(err, ErrAccessDenied))

	err = a.Authorize(ctx, "secret", Access{Tenant: "default", Action: ActionQuery})
	is.True(errors.Is(err, ErrAccessDenied)) // a query across every type is not a Sensor query
}

func TestAccessIsDeniedForOtherTenantsAndTokens(t *testing.T) {
	is, ctx, a := testSetup(t)

	err := a.Authorize(ctx, "secret", Access{Tenant: "other", Action: ActionRead})
	is.True(errors.Is(err, ErrAccessDenied))

	err = a.Authorize(ctx, "", Access{Tenant: "default", Action: ActionRead})
	is.True(errors.Is(err, ErrAccessDenied))
}

func TestBearerTokenIsTakenFromTheAuthorizationHeader(t *testing.T) {
	is := is.New(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/entity-types", nil)
	is.Equal(BearerToken(r), "")

	r.Header.Set("Authorization", "Bearer secret")
	is.Equal(BearerToken(r), "secret")
}

func TestInvalidPoliciesAreRejected(t *testing.T) {
	is := is.New(t)

	_, err := NewAuthorizer(context.Background(), strings.NewReader("this is not rego"))
	is.True(err != nil)
}

func testSetup(t *testing.T) (*is.I, context.Context, Authorizer) {
	is := is.New(t)
	ctx := context.Background()

	a, err := NewAuthorizer(ctx, strings.NewReader(sensorPolicy))
	is.NoErr(err)

	return is, ctx, a
}
