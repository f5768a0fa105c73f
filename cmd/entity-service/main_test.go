package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diwise/entity-service/internal/pkg/application/entityservice"
	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/tenant"
	"github.com/matryer/is"
)

func TestRouterServesTheApi(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	app := &entityservice.EntityServiceMock{
		GetEntityTypesFunc: func(ctx context.Context, tnt string) ([]entities.EntityType, error) {
			return []entities.EntityType{{TenantID: tnt, Name: "Device"}}, nil
		},
	}

	r, err := newRouter(ctx, app, &AppConfig{opaConfig: newAuthConfig()})
	is.NoErr(err)

	ts := httptest.NewServer(r)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/entity-types", nil)
	req.Header.Add(tenant.HeaderName, "north")
	req.Header.Add("Origin", "https://example.org")

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(string(body), `[{"tenantId":"north","name":"Device"}]`)
	is.True(resp.Header.Get("Access-Control-Allow-Origin") != "")
}

func TestDefaultFlagsCanBeOverriddenByEnvironment(t *testing.T) {
	is := is.New(t)

	t.Setenv("SERVICE_PORT", "9090")

	flags := parseExternalConfig(context.Background(), DefaultFlags())
	is.Equal(flags[servicePort], "9090")
	is.Equal(flags[logFormat], "json")
}

func newAuthConfig() io.ReadCloser {
	return io.NopCloser(bytes.NewBufferString(opaModule))
}

const opaModule string = `
package entityservice.authz

allow := true
`
