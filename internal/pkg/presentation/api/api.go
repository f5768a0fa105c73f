package api

import (
	"context"
	"fmt"
	"io"

	"github.com/diwise/entity-service/internal/pkg/application/entityservice"
	"github.com/diwise/entity-service/internal/pkg/presentation/api/auth"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("entity-service/api")

const (
	TraceAttributeTenant     string = "entity-service.tenant"
	TraceAttributeEntityType string = "entity-service.entity-type"
	TraceAttributeEntityID   string = "entity-service.entity-id"
)

const NDJSONContentType string = "application/x-ndjson"

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, app entityservice.EntityService) error {

	authorizer, err := auth.NewAuthorizer(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authorizer: %w", err)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			Logger(logging.GetFromContext(ctx)),
			TenantMiddleware(),
			RequiredContentTypes([]string{"application/json"}),
		)

		r.Route("/entities", func(r chi.Router) {
			r.Post("/", NewUpsertEntityHandler(app, authorizer))
			r.Post("/query", NewQueryEntitiesHandler(app, authorizer))
			r.Get("/{entityType}/{entityId}", NewRetrieveEntityHandler(app, authorizer))
		})

		r.Route("/entity-types", func(r chi.Router) {
			r.Get("/", NewRetrieveEntityTypesHandler(app, authorizer))
			r.Post("/", NewUpsertEntityTypeHandler(app, authorizer))
		})
	})

	return nil
}
