package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diwise/entity-service/internal/pkg/application/entityservice"
	"github.com/diwise/entity-service/internal/pkg/presentation/api/auth"
	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/tenant"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UpsertEntityRequest is the payload accepted by the upsert endpoint
type UpsertEntityRequest struct {
	Entity    entities.Entity           `json:"entity"`
	Condition *entities.UpsertCondition `json:"condition,omitempty"`
}

func NewUpsertEntityHandler(app entityservice.EntityService, authorizer auth.Authorizer) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx := r.Context()
		t := tenant.FromContext(ctx)

		ctx, span := tracer.Start(ctx, "upsert-entity", trace.WithAttributes(attribute.String(TraceAttributeTenant, t)))
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		request := UpsertEntityRequest{}
		err = json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			errors.ReportNewInvalidRequest(w, fmt.Sprintf("unable to decode request payload: %s", err.Error()), traceID)
			return
		}

		err = authorizer.Authorize(ctx, auth.BearerToken(r), auth.Access{Tenant: t, Action: auth.ActionWrite, EntityType: request.Entity.EntityType})
		if err != nil {
			errors.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		span.SetAttributes(attribute.String(TraceAttributeEntityType, request.Entity.EntityType))

		result, err := app.UpsertEntity(ctx, t, request.Entity, request.Condition)
		if err != nil {
			log.Error("failed to upsert entity", "entity_type", request.Entity.EntityType, "err", err.Error())
			errors.NewProblemFromError(err, traceID).WriteResponse(w)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

func NewRetrieveEntityHandler(app entityservice.EntityService, authorizer auth.Authorizer) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx := r.Context()
		t := tenant.FromContext(ctx)

		entityType, _ := url.PathUnescape(chi.URLParam(r, "entityType"))
		entityID, _ := url.PathUnescape(chi.URLParam(r, "entityId"))

		ctx, span := tracer.Start(ctx, "retrieve-entity",
			trace.WithAttributes(
				attribute.String(TraceAttributeTenant, t),
				attribute.String(TraceAttributeEntityType, entityType),
				attribute.String(TraceAttributeEntityID, entityID),
			),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, _ := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		err = authorizer.Authorize(ctx, auth.BearerToken(r), auth.Access{Tenant: t, Action: auth.ActionRead, EntityType: entityType})
		if err != nil {
			errors.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		entity, err := app.GetEntity(ctx, t, entityType, entityID)
		if err != nil {
			errors.NewProblemFromError(err, traceID).WriteResponse(w)
			return
		}

		writeJSON(w, http.StatusOK, entity)
	})
}

// NewQueryEntitiesHandler streams the result set as newline delimited json,
// one chunk per line. Failures after the first chunk has been written are
// reported as a trailing {"error": "..."} line.
func NewQueryEntitiesHandler(app entityservice.EntityService, authorizer auth.Authorizer) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx := r.Context()
		t := tenant.FromContext(ctx)

		ctx, span := tracer.Start(ctx, "query-entities", trace.WithAttributes(attribute.String(TraceAttributeTenant, t)))
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		request := query.Request{}
		err = json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			errors.ReportNewInvalidRequest(w, fmt.Sprintf("unable to decode query: %s", err.Error()), traceID)
			return
		}

		err = authorizer.Authorize(ctx, auth.BearerToken(r), auth.Access{Tenant: t, Action: auth.ActionQuery, EntityType: request.EntityType})
		if err != nil {
			errors.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		started := false
		encoder := json.NewEncoder(w)
		flusher, canFlush := w.(http.Flusher)

		err = app.Query(ctx, t, request, func(chunk query.ResultSetChunk) error {
			if !started {
				w.Header().Add("Content-Type", NDJSONContentType)
				w.WriteHeader(http.StatusOK)
				started = true
			}

			if err := encoder.Encode(chunk); err != nil {
				return err
			}

			if canFlush {
				flusher.Flush()
			}

			return nil
		})

		if err != nil {
			log.Error("query failed", "entity_type", request.EntityType, "err", err.Error())

			if !started {
				errors.NewProblemFromError(err, traceID).WriteResponse(w)
				return
			}

			encoder.Encode(struct {
				Error string `json:"error"`
			}{err.Error()})
		}
	})
}

func NewRetrieveEntityTypesHandler(app entityservice.EntityService, authorizer auth.Authorizer) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx := r.Context()
		t := tenant.FromContext(ctx)

		ctx, span := tracer.Start(ctx, "retrieve-entity-types", trace.WithAttributes(attribute.String(TraceAttributeTenant, t)))
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, _ := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		err = authorizer.Authorize(ctx, auth.BearerToken(r), auth.Access{Tenant: t, Action: auth.ActionRead})
		if err != nil {
			errors.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		types, err := app.GetEntityTypes(ctx, t)
		if err != nil {
			errors.NewProblemFromError(err, traceID).WriteResponse(w)
			return
		}

		writeJSON(w, http.StatusOK, types)
	})
}

func NewUpsertEntityTypeHandler(app entityservice.EntityService, authorizer auth.Authorizer) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx := r.Context()
		t := tenant.FromContext(ctx)

		ctx, span := tracer.Start(ctx, "upsert-entity-type", trace.WithAttributes(attribute.String(TraceAttributeTenant, t)))
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, _ := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		entityType := entities.EntityType{}
		err = json.NewDecoder(r.Body).Decode(&entityType)
		if err != nil {
			errors.ReportNewInvalidRequest(w, fmt.Sprintf("unable to decode entity type: %s", err.Error()), traceID)
			return
		}

		err = authorizer.Authorize(ctx, auth.BearerToken(r), auth.Access{Tenant: t, Action: auth.ActionWrite, EntityType: entityType.Name})
		if err != nil {
			errors.ReportUnauthorizedRequest(w, err.Error(), traceID)
			return
		}

		result, err := app.UpsertEntityType(ctx, t, entityType)
		if err != nil {
			errors.NewProblemFromError(err, traceID).WriteResponse(w)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		errors.ReportNewInternalError(w, err.Error(), "")
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}
