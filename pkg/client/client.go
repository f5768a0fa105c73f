package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/tenant"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EntityServiceClient talks to an entity service over http. The tenant of
// every request is taken from the context, see the tenant package.
type EntityServiceClient interface {
	UpsertEntity(ctx context.Context, entity entities.Entity, condition *entities.UpsertCondition) (entities.Entity, error)
	GetEntity(ctx context.Context, entityType, entityID string) (entities.Entity, error)
	Query(ctx context.Context, request query.Request, callback func(query.ResultSetChunk) error) error

	UpsertEntityType(ctx context.Context, entityType entities.EntityType) (entities.EntityType, error)
	GetEntityTypes(ctx context.Context) ([]entities.EntityType, error)
}

func Debug(enabled string) func(*esClient) {
	return func(c *esClient) {
		c.debug = (enabled == "true")
	}
}

func NewEntityServiceClient(baseURL string, options ...func(*esClient)) EntityServiceClient {
	c := &esClient{
		baseURL: baseURL,
		debug:   false,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const (
	TraceAttributeEntityID   string = "entity-id"
	TraceAttributeEntityType string = "entity-type"
	TraceAttributeTenant     string = "tenant"
)

const maxChunkLineSize int = 16 * 1024 * 1024

var tracer = otel.Tracer("entity-service-client")

type esClient struct {
	baseURL    string
	debug      bool
	httpClient http.Client
}

func (c *esClient) UpsertEntity(ctx context.Context, entity entities.Entity, condition *entities.UpsertCondition) (_ entities.Entity, err error) {
	ctx, span := tracer.Start(ctx, "upsert-entity",
		trace.WithAttributes(
			attribute.String(TraceAttributeTenant, tenant.FromContext(ctx)),
			attribute.String(TraceAttributeEntityType, entity.EntityType),
		),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(struct {
		Entity    entities.Entity           `json:"entity"`
		Condition *entities.UpsertCondition `json:"condition,omitempty"`
	}{entity, condition})
	if err != nil {
		return entities.Entity{}, fmt.Errorf("failed to marshal entity: %s (%w)", err.Error(), errors.ErrBadRequest)
	}

	result := entities.Entity{}
	err = c.do(ctx, http.MethodPost, "/api/v1/entities", body, &result)

	return result, err
}

func (c *esClient) GetEntity(ctx context.Context, entityType, entityID string) (_ entities.Entity, err error) {
	ctx, span := tracer.Start(ctx, "retrieve-entity",
		trace.WithAttributes(
			attribute.String(TraceAttributeTenant, tenant.FromContext(ctx)),
			attribute.String(TraceAttributeEntityType, entityType),
			attribute.String(TraceAttributeEntityID, entityID),
		),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := entities.Entity{}
	err = c.do(ctx, http.MethodGet, "/api/v1/entities/"+url.PathEscape(entityType)+"/"+url.PathEscape(entityID), nil, &result)

	return result, err
}

// Query posts request and hands each streamed chunk to callback in order.
// A trailing error line from the service is returned as an error after the
// chunks preceding it have been delivered.
func (c *esClient) Query(ctx context.Context, request query.Request, callback func(query.ResultSetChunk) error) (err error) {
	ctx, span := tracer.Start(ctx, "query-entities",
		trace.WithAttributes(
			attribute.String(TraceAttributeTenant, tenant.FromContext(ctx)),
			attribute.String(TraceAttributeEntityType, request.EntityType),
		),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal query: %s (%w)", err.Error(), errors.ErrBadRequest)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/entities/query", body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return c.responseError(ctx, req, resp, respBody)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxChunkLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if failure := gjson.GetBytes(line, "error"); failure.Exists() {
			return errors.NewInternalError(failure.String(), "")
		}

		chunk := query.ResultSetChunk{}
		if err = json.Unmarshal(line, &chunk); err != nil {
			return fmt.Errorf("failed to decode result chunk: %s (%w)", err.Error(), errors.ErrBadResponse)
		}

		if err = callback(chunk); err != nil {
			return err
		}
	}

	if err = scanner.Err(); err != nil {
		return fmt.Errorf("failed to read query response: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	return nil
}

func (c *esClient) UpsertEntityType(ctx context.Context, entityType entities.EntityType) (_ entities.EntityType, err error) {
	ctx, span := tracer.Start(ctx, "upsert-entity-type",
		trace.WithAttributes(
			attribute.String(TraceAttributeTenant, tenant.FromContext(ctx)),
			attribute.String(TraceAttributeEntityType, entityType.Name),
		),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(entityType)
	if err != nil {
		return entities.EntityType{}, fmt.Errorf("failed to marshal entity type: %s (%w)", err.Error(), errors.ErrBadRequest)
	}

	result := entities.EntityType{}
	err = c.do(ctx, http.MethodPost, "/api/v1/entity-types", body, &result)

	return result, err
}

func (c *esClient) GetEntityTypes(ctx context.Context) (_ []entities.EntityType, err error) {
	ctx, span := tracer.Start(ctx, "retrieve-entity-types",
		trace.WithAttributes(attribute.String(TraceAttributeTenant, tenant.FromContext(ctx))),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := []entities.EntityType{}
	err = c.do(ctx, http.MethodGet, "/api/v1/entity-types", nil, &result)

	return result, err
}

func (c *esClient) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
	}

	req.Header.Add(tenant.HeaderName, tenant.FromContext(ctx))
	req.Header.Add("Accept", "application/json")

	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	return req, nil
}

func (c *esClient) do(ctx context.Context, method, path string, body []byte, result any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if resp.StatusCode != http.StatusOK {
		return c.responseError(ctx, req, resp, respBody)
	}

	if err = json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	return nil
}

func (c *esClient) responseError(ctx context.Context, req *http.Request, resp *http.Response, respBody []byte) error {
	contentType := resp.Header.Get("Content-Type")

	if c.debug && resp.StatusCode != http.StatusNotFound {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		logging.GetFromContext(ctx).Error("request failed", "request", string(reqbytes), "response", string(respbytes))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return errors.NewErrorFromProblemReport(resp.StatusCode, contentType, respBody)
	}

	return fmt.Errorf("entity service returned status code %d (content-type: %s, body: %s) (%w)", resp.StatusCode, contentType, string(respBody), errors.ErrBadResponse)
}
