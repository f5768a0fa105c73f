package entityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/diwise/entity-service/internal/pkg/application/conversion"
	"github.com/diwise/entity-service/internal/pkg/application/notifications"
	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/values"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate moq -rm -out entityservice_mock.go . EntityService

type EntityService interface {
	UpsertEntity(ctx context.Context, tenant string, entity entities.Entity, condition *entities.UpsertCondition) (entities.Entity, error)
	GetEntity(ctx context.Context, tenant, entityType, entityID string) (entities.Entity, error)
	// Query runs request and hands the result to callback one chunk at a time.
	// Conversion errors are returned before callback is invoked.
	Query(ctx context.Context, tenant string, request query.Request, callback func(query.ResultSetChunk) error) error

	UpsertEntityType(ctx context.Context, tenant string, entityType entities.EntityType) (entities.EntityType, error)
	GetEntityTypes(ctx context.Context, tenant string) ([]entities.EntityType, error)

	Start() error
	Stop() error
}

const (
	CollectionEntities    string = "entities"
	CollectionEntityTypes string = "entity_types"
)

var tracer = otel.Tracer("entity-service/app")

type entityServiceApp struct {
	store    docstore.Store
	notifier notifications.Notifier
	clock    clockwork.Clock

	tenants []string
	query   QueryConfig
}

type Option func(*entityServiceApp)

func WithNotifier(n notifications.Notifier) Option {
	return func(app *entityServiceApp) {
		app.notifier = n
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(app *entityServiceApp) {
		app.clock = c
	}
}

func New(ctx context.Context, cfg Config, store docstore.Store, options ...Option) (EntityService, error) {
	if store == nil {
		return nil, fmt.Errorf("a document store is required")
	}

	cfg.applyDefaults()

	app := &entityServiceApp{
		store: store,
		clock: clockwork.NewRealClock(),
		query: cfg.Query,
	}

	for _, tenant := range cfg.Tenants {
		app.tenants = append(app.tenants, tenant.ID)
	}

	for _, opt := range options {
		opt(app)
	}

	return app, nil
}

// checkTenant rejects tenants that are not configured. An empty tenant list
// allows every tenant.
func (app *entityServiceApp) checkTenant(tenant string) error {
	if len(app.tenants) == 0 || slices.Contains(app.tenants, tenant) {
		return nil
	}
	return errors.NewUnknownTenantError(fmt.Sprintf("tenant %s is not configured", tenant))
}

func startSpan(ctx context.Context, name, tenant string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("tenant", tenant)))
}

func documentID(tenant, entityType, entityID string) string {
	return tenant + ":" + entityType + ":" + entityID
}

// DeriveEntityID returns a stable id for an entity that was not given one,
// based on its tenant, type and identifying attributes
func DeriveEntityID(tenant string, e entities.Entity) string {
	name := tenant + "/" + e.EntityType + "/" + e.CanonicalIdentifyingAttributes()
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func (app *entityServiceApp) UpsertEntity(ctx context.Context, tenant string, entity entities.Entity, condition *entities.UpsertCondition) (result entities.Entity, err error) {
	ctx, span := startSpan(ctx, "upsert-entity", tenant)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = app.checkTenant(tenant); err != nil {
		return entities.Entity{}, err
	}

	if entity.EntityType == "" {
		return entities.Entity{}, errors.NewBadRequestDataError("entity type must not be empty")
	}

	if entity.EntityID == "" {
		if len(entity.IdentifyingAttributes) == 0 {
			return entities.Entity{}, errors.NewBadRequestDataError("an entity needs either an id or identifying attributes")
		}
		entity.EntityID = DeriveEntityID(tenant, entity)
	}

	var cond *docstore.Condition
	if condition != nil {
		if err = condition.Validate(); err != nil {
			return entities.Entity{}, errors.NewBadRequestDataError(err.Error())
		}

		native, err := values.Native(condition.Value)
		if err != nil {
			return entities.Entity{}, errors.NewBadRequestDataError(err.Error())
		}

		cond = &docstore.Condition{
			Identifier: docstore.Identifier{Path: []string{fieldAttributes, condition.Attribute}},
			Operator:   docstore.ConditionOperator(condition.Operator),
			Value:      native,
		}
	}

	entity.TenantID = tenant
	entity.CreatedTime = app.clock.Now().UnixMilli()

	doc, err := encodeEntity(entity)
	if err != nil {
		return entities.Entity{}, errors.NewBadRequestDataError(err.Error())
	}

	stored, applied, err := app.store.MergeAndUpsert(ctx, CollectionEntities, documentID(tenant, entity.EntityType, entity.EntityID), doc, cond)
	if err != nil {
		return entities.Entity{}, err
	}

	result, err = decodeEntity(stored)
	if err != nil {
		return entities.Entity{}, err
	}

	if app.notifier != nil && applied {
		if result.CreatedTime == entity.CreatedTime {
			app.notifier.EntityCreated(ctx, result)
		} else {
			app.notifier.EntityUpdated(ctx, result)
		}
	}

	return result, nil
}

func (app *entityServiceApp) GetEntity(ctx context.Context, tenant, entityType, entityID string) (result entities.Entity, err error) {
	ctx, span := startSpan(ctx, "get-entity", tenant)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = app.checkTenant(tenant); err != nil {
		return entities.Entity{}, err
	}

	doc, err := app.store.Get(ctx, CollectionEntities, documentID(tenant, entityType, entityID))
	if err != nil {
		return entities.Entity{}, err
	}

	return decodeEntity(doc)
}

func (app *entityServiceApp) buildQuery(tenant string, request query.Request) (docstore.Query, query.ResultSetMetadata, error) {
	if len(request.Selection) == 0 {
		return docstore.Query{}, query.ResultSetMetadata{}, errors.NewInvalidRequestError("a query must select at least one column")
	}

	selections, err := conversion.ConvertSelections(conversion.DefaultFactory, request.Selection)
	if err != nil {
		return docstore.Query{}, query.ResultSetMetadata{}, err
	}

	scope := []docstore.Filter{docstore.Eq(fieldTenantID, tenant)}
	if request.EntityType != "" {
		scope = append(scope, docstore.Eq(fieldEntityType, request.EntityType))
	}

	if request.Filter != nil {
		f, err := conversion.ConvertFilter(*request.Filter)
		if err != nil {
			return docstore.Query{}, query.ResultSetMetadata{}, err
		}
		scope = append(scope, f)
	}

	filter := docstore.All(scope...)

	groupBy, err := conversion.ConvertGroupBy(request.GroupBy)
	if err != nil {
		return docstore.Query{}, query.ResultSetMetadata{}, err
	}

	sort, err := conversion.ConvertOrderBy(conversion.DefaultFactory, request.OrderBy)
	if err != nil {
		return docstore.Query{}, query.ResultSetMetadata{}, err
	}

	if request.Limit < 0 || request.Offset < 0 {
		return docstore.Query{}, query.ResultSetMetadata{}, errors.NewInvalidRequestError("limit and offset must not be negative")
	}

	limit := request.Limit
	if limit == 0 {
		limit = app.query.DefaultLimit
	}
	limit = min(limit, app.query.MaxLimit)

	metadata := query.ResultSetMetadata{Columns: make([]query.ColumnMetadata, 0, len(selections))}
	for _, s := range selections {
		metadata.Columns = append(metadata.Columns, query.ColumnMetadata{ColumnName: s.Alias})
	}

	return docstore.Query{
		Selections: selections,
		Filter:     &filter,
		GroupBy:    groupBy,
		Sort:       sort,
		Limit:      limit,
		Offset:     request.Offset,
	}, metadata, nil
}

func (app *entityServiceApp) Query(ctx context.Context, tenant string, request query.Request, callback func(query.ResultSetChunk) error) (err error) {
	ctx, span := startSpan(ctx, "query", tenant)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = app.checkTenant(tenant); err != nil {
		return err
	}

	q, metadata, err := app.buildQuery(tenant, request)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	var total *int64
	if request.IncludeTotal {
		count, err := app.store.Count(ctx, CollectionEntities, q)
		if err != nil {
			return err
		}
		total = &count
	}

	it, err := app.store.Find(ctx, CollectionEntities, q)
	if err != nil {
		return err
	}
	defer it.Close()

	chunkID := 0
	rowCount := 0
	rows := make([]query.Row, 0, app.query.ChunkSize)

	emit := func(last bool) error {
		chunk := query.ResultSetChunk{
			ChunkID:     chunkID,
			IsLastChunk: last,
			Rows:        rows,
		}

		if chunkID == 0 {
			chunk.ResultSetMetadata = &metadata
		}

		if last {
			chunk.Total = total
		}

		chunkID++
		rows = make([]query.Row, 0, app.query.ChunkSize)

		return callback(chunk)
	}

	for it.Next() {
		row, err := conversion.ToRow(it.Document(), metadata)
		if err != nil {
			return err
		}

		if rowCount == 0 {
			describeColumns(&metadata, row)
		}

		rows = append(rows, row)
		rowCount++

		if len(rows) == app.query.ChunkSize {
			if err = emit(false); err != nil {
				return err
			}
		}
	}

	if err = it.Err(); err != nil {
		return err
	}

	logger.Debug("query completed", "entity_type", request.EntityType, "rows", rowCount, "chunks", chunkID+1)

	return emit(true)
}

// describeColumns records the value types of the first row in the metadata
func describeColumns(metadata *query.ResultSetMetadata, row query.Row) {
	for idx := range metadata.Columns {
		if idx < len(row.Columns) {
			metadata.Columns[idx].ValueType = row.Columns[idx].Type
		}
	}
}

func (app *entityServiceApp) UpsertEntityType(ctx context.Context, tenant string, entityType entities.EntityType) (_ entities.EntityType, err error) {
	ctx, span := startSpan(ctx, "upsert-entity-type", tenant)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = app.checkTenant(tenant); err != nil {
		return entities.EntityType{}, err
	}

	if entityType.Name == "" {
		return entities.EntityType{}, errors.NewBadRequestDataError("entity type name must not be empty")
	}

	entityType.TenantID = tenant

	doc, err := json.Marshal(entityType)
	if err != nil {
		return entities.EntityType{}, err
	}

	err = app.store.Upsert(ctx, CollectionEntityTypes, tenant+":"+entityType.Name, doc)
	if err != nil {
		return entities.EntityType{}, err
	}

	return entityType, nil
}

func (app *entityServiceApp) GetEntityTypes(ctx context.Context, tenant string) (_ []entities.EntityType, err error) {
	ctx, span := startSpan(ctx, "get-entity-types", tenant)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = app.checkTenant(tenant); err != nil {
		return nil, err
	}

	filter := docstore.Eq(fieldTenantID, tenant)

	it, err := app.store.Find(ctx, CollectionEntityTypes, docstore.Query{Filter: &filter})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	result := []entities.EntityType{}

	for it.Next() {
		var et entities.EntityType
		if err = json.Unmarshal(it.Document(), &et); err != nil {
			return nil, errors.NewConversionError(errors.ErrDocumentParseFailure, "%s", err.Error())
		}
		result = append(result, et)
	}

	return result, it.Err()
}

func (app *entityServiceApp) Start() error {
	if app.notifier != nil {
		return app.notifier.Start()
	}

	return nil
}

func (app *entityServiceApp) Stop() error {
	if app.notifier != nil {
		return app.notifier.Stop()
	}

	return nil
}
