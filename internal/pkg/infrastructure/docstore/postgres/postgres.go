package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/entity-service/internal/pkg/infrastructure/docstore"
	esErrors "github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("entity-service/docstore/postgres")

type store struct {
	pool *pgxpool.Pool
}

// New returns a Store backed by a single jsonb documents table, creating
// the table when it does not exist
func New(ctx context.Context, pool *pgxpool.Pool) (docstore.Store, error) {
	s := &store{pool: pool}

	if err := s.initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	return s, nil
}

func (s *store) initialize(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS documents (
			collection  TEXT NOT NULL,
			id          TEXT NOT NULL,
			document    JSONB NOT NULL,
			modified_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (collection, id)
		);
		CREATE INDEX IF NOT EXISTS documents_document_idx ON documents USING GIN (document jsonb_path_ops);`

	_, err := s.pool.Exec(ctx, ddl)
	return err
}

func startSpan(ctx context.Context, name, collection string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("collection", collection)))
}

func (s *store) Find(ctx context.Context, collection string, q docstore.Query) (_ docstore.DocumentIterator, err error) {
	ctx, span := startSpan(ctx, "find", collection)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	sql, args, err := buildFind(collection, q)
	if err != nil {
		return nil, err
	}

	logging.GetFromContext(ctx).Debug("find documents", "sql", sql)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError(err)
	}

	return &rowIterator{rows: rows}, nil
}

func (s *store) Count(ctx context.Context, collection string, q docstore.Query) (count int64, err error) {
	ctx, span := startSpan(ctx, "count", collection)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	sql, args, err := buildCount(collection, q)
	if err != nil {
		return 0, err
	}

	err = s.pool.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, storeError(err)
	}

	return count, nil
}

func (s *store) Get(ctx context.Context, collection, id string) (document []byte, err error) {
	ctx, span := startSpan(ctx, "get", collection)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	var text string
	err = s.pool.QueryRow(ctx,
		`SELECT document::text FROM documents WHERE collection = $1 AND id = $2`, collection, id,
	).Scan(&text)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, esErrors.NewNotFoundError(fmt.Sprintf("no document %s in %s", id, collection))
	} else if err != nil {
		return nil, storeError(err)
	}

	return []byte(text), nil
}

func (s *store) Upsert(ctx context.Context, collection, id string, document []byte) (err error) {
	ctx, span := startSpan(ctx, "upsert", collection)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, document) VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, id) DO UPDATE SET document = EXCLUDED.document, modified_at = NOW()`,
		collection, id, string(document),
	)

	return storeError(err)
}

func (s *store) MergeAndUpsert(ctx context.Context, collection, id string, document []byte, condition *docstore.Condition) (merged []byte, applied bool, err error) {
	ctx, span := startSpan(ctx, "merge-and-upsert", collection)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	sql, args, err := buildMergeAndUpsert(collection, id, document, condition)
	if err != nil {
		return nil, false, err
	}

	var text string
	err = s.pool.QueryRow(ctx, sql, args...).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		// the condition did not hold, so the stored document is left as it was
		logging.GetFromContext(ctx).Debug("upsert condition not met", "collection", collection, "id", id)
		merged, err = s.Get(ctx, collection, id)
		return merged, false, err
	} else if err != nil {
		return nil, false, storeError(err)
	}

	return []byte(text), true, nil
}

func storeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return fmt.Errorf("%w: %s", esErrors.ErrUnavailable, err.Error())
}

type rowIterator struct {
	rows     pgx.Rows
	document []byte
	err      error
}

func (it *rowIterator) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}

	var text string
	if err := it.rows.Scan(&text); err != nil {
		it.err = err
		return false
	}

	it.document = []byte(text)
	return true
}

func (it *rowIterator) Document() []byte {
	return it.document
}

func (it *rowIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return storeError(it.rows.Err())
}

func (it *rowIterator) Close() {
	it.rows.Close()
}
