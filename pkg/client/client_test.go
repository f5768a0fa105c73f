package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diwise/entity-service/pkg/entities"
	esErrors "github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/tenant"
	"github.com/diwise/entity-service/pkg/values"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath
var bodyContaining = expects.RequestBodyContaining

func TestUpsertEntity(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path("/api/v1/entities"),
			bodyContaining(`"entityId":"dev1"`, `"operator":"GREATER_THAN"`),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"tenantId":"default","entityType":"Device","entityId":"dev1","createdTimeMillis":1000}`)),
		),
	)
	defer s.Close()

	c := NewEntityServiceClient(s.URL())

	e := entities.New("Device", entities.ID("dev1"), entities.Attribute("level", values.Long(3)))
	cond := &entities.UpsertCondition{Attribute: "level", Operator: entities.GreaterThan, Value: values.Long(1)}

	result, err := c.UpsertEntity(context.Background(), e, cond)
	is.NoErr(err)
	is.Equal(result.CreatedTime, int64(1000))
	is.Equal(s.RequestCount(), 1)
}

func TestGetEntityNotFoundIsMappedFromProblemReport(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, method(http.MethodGet), path("/api/v1/entities/Device/dev1")),
		Returns(
			response.ContentType(esErrors.ProblemReportContentType),
			response.Code(http.StatusNotFound),
			response.Body([]byte(`{"type":"`+esErrors.TypeResourceNotFound+`","title":"Not Found","detail":"no such entity"}`)),
		),
	)
	defer s.Close()

	c := NewEntityServiceClient(s.URL())

	_, err := c.GetEntity(context.Background(), "Device", "dev1")
	is.True(errors.Is(err, esErrors.ErrNotFound))
}

func TestUnavailableServiceIsMappedToUnavailable(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(response.Code(http.StatusServiceUnavailable)),
	)
	defer s.Close()

	c := NewEntityServiceClient(s.URL())

	_, err := c.GetEntityTypes(context.Background())
	is.True(errors.Is(err, esErrors.ErrUnavailable))
}

func TestQueryDeliversChunksInOrder(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, method(http.MethodPost), path("/api/v1/entities/query"), bodyContaining(`"entityType":"Device"`)),
		Returns(
			response.ContentType("application/x-ndjson"),
			response.Code(http.StatusOK),
			response.Body([]byte(queryResponse)),
		),
	)
	defer s.Close()

	c := NewEntityServiceClient(s.URL())

	chunks := []query.ResultSetChunk{}
	err := c.Query(context.Background(), query.Request{EntityType: "Device", Selection: []query.Expression{query.Column("level")}}, func(chunk query.ResultSetChunk) error {
		chunks = append(chunks, chunk)
		return nil
	})
	is.NoErr(err)

	is.Equal(len(chunks), 2)
	is.Equal(chunks[0].ChunkID, 0)
	is.Equal(chunks[0].ResultSetMetadata.ColumnNames(), []string{"level"})
	is.True(chunks[1].IsLastChunk)
	is.Equal(*chunks[1].Total, int64(2))
}

func TestQueryReturnsTrailingErrorAfterDeliveredChunks(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"chunkId":0,"isLastChunk":false,"rows":[]}`+"\n"+`{"error":"document parse failure"}`+"\n")),
		),
	)
	defer s.Close()

	c := NewEntityServiceClient(s.URL())

	delivered := 0
	err := c.Query(context.Background(), query.Request{Selection: []query.Expression{query.Column("level")}}, func(query.ResultSetChunk) error {
		delivered++
		return nil
	})

	is.Equal(delivered, 1)
	is.True(errors.Is(err, esErrors.ErrInternal))
}

func TestQueryConversionFailureIsReportedBeforeAnyChunk(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType(esErrors.ProblemReportContentType),
			response.Code(http.StatusBadRequest),
			response.Body([]byte(`{"type":"`+esErrors.TypeConversionFailure+`","title":"Conversion Failure","detail":"arity mismatch"}`)),
		),
	)
	defer s.Close()

	c := NewEntityServiceClient(s.URL())

	err := c.Query(context.Background(), query.Request{}, func(query.ResultSetChunk) error {
		t.Fatal("no chunk expected")
		return nil
	})

	is.True(errors.Is(err, esErrors.ErrConversion))
}

func TestTenantIsTakenFromTheContext(t *testing.T) {
	is := is.New(t)

	var received string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get(tenant.HeaderName)
		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := NewEntityServiceClient(ts.URL)

	_, err := c.GetEntityTypes(tenant.NewContext(context.Background(), "north"))
	is.NoErr(err)
	is.Equal(received, "north")

	_, err = c.GetEntityTypes(context.Background())
	is.NoErr(err)
	is.Equal(received, tenant.Default)
}

const queryResponse string = `{"chunkId":0,"isLastChunk":false,"resultSetMetadata":{"columnMetadata":[{"columnName":"level","valueType":"LONG"}]},"rows":[{"columns":[{"valueType":"LONG","long":1}]}]}
{"chunkId":1,"isLastChunk":true,"rows":[{"columns":[{"valueType":"LONG","long":2}]}],"total":2}
`
