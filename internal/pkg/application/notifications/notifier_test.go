package notifications

import (
	"context"
	"net/http"
	"testing"

	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/values"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns

var method = expects.RequestMethod
var bodyContaining = expects.RequestBodyContaining

func TestSingleNotificationOnCreate(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			bodyContaining(`"operation":"created"`, `"entityId":"mybuoy"`),
		),
		Returns(
			response.Code(http.StatusOK),
		),
	)
	defer s.Close()

	ctx := context.Background()
	n, err := NewNotifier(ctx, s.URL())
	is.NoErr(err)

	is.NoErr(n.Start())

	e := entities.New("Lifebuoy", entities.ID("mybuoy"), entities.Tenant("default"), entities.Attribute("status", values.String("off")))
	n.EntityCreated(ctx, e)

	is.NoErr(n.Stop())

	is.Equal(s.RequestCount(), 1)
}

func TestNothingIsPostedBeforeStart(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, expects.AnyInput()),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	ctx := context.Background()
	n, _ := NewNotifier(ctx, s.URL())

	n.EntityUpdated(ctx, entities.New("Lifebuoy", entities.ID("mybuoy")))

	is.Equal(s.RequestCount(), 0)
}

func TestNotifierRequiresAnEndpoint(t *testing.T) {
	is := is.New(t)

	_, err := NewNotifier(context.Background(), "")
	is.True(err != nil)
}
