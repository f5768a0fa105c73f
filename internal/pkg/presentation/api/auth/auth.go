package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/open-policy-agent/opa/rego"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("entity-service/api/authz")

var ErrAccessDenied = errors.New("authorization failed")

// Action is what a request intends to do with the entities it touches
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
	ActionQuery Action = "query"
)

// Access is the policy input of a single request. An empty EntityType means
// the request is not limited to one type.
type Access struct {
	Tenant     string
	Action     Action
	EntityType string
}

type Authorizer interface {
	Authorize(ctx context.Context, token string, access Access) error
}

// BearerToken returns the token of the Authorization header, if any
func BearerToken(r *http.Request) string {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return token
}

type policyAuthorizer struct {
	query rego.PreparedEvalQuery
}

// NewAuthorizer compiles the rego module read from policies. The module must
// define the boolean data.entityservice.authz.allow.
func NewAuthorizer(ctx context.Context, policies io.Reader) (Authorizer, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("data.entityservice.authz.allow"),
		rego.Module("authz.rego", string(module)),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to compile authz policies: %w", err)
	}

	return &policyAuthorizer{query: query}, nil
}

func (a *policyAuthorizer) Authorize(ctx context.Context, token string, access Access) (err error) {
	ctx, span := tracer.Start(ctx, "authorize")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	span.SetAttributes(
		attribute.String("tenant", access.Tenant),
		attribute.String("action", string(access.Action)),
		attribute.String("entity_type", access.EntityType),
	)

	results, err := a.query.Eval(ctx, rego.EvalInput(map[string]any{
		"token":      token,
		"tenant":     access.Tenant,
		"action":     string(access.Action),
		"entityType": access.EntityType,
	}))
	if err != nil {
		return fmt.Errorf("policy evaluation failed: %w", err)
	}

	if !results.Allowed() {
		return fmt.Errorf("%w: %s on %q in tenant %s", ErrAccessDenied, access.Action, access.EntityType, access.Tenant)
	}

	return nil
}
