package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

type Notifier interface {
	Start() error
	Stop() error

	EntityCreated(ctx context.Context, e entities.Entity)
	EntityUpdated(ctx context.Context, e entities.Entity)
}

const (
	OperationCreated string = "created"
	OperationUpdated string = "updated"
)

// ChangeEvent is posted to the notifier endpoint after each upsert
type ChangeEvent struct {
	ID         string          `json:"id"`
	Operation  string          `json:"operation"`
	TenantID   string          `json:"tenantId"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	NotifiedAt string          `json:"notifiedAt"`
	Entity     entities.Entity `json:"entity"`
}

func NewChangeEvent(operation string, e entities.Entity) ChangeEvent {
	return ChangeEvent{
		ID:         uuid.New().String(),
		Operation:  operation,
		TenantID:   e.TenantID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		NotifiedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Entity:     e,
	}
}

var tracer = otel.Tracer("entity-service/notifier")

type action func()

type notifier struct {
	started  bool
	endpoint string

	httpClient http.Client
	queue      chan action
}

func NewNotifier(ctx context.Context, endpoint string) (Notifier, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("notifier endpoint must not be empty")
	}

	return &notifier{
		endpoint: endpoint,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		queue: make(chan action, 32),
	}, nil
}

func (n *notifier) Start() error {
	if n.started {
		return fmt.Errorf("already started")
	}

	n.started = true

	go n.run()

	return nil
}

func (n *notifier) Stop() error {
	if n.started {
		// Create a result channel so that we can wait for completion
		resultChan := make(chan bool)

		n.queue <- func() {
			// close the queue to signal the consumers that we are going out of business
			close(n.queue)
			resultChan <- true
		}

		// blocking read until our action has been processed
		<-resultChan
		n.started = false
	}
	return nil
}

func (n *notifier) EntityCreated(ctx context.Context, e entities.Entity) {
	n.enqueue(ctx, NewChangeEvent(OperationCreated, e))
}

func (n *notifier) EntityUpdated(ctx context.Context, e entities.Entity) {
	n.enqueue(ctx, NewChangeEvent(OperationUpdated, e))
}

func (n *notifier) enqueue(ctx context.Context, event ChangeEvent) {
	if !n.started {
		return
	}

	var err error

	logger := logging.GetFromContext(ctx)

	// the post outlives the request that triggered it
	ctx, span := tracer.Start(context.WithoutCancel(ctx), "post-change-event")

	n.queue <- func() {
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		err = n.post(ctx, event)
		if err != nil {
			logger.Error("failed to post change event", "entity_id", event.EntityID, "err", err.Error())
		}
	}
}

func (n *notifier) post(ctx context.Context, event ChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling error (%w)", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("unable to create new request (%w)", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request (%w)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notifier endpoint responded with status code %d", resp.StatusCode)
	}

	return nil
}

func (n *notifier) run() {
	// repeat until the queue is closed
	for action := range n.queue {
		if action == nil {
			return
		}

		action()
	}
}
