package cache

import (
	"context"
	"sync"
	"time"

	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("entity-service-client/cache")

//go:generate moq -rm -out upstream_mock.go . EntityDataClient EntityTypeClient

// EntityDataClient performs the upstream merge and upsert of an entity
type EntityDataClient interface {
	UpsertEntity(ctx context.Context, entity entities.Entity, condition *entities.UpsertCondition) (entities.Entity, error)
}

// Result is delivered once to every caller of an eventual write
type Result struct {
	Entity entities.Entity
	Err    error
}

const (
	DefaultMaxKeys          int           = 10000
	DefaultExpireAfterWrite time.Duration = 10 * time.Minute
)

type config struct {
	maxKeys          int
	expireAfterWrite time.Duration
	clock            clockwork.Clock
}

type Option func(*config)

func WithMaxKeys(n int) Option {
	return func(c *config) {
		c.maxKeys = n
	}
}

func WithExpireAfterWrite(d time.Duration) Option {
	return func(c *config) {
		c.expireAfterWrite = d
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

func newConfig(options []Option) config {
	cfg := config{
		maxKeys:          DefaultMaxKeys,
		expireAfterWrite: DefaultExpireAfterWrite,
		clock:            clockwork.NewRealClock(),
	}

	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// EntityDataCachingClient caches upstream upsert results per EntityKey and
// coalesces eventual writes to the same key into a single upstream call
type EntityDataCachingClient struct {
	upstream EntityDataClient
	clock    clockwork.Clock

	entities *loadingCache[EntityKey, entities.Entity]

	// EntityKey -> *pendingUpdate
	pending sync.Map
}

type pendingUpdate struct {
	mu sync.Mutex

	ctx       context.Context
	entity    entities.Entity
	condition *entities.UpsertCondition
	observers []chan Result

	deadline   time.Time
	timer      clockwork.Timer
	generation uint64
	fired      bool
}

func NewEntityDataCachingClient(upstream EntityDataClient, options ...Option) *EntityDataCachingClient {
	cfg := newConfig(options)

	return &EntityDataCachingClient{
		upstream: upstream,
		clock:    cfg.clock,
		entities: newLoadingCache[EntityKey, entities.Entity](cfg.maxKeys, cfg.expireAfterWrite),
	}
}

// GetOrCreateEntity returns the cached entity for the key of entity, or
// upserts it upstream. Concurrent callers for the same key share one
// upstream call.
func (c *EntityDataCachingClient) GetOrCreateEntity(ctx context.Context, entity entities.Entity) (_ entities.Entity, err error) {
	key := KeyOf(ctx, entity)

	ctx, span := tracer.Start(ctx, "get-or-create-entity", trace.WithAttributes(attribute.String("key", key.String())))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, _, err := c.entities.load(ctx, key, key.String(),
		func(ctx context.Context) (entities.Entity, error) {
			return c.upstream.UpsertEntity(ctx, entity, nil)
		},
	)

	return result, err
}

// CreateOrUpdateEntity always writes upstream and publishes the result
func (c *EntityDataCachingClient) CreateOrUpdateEntity(ctx context.Context, entity entities.Entity, condition *entities.UpsertCondition) (_ entities.Entity, err error) {
	key := KeyOf(ctx, entity)

	ctx, span := tracer.Start(ctx, "create-or-update-entity", trace.WithAttributes(attribute.String("key", key.String())))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, err := c.upstream.UpsertEntity(ctx, entity, condition)
	if err != nil {
		c.entities.evict(key, key.String())
		return entities.Entity{}, err
	}

	c.entities.publish(key, key.String(), result)

	return result, nil
}

// CreateOrUpdateEntityEventually schedules a write of entity no later than
// maxDelay from now. Writes to the same key are merged until the earliest
// requested deadline: the latest entity and condition are written and every
// caller receives the same result on its channel.
func (c *EntityDataCachingClient) CreateOrUpdateEntityEventually(ctx context.Context, entity entities.Entity, condition *entities.UpsertCondition, maxDelay time.Duration) <-chan Result {
	key := KeyOf(ctx, entity)
	observer := make(chan Result, 1)

	for {
		deadline := c.clock.Now().Add(maxDelay)

		fresh := &pendingUpdate{}
		fresh.mu.Lock()

		actual, loaded := c.pending.LoadOrStore(key, fresh)
		if !loaded {
			fresh.ctx = context.WithoutCancel(ctx)
			fresh.entity = entity
			fresh.condition = condition
			fresh.observers = []chan Result{observer}
			fresh.deadline = deadline
			c.schedule(key, fresh, maxDelay)
			fresh.mu.Unlock()

			return observer
		}

		fresh.mu.Unlock()

		p := actual.(*pendingUpdate)
		p.mu.Lock()

		if p.fired {
			// removed from the table while we waited, start a new cycle
			p.mu.Unlock()
			continue
		}

		p.ctx = context.WithoutCancel(ctx)
		p.entity = entity
		p.condition = condition
		p.observers = append(p.observers, observer)

		if deadline.Before(p.deadline) {
			p.timer.Stop()
			p.generation++
			p.deadline = deadline
			c.schedule(key, p, maxDelay)
		}

		p.mu.Unlock()

		return observer
	}
}

// schedule must be called with p.mu held
func (c *EntityDataCachingClient) schedule(key EntityKey, p *pendingUpdate, delay time.Duration) {
	generation := p.generation
	p.timer = c.clock.AfterFunc(delay, func() {
		c.fire(key, p, generation)
	})
}

func (c *EntityDataCachingClient) fire(key EntityKey, p *pendingUpdate, generation uint64) {
	p.mu.Lock()

	if p.fired || p.generation != generation {
		p.mu.Unlock()
		return
	}

	p.fired = true
	c.pending.CompareAndDelete(key, p)

	ctx, entity, condition, observers := p.ctx, p.entity, p.condition, p.observers
	p.mu.Unlock()

	result, err := c.CreateOrUpdateEntity(ctx, entity, condition)
	if err != nil {
		logging.GetFromContext(ctx).Error("eventual entity update failed", "key", key.String(), "observers", len(observers), "err", err.Error())
	}

	for _, o := range observers {
		o <- Result{Entity: result, Err: err}
	}
}
