package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/diwise/entity-service/pkg/client"
	"github.com/diwise/entity-service/pkg/client/cache"
	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/tenant"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

const serviceName string = "entity-feeder"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion, "json")
	defer cleanup()

	baseURL := env.GetVariableOrDefault(ctx, "ENTITY_SERVICE_URL", "http://entity-service:8080")
	maxDelay, err := time.ParseDuration(env.GetVariableOrDefault(ctx, "FEEDER_MAX_DELAY", "2s"))
	if err != nil {
		logger.Error("invalid max delay", "err", err.Error())
		os.Exit(1)
	}

	cacheTTL, err := time.ParseDuration(env.GetVariableOrDefault(ctx, "FEEDER_CACHE_TTL", "10m"))
	if err != nil {
		logger.Error("invalid cache ttl", "err", err.Error())
		os.Exit(1)
	}

	cacheSize, err := strconv.Atoi(env.GetVariableOrDefault(ctx, "FEEDER_CACHE_SIZE", strconv.Itoa(cache.DefaultMaxKeys)))
	if err != nil {
		logger.Error("invalid cache size", "err", err.Error())
		os.Exit(1)
	}

	ctx = tenant.NewContext(ctx, env.GetVariableOrDefault(ctx, "FEEDER_TENANT", tenant.Default))

	upstream := client.NewEntityServiceClient(baseURL, client.Debug(env.GetVariableOrDefault(ctx, "FEEDER_DEBUG", "false")))
	writer := cache.NewEntityDataCachingClient(upstream,
		cache.WithMaxKeys(cacheSize),
		cache.WithExpireAfterWrite(cacheTTL),
	)

	s, err := feed(ctx, os.Stdin, writer, maxDelay)
	if err != nil {
		logger.Error("failed to read entities", "err", err.Error())
		os.Exit(1)
	}

	logger.Info("feed completed", "lines", s.lines, "written", s.written, "failed", s.failed)

	if s.failed > 0 {
		os.Exit(1)
	}
}

type eventualWriter interface {
	CreateOrUpdateEntityEventually(ctx context.Context, entity entities.Entity, condition *entities.UpsertCondition, maxDelay time.Duration) <-chan cache.Result
}

type feedLine struct {
	Entity    entities.Entity           `json:"entity"`
	Condition *entities.UpsertCondition `json:"condition,omitempty"`
}

type summary struct {
	lines   int
	written int
	failed  int
}

// feed reads one {"entity", "condition"} object per line from r and writes
// each through w, then waits for every write to resolve
func feed(ctx context.Context, r io.Reader, w eventualWriter, maxDelay time.Duration) (summary, error) {
	logger := logging.GetFromContext(ctx)
	s := summary{}

	pending := []<-chan cache.Result{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		s.lines++

		line := feedLine{}
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			return s, fmt.Errorf("line %d: %w", s.lines, err)
		}

		pending = append(pending, w.CreateOrUpdateEntityEventually(ctx, line.Entity, line.Condition, maxDelay))
	}

	if err := scanner.Err(); err != nil {
		return s, err
	}

	for _, result := range pending {
		select {
		case <-ctx.Done():
			return s, ctx.Err()
		case res := <-result:
			if res.Err != nil {
				logger.Warn("entity write failed", "err", res.Err.Error())
				s.failed++
				continue
			}
			s.written++
		}
	}

	return s, nil
}
