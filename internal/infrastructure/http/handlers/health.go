package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 3 * time.Second

// HealthHandler serves GET /health. It never touches a dependency.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Dependency is a named check run by the readiness probe.
type Dependency struct {
	Name  string
	Check func(ctx context.Context) error
}

func MongoDependency(db *mongo.Database) Dependency {
	return Dependency{
		Name: "mongodb",
		Check: func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
	}
}

func RedisDependency(client *redis.Client) Dependency {
	return Dependency{
		Name: "redis",
		Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

// ReadinessHandler serves GET /health/ready: 200 when every dependency
// answers within readinessTimeout, 503 otherwise. Failure causes are logged,
// never returned.
type ReadinessHandler struct {
	deps []Dependency
	log  zerolog.Logger
}

func NewReadinessHandler(log zerolog.Logger, deps ...Dependency) *ReadinessHandler {
	return &ReadinessHandler{deps: deps, log: log}
}

type checkResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latencyMs"`
}

type readinessResponse struct {
	Status       string                 `json:"status"`
	Dependencies map[string]checkResult `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	results := make([]checkResult, len(h.deps))
	var g errgroup.Group
	for i, d := range h.deps {
		i, d := i, d
		g.Go(func() error {
			start := time.Now()
			err := d.Check(ctx)
			results[i] = checkResult{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				results[i].Status = "unhealthy"
				h.log.Warn().Err(err).Str("dependency", d.Name).Msg("readiness check failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	resp := readinessResponse{Status: "ok", Dependencies: make(map[string]checkResult, len(h.deps))}
	for i, d := range h.deps {
		resp.Dependencies[d.Name] = results[i]
		if results[i].Status != "ok" {
			resp.Status = "degraded"
		}
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
