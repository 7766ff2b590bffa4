package health

import (
	"context"
	"net/http"
	"time"

	"assustadus/internal/http/apidocs"
	"assustadus/internal/http/responses"
)

// Pinger is a dependency that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	statusOK       = "ok"
	statusDown     = "down"
	statusDisabled = "disabled"
)

type Handler struct {
	db      Pinger
	cache   Pinger
	timeout time.Duration
}

// NewHandler builds the health handler. redisClient is nil when Redis is
// disabled.
func NewHandler(dbClient Pinger, redisClient Pinger) *Handler {
	return &Handler{
		db:      dbClient,
		cache:   redisClient,
		timeout: 2 * time.Second,
	}
}

// Check godoc
// @Summary  Dependency health
// @Tags     ops
// @Produce  json
// @Success  200  {object}  apidocs.HealthResponse
// @Failure  503  {object}  apidocs.HealthResponse
// @Router   /health [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res := apidocs.HealthResponse{
		Status: statusOK,
		DB:     ping(ctx, h.db),
		Redis:  ping(ctx, h.cache),
	}

	status := http.StatusOK
	if res.DB == statusDown || res.Redis == statusDown {
		res.Status = statusDown
		status = http.StatusServiceUnavailable
	}

	responses.WriteJSON(w, status, res)
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return statusDisabled
	}
	if err := p.Ping(ctx); err != nil {
		return statusDown
	}
	return statusOK
}
