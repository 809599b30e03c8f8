// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/flightalerts/internal/alert"
	"github.com/carterperez-dev/flightalerts/internal/core"
)

type Handler struct {
	counter   Counter
	dbPing    func(ctx context.Context) error
	dbStats   func() sql.DBStats
	redisPing func(ctx context.Context) error
	started   time.Time
}

// HandlerConfig.RedisPing stays nil when the deployment runs without
// redis. The overview then lists redis as not configured.
type HandlerConfig struct {
	Counter   Counter
	DBPing    func(ctx context.Context) error
	DBStats   func() sql.DBStats
	RedisPing func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		counter:   cfg.Counter,
		dbPing:    cfg.DBPing,
		dbStats:   cfg.DBStats,
		redisPing: cfg.RedisPing,
		started:   time.Now(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/overview", h.Overview)
		r.Get("/stats/db", h.DatabasePool)
		r.Get("/stats/runtime", h.Process)
	})
}

type OverviewResponse struct {
	Users        int          `json:"users"`
	Alerts       AlertSummary `json:"alerts"`
	Dependencies []Dependency `json:"dependencies"`
}

type AlertSummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Paused int `json:"paused"`
}

type Dependency struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
	Healthy    bool   `json:"healthy"`
}

// Overview reports how many travelers and alerts the service holds, along
// with the reachability of each backing store.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.counter.Count(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	summary := AlertSummary{
		Active: counts.AlertsByStatus[alert.StatusActive],
		Paused: counts.AlertsByStatus[alert.StatusPaused],
	}
	for _, n := range counts.AlertsByStatus {
		summary.Total += n
	}

	core.OK(w, OverviewResponse{
		Users:  counts.Users,
		Alerts: summary,
		Dependencies: []Dependency{
			checkDependency(ctx, "postgres", h.dbPing),
			checkDependency(ctx, "redis", h.redisPing),
		},
	})
}

func checkDependency(
	ctx context.Context,
	name string,
	ping func(context.Context) error,
) Dependency {
	if ping == nil {
		return Dependency{Name: name}
	}
	return Dependency{Name: name, Configured: true, Healthy: ping(ctx) == nil}
}

type PoolResponse struct {
	Open         int    `json:"open"`
	InUse        int    `json:"in_use"`
	Idle         int    `json:"idle"`
	MaxOpen      int    `json:"max_open"`
	WaitCount    int64  `json:"wait_count"`
	WaitDuration string `json:"wait_duration"`
}

func (h *Handler) DatabasePool(w http.ResponseWriter, _ *http.Request) {
	if h.dbStats == nil {
		core.OK(w, nil)
		return
	}

	s := h.dbStats()
	core.OK(w, PoolResponse{
		Open:         s.OpenConnections,
		InUse:        s.InUse,
		Idle:         s.Idle,
		MaxOpen:      s.MaxOpenConnections,
		WaitCount:    s.WaitCount,
		WaitDuration: s.WaitDuration.String(),
	})
}

type ProcessResponse struct {
	GoVersion  string `json:"go_version"`
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`
	HeapBytes  uint64 `json:"heap_bytes"`
	NumGC      uint32 `json:"num_gc"`
}

func (h *Handler) Process(w http.ResponseWriter, _ *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	core.OK(w, ProcessResponse{
		GoVersion:  runtime.Version(),
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		HeapBytes:  mem.HeapAlloc,
		NumGC:      mem.NumGC,
	})
}
