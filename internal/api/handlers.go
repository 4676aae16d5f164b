package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"explorer/internal/engine"
	"explorer/internal/export"
	"explorer/internal/logger"
	"explorer/internal/metrics"
	"explorer/internal/models"
	"explorer/internal/query"
)

// Handler serves the queries over HTTP. It starts without a store and
// answers 503 until SetStore or SetLoadError is called.
type Handler struct {
	mu      sync.RWMutex
	store   *engine.RecordStore
	loadErr error
	log     logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{log: log}
}

func (h *Handler) SetStore(store *engine.RecordStore) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store = store
	h.loadErr = nil
}

func (h *Handler) SetLoadError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store = nil
	h.loadErr = err
}

// Load fetches and cleans src and publishes the result.
func (h *Handler) Load(ctx context.Context, src engine.Source) error {
	t0 := time.Now()
	store, err := engine.LoadAndClean(ctx, src)
	metrics.ObserveLoad(store.Len(), err)
	if err != nil {
		h.log.WithError(err).Error("load failed", nil)
		h.SetLoadError(err)
		return err
	}
	h.log.Info("load complete", map[string]interface{}{
		"records":  store.Len(),
		"duration": time.Since(t0).String(),
	})
	h.SetStore(store)
	return nil
}

func (h *Handler) current() (*engine.RecordStore, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.loadErr != nil {
		return nil, h.loadErr
	}
	if h.store == nil {
		return nil, ErrLoading
	}
	return h.store, nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/options", h.GetOptions)
	api.GET("/queries", h.ListQueries)
	api.GET("/queries/:id", h.RunQuery)
	api.GET("/export.arrow", h.ExportArrow)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paramsFrom(c echo.Context) query.Params {
	return query.Params{
		Country:  c.QueryParam("country"),
		Province: c.QueryParam("province"),
		Name:     c.QueryParam("name"),
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) Health(c echo.Context) error {
	store, err := h.current()
	switch {
	case errors.Is(err, ErrLoading):
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "loading"})
	case err != nil:
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ready", Records: store.Len()})
}

func (h *Handler) GetOptions(c echo.Context) error {
	store, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, query.Options(store))
}

func (h *Handler) ListQueries(c echo.Context) error {
	return c.JSON(http.StatusOK, query.IDs)
}

// scatterPage always carries the points key, even for a page past the end.
type scatterPage struct {
	*models.QueryResult
	Points []models.GeoPoint `json:"points"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

func (h *Handler) RunQuery(c echo.Context) error {
	id, err := query.ParseID(c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	store, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}

	started := time.Now()
	result, err := query.Run(store, id, paramsFrom(c))
	if err != nil {
		metrics.ObserveQuery(string(id), "error", started)
		return h.fail(c, err)
	}
	metrics.ObserveQuery(string(id), string(result.Outcome), started)

	if id == query.Scatter {
		return c.JSON(http.StatusOK, paginate(c, result))
	}
	return c.JSON(http.StatusOK, result)
}

func paginate(c echo.Context, result *models.QueryResult) scatterPage {
	points := result.Points
	total := len(points)
	limit, offset := getPaginationParams(c, total)

	page := *result
	page.Points = nil
	out := scatterPage{QueryResult: &page, Points: []models.GeoPoint{}, Total: total, Limit: limit, Offset: offset}
	if offset < total {
		out.Points = points[offset : offset+min(limit, total-offset)]
	}
	return out
}

// ExportArrow streams the rows matching country/province as Arrow IPC.
func (h *Handler) ExportArrow(c echo.Context) error {
	store, err := h.current()
	if err != nil {
		return h.fail(c, err)
	}
	p := paramsFrom(c)
	view := engine.Filter(store.All(), engine.FilterSpec{}.
		Where(engine.FieldCountry, p.Country).
		Where(engine.FieldProvince, p.Province))

	c.Response().Header().Set(echo.HeaderContentType, export.ContentType)
	c.Response().WriteHeader(http.StatusOK)
	// headers are already sent, so failures can only be logged
	if err := export.WriteArrow(c.Response(), view); err != nil {
		h.log.WithError(err).Error("arrow export failed", nil)
	}
	return nil
}
