package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"salespulse/internal/analytics"
	apierrors "salespulse/internal/errors"
	"salespulse/internal/services"
	"salespulse/pkg/contracts/domain"
)

// DatasetRequest is the inbound analysis request envelope. Reference
// dictionaries are optional; orders and lines are required.
type DatasetRequest struct {
	Orders    []domain.OrderHeader `json:"orders" validate:"required,min=1,dive"`
	Lines     []domain.OrderLine   `json:"order_lines" validate:"required,min=1,dive"`
	Customers []domain.CustomerRef `json:"customers" validate:"omitempty,dive"`
	Products  []domain.ProductRef  `json:"products" validate:"omitempty,dive"`
	Reps      []domain.SalesRepRef `json:"sales_reps" validate:"omitempty,dive"`

	// Today overrides the recency reference date (YYYY-MM-DD).
	Today string `json:"today" validate:"omitempty,datetime=2006-01-02"`
}

// AnalysisHandler exposes analysis runs over HTTP.
type AnalysisHandler struct {
	service  *services.AnalysisService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(service *services.AnalysisService, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With(slog.String("handler", "analysis")),
	}
}

// Create handles POST /api/analysis.
func (h *AnalysisHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req DatasetRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			render.Render(w, r, apierrors.ErrValidation(verrs[0].Field(), verrs[0].Tag()))
			return
		}
		render.Render(w, r, apierrors.ErrInvalidDataset)
		return
	}

	var today time.Time
	if req.Today != "" {
		parsed, err := time.Parse("2006-01-02", req.Today)
		if err != nil {
			render.Render(w, r, apierrors.ErrValidation("today", "datetime"))
			return
		}
		today = parsed
	}

	ds := analytics.Dataset{
		Orders:    req.Orders,
		Lines:     req.Lines,
		Customers: req.Customers,
		Products:  req.Products,
		Reps:      req.Reps,
		Today:     today,
	}

	run, err := h.service.Analyze(r.Context(), ds)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "analysis request failed",
			slog.String("run_id", run.ID),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.AnalysisFailedWithError(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, run)
}

// Get handles GET /api/analysis/{id}.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, ok := h.service.Get(id)
	if !ok {
		render.Render(w, r, apierrors.ErrRunNotFound)
		return
	}
	render.JSON(w, r, run)
}

// List handles GET /api/analysis.
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.List())
}
