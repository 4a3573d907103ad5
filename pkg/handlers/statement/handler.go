package statement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/paas-statements/pkg/adapters"
	"github.com/de-tools/paas-statements/pkg/models/api"
	"github.com/de-tools/paas-statements/pkg/services/directory"
	"github.com/de-tools/paas-statements/pkg/services/statement"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	orgParam        = "organizationGUID"
	rangeStartParam = "rangeStart"
	spaceParam      = "space"
	planParam       = "services"
)

type Handler struct {
	generator statement.Generator
	now       func() time.Time
}

func NewHandler(generator statement.Generator, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		generator: generator,
		now:       now,
	}
}

// Routes mounts the statement endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/organizations/{organizationGUID}/statements", h.RedirectToStatement)
	r.Get("/organizations/{organizationGUID}/statements/{rangeStart}", h.GetStatement)
}

// RedirectToStatement sends the caller to the statement of the month holding
// the optional rangeStart query parameter, or of the current month.
func (h *Handler) RedirectToStatement(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	org := chi.URLParam(r, orgParam)
	if !validGUID(org) {
		writeError(w, r, http.StatusBadRequest, "invalid organization guid")
		return
	}

	date := h.now()
	if raw := r.URL.Query().Get(rangeStartParam); raw != "" {
		parsed, err := statement.ParseMonthKey(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		date = parsed
	}

	location := strings.TrimSuffix(r.URL.Path, "/") + "/" + statement.MonthKey(statement.StartOfMonth(date))
	logger.Debug().Str("location", location).Msg("redirecting to statement")
	http.Redirect(w, r, location, http.StatusFound)
}

func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	org := chi.URLParam(r, orgParam)
	if !validGUID(org) {
		writeError(w, r, http.StatusBadRequest, "invalid organization guid")
		return
	}

	rangeStart, err := statement.ParseMonthKey(chi.URLParam(r, rangeStartParam))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.generator.Generate(ctx, statement.Query{
		OrgGUID:    org,
		RangeStart: rangeStart,
		Space:      r.URL.Query().Get(spaceParam),
		Plan:       r.URL.Query().Get(planParam),
	})
	switch {
	case errors.Is(err, statement.ErrInvalidPeriod):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, directory.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "organization not found")
		return
	case err != nil:
		logger.Error().
			Err(err).
			Str("org", org).
			Msg("failed to generate statement")
		writeError(w, r, http.StatusBadGateway, "failed to generate statement")
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapStatementDomainToApi(*st))
}

func validGUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, api.Error{Error: msg})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
