package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/core/validation"
	"github.com/OmatthewY/explore-with-me/stats/dto"
	"github.com/OmatthewY/explore-with-me/stats/service"

	"github.com/go-chi/chi/v5"
)

type StatsHandler struct {
	service service.StatsServiceInterface
}

func NewStatsHandler(svc service.StatsServiceInterface) *StatsHandler {
	return &StatsHandler{service: svc}
}

func (h *StatsHandler) Routes(r chi.Router) {
	r.Post("/hit", h.SaveHit)
	r.Get("/stats", h.GetStats)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// SaveHit handles POST /hit.
func (h *StatsHandler) SaveHit(w http.ResponseWriter, r *http.Request) {
	hit := new(dto.EndpointHit)
	if err := json.NewDecoder(r.Body).Decode(hit); err != nil {
		writeError(w, errors.NewAppError(errors.ErrInvalidRequestData, "invalid request body: "+err.Error(), err))
		return
	}

	if res := validation.Struct(hit); res.HasError() {
		writeError(w, res.AppError())
		return
	}

	saved, appErr := h.service.SaveHit(r.Context(), hit)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// GetStats handles GET /stats?start&end&uris&unique.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, appErr := parseDate(query.Get("start"), "start")
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	end, appErr := parseDate(query.Get("end"), "end")
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	unique := false
	if raw := query.Get("unique"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, errors.NewAppError(errors.ErrInvalidInput, "parameter unique must be a boolean", err))
			return
		}
		unique = v
	}

	stats, appErr := h.service.GetStats(r.Context(), dto.StatsRequest{
		Start:  start,
		End:    end,
		URIs:   utils.SplitValues(query["uris"]),
		Unique: unique,
	})
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// parseDate decodes once more so double-encoded clients are accepted.
func parseDate(raw, name string) (time.Time, *errors.AppError) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, errors.Newf(errors.ErrInvalidInput, "parameter %s is required", name)
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	t, err := utils.ParseDateTime(decoded)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput,
			"parameter "+name+" must have format "+constants.DateTimeLayout, err)
	}
	return t, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("StatsHandler:WriteJSON", "error", err)
	}
}

func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.Error("StatsHandler:Error", "code", appErr.Code, "error", appErr)
	} else {
		logger.Warn("StatsHandler:Error", "code", appErr.Code, "message", appErr.Message)
	}

	body := controller.NewErrorResponse(status, appErr.Code, appErr.Message, appErr)
	body.Trace = ""
	writeJSON(w, status, body)
}
