package handler

import (
	"net/http"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"patternquiz/internal/service"
	"strconv"

	"github.com/gorilla/mux"
)

// ReportHandler handles report, pattern and stats endpoints
type ReportHandler struct {
	quizSvc   *service.QuizService
	reportSvc *service.ReportService
	catalog   *quiz.Catalog
}

// NewReportHandler creates a new report handler
func NewReportHandler(quizSvc *service.QuizService, reportSvc *service.ReportService, catalog *quiz.Catalog) *ReportHandler {
	return &ReportHandler{
		quizSvc:   quizSvc,
		reportSvc: reportSvc,
		catalog:   catalog,
	}
}

// Report handles GET /v1/sessions/{id}/report
//
//	@Summary	Personalized report
//	@Tags		report
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.Report
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/sessions/{id}/report [get]
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	session, err := h.quizSvc.Resume(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !session.Completed {
		writeServiceError(w, service.ErrQuizIncomplete)
		return
	}
	writeJSON(w, http.StatusOK, h.reportSvc.Assemble(session))
}

// Patterns handles GET /v1/patterns
//
//	@Summary	List pattern profiles
//	@Tags		report
//	@Produce	json
//	@Success	200	{array}	model.PatternProfile
//	@Router		/patterns [get]
func (h *ReportHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Patterns())
}

// Pattern handles GET /v1/patterns/{key}
//
//	@Summary	One pattern profile
//	@Tags		report
//	@Produce	json
//	@Param		key	path		string	true	"Pattern key"
//	@Success	200	{object}	model.PatternProfile
//	@Failure	404	{object}	map[string]string
//	@Router		/patterns/{key} [get]
func (h *ReportHandler) Pattern(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.catalog.Pattern(model.Pattern(mux.Vars(r)["key"]))
	if !ok {
		writeError(w, http.StatusNotFound, "pattern not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Stats handles GET /v1/stats
//
//	@Summary	Pattern distribution over completed sessions
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	model.Stats
//	@Security	BearerAuth
//	@Router		/stats [get]
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportSvc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Recent handles GET /v1/stats/recent
//
//	@Summary	Latest completed sessions
//	@Tags		admin
//	@Produce	json
//	@Param		limit	query	int	false	"Maximum sessions (default 20)"
//	@Success	200		{array}	model.Session
//	@Security	BearerAuth
//	@Router		/stats/recent [get]
func (h *ReportHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	sessions, err := h.reportSvc.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}
