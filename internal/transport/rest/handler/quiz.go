package handler

import (
	"encoding/json"
	"net/http"
	"patternquiz/internal/model"
	"patternquiz/internal/service"
	"patternquiz/internal/transport/rest/middleware"
	"strconv"

	"github.com/gorilla/mux"
)

// QuizHandler handles question and session endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// QuestionsResponse lists the question bank
type QuestionsResponse struct {
	Version   string           `json:"version"`
	Scored    int              `json:"scored"`
	Questions []model.Question `json:"questions"`
}

// Questions handles GET /v1/questions
//
//	@Summary	List questions
//	@Tags		quiz
//	@Produce	json
//	@Success	200	{object}	QuestionsResponse
//	@Router		/questions [get]
func (h *QuizHandler) Questions(w http.ResponseWriter, r *http.Request) {
	bank := h.quizSvc.Bank()
	writeJSON(w, http.StatusOK, QuestionsResponse{
		Version:   bank.Version(),
		Scored:    bank.ScoredCount(),
		Questions: bank.Questions(),
	})
}

// Start handles POST /v1/sessions
//
//	@Summary	Start a quiz session
//	@Tags		quiz
//	@Produce	json
//	@Success	201	{object}	model.SessionStartResponse
//	@Router		/sessions [post]
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	resp, err := h.quizSvc.Start(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/sessions/{id}
//
//	@Summary	Resume a session
//	@Tags		quiz
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.Session
//	@Failure	404	{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/sessions/{id} [get]
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.quizSvc.Resume(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Answer handles PUT /v1/sessions/{id}/answers/{index}
//
//	@Summary	Record an answer
//	@Tags		quiz
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Session ID"
//	@Param		index	path		int					true	"Question index"
//	@Param		body	body		model.AnswerRequest	true	"Answer"
//	@Success	200		{object}	model.Progress
//	@Failure	400		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/sessions/{id}/answers/{index} [put]
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	var req model.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.quizSvc.Answer(r.Context(), middleware.GetSessionID(r.Context()), index, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Preview handles GET /v1/sessions/{id}/preview
//
//	@Summary	Live result preview
//	@Tags		quiz
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.Progress
//	@Security	BearerAuth
//	@Router		/sessions/{id}/preview [get]
func (h *QuizHandler) Preview(w http.ResponseWriter, r *http.Request) {
	progress, err := h.quizSvc.Preview(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Complete handles POST /v1/sessions/{id}/complete
//
//	@Summary	Complete a session
//	@Tags		quiz
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.Result
//	@Failure	409	{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/sessions/{id}/complete [post]
func (h *QuizHandler) Complete(w http.ResponseWriter, r *http.Request) {
	result, err := h.quizSvc.Complete(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Result handles GET /v1/sessions/{id}/result
//
//	@Summary	Result of a completed session
//	@Tags		quiz
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.Result
//	@Failure	409	{object}	map[string]string
//	@Router		/sessions/{id}/result [get]
func (h *QuizHandler) Result(w http.ResponseWriter, r *http.Request) {
	result, err := h.quizSvc.Result(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
