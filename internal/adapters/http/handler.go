package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/PabloGalante/planforge/internal/adapters/auth"
	"github.com/PabloGalante/planforge/internal/app/planner"
	"github.com/PabloGalante/planforge/internal/domain"
	"github.com/PabloGalante/planforge/internal/observability"
)

type Options struct {
	AllowedOrigins []string
	// RequestTimeout bounds a whole request, model calls included.
	RequestTimeout time.Duration
}

type Server struct {
	svc      *planner.Service
	verifier auth.Verifier
	now      func() time.Time
}

func NewServer(svc *planner.Service, verifier auth.Verifier, opts Options) http.Handler {
	s := &Server{svc: svc, verifier: verifier, now: time.Now}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 2 * time.Minute
	}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(withLogging)
	r.Use(middleware.Recoverer)
	r.Use(withCORS(opts.AllowedOrigins))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.withAuth)
		r.Use(middleware.Timeout(opts.RequestTimeout))

		r.Route("/planner", func(r chi.Router) {
			r.Post("/questions", s.handleQuestions)
			r.Post("/plan", s.handlePlan)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Get("/{projectID}", s.handleGetProject)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type questionsRequest struct {
	Idea      string `json:"idea"`
	Domain    string `json:"domain"`
	Platform  string `json:"platform"`
	ProjectID string `json:"projectId"`
}

type planRequest struct {
	ProjectID string          `json:"projectId"`
	Answers   json.RawMessage `json:"answers"`
	Idea      string          `json:"idea"`
	Domain    string          `json:"domain"`
	Platform  string          `json:"platform"`
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: s.now().UTC(),
		Services:  map[string]string{"store": "connected"},
	}
	status := http.StatusOK

	if err := s.svc.Ready(r.Context()); err != nil {
		observability.LoggerFromContext(r.Context()).Warn("health check failed", "error", err)
		resp.Status = "error"
		resp.Services["store"] = "disconnected"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	var req questionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Idea) == "" || req.Domain == "" || req.Platform == "" || strings.TrimSpace(req.ProjectID) == "" {
		sendError(w, http.StatusBadRequest, "Idea, domain, platform, and projectId are required")
		return
	}

	qr := domain.QuestionRequest{
		Idea:     req.Idea,
		Domain:   domain.ProjectDomain(req.Domain),
		Platform: domain.Platform(req.Platform),
	}
	if err := qr.Validate(); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := s.svc.GenerateQuestions(r.Context(), planner.QuestionsInput{
		Request:   qr,
		ProjectID: domain.ProjectID(req.ProjectID),
		UserID:    domain.UserID(id.UID),
	})
	w.Header().Set("X-Planforge-Source", string(out.Source))
	sendSuccess(w, out.Response)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.ProjectID) == "" || len(req.Answers) == 0 || string(req.Answers) == "null" {
		sendError(w, http.StatusBadRequest, "ProjectId and answers are required")
		return
	}

	answers, err := parseAnswers(req.Answers)
	if err != nil {
		sendError(w, http.StatusBadRequest, "Answers must be an object")
		return
	}

	pr := domain.PlanRequest{
		ProjectID: domain.ProjectID(req.ProjectID),
		Idea:      req.Idea,
		Domain:    domain.ProjectDomain(req.Domain),
		Platform:  domain.Platform(req.Platform),
		Answers:   answers,
	}
	if err := pr.Validate(); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := s.svc.GeneratePlan(r.Context(), planner.PlanInput{
		Request: pr,
		UserID:  domain.UserID(id.UID),
	})
	w.Header().Set("X-Planforge-Source", string(out.Source))
	sendSuccess(w, out.Response)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())
	projectID := domain.ProjectID(chi.URLParam(r, "projectID"))

	p, err := s.svc.GetProject(r.Context(), projectID, domain.UserID(id.UID))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	sendSuccess(w, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	projects, err := s.svc.ListProjects(r.Context(), domain.UserID(id.UID), 0)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	sendSuccess(w, projects)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		sendError(w, http.StatusNotFound, "project not found")
		return
	}
	observability.LoggerFromContext(r.Context()).Error("store read failed", "error", err)
	sendError(w, http.StatusInternalServerError, "internal server error")
}

// parseAnswers accepts a JSON object and renders non-string values as text.
func parseAnswers(raw json.RawMessage) (map[string]string, error) {
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	if values == nil {
		return nil, fmt.Errorf("answers must be an object")
	}

	out := make(map[string]string, len(values))
	for k, v := range values {
		switch t := v.(type) {
		case string:
			out[k] = t
		case nil:
			out[k] = ""
		default:
			b, _ := json.Marshal(t)
			out[k] = string(b)
		}
	}
	return out, nil
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sendSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}
