package grading

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	gradingsvc "gitlab.com/gradebench.net/internal/core/services/grading"
	"gitlab.com/gradebench.net/internal/domain"
	"gitlab.com/gradebench.net/internal/handlers"
	"gitlab.com/gradebench.net/internal/handlers/response"
	"gitlab.com/gradebench.net/internal/handlers/validate"
	"gitlab.com/gradebench.net/internal/static/errs"
)

// Handler serves the learner and author grading endpoints.
type Handler struct {
	gradingService gradingsvc.IGradingService
	runLock        secondary.RunLock
	lockTTL        time.Duration
	logger         primary.Logger
}

func NewHandler(gradingService gradingsvc.IGradingService, runLock secondary.RunLock, lockTTL time.Duration, logger primary.Logger) *Handler {
	return &Handler{
		gradingService: gradingService,
		runLock:        runLock,
		lockTTL:        lockTTL,
		logger:         logger,
	}
}

// RegisterRoutes mounts the grading API behind the bearer-token middleware.
func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(mw.JWTMiddleware)

	api.HandleFunc("/languages", h.GetLanguages).Methods("GET")
	api.HandleFunc("/compile", h.Compile).Methods("POST")
	api.HandleFunc("/assignments/{assignmentId}/questions/{questionIndex:[0-9]+}/sample-runs", h.RunSampleTests).Methods("POST")
	api.HandleFunc("/assignments/{assignmentId}/hidden-runs", h.RunHiddenTests).Methods("POST")
	api.HandleFunc("/assignments/{assignmentId}/submissions", h.Submit).Methods("POST")
	api.Handle("/assignments/{assignmentId}/submissions", mw.RequireAuthor(http.HandlerFunc(h.ListSubmissions))).Methods("GET")
	api.HandleFunc("/assignments/{assignmentId}/submissions/me", h.GetMySubmission).Methods("GET")
	api.Handle("/preview-runs", mw.RequireAuthor(http.HandlerFunc(h.PreviewTestCases))).Methods("POST")
}

func (h *Handler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	languages := make([]LanguageInfo, 0, len(domain.SupportedLanguages))
	for _, lang := range domain.SupportedLanguages {
		languages = append(languages, LanguageInfo{
			Name:        lang,
			StarterCode: domain.StarterCode(lang),
			Default:     lang == domain.DefaultLanguage,
		})
	}
	response.WriteSuccess(w, LanguagesResponse{Languages: languages})
}

func (h *Handler) Compile(w http.ResponseWriter, r *http.Request) {
	var req CompileRequest
	if !h.bind(w, r, &req) {
		return
	}
	auth, _ := handlers.AuthPayloadFrom(r.Context())

	h.withRunLock(w, r, secondary.RunLockKey(auth.Subject, "playground", secondary.RunModeCompile), func(ctx context.Context) {
		out, err := h.gradingService.RunCode(ctx, domain.Solution{Language: req.Language, Source: req.Source}, req.Stdin)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		response.WriteSuccess(w, out)
	})
}

func (h *Handler) RunSampleTests(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	assignmentID := vars["assignmentId"]
	questionIndex, err := strconv.Atoi(vars["questionIndex"])
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "invalid question index", StatusCode: http.StatusBadRequest, RequestID: handlers.RequestIDFrom(r.Context())})
		return
	}

	var req RunRequest
	if !h.bind(w, r, &req) {
		return
	}
	auth, _ := handlers.AuthPayloadFrom(r.Context())

	h.withRunLock(w, r, secondary.RunLockKey(auth.Subject, assignmentID, secondary.RunModeSample), func(ctx context.Context) {
		report, err := h.gradingService.RunSampleTests(ctx, auth, assignmentID, questionIndex, req.Solution())
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		response.WriteSuccess(w, report)
	})
}

func (h *Handler) RunHiddenTests(w http.ResponseWriter, r *http.Request) {
	assignmentID := mux.Vars(r)["assignmentId"]

	var req RunRequest
	if !h.bind(w, r, &req) {
		return
	}
	auth, _ := handlers.AuthPayloadFrom(r.Context())

	h.withRunLock(w, r, secondary.RunLockKey(auth.Subject, assignmentID, secondary.RunModeHidden), func(ctx context.Context) {
		report, err := h.gradingService.RunHiddenTests(ctx, auth, assignmentID, req.Solution())
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		response.WriteSuccess(w, report)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	assignmentID := mux.Vars(r)["assignmentId"]

	var req SubmitRequest
	if !h.bind(w, r, &req) {
		return
	}
	auth, _ := handlers.AuthPayloadFrom(r.Context())

	h.withRunLock(w, r, secondary.RunLockKey(auth.Subject, assignmentID, secondary.RunModeSubmit), func(ctx context.Context) {
		result, err := h.gradingService.Submit(ctx, gradingsvc.SubmitRequest{
			AssignmentID: assignmentID,
			StudentID:    auth.Subject,
			StudentName:  auth.Username,
			Role:         auth.Role,
			Payload:      req.Payload(),
		})
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		status := http.StatusOK
		if result.Created {
			status = http.StatusCreated
		}
		handlers.ResponseWithJson(w, status, result)
	})
}

func (h *Handler) GetMySubmission(w http.ResponseWriter, r *http.Request) {
	assignmentID := mux.Vars(r)["assignmentId"]
	auth, _ := handlers.AuthPayloadFrom(r.Context())

	record, err := h.gradingService.GetSubmission(r.Context(), assignmentID, auth.Subject)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if record == nil {
		response.WriteError(w, response.ErrorMessage{Message: "no submission yet", StatusCode: http.StatusNotFound, RequestID: handlers.RequestIDFrom(r.Context())})
		return
	}
	response.WriteSuccess(w, record)
}

// ListSubmissions shows authors every learner's submission, newest first.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	assignmentID := mux.Vars(r)["assignmentId"]

	rows, err := h.gradingService.ListSubmissions(r.Context(), assignmentID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	response.WriteSuccess(w, SubmissionListResponse{Submissions: rows})
}

func (h *Handler) PreviewTestCases(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if !h.bind(w, r, &req) {
		return
	}
	auth, _ := handlers.AuthPayloadFrom(r.Context())

	h.withRunLock(w, r, secondary.RunLockKey(auth.Subject, "preview", secondary.RunModePreview), func(ctx context.Context) {
		report, err := h.gradingService.PreviewTestCases(ctx, req.TestCases, domain.Solution{Language: req.Language, Source: req.Source})
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		response.WriteSuccess(w, report)
	})
}

func (h *Handler) bind(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if fields := validate.Bind(r, dst); fields != nil {
		handlers.ResponseWithJson(w, http.StatusBadRequest, ValidationErrorResponse{
			Message: "invalid request",
			Fields:  fields,
		})
		return false
	}
	return true
}

// withRunLock runs fn while holding key. A held key answers 409. If the lock
// store is unreachable the run goes ahead unguarded.
func (h *Handler) withRunLock(w http.ResponseWriter, r *http.Request, key string, fn func(ctx context.Context)) {
	ctx := r.Context()
	requestID := handlers.RequestIDFrom(ctx)

	token, acquired, err := h.runLock.Acquire(ctx, key, h.lockTTL)
	if err != nil {
		h.logger.Warn("Run lock unavailable", "requestId", requestID, "key", key, "error", err)
		fn(ctx)
		return
	}
	if !acquired {
		h.writeServiceError(w, r, errs.ErrRunInProgress)
		return
	}
	defer func() {
		if err := h.runLock.Release(context.WithoutCancel(ctx), key, token); err != nil {
			h.logger.Warn("Failed to release run lock", "requestId", requestID, "key", key, "error", err)
		}
	}()

	fn(ctx)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := handlers.RequestIDFrom(r.Context())
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("Grading request failed", "requestId", requestID, "path", r.URL.Path, "error", err)
		if errors.Is(err, errs.ErrSubmissionNotRecorded) {
			message = "Submission not recorded. Please try again."
		} else {
			message = "internal error"
		}
	}
	response.WriteError(w, response.ErrorMessage{Message: message, StatusCode: status, RequestID: requestID})
}

// StatusFor maps a grading error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrAssignmentNotFound), errors.Is(err, errs.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrEmptySolution),
		errors.Is(err, errs.ErrUnsupportedLanguage),
		errors.Is(err, errs.ErrNotCodingAssignment):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
