package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/metrics"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

const recordTimeout = 5 * time.Second

type IdentityHandler struct {
	identity ports.IdentityService
	recorder ports.VerificationRecorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewIdentityHandler wires the student endpoints. recorder may be nil, in
// which case verification attempts are not persisted.
func NewIdentityHandler(
	identity ports.IdentityService,
	recorder ports.VerificationRecorder,
	m *metrics.Metrics,
	logger *slog.Logger,
) *IdentityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityHandler{
		identity: identity,
		recorder: recorder,
		metrics:  m,
		logger:   logger,
	}
}

func (h *IdentityHandler) Register(r chi.Router) {
	r.Post("/students/validate", h.Validate)
	r.Post("/students/lookup", h.Lookup)
	r.Post("/students/verify", h.Verify)
}

type IdentifierRequest struct {
	Identifier string `json:"identifier"`
}

type VerifyRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type ValidateResponse struct {
	IsValid bool            `json:"is_valid"`
	Details *domain.Student `json:"details"`
}

type StudentResponse struct {
	Student domain.Student `json:"student"`
}

type VerifyResponse struct {
	Message string         `json:"message"`
	Student domain.Student `json:"student"`
}

func (h *IdentityHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req IdentifierRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := h.identity.Resolve(r.Context(), req.Identifier)
	h.metrics.IncrementResolution(res.Found)

	resp := ValidateResponse{IsValid: res.Found}
	if res.Found {
		resp.Details = &res.Student
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *IdentityHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req IdentifierRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	student, ok := h.identity.Lookup(r.Context(), req.Identifier)
	h.metrics.IncrementResolution(ok)
	if !ok {
		writeError(w, http.StatusNotFound, "student not found")
		return
	}
	writeJSON(w, http.StatusOK, StudentResponse{Student: student})
}

// Verify answers 401 for both unknown identities and wrong secrets.
func (h *IdentityHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Identifier == "" {
		writeError(w, http.StatusBadRequest, "identifier is required")
		return
	}

	student, ok := h.identity.Verify(r.Context(), req.Identifier, req.Password)

	outcome := ports.OutcomeRejected
	if ok {
		outcome = ports.OutcomeVerified
	}
	h.metrics.IncrementVerification(string(outcome))
	h.recordAttempt(r.Context(), req.Identifier, outcome)

	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, VerifyResponse{
		Message: "Verification successful",
		Student: student,
	})
}

func (h *IdentityHandler) recordAttempt(ctx context.Context, identifier string, outcome ports.VerificationOutcome) {
	if h.recorder == nil {
		return
	}

	evt := ports.VerificationEvent{
		AttemptID:      uuid.NewString(),
		CanonicalEmail: h.identity.Canonicalize(identifier),
		Outcome:        outcome,
		OccurredAt:     time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := h.recorder.RecordAttempt(ctx, evt); err != nil {
		h.metrics.IncrementAttemptRecorded(false)
		h.logger.ErrorContext(ctx, "identity: failed to record verification attempt",
			slog.String("attempt_id", evt.AttemptID),
			slog.Any("error", err),
		)
		return
	}
	h.metrics.IncrementAttemptRecorded(true)
}
