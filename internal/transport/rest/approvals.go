package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/service/approval"
	"github.com/heartmarshall/topicreview-backend/pkg/ctxutil"
)

//go:generate moq -out approval_summarizer_mock_test.go -pkg rest . approvalSummarizer

// maxSummaryTopics bounds one summary request.
const maxSummaryTopics = 500

type approvalSummarizer interface {
	StrongestApprovals(ctx context.Context, u *domain.User, ids []domain.TopicID) (*approval.SummarySet, error)
	UserApprovals(ctx context.Context, u *domain.User, ids []domain.TopicID, account uuid.UUID) (*approval.SummarySet, error)
}

// ApprovalHandler serves approval summary endpoints.
type ApprovalHandler struct {
	svc approvalSummarizer
	log *slog.Logger
}

// NewApprovalHandler creates an ApprovalHandler.
func NewApprovalHandler(svc approvalSummarizer, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{svc: svc, log: logger.With("handler", "approvals")}
}

type summaryRequest struct {
	Topics  []domain.TopicID `json:"topics"`
	Account *uuid.UUID       `json:"account,omitempty"`
}

func (req summaryRequest) validate(needAccount bool) error {
	var errs []domain.FieldError
	if len(req.Topics) > maxSummaryTopics {
		errs = append(errs, domain.FieldError{Field: "topics", Message: "too many topics"})
	}
	if needAccount && (req.Account == nil || *req.Account == uuid.Nil) {
		errs = append(errs, domain.FieldError{Field: "account", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Strongest handles POST /approvals/strongest.
func (h *ApprovalHandler) Strongest(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, false)
	if !ok {
		return
	}

	set, err := h.svc.StrongestApprovals(r.Context(), ctxutil.UserFromCtx(r.Context()), req.Topics)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, set)
}

// User handles POST /approvals/user.
func (h *ApprovalHandler) User(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, true)
	if !ok {
		return
	}

	set, err := h.svc.UserApprovals(r.Context(), ctxutil.UserFromCtx(r.Context()), req.Topics, *req.Account)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, set)
}

func (h *ApprovalHandler) decode(w http.ResponseWriter, r *http.Request, needAccount bool) (summaryRequest, bool) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := req.validate(needAccount); err != nil {
		writeServiceError(w, r, h.log, err)
		return req, false
	}
	return req, true
}
