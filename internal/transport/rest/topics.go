package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/service/topiclist"
	"github.com/heartmarshall/topicreview-backend/pkg/ctxutil"
)

//go:generate moq -out topic_lister_mock_test.go -pkg rest . topicLister

type topicLister interface {
	AllQueryNext(ctx context.Context, u *domain.User, query, pos string, pageSize int) (*topiclist.Page, error)
	AllQueryPrev(ctx context.Context, u *domain.User, query, pos string, pageSize int) (*topiclist.Page, error)
	ForAccount(ctx context.Context, u *domain.User, target *uuid.UUID) (*topiclist.Dashboard, error)
	Get(ctx context.Context, u *domain.User, id domain.TopicID) (*topiclist.Detail, error)
}

// TopicHandler serves topic listing endpoints.
type TopicHandler struct {
	svc             topicLister
	defaultPageSize int
	log             *slog.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(svc topicLister, defaultPageSize int, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{
		svc:             svc,
		defaultPageSize: defaultPageSize,
		log:             logger.With("handler", "topics"),
	}
}

// List pages through query results.
// GET /topics?q=status:open&pos=<sortkey>&n=25&dir=next|prev
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("q")
	if query == "" {
		query = "status:open"
	}
	pos := params.Get("pos")

	pageSize := h.defaultPageSize
	if v := params.Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "n must be an integer")
			return
		}
		pageSize = n
	}

	u := ctxutil.UserFromCtx(r.Context())

	var (
		page *topiclist.Page
		err  error
	)
	switch params.Get("dir") {
	case "", "next":
		page, err = h.svc.AllQueryNext(r.Context(), u, query, pos, pageSize)
	case "prev":
		page, err = h.svc.AllQueryPrev(r.Context(), u, query, pos, pageSize)
	default:
		writeError(w, http.StatusBadRequest, "dir must be next or prev")
		return
	}
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Get returns one topic with the approvals on its current change-set.
// GET /topics/{id}
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTopicID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	detail, err := h.svc.Get(r.Context(), ctxutil.UserFromCtx(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Dashboard returns the owned, review and recently closed lists of an
// account. Without {account} it is the requesting user's own dashboard.
// GET /dashboard, GET /dashboard/{account}
func (h *TopicHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var target *uuid.UUID
	if v := r.PathValue("account"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid account id")
			return
		}
		target = &id
	}

	dash, err := h.svc.ForAccount(r.Context(), ctxutil.UserFromCtx(r.Context()), target)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, dash)
}
