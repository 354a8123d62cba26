package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/pkg/ctxutil"
)

//go:generate moq -out token_validator_mock_test.go -pkg middleware . tokenValidator
//go:generate moq -out group_resolver_mock_test.go -pkg middleware . groupResolver

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type groupResolver interface {
	MemberOf(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
}

// Auth resolves the bearer token into the requesting user and its groups.
// Requests without a token continue as the anonymous user.
func Auth(log *slog.Logger, validator tokenValidator, groups groupResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r.WithContext(ctxutil.WithUser(r.Context(), domain.Anonymous())))
				return
			}
			accountID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				log.DebugContext(r.Context(), "token rejected", slog.String("error", err.Error()))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			memberOf, err := groups.MemberOf(r.Context(), accountID)
			if err != nil {
				log.ErrorContext(r.Context(), "resolve groups",
					slog.String("account_id", accountID.String()),
					slog.String("error", err.Error()),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			ctx := ctxutil.WithUser(r.Context(), domain.NewAccountUser(accountID, memberOf...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
