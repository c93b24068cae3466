package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tacocrew/tacocrew-backend/api/responses"
	"github.com/tacocrew/tacocrew-backend/internal/users"
	pkgerrors "github.com/tacocrew/tacocrew-backend/pkg/errors"
	"github.com/tacocrew/tacocrew-backend/pkg/logger"
)

const usernameHeader = "X-Username"

type usernameResolver interface {
	GetUserByUsername(ctx context.Context, username string) (*users.UserDTO, error)
}

// UsernameAuth authenticates compat routes from the X-Username header. The
// header is trusted as-is; callers are expected to sit behind a gateway
// that already vouched for it.
func UsernameAuth(resolver usernameResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := strings.TrimSpace(r.Header.Get(usernameHeader))
			if username == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing username header"))
				return
			}

			if resolver == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user resolver unavailable"))
				return
			}

			user, err := resolver.GetUserByUsername(r.Context(), username)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown username"))
					return
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithUserID(r.Context(), user.ID.String())
			ctx = WithUsername(ctx, user.Username)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":  user.ID.String(),
					"username": user.Username,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
