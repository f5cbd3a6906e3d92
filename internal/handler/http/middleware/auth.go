package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/domain/auth"
	"github.com/cmlabs-hris/workkeeper-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only unrevoked access tokens that carry an
// employee_id and a known role. It must run after jwtauth.Verifier.
func AuthRequired(tokens jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokens.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if employeeID, ok := claims["employee_id"].(string); !ok || employeeID == "" {
				response.HandleError(w, attendance.ErrMissingEmployeeClaim)
				return
			}

			role, _ := claims["role"].(string)
			if !auth.Role(role).IsValid() {
				response.HandleError(w, auth.ErrInvalidRole)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
