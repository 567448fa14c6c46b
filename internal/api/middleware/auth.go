package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/ACS-ConsultationService/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

const msgAdminUnauthorized = "требуется валидный админский токен"

// AdminAuth проверяет X-Admin-Token для админских ручек
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminTokenHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, msgAdminUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
