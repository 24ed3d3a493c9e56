package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/staff-attendance-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
