package middleware

import (
	"context"
	"net/http"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/service"
	"clinic-management-api/pkg/response"

	"github.com/gorilla/mux"
)

// PermissionMiddleware guards routes with permission checks. Every request
// resolves the caller's permission set fresh from the store, so a role edit
// takes effect on the next request without re-login. Missing identity yields
// 401; a resolved set that lacks the required permission yields 403.
type PermissionMiddleware struct {
	permissionService service.PermissionService
}

func NewPermissionMiddleware(permissionService service.PermissionService) *PermissionMiddleware {
	return &PermissionMiddleware{permissionService: permissionService}
}

// Require allows the request through only when the caller holds the given
// permission.
func (m *PermissionMiddleware) Require(permission string) mux.MiddlewareFunc {
	return m.guard(func(perms entity.PermissionSet) bool {
		return perms.Has(permission)
	})
}

// RequireAny allows the request through when the caller holds at least one
// of the given permissions.
func (m *PermissionMiddleware) RequireAny(permissions ...string) mux.MiddlewareFunc {
	return m.guard(func(perms entity.PermissionSet) bool {
		return perms.HasAny(permissions...)
	})
}

// RequireAll allows the request through only when the caller holds every one
// of the given permissions.
func (m *PermissionMiddleware) RequireAll(permissions ...string) mux.MiddlewareFunc {
	return m.guard(func(perms entity.PermissionSet) bool {
		return perms.HasAll(permissions...)
	})
}

func (m *PermissionMiddleware) guard(allowed func(entity.PermissionSet) bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			perms, err := m.permissionService.Resolve(r.Context(), userID)
			if err != nil {
				response.Forbidden(w, "You do not have permission to perform this action")
				return
			}
			if !allowed(perms) {
				response.Forbidden(w, "You do not have permission to perform this action")
				return
			}

			ctx := context.WithValue(r.Context(), PermissionsKey, perms)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPermissionsFromContext extracts the resolved permission set stored by a
// guard for the current request.
func GetPermissionsFromContext(ctx context.Context) (entity.PermissionSet, bool) {
	perms, ok := ctx.Value(PermissionsKey).(entity.PermissionSet)
	return perms, ok
}
