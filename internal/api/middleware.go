// Package api — HTTP-поверхность: роутер chi и middleware авторизации.
package api

import (
	"context"
	"net/http"

	"rdxfarm.ru/backend/internal/common"
	"rdxfarm.ru/backend/internal/features/users"
)

type roleKey struct{}

// Auth проверяет Bearer-токен сессии и кладёт пользователя в контекст.
func Auth(usersSvc *users.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := common.BearerToken(r)
			if token == "" {
				common.WriteError(w, common.ErrUnauthorized)
				return
			}

			user, err := usersSvc.GetBySession(r.Context(), token)
			if err != nil {
				common.WriteError(w, common.ErrUnauthorized)
				return
			}

			ctx := common.WithUserID(r.Context(), user.ID)
			ctx = context.WithValue(ctx, roleKey{}, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly пропускает только пользователей с ролью admin.
// Подключается после Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(roleKey{}).(users.Role)
		if !ok || role != users.RoleAdmin {
			common.WriteError(w, common.ErrNotAdmin)
			return
		}
		next.ServeHTTP(w, r)
	})
}
