package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"mixvision-service/internal/auth"
)

const userKey ctxKey = 2

// Auth resolve o token plano do header Authorization (Bearer <token>) via
// serviço de usuários e injeta o usuário no contexto da requisição.
func Auth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "token ausente")
				return
			}
			user, err := svc.Login(r.Context(), token)
			if err != nil {
				unauthorized(w, "token inválido")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin assume que Auth já rodou na cadeia.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil || user.Role != auth.RoleAdmin {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "acesso restrito ao administrador"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUser(r *http.Request) *auth.User {
	if v := r.Context().Value(userKey); v != nil {
		return v.(*auth.User)
	}
	return nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(h)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
