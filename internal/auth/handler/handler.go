package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"mixvision-service/internal/auth"
)

// Login resolve o token plano digitado no dashboard para o usuário.
func Login(svc *auth.Service, logger zerolog.Logger) http.HandlerFunc {
	type request struct {
		Token string `json:"token"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			writeError(w, http.StatusBadRequest, "informe um token válido")
			return
		}
		user, err := svc.Login(r.Context(), req.Token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			logger.Error().Err(err).Msg("login: consulta ao store falhou")
			writeError(w, http.StatusInternalServerError, "erro de conexão com o servidor")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// CreateSeller (admin): cria vendedor com token gerado de 8 caracteres.
func CreateSeller(svc *auth.Service, logger zerolog.Logger) http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo inválido")
			return
		}
		user, err := svc.CreateSeller(r.Context(), req.Name)
		if err != nil {
			if errors.Is(err, auth.ErrEmptyName) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logger.Error().Err(err).Msg("criação de vendedor falhou")
			writeError(w, http.StatusInternalServerError, "erro ao criar vendedor")
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

// ListSellers (admin): vendedores mais novos primeiro.
func ListSellers(svc *auth.Service, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListSellers(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("listagem de vendedores falhou")
			writeError(w, http.StatusInternalServerError, "erro ao carregar vendedores")
			return
		}
		if users == nil {
			users = []*auth.User{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
