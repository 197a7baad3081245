package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"mixvision-service/internal/config"
	"mixvision-service/internal/fileio"
	"mixvision-service/internal/middleware"
	"mixvision-service/internal/opportunity/model"
	"mixvision-service/internal/opportunity/service"
	"mixvision-service/internal/remote"
	"mixvision-service/internal/session"
)

// ingestResult é o corpo devolvido por todas as rotas de ingestão.
type ingestResult struct {
	Columns       model.ColumnMap `json:"columns"`
	Shape         model.ShapeKind `json:"shape"`
	Stats         model.Stats     `json:"stats"`
	Warnings      []model.Warning `json:"warnings,omitempty"`
	ConsultantKey string          `json:"consultantKey,omitempty"`
	Consultants   []string        `json:"consultants"`
	Routes        []string        `json:"routes"`
	Source        string          `json:"source,omitempty"`
}

// Ingest processa upload multipart (.xlsx/.xls/.csv) escopado ao consultor
// logado e substitui o snapshot da sessão.
func Ingest(cfg config.Config, logger zerolog.Logger, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			badRequest(w, "formulário multipart inválido: "+err.Error())
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			badRequest(w, "arquivo ausente: envie o campo \"file\"")
			return
		}
		defer file.Close()

		rows, err := fileio.ReadRows(file, header.Filename)
		if err != nil {
			badRequest(w, "falha ao ler a planilha: "+err.Error())
			return
		}
		ingestRows(w, r, logger, sessions, rows, header.Filename)
	}
}

// IngestURL baixa a planilha de um link compartilhado.
func IngestURL(cfg config.Config, logger zerolog.Logger, sessions *session.Store) http.HandlerFunc {
	type request struct {
		URL string `json:"url"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil || req.URL == "" {
			badRequest(w, "informe a url da planilha")
			return
		}
		rows, filename, err := fileio.FetchRows(r.Context(), req.URL, int64(cfg.MaxUploadMB)<<20)
		if err != nil {
			badRequest(w, "falha ao baixar a planilha: "+err.Error())
			return
		}
		ingestRows(w, r, logger, sessions, rows, filename)
	}
}

// IngestRemote varre a tabela remota paginada configurada.
func IngestRemote(cfg config.Config, logger zerolog.Logger, sessions *session.Store) http.HandlerFunc {
	type request struct {
		Table string `json:"table"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.RemoteTableURL == "" {
			writeError(w, http.StatusServiceUnavailable, "fonte remota não configurada (REMOTE_TABLE_URL)")
			return
		}
		var req request
		if err := decodeJSON(r, &req); err != nil || req.Table == "" {
			badRequest(w, "informe o nome da tabela")
			return
		}
		rows, err := remote.New(cfg.RemoteTableURL).ScanTable(r.Context(), req.Table)
		if err != nil {
			writeError(w, http.StatusBadGateway, "falha ao varrer a tabela remota: "+err.Error())
			return
		}
		ingestRows(w, r, logger, sessions, rows, req.Table)
	}
}

func ingestRows(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, sessions *session.Store, rows [][]string, source string) {
	user := middleware.GetUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "sessão não autenticada")
		return
	}

	start := time.Now()
	snap, err := service.Ingest(rows, user.Name, source)
	if err != nil {
		var structural *service.StructuralError
		if errors.As(err, &structural) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   err.Error(),
				"headers": structural.Headers,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sessions.PutSnapshot(user.Token, snap)

	logger.Info().
		Str("rid", middleware.GetRequestID(r)).
		Str("user", user.Name).
		Str("source", source).
		Str("shape", string(snap.Shape)).
		Int("rows", len(rows)).
		Int("clients", snap.Stats.Clients).
		Int("opportunities", snap.Stats.Opportunities).
		Dur("elapsed", time.Since(start)).
		Msg("ingest done")

	writeJSON(w, http.StatusOK, ingestResult{
		Columns:       snap.Columns,
		Shape:         snap.Shape,
		Stats:         snap.Stats,
		Warnings:      snap.Warnings,
		ConsultantKey: snap.ConsultantKey,
		Consultants:   service.ListConsultants(snap),
		Routes:        service.ListRoutes(snap, snap.ConsultantKey),
		Source:        snap.Source,
	})
}
