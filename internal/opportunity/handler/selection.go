package handler

import (
	"net/http"

	"mixvision-service/internal/middleware"
	"mixvision-service/internal/opportunity/model"
	"mixvision-service/internal/opportunity/service"
	"mixvision-service/internal/session"
)

// selectionResult devolve o estado corrente da cascata mais as listas já
// resolvidas (vazias fora de client_chosen).
type selectionResult struct {
	State      service.SelectionState `json:"state"`
	Selection  service.Selection      `json:"selection"`
	Routes     []string               `json:"routes"`
	Clients    []string               `json:"clients"`
	Resolution model.Resolution       `json:"resolution"`
}

type selectRequest struct {
	Value string `json:"value"`
}

type transition func(service.Selection, string) service.Selection

// SelectConsultant/SelectRoute/SelectClient aplicam uma transição da máquina
// de seleção; mudar um nível acima invalida os de baixo.
func SelectConsultant(sessions *session.Store) http.HandlerFunc {
	return selectHandler(sessions, func(s service.Selection, v string) service.Selection {
		return s.SelectConsultant(v)
	})
}

func SelectRoute(sessions *session.Store) http.HandlerFunc {
	return selectHandler(sessions, func(s service.Selection, v string) service.Selection {
		return s.SelectRoute(v)
	})
}

func SelectClient(sessions *session.Store) http.HandlerFunc {
	return selectHandler(sessions, func(s service.Selection, v string) service.Selection {
		return s.SelectClient(v)
	})
}

func selectHandler(sessions *session.Store, apply transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.GetUser(r)
		st := sessions.Get(user.Token)
		if st == nil || st.Snapshot == nil {
			writeError(w, http.StatusConflict, "nenhuma planilha carregada nesta sessão")
			return
		}

		var req selectRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "corpo inválido: informe value")
			return
		}

		sel := apply(st.Selection, req.Value)
		sessions.PutSelection(user.Token, sel)
		writeJSON(w, http.StatusOK, buildSelectionResult(st.Snapshot, sel))
	}
}

// CurrentSelection é o GET do estado vigente (reabertura do dashboard).
func CurrentSelection(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.GetUser(r)
		st := sessions.Get(user.Token)
		if st == nil || st.Snapshot == nil {
			writeError(w, http.StatusConflict, "nenhuma planilha carregada nesta sessão")
			return
		}
		writeJSON(w, http.StatusOK, buildSelectionResult(st.Snapshot, st.Selection))
	}
}

func buildSelectionResult(snap *model.Snapshot, sel service.Selection) selectionResult {
	return selectionResult{
		State:      sel.State(),
		Selection:  sel,
		Routes:     service.ListRoutes(snap, sel.Consultant),
		Clients:    service.ListClients(snap, sel.Consultant, sel.Route),
		Resolution: sel.Resolution(snap),
	}
}

// Routes/Clients/Opportunities são as leituras sem estado (query params),
// para quem prefere dirigir a cascata no cliente.
func Routes(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshotFor(w, r, sessions)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string][]string{
			"routes": service.ListRoutes(snap, r.URL.Query().Get("consultant")),
		})
	}
}

func Clients(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshotFor(w, r, sessions)
		if !ok {
			return
		}
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, map[string][]string{
			"clients": service.ListClients(snap, q.Get("consultant"), q.Get("route")),
		})
	}
}

func Opportunities(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshotFor(w, r, sessions)
		if !ok {
			return
		}
		q := r.URL.Query()
		res := service.Resolve(snap, q.Get("consultant"), q.Get("route"), q.Get("client"))
		writeJSON(w, http.StatusOK, res)
	}
}

func snapshotFor(w http.ResponseWriter, r *http.Request, sessions *session.Store) (*model.Snapshot, bool) {
	user := middleware.GetUser(r)
	st := sessions.Get(user.Token)
	if st == nil || st.Snapshot == nil {
		writeError(w, http.StatusConflict, "nenhuma planilha carregada nesta sessão")
		return nil, false
	}
	return st.Snapshot, true
}
