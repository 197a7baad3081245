package service

import "mixvision-service/internal/opportunity/model"

// Selection é a máquina de estados da cascata de seleção:
// NoSelection → ConsultantChosen → RouteChosen → ClientChosen.
// Mudar um nível acima zera tudo abaixo; só ClientChosen expõe listas.
type Selection struct {
	Consultant string `json:"consultant,omitempty"`
	Route      string `json:"route,omitempty"`
	Client     string `json:"client,omitempty"`
}

type SelectionState string

const (
	StateNone             SelectionState = "no_selection"
	StateConsultantChosen SelectionState = "consultant_chosen"
	StateRouteChosen      SelectionState = "route_chosen"
	StateClientChosen     SelectionState = "client_chosen"
)

func (s Selection) State() SelectionState {
	switch {
	case s.Consultant == "":
		return StateNone
	case s.Route == "":
		return StateConsultantChosen
	case s.Client == "":
		return StateRouteChosen
	}
	return StateClientChosen
}

// SelectConsultant zera rota e cliente; consultor vazio volta a NoSelection.
func (s Selection) SelectConsultant(consultant string) Selection {
	return Selection{Consultant: consultant}
}

// SelectRoute exige consultor escolhido; zera o cliente.
func (s Selection) SelectRoute(route string) Selection {
	if s.Consultant == "" {
		return Selection{}
	}
	return Selection{Consultant: s.Consultant, Route: route}
}

func (s Selection) SelectClient(client string) Selection {
	if s.Consultant == "" || s.Route == "" {
		return Selection{Consultant: s.Consultant}
	}
	return Selection{Consultant: s.Consultant, Route: s.Route, Client: client}
}

// Resolution materializa missing/sold para o estado atual; fora de
// ClientChosen devolve listas vazias (estado de prompt no dashboard).
func (s Selection) Resolution(snap *model.Snapshot) model.Resolution {
	return Resolve(snap, s.Consultant, s.Route, s.Client)
}
