package service

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mixvision-service/internal/opportunity/model"
)

// Colação pt-BR: acentos ordenam junto da letra base, sem distinguir caixa.
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.Loose)
}

// Resolve devolve o complemento (catálogo − comprados) e a lista de vendidos
// do cliente selecionado, ambos em ordem de colação pt-BR. Seleção ausente em
// qualquer nível devolve listas vazias, nunca erro.
func Resolve(snap *model.Snapshot, consultant, route, client string) model.Resolution {
	res := model.Resolution{Missing: []string{}, Sold: []string{}, Profile: model.ProfileUnknown}
	if snap == nil || consultant == "" || route == "" || client == "" {
		return res
	}
	routes, ok := snap.Hierarchy[consultant]
	if !ok {
		return res
	}
	clients, ok := routes[route]
	if !ok {
		return res
	}
	rec, ok := clients[client]
	if !ok {
		return res
	}

	for p := range snap.Catalog {
		if _, sold := rec.Products[p]; !sold {
			res.Missing = append(res.Missing, p)
		}
	}
	for p := range rec.Products {
		res.Sold = append(res.Sold, p)
	}

	col := newCollator()
	col.SortStrings(res.Missing)
	col.SortStrings(res.Sold)
	res.Profile = rec.Profile
	return res
}

// ListConsultants enumera as chaves do nível consultor (normalmente uma só,
// já que a agregação é escopada ao consultor logado).
func ListConsultants(snap *model.Snapshot) []string {
	if snap == nil {
		return []string{}
	}
	out := make([]string, 0, len(snap.Hierarchy))
	for c := range snap.Hierarchy {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func ListRoutes(snap *model.Snapshot, consultant string) []string {
	if snap == nil {
		return []string{}
	}
	routes, ok := snap.Hierarchy[consultant]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(routes))
	for r := range routes {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func ListClients(snap *model.Snapshot, consultant, route string) []string {
	if snap == nil {
		return []string{}
	}
	routes, ok := snap.Hierarchy[consultant]
	if !ok {
		return []string{}
	}
	clients, ok := routes[route]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(clients))
	for c := range clients {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
