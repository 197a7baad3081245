package service

import (
	"fmt"
	"strings"

	"github.com/schollz/closestmatch"

	"mixvision-service/internal/opportunity/model"
)

// Quantidade mínima que marca produto como vendido no formato wide.
// 0 e valores negativos não contam; 0.999 também não.
const soldThreshold = 1.0

// Quantas linhas de dados entram na amostra diagnóstica do NoMatchWarning.
const noMatchSampleRows = 20

// StructuralError é fatal para a ingestão corrente: sem coluna de consultor
// não há como escopar a planilha. Carrega o cabeçalho detectado para
// diagnóstico.
type StructuralError struct {
	Headers []string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("coluna de consultor não encontrada no cabeçalho: %s",
		strings.Join(e.Headers, " | "))
}

// Ingest processa a planilha inteira em um passe síncrono e devolve o
// snapshot que substitui qualquer resultado anterior da sessão. Avisos
// recuperáveis voltam dentro do snapshot; só a falta da coluna de consultor
// é erro.
func Ingest(data model.RawTable, consultantName, source string) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Hierarchy: model.Hierarchy{},
		Catalog:   map[string]struct{}{},
		Source:    source,
	}

	if len(data) == 0 {
		snap.Warnings = append(snap.Warnings, model.Warning{
			Kind:    model.WarnEmptyInput,
			Message: "planilha vazia: nenhum dado processado",
		})
		return snap, nil
	}

	cm, fallback := LocateHeader(data)
	if fallback {
		snap.Warnings = append(snap.Warnings, model.Warning{
			Kind:    model.WarnHeaderFallback,
			Message: "cabeçalho não detectado nas primeiras 50 linhas; usando linha 1",
		})
	}

	headers := trimmedHeaders(data[cm.HeaderRowIndex])
	if cm.Consultant == model.ColNotFound {
		return nil, &StructuralError{Headers: headers}
	}

	shape := DetectShape(headers, cm)
	snap.Columns = cm
	snap.Shape = shape.Kind

	// No wide, o catálogo nasce dos cabeçalhos de produto, vendido ou não.
	if shape.Kind == model.ShapeWide {
		for _, pc := range shape.ProductColumns {
			snap.Catalog[pc.Name] = struct{}{}
		}
	}

	wantNorm := NormalizeForMatching(consultantName)

	seenConsultants := map[string]struct{}{}
	seenClients := map[string]struct{}{}
	seenProducts := map[string]struct{}{}
	seenInSample := []string{}

	for r := cm.HeaderRowIndex + 1; r < len(data); r++ {
		row := data[r]
		if len(row) == 0 {
			continue
		}

		consultant := strings.TrimSpace(cellAt(row, cm.Consultant))
		client := strings.TrimSpace(cellAt(row, cm.Client))
		if consultant == "" {
			// consultor vazio nunca casa (string vazia "contém" tudo)
			continue
		}
		if r-cm.HeaderRowIndex <= noMatchSampleRows {
			seenInSample = appendUnique(seenInSample, consultant)
		}
		if !NameMatches(wantNorm, consultant) {
			continue
		}

		if client == "" {
			client = SyntheticClient(r)
		}
		route := NormalizeRoute(cellAt(row, cm.Route))

		seenConsultants[consultant] = struct{}{}
		seenClients[client] = struct{}{}

		routes, ok := snap.Hierarchy[consultant]
		if !ok {
			routes = map[string]map[string]*model.ClientRecord{}
			snap.Hierarchy[consultant] = routes
			snap.ConsultantKey = consultant
		}
		clients, ok := routes[route]
		if !ok {
			clients = map[string]*model.ClientRecord{}
			routes[route] = clients
		}
		rec, ok := clients[client]
		if !ok {
			// perfil é fixado na primeira linha vista deste cliente
			rec = &model.ClientRecord{
				Products: map[string]struct{}{},
				Profile:  DetectProfile(cellAt(row, cm.Profile)),
			}
			clients[client] = rec
		}

		switch shape.Kind {
		case model.ShapeWide:
			markWideRow(row, shape.ProductColumns, rec, snap, seenProducts)
		case model.ShapeLong:
			markLongRow(row, shape.ProductIndex, rec, snap, seenProducts)
		}
	}

	snap.Stats = model.Stats{
		Consultants:   len(seenConsultants),
		Clients:       len(seenClients),
		Products:      len(seenProducts),
		Opportunities: snap.Stats.Opportunities,
	}

	if len(snap.Hierarchy) == 0 {
		snap.Warnings = append(snap.Warnings, noMatchWarning(consultantName, seenInSample))
	}
	return snap, nil
}

// markWideRow inspeciona cada coluna de produto: texto não numérico vende;
// número só vende a partir de 1.
func markWideRow(row []string, cols []model.ProductColumn, rec *model.ClientRecord, snap *model.Snapshot, seen map[string]struct{}) {
	for _, pc := range cols {
		val := cellAt(row, pc.Index)
		if IsNonEmptyText(val) {
			sell(pc.Name, rec, snap, seen)
			continue
		}
		if n, ok := ToNumber(val); ok && n >= soldThreshold {
			sell(pc.Name, rec, snap, seen)
		}
	}
}

// markLongRow: uma venda por linha, nome do produto na própria célula.
func markLongRow(row []string, prodIdx int, rec *model.ClientRecord, snap *model.Snapshot, seen map[string]struct{}) {
	name := strings.TrimSpace(cellAt(row, prodIdx))
	if name == "" {
		return
	}
	sell(name, rec, snap, seen)
}

func sell(product string, rec *model.ClientRecord, snap *model.Snapshot, seen map[string]struct{}) {
	rec.Products[product] = struct{}{}
	snap.Catalog[product] = struct{}{}
	seen[product] = struct{}{}
	snap.Stats.Opportunities++
}

// NameMatches aplica a política de dois níveis do nome de consultor:
// igualdade exata normalizada, depois continência em qualquer direção
// (apelidos e nomes parciais). Mantida explícita em duas camadas; não
// colapsar em heurística de similaridade.
func NameMatches(wantNorm, cell string) bool {
	got := NormalizeForMatching(cell)
	if got == "" || wantNorm == "" {
		return false
	}
	if got == wantNorm {
		return true
	}
	return strings.Contains(got, wantNorm) || strings.Contains(wantNorm, got)
}

func noMatchWarning(consultantName string, sample []string) model.Warning {
	w := model.Warning{
		Kind: model.WarnNoMatch,
		Message: fmt.Sprintf(
			"nenhuma linha encontrada para o consultor %q; confira se o nome está igual na planilha",
			consultantName),
		Sample: sample,
	}
	if len(sample) > 0 {
		cm := closestmatch.New(sample, []int{2, 3, 4})
		if best := cm.Closest(consultantName); best != "" {
			w.Suggestion = best
		}
	}
	return w
}

func cellAt(row []string, idx int) string {
	if idx == model.ColNotFound || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func trimmedHeaders(row []string) []string {
	out := make([]string, len(row))
	for i, h := range row {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
