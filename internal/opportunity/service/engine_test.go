package service

import (
	"errors"
	"reflect"
	"testing"

	"mixvision-service/internal/opportunity/model"
)

func wideTable() model.RawTable {
	// colunas de produto começam em max(8, info+1) = 8
	return model.RawTable{
		{"Consultor", "Cliente", "Rota", "", "", "", "", "", "ProdutoX", "ProdutoY"},
		{"Ana", "Loja1", "R1", "", "", "", "", "", "1", ""},
		{"Ana", "Loja2", "R1", "", "", "", "", "", "", "SIM"},
	}
}

func TestIngestScenarioWide(t *testing.T) {
	snap, err := Ingest(wideTable(), "Ana", "teste.xlsx")
	if err != nil {
		t.Fatal(err)
	}

	if len(snap.Catalog) != 2 {
		t.Fatalf("Catalog = %v, want {ProdutoX, ProdutoY}", snap.Catalog)
	}
	loja1 := snap.Hierarchy["Ana"]["R1"]["Loja1"]
	if loja1 == nil {
		t.Fatal("Loja1 ausente da hierarquia")
	}
	if _, ok := loja1.Products["ProdutoX"]; !ok || len(loja1.Products) != 1 {
		t.Fatalf("Loja1.products = %v, want {ProdutoX}", loja1.Products)
	}
	loja2 := snap.Hierarchy["Ana"]["R1"]["Loja2"]
	if _, ok := loja2.Products["ProdutoY"]; !ok || len(loja2.Products) != 1 {
		t.Fatalf("Loja2.products = %v, want {ProdutoY}", loja2.Products)
	}

	res := Resolve(snap, "Ana", "R1", "Loja1")
	if !reflect.DeepEqual(res.Missing, []string{"ProdutoY"}) {
		t.Fatalf("missing = %v, want [ProdutoY]", res.Missing)
	}
	if !reflect.DeepEqual(res.Sold, []string{"ProdutoX"}) {
		t.Fatalf("sold = %v, want [ProdutoX]", res.Sold)
	}
}

func TestIngestNoMatchWarning(t *testing.T) {
	snap, err := Ingest(wideTable(), "Bruno", "teste.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Hierarchy) != 0 {
		t.Fatalf("hierarquia deveria estar vazia, veio %v", snap.Hierarchy)
	}
	var warn *model.Warning
	for i := range snap.Warnings {
		if snap.Warnings[i].Kind == model.WarnNoMatch {
			warn = &snap.Warnings[i]
		}
	}
	if warn == nil {
		t.Fatal("esperava NoMatchWarning")
	}
	if len(warn.Sample) == 0 || warn.Sample[0] != "Ana" {
		t.Fatalf("amostra diagnóstica = %v, want [Ana]", warn.Sample)
	}
}

func TestIngestScenarioLong(t *testing.T) {
	data := model.RawTable{
		{"Vendedor", "Cliente", "Produto"},
		{"Ana", "Loja1", "Arroz"},
		{"Ana", "Loja1", "Feijão"},
	}
	snap, err := Ingest(data, "Ana", "vendas.csv")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Shape != model.ShapeLong {
		t.Fatalf("Shape = %s, want long", snap.Shape)
	}
	rec := snap.Hierarchy["Ana"][RoutePlaceholder]["Loja1"]
	if rec == nil {
		t.Fatal("Loja1 ausente (rota padrão)")
	}
	if len(rec.Products) != 2 || len(snap.Catalog) != 2 {
		t.Fatalf("products = %v, catalog = %v", rec.Products, snap.Catalog)
	}
	if _, ok := rec.Products["Feijão"]; !ok {
		t.Fatalf("Feijão ausente de %v", rec.Products)
	}
}

func TestIngestIdempotent(t *testing.T) {
	a, err := Ingest(wideTable(), "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Ingest(wideTable(), "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Hierarchy, b.Hierarchy) {
		t.Fatal("hierarquias divergem entre ingestões idênticas")
	}
	if !reflect.DeepEqual(a.Catalog, b.Catalog) {
		t.Fatal("catálogos divergem entre ingestões idênticas")
	}
	if a.Stats != b.Stats {
		t.Fatalf("stats divergem: %+v vs %+v", a.Stats, b.Stats)
	}
}

func TestIngestSoldThreshold(t *testing.T) {
	data := model.RawTable{
		{"Consultor", "Cliente", "", "", "", "", "", "", "P1", "P2", "P3", "P4"},
		{"Ana", "Loja1", "", "", "", "", "", "", "0", "0.999", "1", "-2"},
	}
	snap, err := Ingest(data, "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}
	rec := snap.Hierarchy["Ana"][RoutePlaceholder]["Loja1"]
	if len(rec.Products) != 1 {
		t.Fatalf("só P3 deveria vender (>= 1), veio %v", rec.Products)
	}
	if _, ok := rec.Products["P3"]; !ok {
		t.Fatalf("P3 ausente de %v", rec.Products)
	}
}

func TestIngestScopesToSessionConsultant(t *testing.T) {
	data := model.RawTable{
		{"Consultor", "Cliente", "", "", "", "", "", "", "P1"},
		{"Ana", "Loja1", "", "", "", "", "", "", "1"},
		{"Carlos", "Loja9", "", "", "", "", "", "", "1"},
	}
	snap, err := Ingest(data, "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := snap.Hierarchy["Carlos"]; ok {
		t.Fatal("linhas de outro consultor entraram na hierarquia")
	}
	if snap.Stats.Clients != 1 {
		t.Fatalf("Clients = %d, want 1", snap.Stats.Clients)
	}
}

func TestIngestFuzzyContainmentMatch(t *testing.T) {
	data := model.RawTable{
		{"Consultor", "Cliente", "Produto"},
		{"Ana Maria Souza", "Loja1", "Arroz"},
	}
	// nome de exibição é parte do nome da planilha
	snap, err := Ingest(data, "Ana Maria", "x")
	if err != nil {
		t.Fatal(err)
	}
	if snap.ConsultantKey != "Ana Maria Souza" {
		t.Fatalf("ConsultantKey = %q", snap.ConsultantKey)
	}
	if len(snap.Hierarchy["Ana Maria Souza"]) == 0 {
		t.Fatal("match por continência não agregou a linha")
	}

	// e acentos/caixa não atrapalham a igualdade exata
	snap2, err := Ingest(model.RawTable{
		{"Consultor", "Cliente", "Produto"},
		{"CONCEIÇÃO", "Loja1", "Arroz"},
	}, "conceicao", "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap2.Hierarchy) != 1 {
		t.Fatal("igualdade normalizada deveria casar")
	}
}

func TestIngestProfileFixedAtFirstRow(t *testing.T) {
	data := model.RawTable{
		{"Vendedor", "Cliente", "Produto", "Perfil"},
		{"Ana", "Loja1", "Arroz", "A"},
		{"Ana", "Loja1", "Feijão", "C"},
	}
	snap, err := Ingest(data, "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}
	rec := snap.Hierarchy["Ana"][RoutePlaceholder]["Loja1"]
	if rec.Profile != model.ProfileA {
		t.Fatalf("Profile = %q, want A (primeira linha vence)", rec.Profile)
	}
}

func TestIngestSyntheticClientName(t *testing.T) {
	data := model.RawTable{
		{"Vendedor", "Cliente", "Produto"},
		{"Ana", "", "Arroz"},
	}
	snap, err := Ingest(data, "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}
	// linha 2 da planilha (1-based)
	if _, ok := snap.Hierarchy["Ana"][RoutePlaceholder]["Cliente 2"]; !ok {
		t.Fatalf("cliente sintético ausente: %v", snap.Hierarchy)
	}
}

func TestIngestSkipsEmptyConsultant(t *testing.T) {
	data := model.RawTable{
		{"Vendedor", "Cliente", "Produto"},
		{"", "Loja1", "Arroz"},
		{"", "", ""},
	}
	snap, err := Ingest(data, "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Hierarchy) != 0 {
		t.Fatalf("linhas sem consultor não devem agregar: %v", snap.Hierarchy)
	}
}

func TestIngestEmptyInput(t *testing.T) {
	snap, err := Ingest(model.RawTable{}, "Ana", "vazio.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Warnings) != 1 || snap.Warnings[0].Kind != model.WarnEmptyInput {
		t.Fatalf("warnings = %v, want empty_input", snap.Warnings)
	}
	if len(snap.Hierarchy) != 0 || len(snap.Catalog) != 0 {
		t.Fatal("snapshot de entrada vazia deve ser limpo")
	}
}

func TestIngestStructuralError(t *testing.T) {
	data := model.RawTable{
		{"Cliente", "Produto"},
		{"Loja1", "Arroz"},
	}
	_, err := Ingest(data, "Ana", "x")
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("esperava StructuralError, veio %v", err)
	}
	if len(structural.Headers) == 0 {
		t.Fatal("erro estrutural deve carregar o cabeçalho detectado")
	}
}

func TestIngestWideCatalogSeededFromHeaders(t *testing.T) {
	// produto nunca vendido ainda entra no catálogo (vira oportunidade)
	data := model.RawTable{
		{"Consultor", "Cliente", "", "", "", "", "", "", "P1", "P2"},
		{"Ana", "Loja1", "", "", "", "", "", "", "1", ""},
	}
	snap, err := Ingest(data, "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := snap.Catalog["P2"]; !ok {
		t.Fatalf("P2 deveria estar no catálogo: %v", snap.Catalog)
	}
	res := Resolve(snap, "Ana", RoutePlaceholder, "Loja1")
	if !reflect.DeepEqual(res.Missing, []string{"P2"}) {
		t.Fatalf("missing = %v, want [P2]", res.Missing)
	}
}
