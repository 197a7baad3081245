package service

import (
	"fmt"
	"regexp"
	"strings"

	"mixvision-service/internal/opportunity/model"
)

// Quantas linhas do topo são varridas à procura do cabeçalho.
const headerScanDepth = 50

// Colunas de produto nunca começam antes deste índice no formato wide
// (as primeiras colunas são sempre informativas nas planilhas conhecidas).
const wideMinProductCol = 8

// Palavras-chave usadas só para pontuar candidatas a linha de cabeçalho.
var headerKeywords = []string{
	"consultor", "vendedor", "representante", "cliente", "produto", "rota", "name",
}

// fieldPattern casa um rótulo de coluna. Rótulos e literais são comparados já
// normalizados (minúsculas, sem acento), então "código" e "codigo" coincidem.
// No segundo passe o literal casa com fronteira de palavra — "Produto" acha a
// coluna, "ProdutoX" não vira coluna de produto (é cabeçalho de produto no
// formato wide). Literais prefix casam o começo do token (descri* cobre
// descrição/descritivo).
type fieldPattern struct {
	lit string
	re  *regexp.Regexp
}

func word(lit string) fieldPattern {
	q := regexp.QuoteMeta(lit)
	pat := q
	if isWordChar(lit[0]) {
		pat = `\b` + pat
	}
	if isWordChar(lit[len(lit)-1]) {
		pat += `\b`
	}
	return fieldPattern{lit: lit, re: regexp.MustCompile(pat)}
}

func prefix(lit string) fieldPattern {
	return fieldPattern{lit: lit, re: regexp.MustCompile(`\b` + regexp.QuoteMeta(lit))}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

var (
	consultantPatterns = []fieldPattern{
		word("consultor"), word("consultor(a)"), word("vendedor"),
		word("representante"), word("rep."), word("consultora"),
		word("vdr"), word("vnd"), word("rc"),
	}
	clientPatterns = []fieldPattern{
		word("name"), word("nome"), word("cliente"), word("pdv"),
		word("ponto de venda"), word("fantasia"), word("loja"),
		word("filial"), word("estabelecimento"),
	}
	productPatterns = []fieldPattern{
		word("produto"), word("item"), prefix("descri"), word("sku"), word("codigo"),
	}
	routePatterns = []fieldPattern{
		word("rota"), word("roteiro"), word("zona"), word("regiao"),
	}
	profilePatterns = []fieldPattern{
		word("perfil"), word("categoria"), word("tipo"), word("segmento"), prefix("class"),
	}
)

// Cabeçalhos que não viram coluna de produto no formato wide.
var wideIgnoredHeaders = map[string]struct{}{
	"perfil": {}, "tipo": {}, "categoria": {}, "segmento": {},
}

// LocateHeader varre as primeiras linhas, pontua cada uma contra o dicionário
// de palavras-chave e escolhe a de maior pontuação (empate fica com a
// primeira). Pontuação <= 0 cai para a linha 0 com aviso de fallback.
func LocateHeader(data model.RawTable) (model.ColumnMap, bool) {
	maxScan := headerScanDepth
	if len(data) < maxScan {
		maxScan = len(data)
	}

	bestRow, bestScore := 0, -1
	for r := 0; r < maxScan; r++ {
		score := 0
		for _, cell := range data[r] {
			low := strings.ToLower(cell)
			for _, kw := range headerKeywords {
				if strings.Contains(low, kw) {
					score++
					break
				}
			}
		}
		if score > bestScore {
			bestScore, bestRow = score, r
		}
	}

	fallback := bestScore <= 0
	if fallback {
		bestRow = 0
	}

	var headers []string
	if bestRow < len(data) {
		headers = data[bestRow]
	}
	normHeaders := make([]string, len(headers))
	for i, h := range headers {
		normHeaders[i] = NormalizeForMatching(h)
	}

	return model.ColumnMap{
		Consultant:     findColumn(normHeaders, consultantPatterns),
		Client:         findColumn(normHeaders, clientPatterns),
		Product:        findColumn(normHeaders, productPatterns),
		Route:          findColumn(normHeaders, routePatterns),
		Profile:        findColumn(normHeaders, profilePatterns),
		HeaderRowIndex: bestRow,
	}, fallback
}

// findColumn procura em dois passes: igualdade exata primeiro (prefere a
// coluna chamada literalmente "consultor" a uma que só contenha a palavra),
// depois ocorrência dentro do rótulo. A primeira coluna que casa vence.
func findColumn(headers []string, pats []fieldPattern) int {
	for i, h := range headers {
		for _, p := range pats {
			if h == p.lit {
				return i
			}
		}
	}
	for i, h := range headers {
		if h == "" {
			continue
		}
		for _, p := range pats {
			if p.re.MatchString(h) {
				return i
			}
		}
	}
	return model.ColNotFound
}

// DetectShape decide wide vs. long: sem coluna de produto a tabela é wide e
// toda coluna a partir de max(8, última coluna informativa + 1) vira produto,
// nomeada pelo cabeçalho (ou "Col{n}" se vazio). Cabeçalhos da lista de
// ignorados (perfil/tipo/categoria/segmento) não viram produto.
func DetectShape(headers []string, cm model.ColumnMap) model.TableShape {
	if cm.Product != model.ColNotFound {
		return model.TableShape{Kind: model.ShapeLong, ProductIndex: cm.Product}
	}

	maxInfo := -1
	for _, idx := range []int{cm.Consultant, cm.Route, cm.Client, cm.Profile} {
		if idx != model.ColNotFound && idx > maxInfo {
			maxInfo = idx
		}
	}
	start := wideMinProductCol
	if maxInfo+1 > start {
		start = maxInfo + 1
	}

	var cols []model.ProductColumn
	for c := start; c < len(headers); c++ {
		name := strings.TrimSpace(headers[c])
		if name == "" {
			name = fmt.Sprintf("Col%d", c)
		}
		if _, skip := wideIgnoredHeaders[NormalizeForMatching(name)]; skip {
			continue
		}
		cols = append(cols, model.ProductColumn{Index: c, Name: name})
	}
	return model.TableShape{Kind: model.ShapeWide, ProductColumns: cols}
}
