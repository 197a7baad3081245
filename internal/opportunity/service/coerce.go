package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"mixvision-service/internal/opportunity/model"
)

var rxKeepNum = regexp.MustCompile(`[^0-9.\-]`)

// ToNumber converte célula crua em número, aceitando tanto "1.234,56" quanto
// "1,234.56": com os dois separadores presentes, o mais à direita é o decimal
// e o outro é removido; só vírgula vira ponto decimal.
func ToNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	// NBSP/NNBSP aparecem em exportações como separador de milhar
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ' ', ' ', ' ':
			return -1
		}
		return r
	}, s)

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	s = rxKeepNum.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsNonEmptyText: célula com conteúdo textual que NÃO parseia como número.
// No formato wide, um marcador como "SIM" conta como venda mesmo sem
// quantidade numérica.
func IsNonEmptyText(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	_, ok := ToNumber(s)
	return !ok
}

// RoutePlaceholder é a rota sintética para células vazias.
const RoutePlaceholder = "Rota N/D"

func NormalizeRoute(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return RoutePlaceholder
	}
	return s
}

// DetectProfile procura a letra A, depois B, depois C em qualquer posição do
// texto em maiúsculas ("BASICO" classifica como A). A ordem de verificação é
// observável e não deve mudar.
func DetectProfile(raw string) model.Profile {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return model.ProfileUnknown
	}
	switch {
	case strings.Contains(s, "A"):
		return model.ProfileA
	case strings.Contains(s, "B"):
		return model.ProfileB
	case strings.Contains(s, "C"):
		return model.ProfileC
	}
	return model.ProfileUnknown
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeForMatching prepara nomes para comparação frouxa: minúsculas, sem
// acentos, espaços internos colapsados.
func NormalizeForMatching(raw string) string {
	out, _, err := transform.String(stripAccents, raw)
	if err != nil {
		out = raw
	}
	out = strings.ToLower(out)
	return strings.Join(strings.Fields(out), " ")
}

// SyntheticClient gera o nome de cliente para linhas casadas sem célula de
// cliente ("Cliente 12" = linha 12 da planilha, 1-based).
func SyntheticClient(rowIndex int) string {
	return fmt.Sprintf("Cliente %d", rowIndex+1)
}
