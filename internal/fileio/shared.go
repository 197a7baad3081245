package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadRows escolhe o parser pela extensão e devolve a planilha como linhas
// posicionais de células cruas. Nenhuma interpretação de cabeçalho acontece
// aqui: detecção de layout é papel do core.
func ReadRows(r io.Reader, filename string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("formato não suportado: %s", filename)
	}
}
