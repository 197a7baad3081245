package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCSV lê CSV detectando a codificação e convertendo para UTF-8.
// Exportações pt-BR costumam vir em Windows-1252/ISO-8859-1.
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader = br
	switch cs {
	case "windows-1252", "cp1252":
		dec = transform.NewReader(br, charmap.Windows1252.NewDecoder())
	case "iso-8859-1", "latin1":
		dec = transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
	default:
		// assume UTF-8
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	sep := detectSeparator(peek)
	cr.Comma = sep

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// detectSeparator: exportações brasileiras usam ';' com frequência.
func detectSeparator(peek []byte) rune {
	semis, commas := 0, 0
	for _, b := range peek {
		switch b {
		case ';':
			semis++
		case ',':
			commas++
		case '\n':
			if semis > commas {
				return ';'
			}
			return ','
		}
	}
	if semis > commas {
		return ';'
	}
	return ','
}
