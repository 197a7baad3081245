// Leitor de tabelas remotas paginadas (API REST estilo row-store): busca
// páginas de até 1000 linhas até receber uma página curta.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// PageSize é o teto de linhas por busca imposto pelo backend remoto.
	PageSize = 1000

	requestTimeout = 30 * time.Second
	maxPages       = 1000 // trava de segurança contra APIs que nunca encurtam
)

type Client struct {
	base   string
	client *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base:   baseURL,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// página no formato do backend: {"rows": [[...], ...]}
type page struct {
	Rows [][]json.RawMessage `json:"rows"`
}

// ScanTable materializa a tabela inteira antes de devolver: o core não
// processa resultados parciais.
func (c *Client) ScanTable(ctx context.Context, table string) ([][]string, error) {
	var all [][]string
	for pageNum := 0; pageNum < maxPages; pageNum++ {
		rows, err := c.fetchPage(ctx, table, pageNum*PageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(rows) < PageSize {
			break
		}
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, table string, offset int) ([][]string, error) {
	q := url.Values{}
	q.Set("table", table)
	q.Set("limit", strconv.Itoa(PageSize))
	q.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tabela remota: status %d", resp.StatusCode)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}

	rows := make([][]string, len(p.Rows))
	for i, raw := range p.Rows {
		cells := make([]string, len(raw))
		for j, cell := range raw {
			cells[j] = decodeCell(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

// decodeCell aceita string, número, bool ou null na célula JSON.
func decodeCell(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}
