package fileio

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"time"
)

const fetchTimeout = 60 * time.Second

// FetchRows baixa uma planilha de um link compartilhado e decodifica pelo
// nome do arquivo (Content-Disposition quando presente, senão o path da URL).
func FetchRows(ctx context.Context, rawURL string, maxBytes int64) ([][]string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, "", fmt.Errorf("url inválida: %s", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download falhou: status %d", resp.StatusCode)
	}

	filename := path.Base(u.Path)
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if fn := params["filename"]; fn != "" {
				filename = fn
			}
		}
	}

	body := io.Reader(resp.Body)
	if maxBytes > 0 {
		body = io.LimitReader(resp.Body, maxBytes)
	}
	rows, err := ReadRows(body, filename)
	if err != nil {
		return nil, "", err
	}
	return rows, filename, nil
}
