package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/KaramelBytes/pipeview/internal/parser"
)

// FetchError reports a source that could not be read.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch reads source once and parses it. source is either a local path or an
// http(s) URL; any non-2xx response is an error. A .xlsx source is read as a
// workbook, everything else as delimited text.
func Fetch(ctx context.Context, client *http.Client, source, charset string) ([]lead.Record, error) {
	var data []byte
	if IsRemote(source) {
		b, err := fetchHTTP(ctx, client, source)
		if err != nil {
			return nil, err
		}
		data = b
	} else {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, &FetchError{Source: source, Err: err}
		}
		data = b
	}
	rows, err := parser.ParseBytes(source, data, charset)
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	return rows, nil
}

func fetchHTTP(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Source: url, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &FetchError{Source: url, StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return b, nil
}
