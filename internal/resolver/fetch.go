package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 16 << 20

type fetcher struct {
	client    *http.Client
	userAgent string
}

type response struct {
	body     []byte
	header   http.Header
	finalURL string
}

// get fetches url and returns the body. Non-2xx statuses are errors.
func (f *fetcher) get(ctx context.Context, url string, headers map[string]string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	output.Debug("fetching", "url", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}
	return &response{body: body, header: resp.Header, finalURL: resp.Request.URL.String()}, nil
}

// getJSON fetches url and decodes the JSON body into v.
func (f *fetcher) getJSON(ctx context.Context, url string, headers map[string]string, v any) (http.Header, error) {
	hdrs := map[string]string{"Accept": "application/json"}
	for k, val := range headers {
		hdrs[k] = val
	}
	resp, err := f.get(ctx, url, hdrs)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.body, v); err != nil {
		return resp.header, fmt.Errorf("decoding response: %w", err)
	}
	return resp.header, nil
}

type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return "HTTP " + e.status
}
