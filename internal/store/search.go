package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"caseflow/internal/match"
	pkgerrors "caseflow/pkg/errors"
)

// SearchClient calls the external offender-records search service.
type SearchClient struct {
	http    *http.Client
	baseURL string
	tokens  TokenSource
	logger  *slog.Logger
}

// SearchOption configures the SearchClient.
type SearchOption func(*SearchClient)

func WithSearchTokenSource(ts TokenSource) SearchOption {
	return func(c *SearchClient) { c.tokens = ts }
}

func WithSearchHTTPClient(h *http.Client) SearchOption {
	return func(c *SearchClient) { c.http = h }
}

func WithSearchLogger(logger *slog.Logger) SearchOption {
	return func(c *SearchClient) { c.logger = logger }
}

func NewSearch(baseURL string, opts ...SearchOption) (*SearchClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("search base URL is required")
	}
	c := &SearchClient{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search submits the normalized name and date of birth and returns the raw
// search response. Search is a single shot; the synchronization retry policy
// does not apply here because a failed search already has a defined fallback.
func (c *SearchClient) Search(ctx context.Context, name match.Name, dateOfBirth time.Time) (match.SearchResponse, error) {
	request := match.SearchRequest{
		FirstName: name.Forename,
		Surname:   name.Surname,
	}
	if !dateOfBirth.IsZero() {
		request.DateOfBirth = dateOfBirth.Format("2006-01-02")
	}

	encoded, err := json.Marshal(request)
	if err != nil {
		return match.SearchResponse{}, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "search: encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(encoded))
	if err != nil {
		return match.SearchResponse{}, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "search: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return match.SearchResponse{}, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "search: mint service token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return match.SearchResponse{}, classifyTransport(err, "search")
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode, "search"); err != nil {
		return match.SearchResponse{}, err
	}

	var out match.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return match.SearchResponse{}, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "search: decode response")
	}
	return out, nil
}
