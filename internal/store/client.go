// Package store synchronizes canonical case records with the downstream case
// store over HTTP and exposes the offender probation-status lookup. All
// outbound calls are bounded by the shared client timeout; transient failures
// are retried under the configured policy, terminal rejections are not.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"caseflow/internal/cases/models"
	"caseflow/internal/events"
	pkgerrors "caseflow/pkg/errors"
)

// TokenSource supplies a bearer token for outbound calls. Nil means
// unauthenticated requests.
type TokenSource interface {
	Token() (string, error)
}

// Client talks to the case store.
type Client struct {
	http    *http.Client
	baseURL string
	retry   RetryPolicy
	sink    events.Sink
	tokens  TokenSource
	logger  *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a case-store client. The sink receives the terminal outcome of
// every persistence operation; it must not be nil.
func New(baseURL string, sink events.Sink, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("case store base URL is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("event sink is required")
	}
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		retry:   DefaultRetryPolicy(),
		sink:    sink,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetCase fetches the stored record for a (court, case number) pair. Absence
// is a normal outcome and returns (nil, nil): the case is new.
func (c *Client) GetCase(ctx context.Context, courtCode, caseNo string) (*models.CourtCase, error) {
	url := fmt.Sprintf("%s/court/%s/case/%s", c.baseURL, courtCode, caseNo)

	var out models.CourtCase
	err := c.doJSON(ctx, http.MethodGet, url, nil, &out, "get case")
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// PutCase upserts the record, then posts any attached match group. The match
// group is posted even when the upsert exhausts its retries so match data is
// never silently dropped; in that path a failure event is emitted and the
// upsert error returned.
func (c *Client) PutCase(ctx context.Context, record models.CourtCase) error {
	url := fmt.Sprintf("%s/court/%s/case/%s", c.baseURL, record.CourtCode, record.CaseNo)

	attempts := 1
	err := c.retry.withRetries(ctx, func() error {
		return c.doJSON(ctx, http.MethodPut, url, record, nil, "upsert case")
	}, func(attempt int, err error) {
		attempts = attempt + 1
		c.logger.WarnContext(ctx, "retrying case upsert",
			"court_code", record.CourtCode,
			"case_no", record.CaseNo,
			"attempt", attempt,
			"error", err,
		)
	})

	c.postMatches(ctx, record)

	if err != nil {
		c.emit(ctx, events.Event{
			Type:      events.TypeCaseUpdateFailure,
			CourtCode: record.CourtCode,
			CaseNo:    record.CaseNo,
			Attempts:  attempts,
			Detail:    pkgerrors.CodeOf(err).String(),
		})
		return err
	}

	c.emit(ctx, events.Event{
		Type:      events.TypeCaseUpdated,
		CourtCode: record.CourtCode,
		CaseNo:    record.CaseNo,
		CRN:       record.CRN,
		Attempts:  attempts,
	})
	return nil
}

// postMatches sends the attached match group under the same retry policy.
// A no-op when the record carries none. Failures are reported and logged but
// never alter the upsert outcome already determined.
func (c *Client) postMatches(ctx context.Context, record models.CourtCase) {
	if record.Groups == nil {
		return
	}
	url := fmt.Sprintf("%s/court/%s/case/%s/matches", c.baseURL, record.CourtCode, record.CaseNo)

	err := c.retry.withRetries(ctx, func() error {
		return c.doJSON(ctx, http.MethodPost, url, record.Groups, nil, "post matches")
	}, func(attempt int, err error) {
		c.logger.WarnContext(ctx, "retrying match-group post",
			"court_code", record.CourtCode,
			"case_no", record.CaseNo,
			"attempt", attempt,
			"error", err,
		)
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "match-group post failed",
			"court_code", record.CourtCode,
			"case_no", record.CaseNo,
			"error", err,
		)
		c.emit(ctx, events.Event{
			Type:      events.TypeMatchPostFailure,
			CourtCode: record.CourtCode,
			CaseNo:    record.CaseNo,
			Detail:    pkgerrors.CodeOf(err).String(),
		})
	}
}

// PurgeAbsent tells the store which cases remain listed per hearing date for
// a court; the store deletes everything else it holds for those dates. Dates
// with zero cases are sent with an empty list so their records are cleared.
func (c *Client) PurgeAbsent(ctx context.Context, courtCode string, casesByDate map[time.Time][]string) error {
	url := fmt.Sprintf("%s/court/%s/purge-absent", c.baseURL, courtCode)

	body := make(map[string][]string, len(casesByDate))
	for date, caseNos := range casesByDate {
		if caseNos == nil {
			caseNos = []string{}
		}
		body[date.Format("2006-01-02")] = caseNos
	}

	if err := c.doJSON(ctx, http.MethodPut, url, body, nil, "purge absent"); err != nil {
		c.emit(ctx, events.Event{
			Type:      events.TypePurgeFailure,
			CourtCode: courtCode,
			Detail:    pkgerrors.CodeOf(err).String(),
		})
		return err
	}
	return nil
}

// GetProbationStatus is best-effort: any failure, 404 included, yields an
// empty status rather than an error. Status lookups supplement a match and
// never block it.
func (c *Client) GetProbationStatus(ctx context.Context, crn string) (string, error) {
	url := fmt.Sprintf("%s/offender/%s/probation-status", c.baseURL, crn)

	var out struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &out, "get probation status"); err != nil {
		if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			c.logger.WarnContext(ctx, "probation status lookup failed", "crn", crn, "error", err)
		}
		return "", nil
	}
	return out.Status, nil
}

// doJSON performs one HTTP exchange with optional JSON request and response
// bodies, classifying transport and status failures for the retry layer.
func (c *Client) doJSON(ctx context.Context, method, url string, in, out any, operation string) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, operation+": encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, operation+": build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, operation+": mint service token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err, operation)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode, operation); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, operation+": decode response body")
		}
	}
	return nil
}

func (c *Client) emit(ctx context.Context, event events.Event) {
	if err := c.sink.Emit(ctx, events.Stamp(event)); err != nil {
		c.logger.WarnContext(ctx, "event emission failed", "event_type", event.Type, "error", err)
	}
}
