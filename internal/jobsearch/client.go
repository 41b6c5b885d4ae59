package jobsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/telemetry"
)

const (
	defaultPageSize    = 1000
	defaultWaitSeconds = 60
	maxErrorBody       = 2048
)

// Run states reported by the Apify API.
const (
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusTimedOut  = "TIMED-OUT"
	StatusAborted   = "ABORTED"
)

// Client runs the LinkedIn scraping actor on Apify and reads its dataset.
type Client struct {
	baseURL    string
	httpClient *http.Client
	defaults   Query
	pageSize   int
	waitSecs   int

	token   func() (string, error)
	actorID func() string
}

// Options configures a Client. Zero values take the package defaults.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Location   string
	Rows       int
}

// NewClient constructs a Client. It never fails: the API token is read on each Search.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = config.DefaultApifyBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		// No client timeout: each call is bounded by the caller's context and the
		// server-side waitForFinish window.
		httpClient = &http.Client{}
	}
	defaults := Query{Location: opts.Location, Rows: opts.Rows}
	if strings.TrimSpace(defaults.Location) == "" {
		defaults.Location = config.DefaultJobSearchLocation
	}
	if defaults.Rows <= 0 {
		defaults.Rows = config.DefaultJobSearchRows
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		defaults:   defaults,
		pageSize:   defaultPageSize,
		waitSecs:   defaultWaitSeconds,
		token:      config.ApifyToken,
		actorID:    config.ApifyActorID,
	}
}

// Defaults returns the location and row count applied to zero-valued queries.
func (c *Client) Defaults() Query {
	return c.defaults
}

// Search starts an actor run for q, waits for it to finish and returns every
// dataset item in service order. An empty dataset yields an empty slice.
func (c *Client) Search(ctx context.Context, q Query) ([]JobRecord, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}
	q = c.withDefaults(q)
	actor := c.actorID()
	started := time.Now()

	jobs, err := c.search(ctx, token, actor, q)
	if err != nil {
		metrics.IncJobSearch(0, true)
		telemetry.Error("jobsearch.failed", map[string]any{
			"actor":       actor,
			"title":       q.Title,
			"location":    q.Location,
			"error":       err,
			"duration_ms": time.Since(started).Milliseconds(),
		})
		return nil, err
	}
	metrics.IncJobSearch(len(jobs), false)
	telemetry.Info("jobsearch.complete", map[string]any{
		"actor":       actor,
		"title":       q.Title,
		"location":    q.Location,
		"rows":        q.Rows,
		"results":     len(jobs),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return jobs, nil
}

func (c *Client) withDefaults(q Query) Query {
	q.Title = strings.TrimSpace(q.Title)
	if strings.TrimSpace(q.Location) == "" {
		q.Location = c.defaults.Location
	}
	if q.Rows <= 0 {
		q.Rows = c.defaults.Rows
	}
	return q
}

func (c *Client) search(ctx context.Context, token, actor string, q Query) ([]JobRecord, error) {
	run, err := c.startRun(ctx, token, actor, q)
	if err != nil {
		return nil, err
	}
	for !run.terminal() {
		if err := ctx.Err(); err != nil {
			return nil, &JobSearchError{Op: "wait run", Err: err}
		}
		run, err = c.getRun(ctx, token, run.ID)
		if err != nil {
			return nil, err
		}
	}
	if run.Status != StatusSucceeded {
		telemetry.Warn("jobsearch.run_not_succeeded", map[string]any{
			"run_id": run.ID,
			"status": run.Status,
		})
	}
	if run.DatasetID == "" {
		return nil, &JobSearchError{Op: "read run", Err: ErrMissingDataset}
	}
	return c.listItems(ctx, token, run.DatasetID)
}

type runInfo struct {
	ID        string
	Status    string
	DatasetID string
}

func (r runInfo) terminal() bool {
	switch r.Status {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusAborted:
		return true
	default:
		return false
	}
}

// parseRun reads run metadata. A body that is not JSON or carries no status
// is rejected so polling cannot spin on a response it will never understand.
func parseRun(body []byte) (runInfo, error) {
	if !gjson.ValidBytes(body) {
		return runInfo{}, fmt.Errorf("%w: body is not JSON", ErrMalformedRun)
	}
	data := gjson.GetBytes(body, "data")
	status := data.Get("status")
	if !status.Exists() || strings.TrimSpace(status.String()) == "" {
		return runInfo{}, fmt.Errorf("%w: missing data.status", ErrMalformedRun)
	}
	datasetID := data.Get("defaultDatasetId").String()
	if datasetID == "" {
		datasetID = data.Get("defaultDatasetID").String()
	}
	return runInfo{
		ID:        data.Get("id").String(),
		Status:    strings.ToUpper(strings.TrimSpace(status.String())),
		DatasetID: datasetID,
	}, nil
}

func (c *Client) startRun(ctx context.Context, token, actor string, q Query) (runInfo, error) {
	payload, err := json.Marshal(newRunInput(q))
	if err != nil {
		return runInfo{}, &JobSearchError{Op: "start run", Err: err}
	}
	// Actor ids of the form "user/name" use "~" in API paths.
	path := "/v2/acts/" + url.PathEscape(strings.ReplaceAll(actor, "/", "~")) + "/runs"
	query := url.Values{"waitForFinish": {strconv.Itoa(c.waitSecs)}}
	body, err := c.do(ctx, "start run", http.MethodPost, path, query, token, payload)
	if err != nil {
		return runInfo{}, err
	}
	run, err := parseRun(body)
	if err != nil {
		return runInfo{}, &JobSearchError{Op: "start run", Err: err}
	}
	if run.ID == "" {
		return runInfo{}, &JobSearchError{Op: "start run", Err: errors.New("response did not include a run id")}
	}
	return run, nil
}

func (c *Client) getRun(ctx context.Context, token, runID string) (runInfo, error) {
	path := "/v2/actor-runs/" + url.PathEscape(runID)
	query := url.Values{"waitForFinish": {strconv.Itoa(c.waitSecs)}}
	body, err := c.do(ctx, "wait run", http.MethodGet, path, query, token, nil)
	if err != nil {
		return runInfo{}, err
	}
	run, err := parseRun(body)
	if err != nil {
		return runInfo{}, &JobSearchError{Op: "wait run", Err: err}
	}
	if run.ID == "" {
		run.ID = runID
	}
	return run, nil
}

func (c *Client) listItems(ctx context.Context, token, datasetID string) ([]JobRecord, error) {
	path := "/v2/datasets/" + url.PathEscape(datasetID) + "/items"
	out := make([]JobRecord, 0)
	for offset := 0; ; {
		query := url.Values{
			"format": {"json"},
			"clean":  {"true"},
			"offset": {strconv.Itoa(offset)},
			"limit":  {strconv.Itoa(c.pageSize)},
		}
		body, err := c.do(ctx, "list items", http.MethodGet, path, query, token, nil)
		if err != nil {
			return nil, err
		}
		var page []JobRecord
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, &JobSearchError{Op: "list items", Err: fmt.Errorf("decode items: %w", err)}
		}
		out = append(out, page...)
		if len(page) < c.pageSize {
			return out, nil
		}
		offset += len(page)
	}
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, token string, payload []byte) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &JobSearchError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &JobSearchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &JobSearchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &JobSearchError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(apiErrorMessage(body))}
	}
	return body, nil
}

// apiErrorMessage extracts error.message from an Apify error body, falling back to the raw text.
func apiErrorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message").String(); msg != "" {
		return msg
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	if text == "" {
		return "empty response body"
	}
	return text
}
