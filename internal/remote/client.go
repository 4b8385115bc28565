// Package remote talks to the task collection endpoint over HTTP.
//
// Every call issues exactly one request and never retries. A 404 on List
// means no backend exists at the endpoint (ErrBackendAbsent), as does a 2xx
// List whose body is not a task list (ErrNotAPI); a request that gets no
// response at all is ErrUnreachable; any other non-2xx status is a
// *RequestFailedError. A cancelled context is returned as-is.
package remote

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

	"github.com/baiirun/launchboard/internal/model"
)

// DefaultCollection is the collection path relative to the base URL.
const DefaultCollection = "tables/tasks"

var (
	// ErrBackendAbsent is returned when listing the collection yields 404.
	ErrBackendAbsent = errors.New("remote backend absent")
	// ErrUnreachable is returned when a request gets no response.
	ErrUnreachable = errors.New("remote backend unreachable")
	// ErrNotAPI is returned when the endpoint answers List with something
	// other than a JSON task list, such as a static HTML page.
	ErrNotAPI = errors.New("remote endpoint is not a task API")
)

// RequestFailedError is a non-2xx response other than a 404 on List.
type RequestFailedError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *RequestFailedError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.Status, body)
}

// ListResult is the list envelope. Total is the size of the whole
// collection regardless of the limit.
type ListResult struct {
	Data  []model.Task `json:"data"`
	Total int          `json:"total"`
}

// Client is an HTTP client for one task collection.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client for {baseURL}/{collection}. A zero timeout
// leaves the transport default in place.
func NewClient(baseURL, collection string, timeout time.Duration) *Client {
	if collection == "" {
		collection = DefaultCollection
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/" + strings.Trim(collection, "/")
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the collection URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// List fetches up to limit tasks.
func (c *Client) List(ctx context.Context, limit int) (*ListResult, error) {
	status, body, err := c.do(ctx, http.MethodGet, c.listURL(limit), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrBackendAbsent
	}
	if !isSuccess(status) {
		return nil, &RequestFailedError{Method: http.MethodGet, URL: c.listURL(limit), Status: status, Body: string(body)}
	}

	var result ListResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode task list: %v", ErrNotAPI, err)
	}
	if result.Data == nil {
		result.Data = []model.Task{}
	}
	return &result, nil
}

// Create posts a new task; the backend assigns its id.
func (c *Client) Create(ctx context.Context, task model.Task) (*model.Task, error) {
	task.ID = ""
	return c.send(ctx, http.MethodPost, c.endpoint, task)
}

// Replace overwrites the task with the given id.
func (c *Client) Replace(ctx context.Context, id string, task model.Task) (*model.Task, error) {
	task.ID = id
	return c.send(ctx, http.MethodPut, c.itemURL(id), task)
}

// Patch updates only the fields set in patch.
func (c *Client) Patch(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	return c.send(ctx, http.MethodPatch, c.itemURL(id), patch)
}

// Delete removes the task with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	target := c.itemURL(id)
	status, body, err := c.do(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return &RequestFailedError{Method: http.MethodDelete, URL: target, Status: status, Body: string(body)}
	}
	return nil
}

// ProbeResult describes a single diagnostic request.
type ProbeResult struct {
	Request string
	Status  int
	Body    string
	Elapsed time.Duration
}

// OK reports whether the probe got a 2xx response.
func (p *ProbeResult) OK() bool {
	return isSuccess(p.Status)
}

// Probe lists a single task and reports what came back, whatever the status.
func (c *Client) Probe(ctx context.Context) (*ProbeResult, error) {
	target := c.listURL(1)
	start := time.Now()
	status, body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	return &ProbeResult{
		Request: fmt.Sprintf("GET %s -> %d", target, status),
		Status:  status,
		Body:    string(body),
		Elapsed: time.Since(start),
	}, nil
}

func (c *Client) send(ctx context.Context, method, target string, payload any) (*model.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	status, body, err := c.do(ctx, method, target, data)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, &RequestFailedError{Method: method, URL: target, Status: status, Body: string(body)}
	}

	var task model.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return &task, nil
}

// do performs the request and reads the whole body. Only transport
// failures produce an error; HTTP statuses are left to the caller.
func (c *Client) do(ctx context.Context, method, target string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, fmt.Errorf("%s %s: %w", method, target, ctxErr)
		}
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, fmt.Errorf("reading response: %w", ctxErr)
		}
		return 0, nil, fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) listURL(limit int) string {
	if limit <= 0 {
		return c.endpoint
	}
	return c.endpoint + "?limit=" + strconv.Itoa(limit)
}

func (c *Client) itemURL(id string) string {
	return c.endpoint + "/" + url.PathEscape(id)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
