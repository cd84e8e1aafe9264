// Package client talks to the pipeline server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/thenoetrevino/funil/internal/models"
)

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 4 << 20

// Mover sends move commands to the Move endpoint
type Mover interface {
	Move(ctx context.Context, cmd models.MoveCommand) (models.MoveResult, error)
}

// BoardFetcher loads the server-authoritative board
type BoardFetcher interface {
	Board(ctx context.Context) (models.BoardSnapshot, error)
}

// CardCreator opens new cards
type CardCreator interface {
	CreateCard(ctx context.Context, req NewCardRequest) (*models.Card, error)
}

// ClientLister searches the client registry
type ClientLister interface {
	ListClients(ctx context.Context, query string) ([]*models.Client, error)
}

// Client is an HTTP client for the pipeline server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time verification of the interfaces Client serves
var (
	_ Mover        = (*Client)(nil)
	_ BoardFetcher = (*Client)(nil)
	_ CardCreator  = (*Client)(nil)
	_ ClientLister = (*Client)(nil)
)

// New creates a client for the server at baseURL.
// A nil httpClient uses a client without a timeout: move requests are
// bounded only by the caller's context.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: httpClient,
	}, nil
}

// Move issues POST /kanban/card/{id}/move. Any non-2xx status, unreadable
// body, non-JSON body, or body without a success field is an error.
func (c *Client) Move(ctx context.Context, cmd models.MoveCommand) (models.MoveResult, error) {
	const op = "move card"
	if err := cmd.Validate(); err != nil {
		return models.MoveResult{}, err
	}

	var result models.MoveResult
	path := "/kanban/card/" + url.PathEscape(cmd.CardID) + "/move"
	if err := c.do(ctx, op, http.MethodPost, path, cmd, &result); err != nil {
		return models.MoveResult{}, err
	}
	if result.Success == nil {
		return models.MoveResult{}, &RequestError{Code: ErrDecode, Op: op, Err: ErrMissingSuccess}
	}
	return result, nil
}

// Board issues GET /kanban/board
func (c *Client) Board(ctx context.Context) (models.BoardSnapshot, error) {
	var snap models.BoardSnapshot
	if err := c.do(ctx, "load board", http.MethodGet, "/kanban/board", nil, &snap); err != nil {
		return models.BoardSnapshot{}, err
	}
	return snap, nil
}

// Card issues GET /kanban/card/{id}
func (c *Client) Card(ctx context.Context, id string) (*models.Card, error) {
	if id == "" {
		return nil, models.ErrEmptyCardID
	}
	var card models.Card
	if err := c.do(ctx, "load card", http.MethodGet, "/kanban/card/"+url.PathEscape(id), nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// NewCardRequest carries the fields accepted by POST /kanban/card/new
type NewCardRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	ClientID    *int64        `json:"client_id,omitempty"`
	ClientName  string        `json:"client_name,omitempty"`
	AssignedTo  string        `json:"assigned_to,omitempty"`
	Column      models.Column `json:"column,omitempty"`
	Priority    string        `json:"priority,omitempty"`
	Value       float64       `json:"value,omitempty"`
}

// CreateCard issues POST /kanban/card/new
func (c *Client) CreateCard(ctx context.Context, req NewCardRequest) (*models.Card, error) {
	var card models.Card
	if err := c.do(ctx, "create card", http.MethodPost, "/kanban/card/new", req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteCard issues POST /kanban/card/{id}/delete
func (c *Client) DeleteCard(ctx context.Context, id string) error {
	if id == "" {
		return models.ErrEmptyCardID
	}
	var result models.MoveResult
	return c.do(ctx, "delete card", http.MethodPost, "/kanban/card/"+url.PathEscape(id)+"/delete", nil, &result)
}

// Stats issues GET /api/stats
func (c *Client) Stats(ctx context.Context) (models.PipelineStats, error) {
	var stats models.PipelineStats
	if err := c.do(ctx, "load stats", http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return models.PipelineStats{}, err
	}
	return stats, nil
}

// NewClientRequest carries the fields accepted by POST /clients/new
type NewClientRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Document      string `json:"cpf_cnpj,omitempty"`
	Address       string `json:"address,omitempty"`
	InsuranceType string `json:"insurance_type,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// EditClientRequest carries the fields accepted by POST /clients/{id}/edit.
// Nil fields are left unchanged.
type EditClientRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Document      *string `json:"cpf_cnpj,omitempty"`
	Address       *string `json:"address,omitempty"`
	InsuranceType *string `json:"insurance_type,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// ListClients issues GET /clients, filtered by query when it is not empty
func (c *Client) ListClients(ctx context.Context, query string) ([]*models.Client, error) {
	path := "/clients"
	if query != "" {
		path += "?" + url.Values{"q": {query}}.Encode()
	}
	var list []*models.Client
	if err := c.do(ctx, "list clients", http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetClient issues GET /clients/{id}
func (c *Client) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, "load client", http.MethodGet, clientPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateClient issues POST /clients/new
func (c *Client) CreateClient(ctx context.Context, req NewClientRequest) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, "create client", http.MethodPost, "/clients/new", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditClient issues POST /clients/{id}/edit
func (c *Client) EditClient(ctx context.Context, id int64, req EditClientRequest) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, "edit client", http.MethodPost, clientPath(id, "/edit"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteClient issues POST /clients/{id}/delete
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	var result models.MoveResult
	return c.do(ctx, "delete client", http.MethodPost, clientPath(id, "/delete"), nil, &result)
}

func clientPath(id int64, suffix string) string {
	return "/clients/" + strconv.FormatInt(id, 10) + suffix
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Code: ErrTransport, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &RequestError{Code: ErrTransport, Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code, message := serverError(data)
		return &RequestError{
			Code:       ErrStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			ServerCode: code,
			Message:    message,
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Code: ErrDecode, Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// serverError extracts the code and message of an error envelope, if present
func serverError(data []byte) (code, message string) {
	var envelope struct {
		Message string `json:"message"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(data, &envelope) != nil {
		return "", ""
	}
	if envelope.Error != nil {
		code = envelope.Error.Code
		message = envelope.Error.Message
	}
	if envelope.Message != "" {
		message = envelope.Message
	}
	return code, message
}
