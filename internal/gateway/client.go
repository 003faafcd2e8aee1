// Package gateway is the client side of the persistence REST API.
package gateway

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
	"sync"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/workspace"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
)

const defaultTimeout = 30 * time.Second

// Client talks to the document API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithToken sets the bearer token sent on authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ workspace.Saver = (*Client)(nil)

// Token is the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// envelope mirrors dto.Response with the payload left undecoded.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Count      *int            `json:"count"`
	Pagination *dto.Pagination `json:"pagination"`
}

// do sends body as JSON and decodes the envelope. Non-2xx replies become
// apperrors carrying the server message.
func (c *Client) do(ctx context.Context, method, route string, body any, headers map[string]string) (*envelope, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, apperrors.NewAppError(http.StatusGatewayTimeout, "Server unreachable", errors.Join(apperrors.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, resp.StatusCode, statusError(resp.StatusCode, "")
		}
		return nil, resp.StatusCode, fmt.Errorf("status code %d: invalid response: %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return nil, resp.StatusCode, statusError(resp.StatusCode, env.Message)
	}
	return &env, resp.StatusCode, nil
}

// statusError maps an HTTP status to the matching apperrors sentinel.
func statusError(code int, message string) error {
	if message == "" {
		message = http.StatusText(code)
	}
	var sentinel error
	switch {
	case code == http.StatusBadRequest:
		sentinel = apperrors.ErrValidation
		if strings.Contains(strings.ToLower(message), "already exists") {
			sentinel = apperrors.ErrDuplicate
		}
	case code == http.StatusUnauthorized:
		sentinel = apperrors.ErrUnauthorized
	case code == http.StatusForbidden:
		sentinel = apperrors.ErrForbidden
	case code == http.StatusNotFound:
		sentinel = apperrors.ErrNotFound
	case code == http.StatusConflict:
		sentinel = apperrors.ErrConflict
	case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		sentinel = apperrors.ErrUnavailable
	}
	return apperrors.NewAppError(code, message, sentinel)
}

func decodeData(env *envelope, v any) error {
	if len(env.Data) == 0 {
		return errors.New("response carried no data")
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// toDomain restores a wire document, including the fields the server assigns.
func toDomain(d dto.Document) domain.Document {
	doc := d.ToDomain()
	doc.CreatedBy = d.CreatedBy
	if d.CreatedAt != nil {
		doc.CreatedAt = *d.CreatedAt
	}
	if d.UpdatedAt != nil {
		doc.LastUpdatedAt = *d.UpdatedAt
	}
	return doc
}

func (c *Client) document(ctx context.Context, method, route string, body any, headers map[string]string) (domain.Document, int, error) {
	env, code, err := c.do(ctx, method, route, body, headers)
	if err != nil {
		return domain.Document{}, code, err
	}
	var d dto.Document
	if err := decodeData(env, &d); err != nil {
		return domain.Document{}, code, err
	}
	return toDomain(d), code, nil
}

func (c *Client) auth(ctx context.Context, route string, body any) (*dto.AuthResponse, error) {
	env, _, err := c.do(ctx, http.MethodPost, route, body, nil)
	if err != nil {
		return nil, err
	}
	var out dto.AuthResponse
	if err := decodeData(env, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	return c.auth(ctx, "/users/register", req)
}

// Login authenticates and keeps the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	return c.auth(ctx, "/users/login", dto.LoginRequest{Email: email, Password: password})
}

// Me fetches the signed in user.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	env, _, err := c.do(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var out dto.UserResponse
	if err := decodeData(env, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDocument persists doc. A non-empty idempotencyKey makes retries
// return the original document instead of creating another.
func (c *Client) CreateDocument(ctx context.Context, doc domain.Document, idempotencyKey string) (domain.Document, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	saved, _, err := c.document(ctx, http.MethodPost, "/invoices", dto.FromDomain(doc), headers)
	return saved, err
}

// GetDocument fetches one of the caller's documents.
func (c *Client) GetDocument(ctx context.Context, id string) (domain.Document, error) {
	doc, _, err := c.document(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, nil)
	return doc, err
}

// UpdateDocument replaces the content of doc on the server.
func (c *Client) UpdateDocument(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if doc.DocumentID == "" {
		return domain.Document{}, apperrors.NewBadRequestError("Document has no id")
	}
	saved, _, err := c.document(ctx, http.MethodPut, "/invoices/"+url.PathEscape(doc.DocumentID), dto.FromDomain(doc), nil)
	return saved, err
}

// UpdateStatus moves a document along its lifecycle.
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus) (domain.Document, error) {
	doc, _, err := c.document(ctx, http.MethodPatch, "/invoices/"+url.PathEscape(id)+"/status", dto.UpdateStatusRequest{Status: string(status)}, nil)
	return doc, err
}

// ConvertDocument creates an invoice from a stored quotation.
func (c *Client) ConvertDocument(ctx context.Context, id string) (domain.Document, error) {
	doc, _, err := c.document(ctx, http.MethodPost, "/invoices/"+url.PathEscape(id)+"/convert", nil, nil)
	return doc, err
}

// DeleteDocument removes one of the caller's documents.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, "/invoices/"+url.PathEscape(id), nil, nil)
	return err
}

// ListOptions filter and page ListDocuments. Zero values use server defaults.
type ListOptions struct {
	Kind   domain.DocumentKind
	Status domain.DocumentStatus
	Page   int
	Limit  int
	SortBy string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Kind != "" {
		v.Set("kind", string(o.Kind))
	}
	if o.Status != "" {
		v.Set("status", string(o.Status))
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.SortBy != "" {
		v.Set("sortBy", o.SortBy)
	}
	return v
}

// ListDocuments returns one page of the caller's documents.
func (c *Client) ListDocuments(ctx context.Context, opts ListOptions) ([]domain.Document, *dto.Pagination, error) {
	route := "/invoices"
	if q := opts.values().Encode(); q != "" {
		route += "?" + q
	}
	env, _, err := c.do(ctx, http.MethodGet, route, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	docs, err := decodeDocuments(env)
	if err != nil {
		return nil, nil, err
	}
	return docs, env.Pagination, nil
}

// Search matches query against number, client and project names.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Document, error) {
	env, _, err := c.do(ctx, http.MethodGet, "/invoices/search/"+url.PathEscape(query), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeDocuments(env)
}

// Stats summarizes the caller's documents by status.
func (c *Client) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	env, _, err := c.do(ctx, http.MethodGet, "/invoices/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	var out dto.StatsResponse
	if err := decodeData(env, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPublic fetches any document by id without authentication.
func (c *Client) GetPublic(ctx context.Context, id string) (domain.Document, error) {
	doc, _, err := c.document(ctx, http.MethodGet, "/invoices/public/"+url.PathEscape(id), nil, nil)
	return doc, err
}

func decodeDocuments(env *envelope) ([]domain.Document, error) {
	var wire []dto.Document
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &wire); err != nil {
			return nil, fmt.Errorf("failed to decode documents: %w", err)
		}
	}
	docs := make([]domain.Document, len(wire))
	for i := range wire {
		docs[i] = toDomain(wire[i])
	}
	return docs, nil
}
