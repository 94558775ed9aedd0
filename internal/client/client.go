// Package client is a typed client for the EcoStock REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecostock/ecostock-api/internal/domain"
)

// Client calls the EcoStock API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError is an error response from the API. Message is the server's
// user-facing text, ready to show as a notification.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// New constructs a client. A zero timeout keeps the http.Client default.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient constructs a client over a caller-provided http.Client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Login

func (c *Client) Login(ctx context.Context, login, senha string) (*domain.UserDTO, error) {
	var resp domain.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", domain.LoginRequest{Login: login, Senha: senha}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Categorias

func (c *Client) ListCategorias(ctx context.Context) ([]domain.CategoriaResumo, error) {
	var out []domain.CategoriaResumo
	if err := c.do(ctx, http.MethodGet, "/api/categorias", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategoria(ctx context.Context, req domain.CreateCategoriaRequest) (*domain.Categoria, error) {
	var out domain.Categoria
	if err := c.do(ctx, http.MethodPost, "/api/categorias", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategoria(ctx context.Context, id int64, req domain.UpdateCategoriaRequest) (*domain.Categoria, error) {
	var out domain.Categoria
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/categorias/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategoria(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/categorias/%d", id), nil, nil)
}

// Empresas

func (c *Client) ListEmpresas(ctx context.Context) ([]domain.Empresa, error) {
	var out []domain.Empresa
	if err := c.do(ctx, http.MethodGet, "/api/empresas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEmpresa(ctx context.Context, id int64) (*domain.Empresa, error) {
	var out domain.Empresa
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/empresas/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEmpresa(ctx context.Context, req domain.CreateEmpresaRequest) (*domain.Empresa, error) {
	var out domain.Empresa
	if err := c.do(ctx, http.MethodPost, "/api/empresas", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmpresa(ctx context.Context, id int64, req domain.UpdateEmpresaRequest) (*domain.Empresa, error) {
	var out domain.Empresa
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/empresas/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Trocas

func (c *Client) ListTrocas(ctx context.Context) ([]domain.Troca, error) {
	var out []domain.Troca
	if err := c.do(ctx, http.MethodGet, "/api/trocas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTroca(ctx context.Context, id int64) (*domain.Troca, error) {
	var out domain.Troca
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/trocas/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTroca(ctx context.Context, req domain.CreateTrocaRequest) (*domain.Troca, error) {
	var out domain.Troca
	if err := c.do(ctx, http.MethodPost, "/api/trocas", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTrocaStatus(ctx context.Context, id int64, status string) (*domain.Troca, error) {
	var out domain.Troca
	req := domain.UpdateTrocaStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/trocas/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTroca(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/trocas/%d", id), nil, nil)
}

// Comunicacoes

func (c *Client) ListComunicacoes(ctx context.Context) ([]domain.ComunicacaoDetalheDTO, error) {
	var out []domain.ComunicacaoDetalheDTO
	if err := c.do(ctx, http.MethodGet, "/api/comunicacoes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetComunicacao(ctx context.Context, id int64) (*domain.ComunicacaoDetalheDTO, error) {
	var out domain.ComunicacaoDetalheDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/comunicacoes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateComunicacao(ctx context.Context, req domain.CreateComunicacaoRequest) (*domain.ComunicacaoDTO, error) {
	var out domain.ComunicacaoDTO
	if err := c.do(ctx, http.MethodPost, "/api/comunicacoes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp domain.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg, Fields: errResp.Fields}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
