// Package api implementa el gateway HTTP hacia el backend de administración.
// Todas las operaciones usan la envoltura uniforme del contrato:
//
//	{ StatusCode, success, message, response: { data } }
//
// El cliente no guarda estado de negocio: recibe el token de sesión por
// inyección (TokenSource) y convierte toda falla — de red, HTTP o lógica del
// backend (success:false) — en un *Error con mensaje en español listo para
// mostrarse junto al control que disparó la operación.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-admin/internal/domain"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

// TokenSource entrega el token de sesión vigente. Una cadena vacía significa
// petición sin Authorization (ej. SignIn).
type TokenSource interface {
	Token() string
}

// SinSesion es un TokenSource que nunca aporta token.
type SinSesion struct{}

// Token implementa TokenSource.
func (SinSesion) Token() string { return "" }

// Error es la falla de una operación del gateway. Mensaje es apto para el
// usuario final; Causa conserva el error técnico subyacente (puede ser nil
// cuando el backend respondió success:false con su propio mensaje).
type Error struct {
	Mensaje string
	Causa   error
}

// Error implementa error.
func (e *Error) Error() string { return e.Mensaje }

// Unwrap expone la causa para errors.Is/As.
func (e *Error) Unwrap() error { return e.Causa }

// Client es el gateway HTTP del backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logger.Logger
}

// New construye el cliente. baseURL sin slash final; timeout aplica por
// petición además del context que reciba cada operación.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger) *Client {
	if tokens == nil {
		tokens = SinSesion{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// envelope es la envoltura uniforme de respuesta del backend.
type envelope struct {
	StatusCode int    `json:"StatusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Response   *struct {
		Data json.RawMessage `json:"data"`
	} `json:"response"`
}

// post ejecuta POST path con body JSON y decodifica response.data en out.
// fallback es el mensaje al usuario si la operación falla sin mensaje propio.
func (c *Client) post(ctx context.Context, path, fallback string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Mensaje: fallback, Causa: fmt.Errorf("api: serializar request: %w", err)}
	}
	return c.do(ctx, http.MethodPost, path, fallback, bytes.NewReader(payload), out)
}

// get ejecuta GET path?query y decodifica response.data en out.
func (c *Client) get(ctx context.Context, path, fallback string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, fallback, nil, out)
}

func (c *Client) do(ctx context.Context, method, path, fallback string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Mensaje: fallback, Causa: fmt.Errorf("api: crear request: %w", err)}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("api: timeout o cancelación: %w", ctx.Err())
		} else {
			err = fmt.Errorf("api: llamada HTTP fallida: %w", err)
		}
		c.log.Warn().Str("path", path).Str("request_id", reqID).Err(err).Msg("fallo de red")
		return &Error{Mensaje: fallback, Causa: err}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return &Error{Mensaje: fallback, Causa: fmt.Errorf("api: leer respuesta: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &Error{Mensaje: domain.ErrSesionExpirada.Error(), Causa: domain.ErrNoAutorizado}
	}

	var env envelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return &Error{Mensaje: fallback, Causa: fmt.Errorf("api: HTTP %d: %w", resp.StatusCode, domain.ErrRespuestaInvalida)}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fallback
		}
		c.log.Debug().Str("path", path).Str("request_id", reqID).Str("message", env.Message).Msg("backend rechazó la operación")
		return &Error{Mensaje: msg}
	}
	if out == nil {
		return nil
	}
	if env.Response == nil || len(env.Response.Data) == 0 || string(env.Response.Data) == "null" {
		return &Error{Mensaje: fallback, Causa: domain.ErrRespuestaInvalida}
	}
	if err := json.Unmarshal(env.Response.Data, out); err != nil {
		return &Error{Mensaje: fallback, Causa: fmt.Errorf("api: deserializar data: %w", err)}
	}
	return nil
}
