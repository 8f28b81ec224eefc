package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

type signInPayload struct {
	Username     string `json:"Username"`
	Userpassword string `json:"Userpassword"`
}

// SignIn usa una envoltura propia, distinta de la uniforme: los campos van
// capitalizados y data anida Status/Mensaje/Token/Usuario.
type signInEnvelope struct {
	StatusCode int    `json:"StatusCode"`
	Success    bool   `json:"Success"`
	Error      bool   `json:"Error"`
	Message    string `json:"Message"`
	Response   struct {
		Data struct {
			Status  bool           `json:"Status"`
			Mensaje string         `json:"Mensaje"`
			Token   string         `json:"Token"`
			Usuario entity.Usuario `json:"Usuario"`
		} `json:"data"`
	} `json:"Response"`
}

// SignIn autentica al usuario y devuelve token y perfil. No requiere sesión
// previa; es la única operación que viaja sin Authorization.
func (c *Client) SignIn(ctx context.Context, usuario, contrasena string) (string, entity.Usuario, error) {
	const fallback = "Error al iniciar sesión"

	payload, err := json.Marshal(signInPayload{Username: usuario, Userpassword: contrasena})
	if err != nil {
		return "", entity.Usuario{}, &Error{Mensaje: fallback, Causa: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/SignIn", bytes.NewReader(payload))
	if err != nil {
		return "", entity.Usuario{}, &Error{Mensaje: fallback, Causa: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", entity.Usuario{}, &Error{Mensaje: fallback, Causa: fmt.Errorf("api: llamada HTTP fallida: %w", err)}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", entity.Usuario{}, &Error{Mensaje: fallback, Causa: fmt.Errorf("api: leer respuesta: %w", err)}
	}

	var env signInEnvelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return "", entity.Usuario{}, &Error{Mensaje: fallback, Causa: fmt.Errorf("api: HTTP %d: deserializar respuesta: %w", resp.StatusCode, err)}
	}

	data := env.Response.Data
	if env.Success && !env.Error && data.Status && data.Token != "" {
		return data.Token, data.Usuario, nil
	}

	msg := env.Message
	if msg == "" {
		msg = data.Mensaje
	}
	if msg == "" {
		msg = "Usuario o contraseña incorrecto"
	}
	return "", entity.Usuario{}, &Error{Mensaje: msg}
}
