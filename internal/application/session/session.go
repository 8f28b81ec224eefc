// Package session maneja la sesión del usuario como un objeto explícito que se
// inyecta al gateway, en lugar de un token leído de almacenamiento global. La
// caché es un archivo JSON con permisos 0600.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/pkg/jwt"
)

type cacheData struct {
	Token   string          `json:"token"`
	Usuario *entity.Usuario `json:"usuario,omitempty"`
}

// Session es la sesión vigente: token + perfil de usuario.
type Session struct {
	mu      sync.RWMutex
	ruta    string
	token   string
	usuario *entity.Usuario
}

// Abrir construye la sesión leyendo la caché si existe. Un archivo ausente no
// es error: la sesión arranca vacía.
func Abrir(ruta string) (*Session, error) {
	s := &Session{ruta: ruta}
	raw, err := os.ReadFile(ruta)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("session: leer caché: %w", err)
	}
	var data cacheData
	if err := json.Unmarshal(raw, &data); err != nil {
		// Caché corrupta: se ignora y se arranca sin sesión.
		return s, nil
	}
	s.token = data.Token
	s.usuario = data.Usuario
	return s, nil
}

// Guardar fija token y usuario y persiste la caché.
func (s *Session) Guardar(token string, usuario entity.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.usuario = &usuario

	raw, err := json.MarshalIndent(cacheData{Token: token, Usuario: &usuario}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: serializar caché: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.ruta), 0o700); err != nil {
		return fmt.Errorf("session: crear directorio: %w", err)
	}
	if err := os.WriteFile(s.ruta, raw, 0o600); err != nil {
		return fmt.Errorf("session: escribir caché: %w", err)
	}
	return nil
}

// Token implementa api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Usuario devuelve el perfil cacheado, o nil sin sesión.
func (s *Session) Usuario() *entity.Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.usuario == nil {
		return nil
	}
	u := *s.usuario
	return &u
}

// Vigente indica si hay token y su claim exp (si es legible) no ha pasado. Un
// token opaco sin exp legible se asume vigente; el backend responderá 401 si no
// lo es.
func (s *Session) Vigente() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	exp, err := jwt.Expiracion(s.token)
	if err != nil {
		return true
	}
	return exp.After(time.Now())
}

// Cerrar borra la sesión y su caché.
func (s *Session) Cerrar() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.usuario = nil
	if err := os.Remove(s.ruta); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: borrar caché: %w", err)
	}
	return nil
}
