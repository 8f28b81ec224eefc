package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y
// opcionalmente archivo). Se construye una vez en el arranque y se inyecta; no hay
// estado global de configuración.
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Demo    DemoConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// APIConfig configuración del backend HTTP al que se conecta el cliente.
type APIConfig struct {
	// BaseURL del API, sin slash final (ej. https://api.ejemplo.com/api)
	BaseURL string
	// TimeoutSeconds de red por petición
	TimeoutSeconds int
}

// Timeout devuelve el timeout de red como duración.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig configuración de la caché de sesión en disco.
type SessionConfig struct {
	// CachePath ruta del archivo JSON con token y usuario.
	// Vacío = ~/.pos-admin/session.json
	CachePath string
}

// Ruta devuelve la ruta efectiva de la caché de sesión.
func (c SessionConfig) Ruta() string {
	if c.CachePath != "" {
		return c.CachePath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pos-admin-session.json")
	}
	return filepath.Join(home, ".pos-admin", "session.json")
}

// DemoConfig configuración del servidor demo en memoria (cmd/apidemo).
type DemoConfig struct {
	Host       string
	Port       int
	JWTSecret  string
	Usuario    string
	Contrasena string
}

// Addr devuelve la dirección de escucha del demo (host:port).
func (c DemoConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env o config.env). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, API_BASE_URL, SESSION_CACHE_PATH, DEMO_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "pos-admin"),
			LogLevel: getString(v, "APP_LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "API_BASE_URL", "http://localhost:9080/api"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 15),
		},
		Session: SessionConfig{
			CachePath: getString(v, "SESSION_CACHE_PATH", ""),
		},
		Demo: DemoConfig{
			Host:       getString(v, "DEMO_HOST", "0.0.0.0"),
			Port:       getInt(v, "DEMO_PORT", 9080),
			JWTSecret:  getString(v, "DEMO_JWT_SECRET", "demo-secret"),
			Usuario:    getString(v, "DEMO_USUARIO", "admin"),
			Contrasena: getString(v, "DEMO_CONTRASENA", "admin123"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
