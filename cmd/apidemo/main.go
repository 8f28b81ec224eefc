// apidemo levanta el backend demo en memoria con el contrato del backend real.
// Útil para desarrollo local del cliente posadmin sin depender del servidor de
// producción.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tu-usuario/pos-admin/internal/fakeapi"
	"github.com/tu-usuario/pos-admin/pkg/config"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.Demo.Addr()).
		Str("usuario", cfg.Demo.Usuario).
		Msg("iniciando backend demo")

	srv, err := fakeapi.New(fakeapi.Config{
		JWTSecret:  cfg.Demo.JWTSecret,
		Usuario:    cfg.Demo.Usuario,
		Contrasena: cfg.Demo.Contrasena,
		Log:        log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("construir servidor demo")
	}

	go func() {
		if err := srv.Listen(cfg.Demo.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.App().ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("backend demo detenido")
}
