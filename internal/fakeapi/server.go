// Package fakeapi es un backend demo en memoria con el mismo contrato HTTP que
// el backend real de administración. Sirve para desarrollo local del cliente y
// para los tests de integración del gateway.
package fakeapi

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/pkg/jwt"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

// Config del servidor demo.
type Config struct {
	JWTSecret  string
	Usuario    string
	Contrasena string
	IdSucursal int // sucursal del usuario demo; 0 = Matriz (1)
	Log        *logger.Logger
}

// Server expone el contrato del backend sobre fiber.
type Server struct {
	app   *fiber.App
	store *Store
	cfg   Config
	hash  []byte
	log   *logger.Logger
}

// New construye el servidor con el usuario demo y el catálogo en memoria.
func New(cfg Config) (*Server, error) {
	if cfg.IdSucursal == 0 {
		cfg.IdSucursal = 1
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:      "pos-admin demo",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}),
		store: NewStore(),
		cfg:   cfg,
		hash:  hash,
		log:   cfg.Log,
	}
	s.rutas()
	return s, nil
}

// App expone la app fiber (para app.Test en los tests del gateway).
func (s *Server) App() *fiber.App { return s.app }

// Listen bloquea sirviendo en addr.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Listener sirve sobre un listener ya abierto (puertos efímeros en tests).
func (s *Server) Listener(ln net.Listener) error { return s.app.Listener(ln) }

// Shutdown apaga el servidor drenando conexiones.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) rutas() {
	s.app.Use(recover.New())
	s.app.Use(cors.New())

	api := s.app.Group("/api")
	api.Post("/SignIn", s.signIn)

	priv := api.Group("", s.authRequired)
	priv.Post("/INV_NuevoTraspaso", s.nuevoTraspaso)
	priv.Post("/INV_InsertRenglonTraspaso", s.insertRenglon)
	priv.Get("/GetDetalleTraspasosEnTransito", s.detalleTraspaso)
	priv.Post("/INV_EnviarTraspaso", s.enviarTraspaso)
	priv.Get("/INV_GetTraspasosPendientesRecibir", s.traspasosPendientes)
	priv.Post("/INV_UpdateCantidadRecibidaTraspaso", s.actualizarCantidad)
	priv.Post("/INV_RecibirTraspaso", s.recibirTraspaso)
	priv.Get("/INV_GetTraspasosEnviados", s.traspasosEnviados)
	priv.Get("/AutocompleteArticulos", s.autocompleteArticulos)
	priv.Post("/GetExistencia", s.existencia)
	priv.Get("/INV_GetExistencias", s.existencias)
}

// ── Envoltura de respuesta ────────────────────────────────────────────────────

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"StatusCode": fiber.StatusOK,
		"success":    true,
		"message":    "",
		"response":   fiber.Map{"data": data},
	})
}

// fail responde HTTP 200 con success:false; así viajan las fallas de negocio en
// el contrato (el status HTTP queda para fallas de transporte y de auth).
func fail(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{
		"StatusCode": fiber.StatusOK,
		"success":    false,
		"message":    msg,
		"response":   nil,
	})
}

// ── Autenticación ─────────────────────────────────────────────────────────────

func (s *Server) authRequired(c *fiber.Ctx) error {
	auth := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"StatusCode": fiber.StatusUnauthorized,
			"success":    false,
			"message":    "Token requerido",
			"response":   nil,
		})
	}
	usuario, idSucursal, err := jwt.Parse(s.cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		s.log.Debug().Err(err).Msg("token rechazado")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"StatusCode": fiber.StatusUnauthorized,
			"success":    false,
			"message":    "Token inválido o expirado",
			"response":   nil,
		})
	}
	c.Locals("usuario", usuario)
	c.Locals("id_sucursal", idSucursal)
	return c.Next()
}

func (s *Server) signIn(c *fiber.Ctx) error {
	var body struct {
		Username     string `json:"Username"`
		Userpassword string `json:"Userpassword"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fallaSignIn(c, "Solicitud inválida")
	}
	if body.Username != s.cfg.Usuario ||
		bcrypt.CompareHashAndPassword(s.hash, []byte(body.Userpassword)) != nil {
		return fallaSignIn(c, "Usuario o contraseña incorrecto")
	}

	token, err := jwt.Generate(s.cfg.JWTSecret, body.Username, s.cfg.IdSucursal, "pos-admin-demo", 60)
	if err != nil {
		s.log.Error().Err(err).Msg("firmar token")
		return fallaSignIn(c, "Error al iniciar sesión")
	}

	usuario := entity.Usuario{
		Id:             1,
		NombreUsuario:  body.Username,
		NombrePersona:  "Usuario Demo",
		IdSucursal:     s.cfg.IdSucursal,
		NombreSucursal: nombreSucursal(s.cfg.IdSucursal),
		IdPerfil:       1,
	}
	// SignIn usa su propia envoltura, con campos capitalizados.
	return c.JSON(fiber.Map{
		"StatusCode": fiber.StatusOK,
		"Success":    true,
		"Error":      false,
		"Message":    "",
		"Response": fiber.Map{
			"data": fiber.Map{
				"Status":  true,
				"Mensaje": "",
				"Token":   token,
				"Usuario": usuario,
			},
		},
	})
}

func fallaSignIn(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{
		"StatusCode": fiber.StatusOK,
		"Success":    false,
		"Error":      true,
		"Message":    msg,
		"Response":   fiber.Map{"data": fiber.Map{"Status": false, "Mensaje": msg}},
	})
}

// ── Traspasos ─────────────────────────────────────────────────────────────────

func (s *Server) nuevoTraspaso(c *fiber.Ctx) error {
	var body struct {
		SucursalOrigen  int    `json:"SucursalOrigen"`
		SucursalDestino int    `json:"SucursalDestino"`
		Usuario         string `json:"Usuario"`
		Referencia      string `json:"Referencia"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, "Solicitud inválida")
	}
	if body.SucursalOrigen <= 0 || body.SucursalDestino <= 0 {
		return fail(c, "Origen y destino son obligatorios.")
	}
	if body.SucursalOrigen == body.SucursalDestino {
		return fail(c, "El origen y el destino deben ser diferentes.")
	}
	if strings.TrimSpace(body.Referencia) == "" {
		return fail(c, "La referencia es obligatoria.")
	}

	m := s.store.nuevoTraspaso(body.SucursalOrigen, body.SucursalDestino, strings.TrimSpace(body.Referencia))
	s.log.Info().Int("id_salida", m.IdSalida).Int("id_entrada", m.IdEntrada).Msg("traspaso generado")
	return ok(c, fiber.Map{
		"IdEntrada":    m.IdEntrada,
		"IdSalida":     m.IdSalida,
		"FolioEntrada": m.FolioEntrada,
		"FolioSalida":  m.FolioSalida,
	})
}

func (s *Server) insertRenglon(c *fiber.Ctx) error {
	var body struct {
		IdSalida int     `json:"IdSalida"`
		Codigo   string  `json:"Codigo"`
		Cantidad float64 `json:"Cantidad"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, "Solicitud inválida")
	}
	id, err := s.store.insertRenglon(body.IdSalida, body.Codigo, decimal.NewFromFloat(body.Cantidad))
	if err != nil {
		return fail(c, err.Error())
	}
	return ok(c, id)
}

func (s *Server) detalleTraspaso(c *fiber.Ctx) error {
	idMovimiento, err := strconv.Atoi(c.Query("id_movimiento"))
	if err != nil {
		return fail(c, "Solicitud inválida")
	}
	renglones, err := s.store.detalle(idMovimiento)
	if err != nil {
		return fail(c, err.Error())
	}
	out := make([]fiber.Map, 0, len(renglones))
	for _, r := range renglones {
		var recibida *float64
		if r.CantidadRecibida != nil {
			v := r.CantidadRecibida.InexactFloat64()
			recibida = &v
		}
		out = append(out, fiber.Map{
			"Id":               r.Id,
			"Codigo":           r.Articulo.Codigo,
			"Descripcion":      r.Articulo.Descripcion,
			"Familia":          r.Articulo.Familia,
			"Departamento":     r.Articulo.Departamento,
			"Cantidad":         r.Cantidad.InexactFloat64(),
			"Unidad":           r.Articulo.Unidad,
			"CantidadRecibida": recibida,
		})
	}
	return ok(c, out)
}

func (s *Server) enviarTraspaso(c *fiber.Ctx) error {
	var body struct {
		Salida  string `json:"Salida"`
		Entrada string `json:"Entrada"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, "Solicitud inválida")
	}
	salida, err1 := strconv.Atoi(body.Salida)
	entrada, err2 := strconv.Atoi(body.Entrada)
	if err1 != nil || err2 != nil {
		return fail(c, "Solicitud inválida")
	}
	if err := s.store.enviar(salida, entrada); err != nil {
		return fail(c, err.Error())
	}
	s.log.Info().Int("id_salida", salida).Msg("traspaso enviado")
	return ok(c, true)
}

func (s *Server) traspasosPendientes(c *fiber.Ctx) error {
	sucursal, err := strconv.Atoi(c.Query("sucursal"))
	if err != nil {
		return fail(c, "Solicitud inválida")
	}
	movs := s.store.pendientes(sucursal)
	out := make([]fiber.Map, 0, len(movs))
	for _, m := range movs {
		out = append(out, fiber.Map{
			"Id":     m.IdSalida,
			"Origen": nombreSucursal(m.Origen),
			"Folio":  m.FolioEntrada,
			"Fecha":  m.Fecha.Format("2006-01-02"),
		})
	}
	return ok(c, out)
}

func (s *Server) actualizarCantidad(c *fiber.Ctx) error {
	var body struct {
		IdRenglon        string `json:"IdRenglon"`
		CantidadRecibida string `json:"CantidadRecibida"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, "Solicitud inválida")
	}
	idRenglon, err := strconv.Atoi(body.IdRenglon)
	if err != nil {
		return fail(c, "Solicitud inválida")
	}
	cantidad, err := decimal.NewFromString(body.CantidadRecibida)
	if err != nil || cantidad.Sign() < 0 {
		return fail(c, "La cantidad recibida no es válida.")
	}
	if err := s.store.actualizarCantidad(idRenglon, cantidad); err != nil {
		return fail(c, err.Error())
	}
	return ok(c, true)
}

func (s *Server) recibirTraspaso(c *fiber.Ctx) error {
	var body struct {
		IdMovimiento string `json:"IdMovimiento"`
		Usuario      string `json:"Usuario"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, "Solicitud inválida")
	}
	idMovimiento, err := strconv.Atoi(body.IdMovimiento)
	if err != nil {
		return fail(c, "Solicitud inválida")
	}
	if err := s.store.recibir(idMovimiento); err != nil {
		return fail(c, err.Error())
	}
	s.log.Info().Int("id_movimiento", idMovimiento).Str("usuario", body.Usuario).Msg("traspaso recibido")
	return ok(c, true)
}

func (s *Server) traspasosEnviados(c *fiber.Ctx) error {
	sucursal, err := strconv.Atoi(c.Query("sucursal"))
	if err != nil {
		return fail(c, "Solicitud inválida")
	}
	desde, err := time.Parse("2006-01-02", c.Query("fecha_inicial"))
	if err != nil {
		return fail(c, "La fecha inicial no es válida.")
	}
	hasta, err := time.Parse("2006-01-02", c.Query("fecha_final"))
	if err != nil {
		return fail(c, "La fecha final no es válida.")
	}

	movs := s.store.enviados(sucursal, desde, hasta)
	out := make([]fiber.Map, 0, len(movs))
	for _, m := range movs {
		estatus := "En tránsito"
		if m.Estatus == estatusRecibido {
			estatus = "Recibido"
		}
		out = append(out, fiber.Map{
			"Id":      m.IdSalida,
			"Folio":   m.FolioSalida,
			"Destino": nombreSucursal(m.Destino),
			"Fecha":   m.Fecha.Format("2006-01-02"),
			"Estatus": estatus,
		})
	}
	return ok(c, out)
}

// ── Inventario ────────────────────────────────────────────────────────────────

func (s *Server) autocompleteArticulos(c *fiber.Ctx) error {
	top, _ := strconv.Atoi(c.Query("top", "10"))
	return ok(c, s.store.autocomplete(c.Query("term"), top))
}

func (s *Server) existencia(c *fiber.Ctx) error {
	var body struct {
		Articulo   string `json:"Articulo"`
		IdSucursal string `json:"IdSucursal"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, "Solicitud inválida")
	}
	a, encontrado := s.store.articuloPorCodigo(body.Articulo)
	if !encontrado {
		return fail(c, "El artículo no existe.")
	}
	return ok(c, fiber.Map{
		"Codigo":      a.Codigo,
		"Descripcion": a.Descripcion,
		"UMedida":     a.Unidad,
		"Existencia":  a.Existencia.InexactFloat64(),
		"Costo":       a.Costo.InexactFloat64(),
	})
}

func (s *Server) existencias(c *fiber.Ctx) error {
	arts := s.store.existencias(c.Query("familia"), c.Query("departamento"))
	out := make([]fiber.Map, 0, len(arts))
	for _, a := range arts {
		out = append(out, fiber.Map{
			"Codigo":      a.Codigo,
			"Descripcion": a.Descripcion,
			"UMedida":     a.Unidad,
			"Existencia":  a.Existencia.InexactFloat64(),
			"Costo":       a.Costo.InexactFloat64(),
		})
	}
	return ok(c, out)
}
