// posadmin es el cliente de línea de comandos del backend de administración:
// sesión, captura y envío de traspasos, recepción/conciliación en destino,
// histórico de enviados, consultas de inventario y comprobante PDF.
//
// Uso:
//
//	posadmin login -usuario admin -contrasena admin123
//	posadmin traspaso -origen 1 -destino 2 -referencia "Resurtido semanal" \
//	    -renglon ABC123:5 -renglon CAF001:2 -finalizar
//	posadmin pendientes -sucursal 2
//	posadmin recibir -sucursal 2 -id 502 -renglon 1:4.5
//	posadmin enviados -sucursal 1 -desde 2026-08-01 -hasta 2026-08-30
//	posadmin buscar -term azucar
//	posadmin existencias -familia Conservas -departamento Abarrotes
//	posadmin pdf -id 502 -salida traspaso.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/application/busqueda"
	"github.com/tu-usuario/pos-admin/internal/application/session"
	"github.com/tu-usuario/pos-admin/internal/application/traspasos"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/infrastructure/api"
	"github.com/tu-usuario/pos-admin/internal/infrastructure/pdf"
	"github.com/tu-usuario/pos-admin/pkg/config"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		uso()
		os.Exit(2)
	}

	app, err := nuevaApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := app.ejecutar(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func uso() {
	fmt.Fprintln(os.Stderr, `posadmin <comando> [opciones]

Comandos:
  login        inicia sesión y guarda el token en la caché local
  logout       cierra la sesión y borra la caché
  traspaso     genera un traspaso, agrega renglones y opcionalmente lo finaliza
  pendientes   lista los traspasos pendientes de recibir en una sucursal
  recibir      concilia cantidades y autoriza la recepción de un traspaso
  enviados     consulta el histórico de traspasos enviados por rango de fechas
  buscar       autocompleta artículos por término
  existencias  lista existencias por familia y departamento
  pdf          genera el comprobante PDF de un traspaso`)
}

// app agrupa las dependencias construidas en el arranque.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	sesion *session.Session
	client *api.Client
}

func nuevaApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	sesion, err := session.Abrir(cfg.Session.Ruta())
	if err != nil {
		return nil, err
	}
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout(), sesion, log)
	return &app{cfg: cfg, log: log, sesion: sesion, client: client}, nil
}

func (a *app) ejecutar(ctx context.Context, comando string, args []string) error {
	switch comando {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.sesion.Cerrar()
	case "traspaso":
		return a.traspaso(ctx, args)
	case "pendientes":
		return a.pendientes(ctx, args)
	case "recibir":
		return a.recibir(ctx, args)
	case "enviados":
		return a.enviados(ctx, args)
	case "buscar":
		return a.buscar(ctx, args)
	case "existencias":
		return a.existencias(ctx, args)
	case "pdf":
		return a.pdf(ctx, args)
	default:
		uso()
		return fmt.Errorf("comando desconocido: %s", comando)
	}
}

// requiereSesion corta temprano si no hay sesión vigente; evita una llamada que
// el servidor rechazaría con 401.
func (a *app) requiereSesion() error {
	if !a.sesion.Vigente() {
		return fmt.Errorf("la sesión expiró, inicia sesión de nuevo (posadmin login)")
	}
	return nil
}

func (a *app) usuario() string {
	if u := a.sesion.Usuario(); u != nil {
		return u.NombreUsuario
	}
	return ""
}

// ── Comandos ──────────────────────────────────────────────────────────────────

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	usuario := fs.String("usuario", "", "nombre de usuario")
	contrasena := fs.String("contrasena", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *usuario == "" || *contrasena == "" {
		return fmt.Errorf("usuario y contraseña son obligatorios")
	}

	token, perfil, err := a.client.SignIn(ctx, *usuario, *contrasena)
	if err != nil {
		return err
	}
	if err := a.sesion.Guardar(token, perfil); err != nil {
		return err
	}
	fmt.Printf("Bienvenido, %s (%s)\n", perfil.NombrePersona, perfil.NombreSucursal)
	return nil
}

// renglonesFlag acumula -renglon CODIGO:CANTIDAD repetidos.
type renglonesFlag []string

func (r *renglonesFlag) String() string { return strings.Join(*r, ",") }

func (r *renglonesFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func parseRenglon(v string) (string, decimal.Decimal, error) {
	partes := strings.SplitN(v, ":", 2)
	if len(partes) != 2 {
		return "", decimal.Zero, fmt.Errorf("renglón inválido %q, se espera CODIGO:CANTIDAD", v)
	}
	cantidad, err := decimal.NewFromString(partes[1])
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("cantidad inválida en %q", v)
	}
	return partes[0], cantidad, nil
}

func (a *app) traspaso(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("traspaso", flag.ExitOnError)
	origen := fs.Int("origen", 0, "sucursal origen")
	destino := fs.Int("destino", 0, "sucursal destino")
	referencia := fs.String("referencia", "", "referencia del traspaso")
	finalizar := fs.Bool("finalizar", false, "enviar el traspaso al terminar la captura")
	var renglones renglonesFlag
	fs.Var(&renglones, "renglon", "renglón CODIGO:CANTIDAD (repetible)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requiereSesion(); err != nil {
		return err
	}

	captura := traspasos.NewCaptura(a.client, a.usuario(), a.log)
	t, err := captura.Generar(ctx, *origen, *destino, *referencia)
	if err != nil {
		return err
	}
	fmt.Printf("Traspaso generado. Folio salida %d, folio entrada %d.\n", t.FolioSalida, t.FolioEntrada)

	for _, v := range renglones {
		codigo, cantidad, err := parseRenglon(v)
		if err != nil {
			return err
		}
		// La descripción y el costo salen de la consulta de existencia, como lo
		// haría la pantalla de captura al resolver el artículo.
		existencia, err := a.client.Existencia(ctx, codigo, strconv.Itoa(*origen))
		if err != nil {
			return err
		}
		if err := captura.AgregarRenglon(ctx, codigo, existencia.Descripcion, cantidad, existencia.Costo); err != nil {
			return err
		}
		fmt.Printf("  + %s  %s x %s\n", codigo, existencia.Descripcion, cantidad.String())
	}

	if !*finalizar {
		fmt.Println("Captura abierta; finaliza con el backend cuando esté completa.")
		return nil
	}
	if err := captura.Finalizar(ctx); err != nil {
		return err
	}
	fmt.Println("Traspaso finalizado y enviado.")
	return nil
}

func (a *app) pendientes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pendientes", flag.ExitOnError)
	sucursal := fs.String("sucursal", "", "sucursal destino")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requiereSesion(); err != nil {
		return err
	}

	recepcion := traspasos.NewRecepcion(a.client, a.usuario(), a.log)
	mensaje, err := recepcion.BuscarPendientes(ctx, *sucursal)
	if err != nil {
		return err
	}
	fmt.Println(mensaje)
	for _, p := range recepcion.Pendientes() {
		fmt.Printf("  id=%d  folio=%d  origen=%s  fecha=%s\n", p.Id, p.Folio, p.Origen, p.Fecha)
	}
	return nil
}

func (a *app) recibir(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recibir", flag.ExitOnError)
	sucursal := fs.String("sucursal", "", "sucursal destino")
	id := fs.Int("id", 0, "id del traspaso pendiente")
	var renglones renglonesFlag
	fs.Var(&renglones, "renglon", "cantidad recibida ID_RENGLON:CANTIDAD (repetible)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requiereSesion(); err != nil {
		return err
	}

	recepcion := traspasos.NewRecepcion(a.client, a.usuario(), a.log)
	if _, err := recepcion.BuscarPendientes(ctx, *sucursal); err != nil {
		return err
	}
	if err := recepcion.AbrirDetalle(ctx, *id); err != nil {
		return err
	}

	for _, v := range renglones {
		idStr, cantidad, err := parseRenglon(v)
		if err != nil {
			return err
		}
		idRenglon, err := strconv.Atoi(idStr)
		if err != nil {
			return fmt.Errorf("id de renglón inválido en %q", v)
		}
		if err := recepcion.EditarCantidad(idRenglon, cantidad); err != nil {
			return err
		}
		if err := recepcion.ConfirmarCantidad(ctx, idRenglon); err != nil {
			return err
		}
		fmt.Printf("  renglón %d: recibida %s\n", idRenglon, cantidad.String())
	}

	if err := recepcion.Autorizar(ctx); err != nil {
		return err
	}
	fmt.Println("Recepción autorizada.")
	return nil
}

func (a *app) enviados(ctx context.Context, args []string) error {
	desdeDef, hastaDef := traspasos.FechasPorDefecto(time.Now())

	fs := flag.NewFlagSet("enviados", flag.ExitOnError)
	sucursal := fs.String("sucursal", "", "sucursal origen")
	desde := fs.String("desde", desdeDef, "fecha inicial YYYY-MM-DD")
	hasta := fs.String("hasta", hastaDef, "fecha final YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requiereSesion(); err != nil {
		return err
	}

	consulta := traspasos.NewConsultaEnviados(a.client)
	filas, mensaje, err := consulta.Buscar(ctx, *sucursal, *desde, *hasta)
	if err != nil {
		return err
	}
	fmt.Println(mensaje)
	for _, e := range filas {
		fmt.Printf("  id=%d  folio=%d  destino=%s  fecha=%s  estatus=%s\n", e.Id, e.Folio, e.Destino, e.Fecha, e.Estatus)
	}
	return nil
}

func (a *app) buscar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buscar", flag.ExitOnError)
	term := fs.String("term", "", "término de búsqueda")
	top := fs.Int("top", 10, "máximo de sugerencias")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requiereSesion(); err != nil {
		return err
	}

	buscador := busqueda.NewBuscador(func(ctx context.Context, term string) ([]entity.ArticuloSugerido, error) {
		return a.client.AutocompleteArticulos(ctx, term, *top)
	}, busqueda.RetrasoPorDefecto)
	defer buscador.Close()

	buscador.Buscar(*term)
	resultado := <-buscador.Resultados()
	if resultado.Err != nil {
		return resultado.Err
	}
	if len(resultado.Opciones) == 0 {
		fmt.Println("Sin coincidencias.")
		return nil
	}
	for _, o := range resultado.Opciones {
		fmt.Printf("  %-10s %s\n", o.Value, o.Label)
	}
	return nil
}

func (a *app) existencias(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("existencias", flag.ExitOnError)
	articulo := fs.String("articulo", "", "código de artículo (consulta puntual)")
	sucursal := fs.String("sucursal", "1", "sucursal de la consulta puntual")
	familia := fs.String("familia", "", "familia")
	departamento := fs.String("departamento", "", "departamento")
	fecha := fs.String("fecha", time.Now().Format("2006-01-02"), "fecha de corte YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requiereSesion(); err != nil {
		return err
	}

	if *articulo != "" {
		e, err := a.client.Existencia(ctx, *articulo, *sucursal)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  existencia=%s %s  costo=%s\n", e.Codigo, e.Descripcion, e.Existencia.String(), e.UMedida, e.Costo.String())
		return nil
	}

	filas, err := a.client.Existencias(ctx, *familia, *departamento, *fecha)
	if err != nil {
		return err
	}
	for _, e := range filas {
		fmt.Printf("  %-10s %-30s %10s %s\n", e.Codigo, e.Descripcion, e.Existencia.String(), e.UMedida)
	}
	return nil
}

func (a *app) pdf(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pdf", flag.ExitOnError)
	id := fs.Int("id", 0, "id del movimiento")
	folio := fs.Int("folio", 0, "folio a imprimir en el comprobante")
	origen := fs.String("origen", "", "sucursal origen (etiqueta)")
	destino := fs.String("destino", "", "sucursal destino (etiqueta)")
	referencia := fs.String("referencia", "", "referencia del traspaso")
	salida := fs.String("salida", "traspaso.pdf", "archivo de salida")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requiereSesion(); err != nil {
		return err
	}

	renglones, err := a.client.DetalleTraspaso(ctx, *id)
	if err != nil {
		return err
	}

	generador := pdf.NewGeneradorTraspaso()
	doc, err := generador.Generar(ctx, pdf.DatosTraspaso{
		Folio:      *folio,
		Referencia: *referencia,
		Origen:     etiquetaSucursal(*origen),
		Destino:    etiquetaSucursal(*destino),
		Fecha:      time.Now().Format("2006-01-02"),
	}, renglones)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*salida, doc, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", *salida, err)
	}
	fmt.Printf("Comprobante generado: %s (%d renglones)\n", *salida, len(renglones))
	return nil
}

// etiquetaSucursal resuelve el id del catálogo a su nombre; cualquier otro valor
// se imprime tal cual.
func etiquetaSucursal(s string) string {
	for _, suc := range entity.Sucursales {
		if suc.Id == s {
			return suc.Nombre
		}
	}
	return s
}
