package backoffice

import (
	"context"
	"fmt"
	"testing"

	"salesdesk/pkg/config"
	"salesdesk/pkg/record"
	"salesdesk/pkg/sheets"
)

type fakeSource struct {
	grids map[string][][]interface{}
	errs  map[string]error
	calls map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		grids: map[string][][]interface{}{},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeSource) FetchRecords(ctx context.Context, book, key string) ([]record.Record, error) {
	k := book + "/" + key
	f.calls[k]++
	if err := f.errs[k]; err != nil {
		return nil, err
	}
	grid, ok := f.grids[k]
	if !ok {
		return nil, fmt.Errorf("%s: %w", k, sheets.ErrNotConfigured)
	}
	return record.FromGrid(grid), nil
}

var credentialsGrid = [][]interface{}{
	{"Email", "Username", "Nombres y Apellidos", "Codigo", "Comisión", "Contraseña", "Estado", "Rol", "Posicion", "Volumen", "Ventas"},
	{"ana@x.pe", "ana", "Ana Torres", "C001", "10%", "0123", "Activo", "admin", "1", "5000", "12"},
	{"beto@x.pe", "beto", "Beto Ruiz", "C002", "", 12345678.0, "activo", "", "2", "3000", "7"},
	{"carla@x.pe", "carla", "Carla Díaz", "C003", 0.15, "pw", "inactivo", "", "3", "2000", "5"},
	{"dani@x.pe", "dani", "Dani Rojas", "C004", "abc", "pw", "activo", "", "4", "1000", "2"},
	{"eva@x.pe", "eva", "Eva Luna", "", "", "pw", "activo", "", "", "", ""},
}

// 45961 is 2025-10-31 as a spreadsheet serial.
var salesGrid = [][]interface{}{
	{"PERSONAL", "FECHA DE LA VENTA", "MONTO TOTAL DE LA VENTA", "MONTO DEPOSITADO", "NOMBRE COMPLETO DEL CLIENTE", "DNI DEL CLIENTE", "CELULAR DEL CLIENTE"},
	{"C002 - ASESOR", "01/10/2025", "500", "300", "Juan Quispe", 12345678.0, "987 654 321"},
	{"C002", 45961.0, "S/ 1,200.50", "S/ 1,200.50", "María Huamán"},
	{"c002 - asesor", "2025-11-01", "100", "50", "Pedro Luna", "87654321", "999888777"},
	{"", "05/10/2025", "10", "5", "Sin Asesor"},
	{"C003 - OTRO", "06/10/2025", "0", "0", "Rosa Vega"},
	{"C002 - ASESOR", "no es fecha", "10", "5", "Fecha Mala"},
}

var mentionsGrid = [][]interface{}{
	{"NOMBRES Y APELLIDOS", "DNI", "MENCIÓN", "TIPO DE MENCIÓN", "ESPECIALIDAD", "P. CERTIFICADO", "HORAS", "FECHA DE INICIO", "FECHA DE EMISIÓN", "FECHA DE FIN"},
	{"José Pérez", "11111111", "Gestión Escolar", "Diplomado", "Educación", "En proceso", 120.0, "05/01/2025", "", ""},
	{"Ana Gómez", "22222222", "Didáctica", "Curso", "Matemática", "Entregado", "80", "", "10 de marzo del 2025", ""},
	{"Luis Ríos", "33333333", "Tutoría", "Curso", "Educación", "Entregado", "", "", "", "2025-06-30"},
	{"Sin Fecha", "44444444", "Liderazgo", "Curso", "Educación", "Pendiente", "40", "", "", ""},
}

func testConfig() *config.Config {
	c := config.Default()
	c.DefaultCommissionPct = 0.05
	c.Sources = config.Sources{
		Users:       config.Ref{Book: "credenciales", Sheet: "usuarios"},
		Sales:       config.Ref{Book: "ventas", Sheet: "registro"},
		Collections: config.Ref{Book: "ventas", Sheet: "registro"},
		Mentions:    config.Ref{Book: "menciones", Sheet: "registro"},
		RecordCount: []config.Ref{
			{Book: "datos", Sheet: "datos"},
			{Book: "dashboard", Sheet: "registro"},
			{Book: "ventas", Sheet: "registro"},
		},
	}
	return c
}

func newTestDesk(t *testing.T) (*Desk, *fakeSource) {
	t.Helper()
	src := newFakeSource()
	src.grids["credenciales/usuarios"] = credentialsGrid
	src.grids["ventas/registro"] = salesGrid
	src.grids["menciones/registro"] = mentionsGrid
	return New(src, testConfig(), nil), src
}

type panicSource struct{}

func (panicSource) FetchRecords(ctx context.Context, book, key string) ([]record.Record, error) {
	panic("index out of range")
}
