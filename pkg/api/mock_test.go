package api

import (
	"context"
	"fmt"
	"strings"

	"salesdesk/pkg/backoffice"
	"salesdesk/pkg/config"
	"salesdesk/pkg/record"
	"salesdesk/pkg/sheets"
)

type mockSource struct {
	Grids map[string][][]interface{}
}

func (m *mockSource) FetchRecords(ctx context.Context, book, key string) ([]record.Record, error) {
	grid, ok := m.Grids[book+"/"+key]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", book, key, sheets.ErrNotConfigured)
	}
	return record.FromGrid(grid), nil
}

type mockStore struct {
	Records      map[string][]record.Record
	AppendOK     bool
	AppendCalls  [][]interface{}
	ClearCalled  bool
	FindCalledOn string
}

func (m *mockStore) GetAllRecords(ctx context.Context, book, key string) []record.Record {
	return m.Records[book+"/"+key]
}

func (m *mockStore) FindAllRecords(ctx context.Context, book, key, column, value string) []record.Record {
	m.FindCalledOn = column
	var out []record.Record
	for _, r := range m.Records[book+"/"+key] {
		if strings.EqualFold(strings.TrimSpace(r.Text(column)), strings.TrimSpace(value)) {
			out = append(out, r)
		}
	}
	return out
}

func (m *mockStore) AddRecord(ctx context.Context, book, key string, values []interface{}) bool {
	m.AppendCalls = append(m.AppendCalls, values)
	return m.AppendOK
}

func (m *mockStore) ClearCache() {
	m.ClearCalled = true
}

func newMockDesk() *backoffice.Desk {
	src := &mockSource{Grids: map[string][][]interface{}{
		"credenciales/usuarios": {
			{"Email", "Username", "Nombres y Apellidos", "Codigo", "Comisión", "Contraseña", "Estado", "Posicion", "Volumen"},
			{"ana@x.pe", "ana", "Ana Torres", "C001", "10", "secreto", "activo", "1", "900"},
			{"beto@x.pe", "beto", "Beto Ruiz", "C002", "", "clave", "inactivo", "2", "500"},
		},
		"ventas/registro": {
			{"PERSONAL", "FECHA DE LA VENTA", "MONTO TOTAL DE LA VENTA", "MONTO DEPOSITADO", "NOMBRE COMPLETO DEL CLIENTE", "DNI DEL CLIENTE"},
			{"C001 - ANA", "05/10/2025", "400", "400", "Juan Quispe", "12345678"},
			{"C001 - ANA", "20/09/2025", "300", "100", "Rosa Vega", "87654321"},
		},
		"menciones/registro": {
			{"NOMBRES Y APELLIDOS", "ESPECIALIDAD", "P. CERTIFICADO", "FECHA DE INICIO"},
			{"José Pérez", "Educación", "Entregado", "01/03/2025"},
			{"Ana Gómez", "Matemática", "Pendiente", "01/02/2025"},
			{"Luis Ríos", "Educación", "Entregado", "01/01/2025"},
		},
	}}
	return backoffice.New(src, newMockDeskConfig(), nil)
}

func newMockDeskConfig() *config.Config {
	cfg := config.Default()
	cfg.DefaultCommissionPct = 0.05
	return cfg
}
