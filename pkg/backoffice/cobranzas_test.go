package backoffice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionsByCodeScenario(t *testing.T) {
	src := newFakeSource()
	src.grids["ventas/registro"] = [][]interface{}{
		{"PERSONAL", "FECHA DE LA VENTA", "MONTO TOTAL DE LA VENTA", "MONTO DEPOSITADO"},
		{"C002 - ASESOR", "01/10/2025", "500", "300"},
	}
	desk := New(src, testConfig(), nil)

	got := desk.CollectionsByCode(context.Background(), "C002", day(2025, 10, 31), day(2025, 11, 30))

	require.Len(t, got.Cobranzas, 1)
	line := got.Cobranzas[0]
	assert.Equal(t, "31/10/2025", line.FechaDeCobro)
	assert.Equal(t, "01/10/2025", line.FechaVenta)
	assert.Equal(t, 500.0, line.MontoTotal)
	assert.Equal(t, 300.0, line.MontoDepositado)
	assert.Equal(t, 200.0, line.Diferencia)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 300.0, got.TotalMonto)
	assert.Equal(t, 200.0, got.TotalPendiente)
}

func TestCollectionsByCode(t *testing.T) {
	desk, _ := newTestDesk(t)

	// Oct 1 sale is due Oct 31 (first day); the Oct 31 sale is due Nov 30
	// but fully paid; the Nov 1 sale is due Dec 1, one day past the window.
	got := desk.CollectionsByCode(context.Background(), "C002", day(2025, 10, 31), day(2025, 11, 30))

	require.Len(t, got.Cobranzas, 1)
	assert.Equal(t, "Juan Quispe", got.Cobranzas[0].Cliente)

	dec := desk.CollectionsByCode(context.Background(), "C002", day(2025, 12, 1), day(2025, 12, 31))
	require.Len(t, dec.Cobranzas, 1)
	assert.Equal(t, "01/12/2025", dec.Cobranzas[0].FechaDeCobro)
}

func TestCollectionsExcludeEqualAmounts(t *testing.T) {
	tests := []struct {
		total, deposited interface{}
		want             int
	}{
		{"0", "0", 0},
		{0.0, "", 0},
		{"S/ 1,000.00", 1000.0, 0},
		{"100", "100.00", 0},
		{"100", "99.99", 1},
		{"0", "50", 1},
	}
	for _, tt := range tests {
		src := newFakeSource()
		src.grids["ventas/registro"] = [][]interface{}{
			{"PERSONAL", "FECHA DE LA VENTA", "MONTO TOTAL DE LA VENTA", "MONTO DEPOSITADO"},
			{"C001", "01/01/2025", tt.total, tt.deposited},
		}
		desk := New(src, testConfig(), nil)

		got := desk.CollectionsByCode(context.Background(), "C001", day(2025, 1, 1), day(2025, 12, 31))
		assert.Equal(t, tt.want, got.Count, "total=%v deposited=%v", tt.total, tt.deposited)
	}
}

func TestCollectionsSortedByDueDate(t *testing.T) {
	src := newFakeSource()
	src.grids["ventas/registro"] = [][]interface{}{
		{"PERSONAL", "FECHA DE LA VENTA", "MONTO TOTAL DE LA VENTA", "MONTO DEPOSITADO"},
		{"C001", "20/01/2025", "100", "10"},
		{"C001", "02/01/2025", "100", "20"},
		{"C001", "10/01/2025", "100", "30"},
	}
	desk := New(src, testConfig(), nil)

	got := desk.CollectionsByCode(context.Background(), "C001", day(2025, 1, 1), day(2025, 12, 31))

	require.Len(t, got.Cobranzas, 3)
	assert.Equal(t, "01/02/2025", got.Cobranzas[0].FechaDeCobro)
	assert.Equal(t, "09/02/2025", got.Cobranzas[1].FechaDeCobro)
	assert.Equal(t, "19/02/2025", got.Cobranzas[2].FechaDeCobro)
	assert.Equal(t, 60.0, got.TotalMonto)
}

func TestCollectionsNeedBothAmountColumns(t *testing.T) {
	src := newFakeSource()
	src.grids["ventas/registro"] = [][]interface{}{
		{"PERSONAL", "FECHA DE LA VENTA", "MONTO DEPOSITADO"},
		{"C001", "01/01/2025", "10"},
	}
	desk := New(src, testConfig(), nil)

	got := desk.CollectionsByCode(context.Background(), "C001", day(2025, 1, 1), day(2025, 12, 31))
	assert.False(t, got.Degraded)
	assert.Empty(t, got.Cobranzas)
}

func TestCollectionsDegraded(t *testing.T) {
	desk, src := newTestDesk(t)
	src.errs["ventas/registro"] = errors.New("quota exhausted")

	got := desk.CollectionsByCode(context.Background(), "C002", day(2025, 10, 1), day(2025, 12, 31))
	assert.True(t, got.Degraded)
	assert.NotNil(t, got.Cobranzas)
	assert.Zero(t, got.Count)
}
