package backoffice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCode(t *testing.T) {
	desk, _ := newTestDesk(t)
	ctx := context.Background()

	tests := []struct {
		ident string
		want  string
	}{
		{"ana@x.pe", "C001"},
		{"  ANA@X.PE ", "C001"},
		{"beto", "C002"},
		{"carla díaz", "C003"},
		{"nadie", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, desk.UserCode(ctx, tt.ident), tt.ident)
	}
}

func TestUserCodeWithoutCodeColumn(t *testing.T) {
	src := newFakeSource()
	src.grids["credenciales/usuarios"] = [][]interface{}{
		{"Email", "Username"},
		{"ana@x.pe", "ana"},
	}
	desk := New(src, testConfig(), nil)

	assert.Equal(t, "", desk.UserCode(context.Background(), "ana"))
}

func TestUserCommission(t *testing.T) {
	desk, _ := newTestDesk(t)
	ctx := context.Background()

	assert.InDelta(t, 0.10, desk.UserCommission(ctx, "ana"), 1e-9)
	assert.InDelta(t, 0.15, desk.UserCommission(ctx, "carla"), 1e-9)
	// Blank and unparseable cells fall back to the default.
	assert.InDelta(t, 0.05, desk.UserCommission(ctx, "beto"), 1e-9)
	assert.InDelta(t, 0.05, desk.UserCommission(ctx, "dani"), 1e-9)
	assert.InDelta(t, 0.05, desk.UserCommission(ctx, "nadie"), 1e-9)
}

func TestUserCommissionDegraded(t *testing.T) {
	desk, src := newTestDesk(t)
	src.errs["credenciales/usuarios"] = errors.New("backend error")

	assert.InDelta(t, 0.05, desk.UserCommission(context.Background(), "ana"), 1e-9)
	assert.Equal(t, "", desk.UserCode(context.Background(), "ana"))
}

func TestAuthenticate(t *testing.T) {
	desk, _ := newTestDesk(t)
	ctx := context.Background()

	p, err := desk.Authenticate(ctx, " ANA@x.pe", "123")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.pe", p.Email)
	assert.Equal(t, "Ana Torres", p.Nombre)
	assert.Equal(t, "C001", p.Codigo)
	assert.Equal(t, "admin", p.Rol)
	assert.InDelta(t, 0.10, p.Comision, 1e-9)
	assert.Equal(t, "1", p.Posicion)
	assert.Equal(t, 5000.0, p.Volumen)
	assert.Equal(t, 12, p.Ventas)

	p, err = desk.Authenticate(ctx, "beto@x.pe", "12345678")
	require.NoError(t, err)
	assert.Equal(t, "usuario", p.Rol)
	assert.InDelta(t, 0.05, p.Comision, 1e-9)

	_, err = desk.Authenticate(ctx, "ana@x.pe", "999")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = desk.Authenticate(ctx, "carla@x.pe", "pw")
	assert.ErrorIs(t, err, ErrInactiveUser)

	_, err = desk.Authenticate(ctx, "nadie@x.pe", "pw")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = desk.Authenticate(ctx, "ana@x.pe", "  ")
	assert.ErrorIs(t, err, ErrMissingLogin)
}

func TestAuthenticateFetchError(t *testing.T) {
	desk, src := newTestDesk(t)
	backend := errors.New("backend error")
	src.errs["credenciales/usuarios"] = backend

	_, err := desk.Authenticate(context.Background(), "ana@x.pe", "123")
	assert.ErrorIs(t, err, backend)
}

func TestAdvisors(t *testing.T) {
	desk, _ := newTestDesk(t)

	got := desk.Advisors(context.Background())

	assert.False(t, got.Degraded)
	require.Len(t, got.Advisors, 4)
	names := make([]string, len(got.Advisors))
	for i, a := range got.Advisors {
		names[i] = a.Nombre
	}
	assert.Equal(t, []string{"Ana Torres", "Beto Ruiz", "Carla Díaz", "Dani Rojas"}, names)
	assert.Equal(t, "usuario", got.Advisors[1].Rol)
	assert.Equal(t, "3000", got.Advisors[1].Volumen)
}
