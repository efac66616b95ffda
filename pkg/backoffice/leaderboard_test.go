package backoffice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(entries []LeaderboardEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Codigo
	}
	return out
}

func TestLeaderboard(t *testing.T) {
	desk, _ := newTestDesk(t)
	ctx := context.Background()

	tests := []struct {
		code    string
		want    []string
		current string
	}{
		{"", []string{"C001", "C002", "C003"}, ""},
		{"C001", []string{"C001", "C002", "C003"}, "C001"},
		{"c-002", []string{"C001", "C002", "C003"}, "C002"},
		{"C003", []string{"C001", "C003", "C004"}, "C003"},
		{"C004", []string{"C001", "C004"}, "C004"},
		{"C999", []string{"C001", "C002", "C003"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := desk.Leaderboard(ctx, tt.code)
			require.False(t, got.Degraded)
			assert.Equal(t, tt.want, codes(got.Entries))
			for _, e := range got.Entries {
				assert.Equal(t, e.Codigo == tt.current, e.Current, e.Codigo)
			}
		})
	}
}

func TestLeaderboardEntries(t *testing.T) {
	desk, _ := newTestDesk(t)

	got := desk.Leaderboard(context.Background(), "C003")

	require.Len(t, got.Entries, 3)
	assert.Equal(t, LeaderboardEntry{Nombre: "Ana Torres", Posicion: 1, Volumen: 5000, Codigo: "C001"}, got.Entries[0])
	assert.Equal(t, 3, got.Entries[1].Posicion)
}

func TestLeaderboardSkipsUnranked(t *testing.T) {
	desk, src := newTestDesk(t)
	grid := append([][]interface{}{}, credentialsGrid...)
	grid = append(grid,
		[]interface{}{"f@x.pe", "fede", "Fede Paz", "C005", "", "pw", "activo", "", 0.0, "9000", ""},
		[]interface{}{"g@x.pe", "gabi", "Gabi Sol", "C006", "", "pw", "activo", "", "0", "9000", ""},
		[]interface{}{"h@x.pe", "hugo", "Hugo Mar", "C007", "", "pw", "activo", "", "5", 0.0, ""},
	)
	src.grids["credenciales/usuarios"] = grid

	got := desk.Leaderboard(context.Background(), "")
	assert.Equal(t, []string{"C001", "C002", "C003"}, codes(got.Entries))

	got = desk.Leaderboard(context.Background(), "C007")
	assert.Equal(t, []string{"C001", "C002", "C003"}, codes(got.Entries))
}

func TestAnchorLeaderboardSmallLists(t *testing.T) {
	assert.Empty(t, anchorLeaderboard(nil, "C001"))

	one := []LeaderboardEntry{{Codigo: "C001", Posicion: 1}}
	assert.Equal(t, []string{"C001"}, codes(anchorLeaderboard(one, "C001")))
	assert.Equal(t, []string{"C001"}, codes(anchorLeaderboard(one, "")))
}

func TestTotalRecordsFallsBack(t *testing.T) {
	desk, src := newTestDesk(t)

	got := desk.TotalRecords(context.Background())

	assert.Equal(t, RecordCount{Total: 6, Source: "ventas/registro", Fallback: true}, got)
	assert.Equal(t, 1, src.calls["datos/datos"])
	assert.Equal(t, 1, src.calls["dashboard/registro"])
}

func TestTotalRecordsFirstSource(t *testing.T) {
	desk, src := newTestDesk(t)
	src.grids["datos/datos"] = [][]interface{}{{"A"}, {"1"}, {"2"}}

	got := desk.TotalRecords(context.Background())

	assert.Equal(t, RecordCount{Total: 2, Source: "datos/datos"}, got)
	assert.Zero(t, src.calls["ventas/registro"])
}

func TestTotalRecordsAllFail(t *testing.T) {
	desk := New(newFakeSource(), testConfig(), nil)

	got := desk.TotalRecords(context.Background())
	assert.True(t, got.Degraded)
	assert.Zero(t, got.Total)
}
