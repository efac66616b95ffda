package sheets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/pkg/config"
)

func testConfig() *config.Config {
	c := config.Default()
	c.Workbooks = map[string]config.Workbook{
		"ventas": {ID: "doc-ventas", Worksheets: map[string]string{"registro": "NOVIEMBRE-2025"}},
		"vacio":  {Worksheets: map[string]string{"registro": "X"}},
	}
	return c
}

var salesGrid = [][]interface{}{
	{"PERSONAL ", "FECHA DE LA VENTA", "MONTO DEPOSITADO"},
	{"C002 - ASESOR", "01/10/2025", "300"},
	{"c003 - OTRO", 45930.0},
}

func newTestService(t *testing.T) (*Service, *fakeRemote, *fakeWorksheet) {
	t.Helper()
	remote := newFakeRemote()
	ws := remote.addTab("doc-ventas", "NOVIEMBRE-2025", salesGrid)
	return NewService(testConfig(), WithRemote(remote)), remote, ws
}

func TestWorksheetIsCached(t *testing.T) {
	s, remote, _ := newTestService(t)
	ctx := context.Background()

	first, err := s.Worksheet(ctx, "ventas", "registro")
	require.NoError(t, err)
	second, err := s.Worksheet(ctx, "ventas", "registro")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, remote.OpenCalls)
	assert.Equal(t, 1, remote.docs["doc-ventas"].WorksheetCalls)

	s.ClearCache()
	_, err = s.Worksheet(ctx, "ventas", "registro")
	require.NoError(t, err)
	assert.Equal(t, 2, remote.OpenCalls)
}

func TestWorksheetNotConfigured(t *testing.T) {
	s, remote, _ := newTestService(t)
	ctx := context.Background()

	for _, tc := range [][2]string{{"nope", "registro"}, {"vacio", "registro"}, {"ventas", "otro"}} {
		_, err := s.Worksheet(ctx, tc[0], tc[1])
		assert.ErrorIs(t, err, ErrNotConfigured, tc)
		assert.Empty(t, s.GetAllRecords(ctx, tc[0], tc[1]))
	}
	assert.Zero(t, remote.OpenCalls)
}

func TestSpreadsheetUnavailable(t *testing.T) {
	s, remote, _ := newTestService(t)
	remote.OpenErr = errors.New("permission denied")

	_, err := s.Worksheet(context.Background(), "ventas", "registro")
	assert.ErrorIs(t, err, ErrUnavailable)

	recs := s.GetAllRecords(context.Background(), "ventas", "registro")
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestGetAllRecordsIsStable(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	first := s.GetAllRecords(ctx, "ventas", "registro")
	second := s.GetAllRecords(ctx, "ventas", "registro")

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"PERSONAL", "FECHA DE LA VENTA", "MONTO DEPOSITADO"}, first[1].Keys())
	assert.Equal(t, "", first[1].Text("MONTO DEPOSITADO"))
}

func TestFetchRecordsPropagatesReadErrors(t *testing.T) {
	s, _, ws := newTestService(t)
	ws.ValuesErr = errors.New("backend error")

	_, err := s.FetchRecords(context.Background(), "ventas", "registro")
	assert.Error(t, err)
	assert.Empty(t, s.GetAllRecords(context.Background(), "ventas", "registro"))
}

func TestFindRecord(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	rec, ok := s.FindRecord(ctx, "ventas", "registro", "personal", "  c002 - asesor ")
	require.True(t, ok)
	assert.Equal(t, "300", rec.Text("MONTO DEPOSITADO"))

	_, ok = s.FindRecord(ctx, "ventas", "registro", "PERSONAL", "C999")
	assert.False(t, ok)

	_, ok = s.FindRecord(ctx, "ventas", "registro", "SIN COLUMNA", "x")
	assert.False(t, ok)

	assert.Len(t, s.FindAllRecords(ctx, "ventas", "registro", "PERSONAL", "C003 - OTRO"), 1)
}

func TestAddRecord(t *testing.T) {
	s, _, ws := newTestService(t)
	ctx := context.Background()

	ok := s.AddRecord(ctx, "ventas", "registro", []interface{}{"C004", "02/10/2025", 150})
	assert.True(t, ok)
	require.Len(t, ws.AppendCalls, 1)
	assert.Equal(t, "C004", ws.AppendCalls[0][0])

	ws.AppendErr = errors.New("quota")
	assert.False(t, s.AddRecord(ctx, "ventas", "registro", []interface{}{"x"}))
	assert.False(t, s.AddRecord(ctx, "nope", "registro", []interface{}{"x"}))
}

func TestConnectFailureIsReported(t *testing.T) {
	s := NewService(testConfig())
	calls := 0
	s.connect = func(ctx context.Context) (Remote, error) {
		calls++
		return nil, ErrAuth
	}

	_, err := s.FetchRecords(context.Background(), "ventas", "registro")
	assert.ErrorIs(t, err, ErrAuth)
	assert.Empty(t, s.GetAllRecords(context.Background(), "ventas", "registro"))
	assert.Equal(t, 2, calls)
}

func TestCredentialResolution(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sa.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"type":"service_account"}`), 0600))

	b, from, err := credentialJSON(config.Credentials{File: file, JSON: `{"inline":true}`})
	require.NoError(t, err)
	assert.Equal(t, file, from)
	assert.JSONEq(t, `{"type":"service_account"}`, string(b))

	b, _, err = credentialJSON(config.Credentials{File: filepath.Join(dir, "missing.json"), JSON: `{"inline":true}`})
	require.NoError(t, err)
	assert.JSONEq(t, `{"inline":true}`, string(b))

	_, _, err = credentialJSON(config.Credentials{File: filepath.Join(dir, "missing.json")})
	assert.ErrorIs(t, err, ErrAuth)
}

func TestMalformedCredentialsFailImmediately(t *testing.T) {
	_, err := tokenSource(context.Background(), config.Credentials{JSON: `{"type":"service_account"}`})
	assert.ErrorIs(t, err, ErrAuth)

	_, err = tokenSource(context.Background(), config.Credentials{JSON: `not json`})
	assert.ErrorIs(t, err, ErrAuth)
}
