package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"salesdesk/pkg/backoffice"
	"salesdesk/pkg/cell"
	"salesdesk/pkg/normalize"
	"salesdesk/pkg/record"
)

const (
	defaultPerPage = 50
	maxPerPage     = 500
)

// Backoffice is the query surface the handlers serve. *backoffice.Desk
// implements it.
type Backoffice interface {
	SalesByCode(ctx context.Context, code string, start, end time.Time) backoffice.SalesSummary
	CollectionsByCode(ctx context.Context, code string, start, end time.Time) backoffice.CollectionSummary
	SearchMentions(ctx context.Context, f backoffice.MentionFilter) backoffice.MentionResults
	LookupSales(ctx context.Context, q string, kind backoffice.LookupKind) backoffice.SalesLookup
	Leaderboard(ctx context.Context, code string) backoffice.LeaderboardView
	UserDashboard(ctx context.Context, req backoffice.DashboardRequest, start, end time.Time) backoffice.DashboardView
	Advisors(ctx context.Context) backoffice.AdvisorList
	TotalRecords(ctx context.Context) backoffice.RecordCount
	Authenticate(ctx context.Context, email, password string) (backoffice.UserProfile, error)
	DiagnoseCollections(ctx context.Context, code string, start, end time.Time, mode backoffice.DiagnoseMode) (backoffice.Diagnosis, error)
}

// RecordStore gives raw access to configured worksheets. *sheets.Service
// implements it.
type RecordStore interface {
	GetAllRecords(ctx context.Context, book, key string) []record.Record
	FindAllRecords(ctx context.Context, book, key, column, value string) []record.Record
	AddRecord(ctx context.Context, book, key string, values []interface{}) bool
	ClearCache()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type appendRequest struct {
	Values []interface{} `json:"values"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type mentionsResponse struct {
	backoffice.Page[backoffice.MentionRow]
	Especialidades []string `json:"especialidades"`
	Procesos       []string `json:"procesos"`
	Degraded       bool     `json:"degraded,omitempty"`
}

type recordsResponse struct {
	Total   int             `json:"total"`
	Records []record.Record `json:"records"`
}

func parseDay(s string) (time.Time, error) {
	t, ok := normalize.ParseDate(cell.TextValue(strings.TrimSpace(s)))
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// dateRange reads desde/hasta, or anio/mes, from the query. Without either
// the current month is used.
func dateRange(q url.Values) (time.Time, time.Time, error) {
	from, to := q.Get("desde"), q.Get("hasta")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("desde and hasta go together")
		}
		start, err := parseDay(from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := parseDay(to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("hasta is before desde")
		}
		return start, end, nil
	}

	if q.Get("anio") != "" || q.Get("mes") != "" {
		year, err := strconv.Atoi(q.Get("anio"))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid anio %q", q.Get("anio"))
		}
		month, err := strconv.Atoi(q.Get("mes"))
		if err != nil || month < 1 || month > 12 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid mes %q", q.Get("mes"))
		}
		start, end := backoffice.MonthRange(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
		return start, end, nil
	}

	start, end := backoffice.CurrentMonth()
	return start, end, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, s)
	}
	return &f, nil
}

func optionalDate(q url.Values, key string) (time.Time, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return time.Time{}, nil
	}
	return parseDay(s)
}

func intParam(q url.Values, key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return def
	}
	return n
}

func mentionFilter(q url.Values) (backoffice.MentionFilter, error) {
	f := backoffice.MentionFilter{
		Q:            q.Get("q"),
		Especialidad: q.Get("especialidad"),
		Tipo:         q.Get("tipo"),
		PCertificado: q.Get("p_certificado"),
		Limit:        intParam(q, "limit", 0),
	}
	var err error
	if f.HorasMin, err = optionalFloat(q, "horas_min"); err != nil {
		return f, err
	}
	if f.HorasMax, err = optionalFloat(q, "horas_max"); err != nil {
		return f, err
	}
	dates := []struct {
		key string
		dst *time.Time
	}{
		{"inicio_desde", &f.InicioDesde},
		{"inicio_hasta", &f.InicioHasta},
		{"emision_desde", &f.EmisionDesde},
		{"emision_hasta", &f.EmisionHasta},
	}
	for _, d := range dates {
		if *d.dst, err = optionalDate(q, d.key); err != nil {
			return f, err
		}
	}
	return f, nil
}

func perPage(q url.Values) int {
	n := intParam(q, "per_page", defaultPerPage)
	if n < 1 {
		return defaultPerPage
	}
	if n > maxPerPage {
		return maxPerPage
	}
	return n
}
