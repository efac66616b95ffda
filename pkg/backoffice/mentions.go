package backoffice

import (
	"context"
	"sort"
	"strings"
	"time"

	"salesdesk/pkg/normalize"
	"salesdesk/pkg/record"
)

// MentionFilter narrows a mentions search. Zero values disable a filter.
type MentionFilter struct {
	Q            string
	Especialidad string
	Tipo         string
	PCertificado string
	HorasMin     *float64
	HorasMax     *float64
	InicioDesde  time.Time
	InicioHasta  time.Time
	EmisionDesde time.Time
	EmisionHasta time.Time
	Limit        int
}

type MentionRow struct {
	Nombre       string   `json:"nombre"`
	DNI          string   `json:"dni"`
	Codigo       string   `json:"codigo"`
	Mencion      string   `json:"mencion"`
	Tipo         string   `json:"tipo"`
	Especialidad string   `json:"especialidad"`
	PCertificado string   `json:"p_certificado"`
	Horas        *float64 `json:"horas"`
	FechaInicio  string   `json:"fecha_inicio"`
	FechaEmision string   `json:"fecha_emision"`
	FechaFin     string   `json:"fecha_fin"`

	blob    string
	start   time.Time
	emitted time.Time
	ended   time.Time
}

// best is the date mentions sort by: start, else emission, else end. Rows
// with none sort last.
func (m MentionRow) best() time.Time {
	switch {
	case !m.start.IsZero():
		return m.start
	case !m.emitted.IsZero():
		return m.emitted
	}
	return m.ended
}

type MentionResults struct {
	Rows     []MentionRow `json:"rows"`
	Degraded bool         `json:"degraded,omitempty"`
}

// SearchMentions filters the mentions sheet and returns matches newest
// first. The limit applies after sorting.
func (d *Desk) SearchMentions(ctx context.Context, f MentionFilter) MentionResults {
	rows, err := guard("search_mentions", func() ([]MentionRow, error) {
		return d.searchMentions(ctx, f)
	})
	if err != nil {
		d.degraded("search_mentions", err)
		return MentionResults{Rows: []MentionRow{}, Degraded: true}
	}
	return MentionResults{Rows: rows}
}

func (d *Desk) searchMentions(ctx context.Context, f MentionFilter) ([]MentionRow, error) {
	recs, err := d.fetch(ctx, d.cfg.Sources.Mentions)
	if err != nil {
		return nil, err
	}
	out := []MentionRow{}
	if len(recs) == 0 {
		return out, nil
	}
	cols := record.IndexKeys(recs[0]).Columns(
		fieldMentionName, fieldMentionDNI, fieldMentionCode, fieldMention, fieldMentionType,
		fieldMentionSpecialty, fieldCertProcess, fieldHours, fieldStartDate, fieldEmissionDate, fieldEndDate,
	)

	for _, r := range recs {
		row := mentionRow(r, cols)
		if f.matches(row) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].best().After(out[j].best())
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func mentionRow(r record.Record, cols map[string]string) MentionRow {
	text := func(field string) string { return strings.TrimSpace(r.Text(cols[field])) }
	date := func(field string) time.Time {
		t, _ := normalize.ParseDate(r.Get(cols[field]))
		return t
	}
	m := MentionRow{
		Nombre:       text("nombre"),
		DNI:          text("dni"),
		Codigo:       text("codigo"),
		Mencion:      text("mencion"),
		Tipo:         text("tipo"),
		Especialidad: text("especialidad"),
		PCertificado: text("p_certificado"),
		start:        date("fecha_inicio"),
		emitted:      date("fecha_emision"),
		ended:        date("fecha_fin"),
	}
	if h, ok := normalize.ParseFloat(r.Get(cols["horas"])); ok {
		m.Horas = &h
	}
	m.FechaInicio = formatDate(m.start)
	m.FechaEmision = formatDate(m.emitted)
	m.FechaFin = formatDate(m.ended)
	m.blob = normalize.Fold(strings.Join([]string{
		m.Nombre, m.DNI, m.Codigo, m.Mencion, m.Tipo, m.Especialidad, m.PCertificado,
	}, " "))
	return m
}

func (f MentionFilter) matches(m MentionRow) bool {
	if q := normalize.Fold(f.Q); q != "" && !strings.Contains(m.blob, q) {
		return false
	}
	if e := normalize.Fold(f.Especialidad); e != "" && normalize.Fold(m.Especialidad) != e {
		return false
	}
	if t := normalize.Fold(f.Tipo); t != "" && normalize.Fold(m.Tipo) != t {
		return false
	}
	if p := normalize.Fold(f.PCertificado); p != "" && !strings.Contains(normalize.Fold(m.PCertificado), p) {
		return false
	}
	if f.HorasMin != nil && (m.Horas == nil || *m.Horas < *f.HorasMin) {
		return false
	}
	if f.HorasMax != nil && (m.Horas == nil || *m.Horas > *f.HorasMax) {
		return false
	}
	return withinOptional(m.start, f.InicioDesde, f.InicioHasta) &&
		withinOptional(m.emitted, f.EmisionDesde, f.EmisionHasta)
}

// withinOptional checks d against whichever bounds are set. A missing date
// fails any set bound.
func withinOptional(d, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if d.IsZero() {
		return false
	}
	if !from.IsZero() && normalize.Day(d).Before(normalize.Day(from)) {
		return false
	}
	if !to.IsZero() && normalize.Day(d).After(normalize.Day(to)) {
		return false
	}
	return true
}

// MentionFacets lists the distinct specialties and certificate processes
// in rows, sorted, for building filter menus.
func MentionFacets(rows []MentionRow) (especialidades, procesos []string) {
	return distinct(rows, func(m MentionRow) string { return m.Especialidad }),
		distinct(rows, func(m MentionRow) string { return m.PCertificado })
}

func distinct(rows []MentionRow, get func(MentionRow) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range rows {
		v := get(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Page is one page of a result list.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	Total   int  `json:"total"`
	Start   int  `json:"start"`
	End     int  `json:"end"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// Paginate slices items into 1-based pages, clamping page into range.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = 1
	}
	total := len(items)
	pages := (total + perPage - 1) / perPage
	last := pages
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	from := (page - 1) * perPage
	to := from + perPage
	if to > total {
		to = total
	}
	p := Page[T]{
		Items:   items[from:to],
		Page:    page,
		Pages:   pages,
		Total:   total,
		End:     to,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
	if total > 0 {
		p.Start = from + 1
	}
	return p
}
