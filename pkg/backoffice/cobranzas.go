package backoffice

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"salesdesk/pkg/normalize"
	"salesdesk/pkg/record"
)

// CollectionLine is a partially paid sale and the date its balance is due.
type CollectionLine struct {
	Personal        string  `json:"personal"`
	FechaVenta      string  `json:"fecha_venta"`
	FechaDeCobro    string  `json:"fecha_de_cobro"`
	Cliente         string  `json:"cliente"`
	DNI             string  `json:"dni"`
	Celular         string  `json:"celular"`
	Producto        string  `json:"producto"`
	Especialidad    string  `json:"especialidad"`
	Observaciones   string  `json:"observaciones"`
	MontoTotal      float64 `json:"monto_total"`
	MontoDepositado float64 `json:"monto_depositado"`
	Diferencia      float64 `json:"diferencia"`

	dueDate time.Time
}

type CollectionSummary struct {
	Count          int              `json:"count"`
	TotalMonto     float64          `json:"total_monto"`
	TotalPendiente float64          `json:"total_pendiente"`
	Cobranzas      []CollectionLine `json:"cobranzas"`
	Degraded       bool             `json:"degraded,omitempty"`
}

func emptyCollections() CollectionSummary {
	return CollectionSummary{Cobranzas: []CollectionLine{}}
}

// DueDate is the collection date of a sale.
func DueDate(sale time.Time) time.Time {
	return sale.AddDate(0, 0, CollectionDays)
}

// CollectionsByCode returns one advisor's sales whose total differs from
// the deposited amount and whose due date falls within [start, end],
// earliest due first. TotalMonto sums the deposited amounts.
func (d *Desk) CollectionsByCode(ctx context.Context, code string, start, end time.Time) CollectionSummary {
	s, err := guard("collections_by_code", func() (CollectionSummary, error) {
		return d.collectionsByCode(ctx, code, start, end)
	})
	if err != nil {
		d.degraded("collections_by_code", err)
		s = emptyCollections()
		s.Degraded = true
	}
	return s
}

func (d *Desk) collectionsByCode(ctx context.Context, code string, start, end time.Time) (CollectionSummary, error) {
	if strings.TrimSpace(code) == "" {
		return emptyCollections(), nil
	}
	recs, err := d.fetch(ctx, d.cfg.Sources.Collections)
	if err != nil {
		return CollectionSummary{}, err
	}
	if len(recs) == 0 {
		return emptyCollections(), nil
	}
	cols := collectionColumns(recs[0])
	// Without both amounts there is no way to tell an outstanding balance.
	if cols["personal"] == "" || cols["monto_total"] == "" || cols["monto_depositado"] == "" {
		return emptyCollections(), nil
	}

	out := emptyCollections()
	for _, r := range recs {
		if !normalize.SameCode(r.Text(cols["personal"]), code) {
			continue
		}
		line, ok := collectionLine(r, cols)
		if !ok || !normalize.InRange(line.dueDate, start, end) {
			continue
		}
		out.Cobranzas = append(out.Cobranzas, line)
	}
	sortByDueDate(out.Cobranzas)
	out.summarize()
	return out, nil
}

func collectionColumns(r record.Record) map[string]string {
	return record.IndexKeys(r).Columns(
		fieldPersonal, fieldSaleDate, fieldTotalAmount, fieldDeposited,
		fieldClient, fieldDNI, fieldPhone, fieldProduct, fieldSpecialty, fieldObservations,
	)
}

// collectionLine builds the line for a record with a valid sale date and an
// outstanding balance. ok is false otherwise.
func collectionLine(r record.Record, cols map[string]string) (CollectionLine, bool) {
	sale, ok := normalize.ParseDate(r.Get(cols["fecha"]))
	if !ok {
		return CollectionLine{}, false
	}
	total := decimal.NewFromFloat(normalize.ParseAmount(r.Get(cols["monto_total"])))
	deposited := decimal.NewFromFloat(normalize.ParseAmount(r.Get(cols["monto_depositado"])))
	if total.Equal(deposited) {
		return CollectionLine{}, false
	}
	due := DueDate(sale)
	return CollectionLine{
		Personal:        strings.TrimSpace(r.Text(cols["personal"])),
		FechaVenta:      formatDate(sale),
		FechaDeCobro:    formatDate(due),
		Cliente:         r.Text(cols["cliente"]),
		DNI:             r.Text(cols["dni"]),
		Celular:         r.Text(cols["celular"]),
		Producto:        r.Text(cols["producto"]),
		Especialidad:    r.Text(cols["especialidad"]),
		Observaciones:   r.Text(cols["observaciones"]),
		MontoTotal:      total.InexactFloat64(),
		MontoDepositado: deposited.InexactFloat64(),
		Diferencia:      total.Sub(deposited).Round(2).InexactFloat64(),
		dueDate:         due,
	}, true
}

func sortByDueDate(lines []CollectionLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].dueDate.Before(lines[j].dueDate)
	})
}

func (s *CollectionSummary) summarize() {
	deposited := make([]float64, len(s.Cobranzas))
	pending := make([]float64, len(s.Cobranzas))
	for i, c := range s.Cobranzas {
		deposited[i] = c.MontoDepositado
		pending[i] = c.Diferencia
	}
	s.Count = len(s.Cobranzas)
	s.TotalMonto = sum(deposited...)
	s.TotalPendiente = sum(pending...)
}
