package backoffice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salesdesk/pkg/normalize"
	"salesdesk/pkg/record"
)

// DiagnoseMode selects which date the window applies to.
type DiagnoseMode string

const (
	ModeSale DiagnoseMode = "venta"
	ModeDue  DiagnoseMode = "cobro"
)

func ParseDiagnoseMode(s string) (DiagnoseMode, error) {
	switch DiagnoseMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSale:
		return ModeSale, nil
	case ModeDue, "":
		return ModeDue, nil
	}
	return "", fmt.Errorf("unknown mode %q, want %q or %q", s, ModeSale, ModeDue)
}

type Stage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Diagnosis shows where collection rows drop out of the pipeline.
type Diagnosis struct {
	Headers     []string          `json:"headers"`
	Resolved    map[string]string `json:"resolved"`
	Suggestions map[string]string `json:"suggestions,omitempty"`
	Stages      []Stage           `json:"stages"`
	Rows        []CollectionLine  `json:"rows"`
}

// DiagnoseCollections runs the collections filters one at a time and counts
// what survives each. Unlike the collections query it does not require the
// amounts to differ, so every row in the window is listed.
func (d *Desk) DiagnoseCollections(ctx context.Context, code string, start, end time.Time, mode DiagnoseMode) (Diagnosis, error) {
	recs, err := d.fetch(ctx, d.cfg.Sources.Collections)
	if err != nil {
		return Diagnosis{}, err
	}
	diag := Diagnosis{Resolved: map[string]string{}, Rows: []CollectionLine{}}
	diag.Stages = append(diag.Stages, Stage{Name: "raw", Count: len(recs)})
	if len(recs) == 0 {
		return diag, nil
	}

	diag.Headers = recs[0].Keys()
	idx := record.IndexKeys(recs[0])
	cols := collectionColumns(recs[0])
	for name, col := range cols {
		diag.Resolved[name] = col
		if col == "" {
			if diag.Suggestions == nil {
				diag.Suggestions = map[string]string{}
			}
			diag.Suggestions[name] = idx.Suggest(name)
		}
	}

	byCode := recs
	if strings.TrimSpace(code) != "" {
		byCode = nil
		for _, r := range recs {
			if normalize.SameCode(r.Text(cols["personal"]), code) {
				byCode = append(byCode, r)
			}
		}
		diag.Stages = append(diag.Stages, Stage{Name: "with code", Count: len(byCode)})
	}

	var dated []record.Record
	for _, r := range byCode {
		if _, ok := normalize.ParseDate(r.Get(cols["fecha"])); ok {
			dated = append(dated, r)
		}
	}
	diag.Stages = append(diag.Stages, Stage{Name: "with valid sale date", Count: len(dated)})

	for _, r := range dated {
		sale, _ := normalize.ParseDate(r.Get(cols["fecha"]))
		when := DueDate(sale)
		if mode == ModeSale {
			when = sale
		}
		if !normalize.InRange(when, start, end) {
			continue
		}
		diag.Rows = append(diag.Rows, diagnosticLine(r, cols, sale))
	}
	diag.Stages = append(diag.Stages, Stage{Name: "in window by " + string(mode), Count: len(diag.Rows)})
	sortByDueDate(diag.Rows)
	return diag, nil
}

func diagnosticLine(r record.Record, cols map[string]string, sale time.Time) CollectionLine {
	if line, ok := collectionLine(r, cols); ok {
		return line
	}
	amount := normalize.ParseAmount(r.Get(cols["monto_depositado"]))
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
		MontoTotal:      normalize.ParseAmount(r.Get(cols["monto_total"])),
		MontoDepositado: amount,
		dueDate:         due,
	}
}
