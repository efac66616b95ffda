package backoffice

import (
	"context"
	"sort"
	"strings"
	"time"

	"salesdesk/pkg/config"
	"salesdesk/pkg/normalize"
	"salesdesk/pkg/record"
)

type SaleLine struct {
	Fecha     string  `json:"fecha"`
	Cliente   string  `json:"cliente"`
	DNI       string  `json:"dni"`
	Celular   string  `json:"celular"`
	Producto  string  `json:"producto"`
	Operacion string  `json:"operacion"`
	Monto     float64 `json:"monto"`

	date time.Time
}

type SalesSummary struct {
	Count      int        `json:"count"`
	TotalMonto float64    `json:"total_monto"`
	Ventas     []SaleLine `json:"ventas"`
	Degraded   bool       `json:"degraded,omitempty"`
}

func emptySales() SalesSummary {
	return SalesSummary{Ventas: []SaleLine{}}
}

// SalesByCode returns the sales of one advisor dated within [start, end],
// newest first. The amount summed is the deposited amount unless the
// configuration selects the sale total.
func (d *Desk) SalesByCode(ctx context.Context, code string, start, end time.Time) SalesSummary {
	s, err := guard("sales_by_code", func() (SalesSummary, error) {
		return d.salesByCode(ctx, code, start, end)
	})
	if err != nil {
		d.degraded("sales_by_code", err)
		s = emptySales()
		s.Degraded = true
	}
	return s
}

func (d *Desk) salesByCode(ctx context.Context, code string, start, end time.Time) (SalesSummary, error) {
	if strings.TrimSpace(code) == "" {
		return emptySales(), nil
	}
	recs, err := d.fetch(ctx, d.cfg.Sources.Sales)
	if err != nil {
		return SalesSummary{}, err
	}
	if len(recs) == 0 {
		return emptySales(), nil
	}

	amount := fieldAmount
	if d.cfg.SalesAmount == config.AmountTotal {
		amount = fieldTotalAmount
	}
	cols := record.IndexKeys(recs[0]).Columns(
		fieldPersonal, fieldSaleDate, amount, fieldClient, fieldDNI, fieldPhone, fieldProduct, fieldOperation,
	)
	if cols["personal"] == "" {
		return emptySales(), nil
	}

	out := emptySales()
	var amounts []float64
	for _, r := range recs {
		if !normalize.SameCode(r.Text(cols["personal"]), code) {
			continue
		}
		date, ok := normalize.ParseDate(r.Get(cols["fecha"]))
		if !ok || !normalize.InRange(date, start, end) {
			continue
		}
		monto := normalize.ParseAmount(r.Get(cols[amount.Name]))
		out.Ventas = append(out.Ventas, SaleLine{
			Fecha:     formatDate(date),
			Cliente:   r.Text(cols["cliente"]),
			DNI:       r.Text(cols["dni"]),
			Celular:   r.Text(cols["celular"]),
			Producto:  r.Text(cols["producto"]),
			Operacion: r.Text(cols["operacion"]),
			Monto:     monto,
			date:      date,
		})
		amounts = append(amounts, monto)
	}

	sort.SliceStable(out.Ventas, func(i, j int) bool {
		return out.Ventas[i].date.After(out.Ventas[j].date)
	})
	out.Count = len(out.Ventas)
	out.TotalMonto = sum(amounts...)
	return out, nil
}

// SaleView is a sales row as shown by the customer lookup.
type SaleView struct {
	FechaVenta      string `json:"fecha_venta"`
	Cliente         string `json:"cliente"`
	DNI             string `json:"dni"`
	Celular         string `json:"celular"`
	Correo          string `json:"correo"`
	MontoTotal      string `json:"monto_total"`
	MontoDepositado string `json:"monto_depositado"`
	Comprobante     string `json:"comprobante"`
	Operacion       string `json:"operacion"`
	Entidad         string `json:"entidad"`
	Cuotas          string `json:"cuotas"`
	Producto        string `json:"producto"`
	Especialidad    string `json:"especialidad"`
	Asesor          string `json:"asesor"`
	Observaciones   string `json:"observaciones"`
	MarcaTemporal   string `json:"marca_temporal"`
}

type LookupKind string

const (
	LookupDNI     LookupKind = "dni"
	LookupCelular LookupKind = "celular"
)

// ParseLookupKind defaults to DNI for anything but "celular".
func ParseLookupKind(s string) LookupKind {
	if strings.EqualFold(strings.TrimSpace(s), string(LookupCelular)) {
		return LookupCelular
	}
	return LookupDNI
}

type SalesLookup struct {
	Total    int        `json:"total"`
	Data     []SaleView `json:"data"`
	Degraded bool       `json:"degraded,omitempty"`
}

// LookupSales finds sales by the digits of a customer's DNI or phone. A row
// matches when its digits equal the query's or contain them.
func (d *Desk) LookupSales(ctx context.Context, q string, kind LookupKind) SalesLookup {
	views, err := guard("lookup_sales", func() ([]SaleView, error) {
		return d.lookupSales(ctx, q, kind)
	})
	if err != nil {
		d.degraded("lookup_sales", err)
		return SalesLookup{Data: []SaleView{}, Degraded: true}
	}
	return SalesLookup{Total: len(views), Data: views}
}

func (d *Desk) lookupSales(ctx context.Context, q string, kind LookupKind) ([]SaleView, error) {
	want := normalize.Digits(q)
	if want == "" {
		return []SaleView{}, nil
	}
	recs, err := d.fetch(ctx, d.cfg.Sources.Sales)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []SaleView{}, nil
	}
	cols := record.IndexKeys(recs[0]).Columns(
		fieldPersonal, fieldSaleDate, fieldTimestamp, fieldTotalAmount, fieldDeposited,
		fieldClient, fieldDNI, fieldPhone, fieldClientEmail, fieldProduct, fieldOperation,
		fieldReceipt, fieldBank, fieldInstallments, fieldSpecialty, fieldObservations,
	)
	key := cols["dni"]
	if kind == LookupCelular {
		key = cols["celular"]
	}
	if key == "" {
		return []SaleView{}, nil
	}

	out := []SaleView{}
	for _, r := range recs {
		got := normalize.Digits(r.Text(key))
		if got == "" || !strings.Contains(got, want) {
			continue
		}
		out = append(out, saleView(r, cols))
	}
	return out, nil
}

func saleView(r record.Record, cols map[string]string) SaleView {
	text := func(field string) string { return strings.TrimSpace(r.Text(cols[field])) }
	v := SaleView{
		FechaVenta:      text("fecha"),
		Cliente:         text("cliente"),
		DNI:             text("dni"),
		Celular:         text("celular"),
		Correo:          text("correo"),
		MontoTotal:      text("monto_total"),
		MontoDepositado: text("monto_depositado"),
		Comprobante:     text("comprobante"),
		Operacion:       text("operacion"),
		Entidad:         text("entidad"),
		Cuotas:          text("cuotas"),
		Producto:        text("producto"),
		Especialidad:    text("especialidad"),
		Asesor:          text("personal"),
		Observaciones:   text("observaciones"),
		MarcaTemporal:   text("marca_temporal"),
	}
	if date, ok := normalize.ParseDate(r.Get(cols["fecha"])); ok {
		v.FechaVenta = formatDate(date)
	}
	if v.FechaVenta == "" {
		v.FechaVenta = v.MarcaTemporal
	}
	if v.MontoTotal == "" {
		v.MontoTotal = v.MontoDepositado
	}
	return v
}
