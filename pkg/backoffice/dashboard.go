package backoffice

import (
	"context"
	"strings"
	"time"
)

const recentSales = 10

// DashboardRequest identifies whose dashboard to build. Codigo and Comision
// come from the login profile when known and are looked up otherwise.
type DashboardRequest struct {
	Usuario  string
	Codigo   string
	Comision *float64
}

type DashboardView struct {
	Codigo     string     `json:"codigo"`
	Count      int        `json:"count"`
	Total      float64    `json:"total"`
	Pct        float64    `json:"pct"`
	Commission float64    `json:"commission"`
	AvgTicket  float64    `json:"avg_ticket"`
	Ultimas    []SaleLine `json:"ultimas"`
	Desde      string     `json:"desde"`
	Hasta      string     `json:"hasta"`
	Degraded   bool       `json:"degraded,omitempty"`
}

// UserDashboard computes an advisor's sales KPIs for [start, end].
func (d *Desk) UserDashboard(ctx context.Context, req DashboardRequest, start, end time.Time) DashboardView {
	v := DashboardView{
		Codigo:  strings.TrimSpace(req.Codigo),
		Ultimas: []SaleLine{},
		Desde:   formatDate(start),
		Hasta:   formatDate(end),
	}
	if v.Codigo == "" {
		v.Codigo = d.UserCode(ctx, req.Usuario)
	}
	if req.Comision != nil {
		v.Pct = *req.Comision
	} else {
		v.Pct = d.UserCommission(ctx, req.Usuario)
	}
	if v.Codigo == "" {
		return v
	}

	sales := d.SalesByCode(ctx, v.Codigo, start, end)
	v.Degraded = sales.Degraded
	v.Count = sales.Count
	v.Total = sales.TotalMonto
	v.Commission = round2(v.Total * v.Pct)
	if v.Count > 0 {
		v.AvgTicket = round2(v.Total / float64(v.Count))
	}
	n := len(sales.Ventas)
	if n > recentSales {
		n = recentSales
	}
	v.Ultimas = append(v.Ultimas, sales.Ventas[:n]...)
	return v
}
