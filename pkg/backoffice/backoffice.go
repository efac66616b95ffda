// Package backoffice computes the sales team views (sales, collections,
// leaderboard, mentions, user lookups) from worksheet records.
//
// Every query has an unexported form returning (T, error) and an exported
// form that logs the error and returns the documented empty value with
// Degraded set, so a broken sheet never breaks a page.
package backoffice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"salesdesk/pkg/config"
	"salesdesk/pkg/metrics"
	"salesdesk/pkg/record"
	"salesdesk/pkg/sheets"
)

// DateLayout is how dates are rendered in results.
const DateLayout = "02/01/2006"

// CollectionDays is how many days after a sale its balance falls due.
const CollectionDays = 30

var nowFunc = time.Now

// Source reads the records of a logical worksheet. *sheets.Service is the
// production implementation.
type Source interface {
	FetchRecords(ctx context.Context, book, key string) ([]record.Record, error)
}

type Desk struct {
	src     Source
	cfg     *config.Config
	metrics *metrics.Metrics
}

func New(src Source, cfg *config.Config, m *metrics.Metrics) *Desk {
	return &Desk{src: src, cfg: cfg, metrics: m}
}

func (d *Desk) fetch(ctx context.Context, ref config.Ref) ([]record.Record, error) {
	return d.src.FetchRecords(ctx, ref.Book, ref.Sheet)
}

// degraded records that query fell back to its empty result.
func (d *Desk) degraded(query string, err error) {
	d.metrics.Degraded(query)
	entry := log.WithError(err).WithField("query", query)
	if errors.Is(err, sheets.ErrNotConfigured) {
		entry.Debug("query skipped: source not configured")
		return
	}
	entry.Warn("query degraded to empty result")
}

// guard runs a query, turning a panic inside it into an error so the
// exported form still degrades to its empty result.
func guard[T any](query string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, fmt.Errorf("%s: panic: %v", query, r)
		}
	}()
	return fn()
}

func (d *Desk) defaultCommission() float64 {
	if d.cfg == nil {
		return config.DefaultCommissionPct
	}
	return d.cfg.DefaultCommissionPct
}

// sum adds amounts exactly and rounds to cents.
func sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// MonthRange returns the first and last day of t's month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// CurrentMonth is MonthRange of today.
func CurrentMonth() (time.Time, time.Time) {
	return MonthRange(nowFunc())
}
