// Package sheets is the data access layer over Google Sheets: it connects
// lazily with a service account, retries flaky calls and caches opened
// document and tab handles for the life of the process.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"salesdesk/pkg/config"
	"salesdesk/pkg/metrics"
	"salesdesk/pkg/record"
)

type tabKey struct {
	id    string
	title string
}

// Service owns the authenticated client and both handle caches. Create one
// per process and share it.
type Service struct {
	cfg     *config.Config
	retry   *Retrier
	metrics *metrics.Metrics
	connect func(ctx context.Context) (Remote, error)

	mu     sync.Mutex
	remote Remote
	books  map[string]Spreadsheet
	tabs   map[tabKey]Worksheet
}

type Option func(*Service)

// WithRemote starts the service already connected to r.
func WithRemote(r Remote) Option {
	return func(s *Service) { s.remote = r }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithRetrier(r *Retrier) Option {
	return func(s *Service) { s.retry = r }
}

func NewService(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:   cfg,
		books: make(map[string]Spreadsheet),
		tabs:  make(map[tabKey]Worksheet),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.retry == nil {
		s.retry = NewRetrier(s.metrics)
	}
	s.connect = s.connectGoogle
	return s
}

func (s *Service) Config() *config.Config { return s.cfg }

func (s *Service) connectGoogle(ctx context.Context) (Remote, error) {
	ts, err := tokenSource(ctx, s.cfg.Credentials)
	if err != nil {
		return nil, err
	}
	return NewGoogleRemote(context.WithoutCancel(ctx), ts, s.retry)
}

// client returns the connected remote, authenticating on first use. A
// failed attempt leaves the service disconnected so the next call retries.
func (s *Service) client(ctx context.Context) (Remote, error) {
	s.mu.Lock()
	r := s.remote
	s.mu.Unlock()
	if r != nil {
		return r, nil
	}

	r, err := s.connect(ctx)
	if err != nil {
		log.WithError(err).Error("cannot connect to Google Sheets")
		return nil, err
	}

	s.mu.Lock()
	if s.remote == nil {
		s.remote = r
	}
	r = s.remote
	s.mu.Unlock()
	log.Info("connected to Google Sheets")
	return r, nil
}

// Spreadsheet opens a document by ID, using the cache when possible.
func (s *Service) Spreadsheet(ctx context.Context, id string) (Spreadsheet, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("empty spreadsheet id: %w", ErrNotConfigured)
	}
	s.mu.Lock()
	doc, ok := s.books[id]
	s.mu.Unlock()
	s.metrics.CacheLookup("workbook", ok)
	if ok {
		return doc, nil
	}

	r, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	log.WithField("spreadsheet", id).Debug("opening spreadsheet")
	doc, err = r.OpenSpreadsheet(ctx, id)
	if err != nil {
		log.WithError(err).WithField("spreadsheet", id).Warn("spreadsheet not available")
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, id, err)
	}

	s.mu.Lock()
	s.books[id] = doc
	s.mu.Unlock()
	return doc, nil
}

// Worksheet resolves a logical workbook and worksheet key through the
// configuration and returns the tab handle.
func (s *Service) Worksheet(ctx context.Context, book, key string) (Worksheet, error) {
	id, title, err := s.cfg.Resolve(book, key)
	if err != nil {
		log.WithFields(log.Fields{"book": book, "sheet": key}).Debug("worksheet not configured")
		return nil, err
	}
	k := tabKey{id: id, title: title}
	s.mu.Lock()
	ws, ok := s.tabs[k]
	s.mu.Unlock()
	s.metrics.CacheLookup("worksheet", ok)
	if ok {
		return ws, nil
	}

	doc, err := s.Spreadsheet(ctx, id)
	if err != nil {
		return nil, err
	}
	ws, err = doc.Worksheet(ctx, title)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"book": book, "sheet": key}).Warn("worksheet not available")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	s.mu.Lock()
	s.tabs[k] = ws
	s.mu.Unlock()
	return ws, nil
}

// FetchRecords reads every row of a logical worksheet. Errors are returned
// so fallback chains can tell "no rows" from "no data".
func (s *Service) FetchRecords(ctx context.Context, book, key string) ([]record.Record, error) {
	ws, err := s.Worksheet(ctx, book, key)
	if err != nil {
		return nil, err
	}
	grid, err := ws.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", book, key, err)
	}
	return record.FromGrid(grid), nil
}

// GetAllRecords is FetchRecords with failures turned into an empty slice.
func (s *Service) GetAllRecords(ctx context.Context, book, key string) []record.Record {
	recs, err := s.FetchRecords(ctx, book, key)
	if err != nil {
		logFetchError(err, book, key)
		return []record.Record{}
	}
	return recs
}

// FindRecord returns the first record whose column equals value, ignoring
// case and surrounding whitespace. The column name is resolved the same way
// as aggregate fields so header drift does not break lookups.
func (s *Service) FindRecord(ctx context.Context, book, key, column, value string) (record.Record, bool) {
	found := s.find(ctx, book, key, column, value, 1)
	if len(found) == 0 {
		return record.Record{}, false
	}
	return found[0], true
}

func (s *Service) FindAllRecords(ctx context.Context, book, key, column, value string) []record.Record {
	return s.find(ctx, book, key, column, value, -1)
}

func (s *Service) find(ctx context.Context, book, key, column, value string, limit int) []record.Record {
	recs := s.GetAllRecords(ctx, book, key)
	if len(recs) == 0 {
		return nil
	}
	col, ok := record.IndexKeys(recs[0]).Find([]string{column})
	if !ok {
		return nil
	}
	want := strings.TrimSpace(value)
	var out []record.Record
	for _, r := range recs {
		if strings.EqualFold(strings.TrimSpace(r.Text(col)), want) {
			out = append(out, r)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// AddRecord appends one row of values in column order.
func (s *Service) AddRecord(ctx context.Context, book, key string, values []interface{}) bool {
	ws, err := s.Worksheet(ctx, book, key)
	if err != nil {
		logFetchError(err, book, key)
		return false
	}
	if err := ws.AppendRow(ctx, values); err != nil {
		log.WithError(err).WithFields(log.Fields{"book": book, "sheet": key}).Warn("append failed")
		return false
	}
	return true
}

// ClearCache forgets every opened handle. The client stays connected.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = make(map[string]Spreadsheet)
	s.tabs = make(map[tabKey]Worksheet)
	log.Debug("handle cache cleared")
}

func logFetchError(err error, book, key string) {
	entry := log.WithError(err).WithFields(log.Fields{"book": book, "sheet": key})
	switch {
	case errors.Is(err, ErrNotConfigured):
		entry.Debug("no records: not configured")
	case errors.Is(err, ErrAuth):
		// already logged at error level by client
	default:
		entry.Warn("no records: fetch failed")
	}
}
