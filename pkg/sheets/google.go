package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetFields = "spreadsheetId,properties.title,sheets.properties(sheetId,title)"

// GoogleRemote is the Sheets API v4 implementation of Remote.
type GoogleRemote struct {
	service *sheets.Service
	retry   *Retrier
}

func NewGoogleRemote(ctx context.Context, ts oauth2.TokenSource, retry *Retrier) (*GoogleRemote, error) {
	return newGoogleRemote(ctx, retry, option.WithTokenSource(ts))
}

func newGoogleRemote(ctx context.Context, retry *Retrier, opts ...option.ClientOption) (*GoogleRemote, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return &GoogleRemote{service: srv, retry: retry}, nil
}

func (g *GoogleRemote) OpenSpreadsheet(ctx context.Context, id string) (Spreadsheet, error) {
	doc := &googleSpreadsheet{remote: g, id: id}
	if err := doc.refresh(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

type googleSpreadsheet struct {
	remote *GoogleRemote
	id     string

	mu    sync.Mutex
	title string
	tabs  []string
}

func (s *googleSpreadsheet) ID() string { return s.id }

// refresh reloads the document title and its tab titles.
func (s *googleSpreadsheet) refresh(ctx context.Context) error {
	var ss *sheets.Spreadsheet
	err := s.remote.retry.Do(ctx, "spreadsheets.get", func(ctx context.Context) error {
		var err error
		ss, err = s.remote.service.Spreadsheets.Get(s.id).Fields(spreadsheetFields).Context(ctx).Do()
		return err
	})
	if err != nil {
		return err
	}
	var tabs []string
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			tabs = append(tabs, sh.Properties.Title)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ss.Properties != nil {
		s.title = ss.Properties.Title
	}
	s.tabs = tabs
	return nil
}

// Worksheet matches the tab title exactly, then ignoring case and
// surrounding whitespace. On a miss the tab list is reloaded once, since
// tabs are added to live documents.
func (s *googleSpreadsheet) Worksheet(ctx context.Context, title string) (Worksheet, error) {
	if t, ok := s.match(title); ok {
		return &googleWorksheet{remote: s.remote, spreadsheetID: s.id, title: t}, nil
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	if t, ok := s.match(title); ok {
		return &googleWorksheet{remote: s.remote, spreadsheetID: s.id, title: t}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, fmt.Errorf("%q in %q: %w", title, s.title, ErrWorksheetNotFound)
}

func (s *googleSpreadsheet) match(title string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tabs {
		if t == title {
			return t, true
		}
	}
	for _, t := range s.tabs {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(title)) {
			return t, true
		}
	}
	return "", false
}

type googleWorksheet struct {
	remote        *GoogleRemote
	spreadsheetID string
	title         string
}

func (w *googleWorksheet) Title() string { return w.title }

// Values reads the whole tab. Numbers and dates come back as numbers (dates
// as serial days) rather than locale formatted text.
func (w *googleWorksheet) Values(ctx context.Context) ([][]interface{}, error) {
	var resp *sheets.ValueRange
	err := w.remote.retry.Do(ctx, "values.get", func(ctx context.Context) error {
		var err error
		resp, err = w.remote.service.Spreadsheets.Values.Get(w.spreadsheetID, quoteTitle(w.title)).
			ValueRenderOption("UNFORMATTED_VALUE").
			DateTimeRenderOption("SERIAL_NUMBER").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (w *googleWorksheet) AppendRow(ctx context.Context, row []interface{}) error {
	return w.remote.retry.DoIf(ctx, "values.append", IsQuota, func(ctx context.Context) error {
		_, err := w.remote.service.Spreadsheets.Values.Append(
			w.spreadsheetID,
			quoteTitle(w.title)+"!A1",
			&sheets.ValueRange{Values: [][]interface{}{row}},
		).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		return err
	})
}

// quoteTitle turns a tab title into an A1 range covering the whole tab.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
