package sheets

import (
	"context"
	"sync"
)

type fakeRemote struct {
	mu        sync.Mutex
	docs      map[string]*fakeSpreadsheet
	OpenCalls int
	OpenErr   error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: map[string]*fakeSpreadsheet{}}
}

func (f *fakeRemote) addTab(id, title string, grid [][]interface{}) *fakeWorksheet {
	doc, ok := f.docs[id]
	if !ok {
		doc = &fakeSpreadsheet{id: id, tabs: map[string]*fakeWorksheet{}}
		f.docs[id] = doc
	}
	ws := &fakeWorksheet{title: title, Grid: grid}
	doc.tabs[title] = ws
	return ws
}

func (f *fakeRemote) OpenSpreadsheet(ctx context.Context, id string) (Spreadsheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.OpenCalls++
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, ErrUnavailable
	}
	return doc, nil
}

type fakeSpreadsheet struct {
	id             string
	tabs           map[string]*fakeWorksheet
	WorksheetCalls int
}

func (f *fakeSpreadsheet) ID() string { return f.id }

func (f *fakeSpreadsheet) Worksheet(ctx context.Context, title string) (Worksheet, error) {
	f.WorksheetCalls++
	ws, ok := f.tabs[title]
	if !ok {
		return nil, ErrWorksheetNotFound
	}
	return ws, nil
}

type fakeWorksheet struct {
	title       string
	Grid        [][]interface{}
	ValuesErr   error
	AppendErr   error
	AppendCalls [][]interface{}
}

func (f *fakeWorksheet) Title() string { return f.title }

func (f *fakeWorksheet) Values(ctx context.Context) ([][]interface{}, error) {
	if f.ValuesErr != nil {
		return nil, f.ValuesErr
	}
	return f.Grid, nil
}

func (f *fakeWorksheet) AppendRow(ctx context.Context, row []interface{}) error {
	if f.AppendErr != nil {
		return f.AppendErr
	}
	f.AppendCalls = append(f.AppendCalls, row)
	f.Grid = append(f.Grid, row)
	return nil
}
