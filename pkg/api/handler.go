package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"salesdesk/pkg/backoffice"
	"salesdesk/pkg/record"
)

type handler struct {
	desk  Backoffice
	store RecordStore
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("encode response")
		sendResponse(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}
	sendResponse(w, status, body)
}

func sendError(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, errorResponse{Error: msg})
}

func getHealth(w http.ResponseWriter, r *http.Request) {
	sendResponse(w, http.StatusOK, []byte(`{"status":"ok"}`))
}

// requireCode returns the codigo query parameter, answering 400 when absent.
func requireCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	code := strings.TrimSpace(r.URL.Query().Get("codigo"))
	if code == "" {
		sendError(w, http.StatusBadRequest, "codigo is required")
		return "", false
	}
	return code, true
}

func (h *handler) getSales(w http.ResponseWriter, r *http.Request) {
	code, ok := requireCode(w, r)
	if !ok {
		return
	}
	start, end, err := dateRange(r.URL.Query())
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, h.desk.SalesByCode(r.Context(), code, start, end))
}

func (h *handler) getCollections(w http.ResponseWriter, r *http.Request) {
	code, ok := requireCode(w, r)
	if !ok {
		return
	}
	start, end, err := dateRange(r.URL.Query())
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, h.desk.CollectionsByCode(r.Context(), code, start, end))
}

func (h *handler) getCollectionsDiagnosis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, err := dateRange(q)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := backoffice.ParseDiagnoseMode(q.Get("modo"))
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	diag, err := h.desk.DiagnoseCollections(r.Context(), q.Get("codigo"), start, end, mode)
	if err != nil {
		log.WithError(err).Warn("collections diagnosis failed")
		sendError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, diag)
}

func (h *handler) getMentions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := mentionFilter(q)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	res := h.desk.SearchMentions(r.Context(), f)
	esp, proc := backoffice.MentionFacets(res.Rows)
	sendJSON(w, http.StatusOK, mentionsResponse{
		Page:           backoffice.Paginate(res.Rows, intParam(q, "page", 1), perPage(q)),
		Especialidades: esp,
		Procesos:       proc,
		Degraded:       res.Degraded,
	})
}

func (h *handler) getSalesLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sendJSON(w, http.StatusOK, h.desk.LookupSales(r.Context(), q.Get("q"), backoffice.ParseLookupKind(q.Get("tipo"))))
}

func (h *handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, h.desk.Leaderboard(r.Context(), r.URL.Query().Get("codigo")))
}

func (h *handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := backoffice.DashboardRequest{
		Usuario: strings.TrimSpace(q.Get("usuario")),
		Codigo:  strings.TrimSpace(q.Get("codigo")),
	}
	if req.Usuario == "" && req.Codigo == "" {
		sendError(w, http.StatusBadRequest, "usuario or codigo is required")
		return
	}
	pct, err := optionalFloat(q, "comision")
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Comision = pct
	start, end, err := dateRange(q)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, h.desk.UserDashboard(r.Context(), req, start, end))
}

func (h *handler) getAdvisors(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, h.desk.Advisors(r.Context()))
}

func (h *handler) getRecordCount(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, h.desk.TotalRecords(r.Context()))
}

func (h *handler) postLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	profile, err := h.desk.Authenticate(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		sendJSON(w, http.StatusOK, profile)
	case errors.Is(err, backoffice.ErrMissingLogin):
		sendError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, backoffice.ErrUserNotFound), errors.Is(err, backoffice.ErrWrongPassword):
		sendError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, backoffice.ErrInactiveUser):
		sendError(w, http.StatusForbidden, err.Error())
	default:
		log.WithError(err).Error("login failed")
		sendError(w, http.StatusServiceUnavailable, "credentials unavailable")
	}
}

func (h *handler) getRecords(w http.ResponseWriter, r *http.Request) {
	book, sheet := chi.URLParam(r, "book"), chi.URLParam(r, "sheet")
	q := r.URL.Query()
	var recs []record.Record
	if column := q.Get("column"); column != "" {
		recs = h.store.FindAllRecords(r.Context(), book, sheet, column, q.Get("value"))
	} else {
		recs = h.store.GetAllRecords(r.Context(), book, sheet)
	}
	if recs == nil {
		recs = []record.Record{}
	}
	sendJSON(w, http.StatusOK, recordsResponse{Total: len(recs), Records: recs})
}

func (h *handler) postRecord(w http.ResponseWriter, r *http.Request) {
	book, sheet := chi.URLParam(r, "book"), chi.URLParam(r, "sheet")
	var req appendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Values) == 0 {
		sendError(w, http.StatusBadRequest, "values must be a non-empty array")
		return
	}
	if !h.store.AddRecord(r.Context(), book, sheet, req.Values) {
		sendError(w, http.StatusBadGateway, "append failed")
		return
	}
	sendResponse(w, http.StatusCreated, []byte(`{"ok":true}`))
}

func (h *handler) postClearCache(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCache()
	log.Info("handle cache cleared")
	w.WriteHeader(http.StatusNoContent)
}
