package http

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/metrics"
	"market-stand-admin/internal/present"
	"market-stand-admin/internal/view"
)

const (
	dashboardTitle = "Market Stand Dashboard"
	standsTitle    = "Market Stands Management"
)

// PageHandler serves the admin pages. Every request mounts a fresh view,
// waits for its first fetch and renders the resulting snapshot.
type PageHandler struct {
	stats    view.StatsSource
	stands   view.StandGateway
	metrics  *metrics.Metrics
	renderer *renderer
}

// NewPageHandler creates a page handler backed by the given gateway reads and writes
func NewPageHandler(stats view.StatsSource, stands view.StandGateway, m *metrics.Metrics) (*PageHandler, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		stats:    stats,
		stands:   stands,
		metrics:  m,
		renderer: r,
	}, nil
}

// Dashboard handles GET /
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d := view.MountDashboard(r.Context(), h.stats, h.metrics)
	defer d.Unmount()

	if err := d.Wait(r.Context()); err != nil {
		h.renderer.renderLoading(w, dashboardTitle, pageDashboard)
		return
	}

	stats, loading := d.Snapshot()
	if loading {
		h.renderer.renderLoading(w, dashboardTitle, pageDashboard)
		return
	}
	h.renderer.render(w, http.StatusOK, pageDashboard, page{
		Title:  dashboardTitle,
		Active: pageDashboard,
		Body:   present.NewDashboard(stats),
	})
}

// Stands handles GET /stands
func (h *PageHandler) Stands(w http.ResponseWriter, r *http.Request) {
	v, ok := h.mountStands(w, r)
	if !ok {
		return
	}
	defer v.Unmount()
	h.renderStands(w, v)
}

// UpdateStatus handles POST /stands/{id}/status
func (h *PageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := standID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	status, err := domain.ParseStandStatus(r.PostFormValue("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, ok := h.mountStands(w, r)
	if !ok {
		return
	}
	defer v.Unmount()

	logger.InfoContext(r.Context(), "Stand status change requested", "stand_id", id, "status", status)
	v.UpdateStatus(r.Context(), id, status)
	h.renderStands(w, v)
}

// ConfirmDelete handles GET /stands/{id}/delete
func (h *PageHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := standID(w, r)
	if !ok {
		return
	}
	row := present.NewStandRow(domain.MarketStand{ID: id})
	h.renderer.render(w, http.StatusOK, pageConfirmDelete, page{
		Title:  standsTitle,
		Active: pageStands,
		Body: struct {
			Prompt string
			ID     string
			Path   string
		}{view.DeletePrompt, row.ID, row.Path},
	})
}

// Delete handles POST /stands/{id}/delete. Only confirm=yes sends the delete.
func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := standID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	answer := r.PostFormValue("confirm")

	v, ok := h.mountStands(w, r)
	if !ok {
		return
	}
	defer v.Unmount()

	logger.InfoContext(r.Context(), "Stand delete requested", "stand_id", id, "confirmed", answer == "yes")
	v.Delete(r.Context(), id, func(string) bool { return answer == "yes" })
	h.renderStands(w, v)
}

// standID decodes the {id} path segment. The router matches on the escaped
// path, so an id may carry an encoded "/".
func standID(w http.ResponseWriter, r *http.Request) (domain.StandID, bool) {
	raw, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil || raw == "" {
		http.Error(w, "Invalid stand id", http.StatusBadRequest)
		return "", false
	}
	return domain.StandID(raw), true
}

// mountStands mounts the management view and waits for its first fetch. It
// renders the loading page and reports false when the request ends first.
func (h *PageHandler) mountStands(w http.ResponseWriter, r *http.Request) (*view.Stands, bool) {
	v := view.MountStands(r.Context(), h.stands, h.metrics)
	if err := v.Wait(r.Context()); err != nil {
		v.Unmount()
		h.renderer.renderLoading(w, standsTitle, pageStands)
		return nil, false
	}
	return v, true
}

func (h *PageHandler) renderStands(w http.ResponseWriter, v *view.Stands) {
	stands, loading := v.Snapshot()
	if loading {
		h.renderer.renderLoading(w, standsTitle, pageStands)
		return
	}
	h.renderer.render(w, http.StatusOK, pageStands, page{
		Title:  standsTitle,
		Active: pageStands,
		Body:   present.NewStandRows(stands),
	})
}

// RegisterPageRoutes registers the admin page endpoints
func RegisterPageRoutes(router *mux.Router, handler *PageHandler) {
	router.HandleFunc("/", handler.Dashboard).Methods(http.MethodGet)
	router.HandleFunc("/stands", handler.Stands).Methods(http.MethodGet)
	router.HandleFunc("/stands/{id}/status", handler.UpdateStatus).Methods(http.MethodPost)
	router.HandleFunc("/stands/{id}/delete", handler.ConfirmDelete).Methods(http.MethodGet)
	router.HandleFunc("/stands/{id}/delete", handler.Delete).Methods(http.MethodPost)
}
