package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"frustration-list/internal/catalog"
	"frustration-list/internal/model"
	"frustration-list/internal/session"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ItemView is an Item formatted for the templates.
type ItemView struct {
	ID       string
	Text     string
	Category model.Category
	Impact   int
	Date     string
}

func newItemViews(items []model.Item) []ItemView {
	out := make([]ItemView, len(items))
	for i, item := range items {
		out[i] = ItemView{
			ID:       item.ID.String(),
			Text:     item.Text,
			Category: item.Category,
			Impact:   int(item.Impact),
			Date:     item.CreatedAt.Format("Jan 02, 2006 15:04"),
		}
	}
	return out
}

type pageData struct {
	Tagline      string
	View         model.View
	Views        []model.View
	Notification string
	Published    []ItemView
	Pending      []ItemView
	Filtered     []ItemView
	Filter       catalog.Filter
	Draft        session.Draft
	Categories   []model.Category
	Impacts      []model.Impact
}

func newPageData(snap session.Snapshot) pageData {
	return pageData{
		Tagline:      model.Tagline,
		View:         snap.View,
		Views:        model.Views,
		Notification: snap.Notification,
		Published:    newItemViews(snap.Published),
		Pending:      newItemViews(snap.Pending),
		Filtered:     newItemViews(snap.Filtered),
		Filter:       snap.Filter,
		Draft:        snap.Draft,
		Categories:   model.Categories,
		Impacts:      model.Impacts,
	}
}

// render writes the page for the session's current view.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int) {
	snap, err := s.session.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("Failed to read session", zap.Error(err))
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "layout", newPageData(snap)); err != nil {
		s.logger.Error("Template error", zap.Error(err))
	}
}

// show switches to view v and renders it.
func (s *Server) show(w http.ResponseWriter, r *http.Request, v model.View) {
	if err := s.session.SetView(r.Context(), v); err != nil {
		s.logger.Error("Failed to switch view", zap.Error(err))
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	v, err := s.session.View(r.Context())
	if err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/"+string(v), http.StatusSeeOther)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	s.show(w, r, model.ViewTop)
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if _, ok := q["category"]; ok {
		c, err := model.ParseFilterCategory(q.Get("category"))
		if err != nil {
			http.Error(w, "Invalid category", http.StatusBadRequest)
			return
		}
		if err := s.session.SetFilter(r.Context(), c); err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
	}
	if _, ok := q["q"]; ok {
		if err := s.session.SetQuery(r.Context(), q.Get("q")); err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
	}
	s.show(w, r, model.ViewBrowse)
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	s.show(w, r, model.ViewSubmit)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	text := r.FormValue("text")
	category, catErr := model.ParseCategory(r.FormValue("category"))
	impact, impErr := model.ParseImpact(r.FormValue("impact"))
	if err := errors.Join(catErr, impErr); err != nil {
		// The selectors only offer valid values, so this is a hand-made request.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.session.SetDraft(ctx, session.Draft{Text: text, Category: category, Impact: impact}); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	_, err := s.session.Submit(ctx, text, category, impact)
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		if err := s.session.SetView(ctx, model.ViewSubmit); err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		s.render(w, r, http.StatusUnprocessableEntity)
	case err != nil:
		s.logger.Error("Submit failed", zap.Error(err))
		http.Error(w, "Failed to save", http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	s.show(w, r, model.ViewAdmin)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	s.moderate(w, r, s.session.Approve)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.moderate(w, r, s.session.Reject)
}

func (s *Server) moderate(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id uuid.UUID) (bool, error)) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	// Already-moderated IDs are a no-op; the admin page simply no longer lists them.
	if _, err := action(r.Context(), id); err != nil {
		s.logger.Error("Moderation failed", zap.String("item_id", id.String()), zap.Error(err))
		http.Error(w, "Moderation failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleSwitchView(w http.ResponseWriter, r *http.Request) {
	v, ok := model.ParseView(mux.Vars(r)["name"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.session.SetView(r.Context(), v); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/"+string(v), http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.session.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("Failed to read session", zap.Error(err))
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"health": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
