package handlers

import (
	"net/http"

	"dicel-erp/internal/query"

	"github.com/go-chi/chi/v5"
)

// mountRecords registers the uniform resource contract of one entity.
// extra adds entity actions under the same prefix.
func (h *Handler) mountRecords(r chi.Router, svc RecordService, extra func(chi.Router)) {
	r.Route("/"+svc.Entity().Path, func(r chi.Router) {
		if extra != nil {
			extra(r)
		}
		r.Get("/", h.listRecords(svc))
		r.Get("/stats", h.recordStats(svc))
		r.Get("/{id}", h.getRecord(svc))
		r.Post("/", h.createRecord(svc))
		r.Put("/{id}", h.updateRecord(svc))
		r.Patch("/{id}", h.updateRecord(svc))
		r.Delete("/{id}", h.deleteRecord(svc))
	})
}

func (h *Handler) listRecords(svc RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := query.ParseList(r.URL.Query(), svc.Entity(), h.defaults)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		page, err := svc.List(r.Context(), opts)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		respondData(w, http.StatusOK, page)
	}
}

func (h *Handler) recordStats(svc RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		respondData(w, http.StatusOK, stats)
	}
}

func (h *Handler) getRecord(svc RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		respondData(w, http.StatusOK, doc)
	}
}

func (h *Handler) createRecord(svc RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeRecord(w, r)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		doc, err := svc.Create(r.Context(), actorID(r), body)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		respondData(w, http.StatusCreated, doc)
	}
}

func (h *Handler) updateRecord(svc RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeRecord(w, r)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		doc, err := svc.Update(r.Context(), actorID(r), chi.URLParam(r, "id"), body)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		respondData(w, http.StatusOK, doc)
	}
}

func (h *Handler) deleteRecord(svc RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := svc.Delete(r.Context(), actorID(r), id); err != nil {
			h.respondError(w, r, err)
			return
		}
		respondData(w, http.StatusOK, map[string]any{"id": id, "isActive": false})
	}
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		return nil, err
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// AdminListRecords lists any entity including deactivated records.
func (h *Handler) AdminListRecords(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.records[chi.URLParam(r, "path")]
	if !ok {
		h.respondError(w, r, errNoResource)
		return
	}
	opts, err := query.ParseList(r.URL.Query(), svc.Entity(), h.defaults)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	opts.IncludeInactive = true
	page, err := svc.List(r.Context(), opts)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, page)
}
