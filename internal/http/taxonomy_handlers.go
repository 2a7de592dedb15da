package httpx

import (
	"encoding/json"
	"net/http"
	"strings"

	"newsstand/internal/domain"
)

// handleTaxonomyList serves GET /{kind}s, sorted ascending by value. It is
// the only taxonomy route open to unauthenticated clients.
func (r *Router) handleTaxonomyList(w http.ResponseWriter, req *http.Request, kind domain.TaxonomyKind) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	entries, err := r.taxonomy.List(req.Context(), kind)
	if err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{string(kind) + "s": entriesPayload(entries)})
}

// handleTaxonomySubroutes dispatches the session-guarded taxonomy routes:
// /{kind}s/new, /{kind}s/{id}, /{kind}s/{id}/edit, /{kind}s/{id}/delete.
func (r *Router) handleTaxonomySubroutes(w http.ResponseWriter, req *http.Request, kind domain.TaxonomyKind) {
	trimmed := strings.TrimPrefix(req.URL.Path, "/"+string(kind)+"s/")
	parts := strings.Split(trimmed, "/")
	switch {
	case len(parts) == 1 && parts[0] == "new":
		r.handleTaxonomyNew(w, req, kind)
	case len(parts) == 1 && parts[0] != "":
		r.handleTaxonomyGet(w, req, kind, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "edit":
		r.handleTaxonomyEdit(w, req, kind, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "delete":
		r.handleTaxonomyDelete(w, req, kind, parts[0])
	default:
		r.notFound(w)
	}
}

func (r *Router) handleTaxonomyNew(w http.ResponseWriter, req *http.Request, kind domain.TaxonomyKind) {
	switch req.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{"kind": string(kind)})
	case http.MethodPost:
		var payload struct {
			Value string `json:"value"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		entry, err := r.taxonomy.Add(req.Context(), kind, payload.Value)
		if err != nil {
			r.serviceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "new " + string(kind) + " added",
			"entry":   entryPayload(*entry),
		})
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleTaxonomyGet(w http.ResponseWriter, req *http.Request, kind domain.TaxonomyKind, id string) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	entry, err := r.taxonomy.Get(req.Context(), kind, id)
	if err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entryPayload(*entry)})
}

func (r *Router) handleTaxonomyEdit(w http.ResponseWriter, req *http.Request, kind domain.TaxonomyKind, id string) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := r.taxonomy.Update(req.Context(), kind, id, payload.Value); err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": string(kind) + " successfully updated"})
}

func (r *Router) handleTaxonomyDelete(w http.ResponseWriter, req *http.Request, kind domain.TaxonomyKind, id string) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	if err := r.taxonomy.Remove(req.Context(), kind, id); err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": string(kind) + " deleted"})
}
