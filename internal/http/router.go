package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"newsstand/internal/config"
	"newsstand/internal/domain"
	"newsstand/internal/repository"
	"newsstand/internal/service/account"
	"newsstand/internal/service/catalog"
	"newsstand/internal/service/taxonomy"
)

const healthCheckTimeout = 2 * time.Second

// Router wires HTTP endpoints to services.
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	accounts account.Service
	catalog  catalog.Service
	taxonomy taxonomy.Service
	cfg      config.Config
	dbHealth func(context.Context) error
}

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, accounts account.Service, catalogSvc catalog.Service, taxonomySvc taxonomy.Service, cfg config.Config, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		accounts: accounts,
		catalog:  catalogSvc,
		taxonomy: taxonomySvc,
		cfg:      cfg,
		dbHealth: dbHealth,
	}
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.HandleFunc("/healthz", r.audit(r.handleHealthz))
	r.mux.HandleFunc("/", r.audit(r.handleArticleList))
	r.mux.HandleFunc("/articles", r.audit(r.handleArticleList))
	r.mux.HandleFunc("/articles/", r.audit(r.handleArticleSubroutes))
	r.mux.HandleFunc("/search", r.audit(r.handleSearch))
	r.mux.HandleFunc("/register", r.audit(r.handleRegister))
	r.mux.HandleFunc("/login", r.audit(r.handleLogin))
	r.mux.HandleFunc("/logout", r.audit(r.requireSession(r.handleLogout)))
	r.mux.HandleFunc("/profile/", r.audit(r.requireSession(r.handleProfile)))
	for _, kind := range domain.TaxonomyKinds {
		kind := kind
		r.mux.HandleFunc("/"+string(kind)+"s", r.audit(func(w http.ResponseWriter, req *http.Request) {
			r.handleTaxonomyList(w, req, kind)
		}))
		r.mux.HandleFunc("/"+string(kind)+"s/", r.audit(r.requireSession(func(w http.ResponseWriter, req *http.Request) {
			r.handleTaxonomySubroutes(w, req, kind)
		})))
	}
}

// serviceError maps service and repository failures onto HTTP statuses.
// Store faults surface as a generic 500 and are logged, never swallowed.
func (r *Router) serviceError(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, account.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, account.ErrInvalidInput),
		errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, taxonomy.ErrUnknownKind),
		errors.Is(err, taxonomy.ErrValueRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		r.logger.Error("request failed", "error", err, "method", req.Method, "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func articlePayload(a domain.Article) map[string]any {
	return map[string]any{
		"id":          a.ID,
		"title":       a.Title,
		"author":      a.Author,
		"layout":      a.Layout,
		"page_count":  a.PageCount,
		"description": a.Description,
		"editor":      a.Editor,
		"month":       a.Month,
		"year":        a.Year,
		"created_at":  a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func articlesPayload(articles []domain.Article) []map[string]any {
	payload := make([]map[string]any, 0, len(articles))
	for _, a := range articles {
		payload = append(payload, articlePayload(a))
	}
	return payload
}

func entryPayload(e domain.TaxonomyEntry) map[string]any {
	return map[string]any{
		"id":    e.ID,
		"kind":  string(e.Kind),
		"value": e.Value,
	}
}

func entriesPayload(entries []domain.TaxonomyEntry) []map[string]any {
	payload := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		payload = append(payload, entryPayload(e))
	}
	return payload
}

func (r *Router) handleArticleList(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" && req.URL.Path != "/articles" {
		r.notFound(w)
		return
	}
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	articles, err := r.catalog.List(req.Context())
	if err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articlesPayload(articles)})
}

func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	articles, err := r.catalog.Search(req.Context(), payload.Query)
	if err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articlesPayload(articles)})
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, err := r.accounts.Register(req.Context(), payload.Username, payload.Password)
	if err != nil {
		r.serviceError(w, req, err)
		return
	}
	if err := r.startSession(w, user.Username); err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "registration successful",
		"user":    map[string]any{"id": user.ID, "username": user.Username},
	})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, err := r.accounts.Login(req.Context(), payload.Username, payload.Password)
	if err != nil {
		r.serviceError(w, req, err)
		return
	}
	if err := r.startSession(w, user.Username); err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "welcome, " + user.Username,
		"user":    map[string]any{"id": user.ID, "username": user.Username},
	})
}

func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	r.endSession(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "you have been logged out"})
}

func (r *Router) handleProfile(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	identity, ok := identityFromContext(req.Context())
	if !ok {
		r.logger.Error("session context missing for profile", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "session context missing")
		return
	}
	// The profile shown is always the session user's own, regardless of
	// the username in the path.
	user, err := r.accounts.Resolve(req.Context(), identity.Username)
	if err != nil {
		r.serviceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":         user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
}

func (r *Router) handleArticleSubroutes(w http.ResponseWriter, req *http.Request) {
	trimmed := strings.TrimPrefix(req.URL.Path, "/articles/")
	parts := strings.Split(trimmed, "/")
	switch {
	case len(parts) == 1 && parts[0] == "new":
		r.requireSession(r.handleArticleNew)(w, req)
	case len(parts) == 2 && parts[0] != "" && parts[1] == "edit":
		articleID := parts[0]
		r.requireSession(func(w http.ResponseWriter, req *http.Request) {
			r.handleArticleEdit(w, req, articleID)
		})(w, req)
	default:
		r.notFound(w)
	}
}

// taxonomyOptions gathers every taxonomy collection for the article form.
func (r *Router) taxonomyOptions(ctx context.Context) (map[string]any, error) {
	options := make(map[string]any, len(domain.TaxonomyKinds))
	for _, kind := range domain.TaxonomyKinds {
		entries, err := r.taxonomy.List(ctx, kind)
		if err != nil {
			return nil, err
		}
		options[string(kind)+"s"] = entriesPayload(entries)
	}
	return options, nil
}

func (r *Router) handleArticleNew(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		options, err := r.taxonomyOptions(req.Context())
		if err != nil {
			r.serviceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"options": options})
	case http.MethodPost:
		var input catalog.Input
		if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		article, err := r.catalog.Create(req.Context(), input)
		if err != nil {
			r.serviceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "article successfully added",
			"article": articlePayload(*article),
		})
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleArticleEdit(w http.ResponseWriter, req *http.Request, articleID string) {
	switch req.Method {
	case http.MethodGet:
		article, err := r.catalog.Get(req.Context(), articleID)
		if err != nil {
			r.serviceError(w, req, err)
			return
		}
		options, err := r.taxonomyOptions(req.Context())
		if err != nil {
			r.serviceError(w, req, err)
			return
		}
		articles, err := r.catalog.ListByTitle(req.Context())
		if err != nil {
			r.serviceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"article":  articlePayload(*article),
			"options":  options,
			"articles": articlesPayload(articles),
		})
	case http.MethodPost:
		var input catalog.Input
		if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		article, err := r.catalog.Update(req.Context(), articleID, input)
		if err != nil {
			r.serviceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "article successfully updated",
			"article": articlePayload(*article),
		})
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{"status": "down", "error": err.Error()}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (r *Router) notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}
