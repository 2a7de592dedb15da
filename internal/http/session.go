package httpx

import (
	"context"
	"errors"
	"net/http"

	"newsstand/internal/repository"
	"newsstand/internal/token"
)

type sessionContextKey string

const contextKeySession sessionContextKey = "newsstand-session"

// Identity is the authenticated editor for the current request, threaded
// through the request context instead of any ambient session state.
type Identity struct {
	UserID   string
	Username string
}

type contextSetter interface {
	SetContext(context.Context)
}

// requireSession ensures the request carries a valid session cookie bound
// to an existing user before invoking the handler.
func (r *Router) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, _, ok := r.ensureSession(w, req)
		if !ok {
			return
		}
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx))
	}
}

// ensureSession validates the session cookie and enriches the context. The
// bound username is always re-resolved against the credential store, so a
// token naming a deleted user never passes.
func (r *Router) ensureSession(w http.ResponseWriter, req *http.Request) (context.Context, Identity, bool) {
	cookie, err := req.Cookie(r.cfg.SessionCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return req.Context(), Identity{}, false
	}
	claims, err := token.Parse(cookie.Value, r.cfg.SessionSecret)
	if err != nil {
		r.logger.Warn("session token invalid", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusUnauthorized, "authentication required")
		return req.Context(), Identity{}, false
	}
	user, err := r.accounts.Resolve(req.Context(), claims.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			r.logger.Error("session user lookup failed", "error", err, "path", req.URL.Path)
		}
		writeError(w, http.StatusUnauthorized, "authentication required")
		return req.Context(), Identity{}, false
	}
	identity := Identity{UserID: user.ID, Username: user.Username}
	ctx := context.WithValue(req.Context(), contextKeySession, identity)
	return ctx, identity, true
}

// identityFromContext extracts the session identity from context.
func identityFromContext(ctx context.Context) (Identity, bool) {
	value := ctx.Value(contextKeySession)
	if value == nil {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// startSession issues a signed token and sets the session cookie.
func (r *Router) startSession(w http.ResponseWriter, username string) error {
	signed, err := token.Issue(username, r.cfg.SessionSecret, r.cfg.SessionTTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     r.cfg.SessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(r.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// endSession clears the session cookie. Clearing an absent session is fine.
func (r *Router) endSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
