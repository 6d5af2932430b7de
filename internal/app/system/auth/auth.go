// Package auth reads the session cookie issued by the external sign-in
// service and gates the admin API by role. It never issues credentials; Save
// exists so the sign-in service and tests can mint a compatible cookie.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/edupath/internal/app/system/respond"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	DefaultSessionName = "edupath-session"

	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
	userName  = "user_name"
	userEmail = "user_email"
	userRole  = "user_role"
)

// SessionUser is the caller as described by the session cookie.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// HasRole reports whether the user holds one of roles (case-insensitive).
func (u *SessionUser) HasRole(roles ...string) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if strings.EqualFold(strings.TrimSpace(r), u.Role) {
			return true
		}
	}
	return false
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager decodes the session cookie.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a manager for cookie name signed with sessionKey.
// An empty key is rejected unless allowEphemeral is set, in which case a
// random key is generated and every existing cookie stops decoding.
func NewSessionManager(sessionKey, name, domain string, ttl time.Duration, secure bool, allowEphemeral bool, logger *zap.Logger) (*SessionManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(sessionKey)
	if sessionKey == "" {
		if !allowEphemeral {
			return nil, fmt.Errorf("session key is empty; provide at least 32 random characters")
		}
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, errors.New("could not generate an ephemeral session key")
		}
		logger.Warn("no session key configured; using an ephemeral key")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Name is the cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// LoadSessionUser puts the session's user, if any, into the request context.
// Cookies that fail to decode are treated as anonymous.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			var cerr securecookie.Error
			if errors.As(err, &cerr) && cerr.IsDecode() {
				sm.log.Debug("ignoring undecodable session cookie", zap.String("path", r.URL.Path))
			} else {
				sm.log.Warn("session load failed", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			r = WithUser(r, &SessionUser{
				ID:    getString(sess, userIDKey),
				Name:  getString(sess, userName),
				Email: getString(sess, userEmail),
				Role:  strings.ToUpper(getString(sess, userRole)),
			})
		}
		next.ServeHTTP(w, r)
	})
}

// Save writes u into the session cookie on w.
func (sm *SessionManager) Save(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userName] = u.Name
	sess.Values[userEmail] = u.Email
	sess.Values[userRole] = u.Role
	return sess.Save(r, w)
}

// RequireSignedIn answers 401 when there is no user in context.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			respond.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole answers 401 without a user and 403 when the user holds none of
// allowed.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Unauthorized(w)
				return
			}
			if !u.HasRole(allowed...) {
				sm.log.Info("role check failed",
					zap.String("user_id", u.ID),
					zap.String("role", u.Role),
					zap.Strings("allowed", allowed),
					zap.String("path", r.URL.Path))
				respond.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser returns the user placed in context by LoadSessionUser.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	return UserFromContext(r.Context())
}

// UserFromContext is CurrentUser for code that only has a context.
func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithUser returns r carrying u. Handler tests use it to skip the cookie.
func WithUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
