package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"ryven.shop/web/internal/observability"
)

const (
	defaultSessionCookie = "RYVEN_WEB_SESSION"
	defaultSessionMaxAge = 30 * 24 * time.Hour
)

// ErrInvalidSessionConfig indicates the store was initialised with missing or invalid options.
var ErrInvalidSessionConfig = errors.New("session: invalid config")

// SessionData is the per-visitor state persisted in the signed cookie.
type SessionData struct {
	ID        string    `json:"id"`
	Locale    string    `json:"locale,omitempty"`
	MenuOpen  bool      `json:"menu,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool
}

// MarkDirty flags the session for writing at end of request.
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// SetMenuOpen records the menu state, marking the session dirty only on change.
func (s *SessionData) SetMenuOpen(open bool) {
	if s.MenuOpen == open {
		return
	}
	s.MenuOpen = open
	s.MarkDirty()
}

// SessionOptions controls cookie encoding.
type SessionOptions struct {
	CookieName string
	HashKey    []byte
	BlockKey   []byte
	Secure     bool
	MaxAge     time.Duration
}

// SessionStore decodes and persists SessionData via signed (and optionally encrypted) cookies.
type SessionStore struct {
	name   string
	codec  *securecookie.SecureCookie
	secure bool
	maxAge time.Duration
}

// NewSessionStore builds a store. A hash key is required; the block key enables encryption.
func NewSessionStore(opts SessionOptions) (*SessionStore, error) {
	if len(opts.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidSessionConfig)
	}
	if n := len(opts.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		return nil, fmt.Errorf("%w: block key must be 16, 24 or 32 bytes", ErrInvalidSessionConfig)
	}
	if opts.CookieName == "" {
		opts.CookieName = defaultSessionCookie
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = defaultSessionMaxAge
	}
	var block []byte
	if len(opts.BlockKey) > 0 {
		block = opts.BlockKey
	}
	codec := securecookie.New(opts.HashKey, block)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(opts.MaxAge.Seconds()))

	return &SessionStore{
		name:   opts.CookieName,
		codec:  codec,
		secure: opts.Secure,
		maxAge: opts.MaxAge,
	}, nil
}

// EphemeralHashKey returns a random signing key for development runs without a configured key.
func EphemeralHashKey() []byte {
	return securecookie.GenerateRandomKey(32)
}

// Middleware loads or initializes a session and stores it in request context.
// The cookie is written just before the first response write when the session changed.
func (s *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := s.read(r)
		if sd.ID == "" {
			now := time.Now().UTC()
			sd.ID = randID()
			sd.CreatedAt = now
			sd.UpdatedAt = now
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}

		rw := NewResponseRecorder(w)
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				s.write(w, r, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(WithSession(r.Context(), sd)))
		// handler wrote nothing; persist before net/http sends the implicit 200
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			s.write(w, r, sd)
		}
	})
}

func (s *SessionStore) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := s.codec.Decode(s.name, c.Value, &sd); err != nil {
		observability.FromContext(r.Context()).Debug("session cookie rejected", zap.Error(err))
		return &SessionData{}, false
	}
	return &sd, true
}

func (s *SessionStore) write(w http.ResponseWriter, r *http.Request, sd *SessionData) {
	encoded, err := s.codec.Encode(s.name, sd)
	if err != nil {
		observability.FromContext(r.Context()).Error("encode session", zap.Error(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.maxAge.Seconds()),
	})
	sd.dirty = false
}

// GetSession returns session data from the request context, or an empty detached session.
func GetSession(r *http.Request) *SessionData {
	if sd, ok := SessionFromContext(r.Context()); ok {
		return sd
	}
	return &SessionData{}
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
