package session

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie set on every response that starts a
// session.
const CookieName = "bookshop_session"

// Claims are the JWT claims carried by the session cookie. Only the session
// id travels to the client; user identity and flashes stay server-side.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type state struct {
	userEmail string
	flashes   []string
}

// Manager issues and resolves browser sessions. The cookie holds a signed
// session id; the associated state (signed-in user, pending flash messages)
// lives in an in-memory table, so a restart signs everyone out.
type Manager struct {
	secret []byte
	expiry time.Duration

	mu       sync.Mutex
	sessions map[string]*state
}

// NewManager creates a session manager signing cookies with the given secret.
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secret:   []byte(secret),
		expiry:   expiry,
		sessions: make(map[string]*state),
	}
}

// Resolve returns the session id for the request, minting a new session and
// setting its cookie on the response when the request carries none or an
// invalid one.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := m.validate(c.Value); err == nil {
			m.mu.Lock()
			_, ok := m.sessions[id]
			m.mu.Unlock()
			if ok {
				return id
			}
		}
	}

	return m.start(w)
}

// start mints a fresh session and sets its cookie.
func (m *Manager) start(w http.ResponseWriter) string {
	id := uuid.New().String()

	m.mu.Lock()
	m.sessions[id] = &state{}
	m.mu.Unlock()

	token, err := m.sign(id)
	if err != nil {
		// Signing only fails on a broken secret; the session still works
		// for this request, the client just cannot carry it forward.
		return id
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.expiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// SetUser records the signed-in user's email on the session.
func (m *Manager) SetUser(sessionID, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.userEmail = email
	}
}

// User returns the signed-in user's email, or "" when anonymous.
func (m *Manager) User(sessionID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		return s.userEmail
	}
	return ""
}

// ClearUser signs the session's user out, keeping the session itself.
func (m *Manager) ClearUser(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.userEmail = ""
	}
}

// Flash queues a message to be shown on the next rendered page.
func (m *Manager) Flash(sessionID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.flashes = append(s.flashes, message)
	}
}

// PopFlashes returns and clears the queued messages.
func (m *Manager) PopFlashes(sessionID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || len(s.flashes) == 0 {
		return nil
	}

	flashes := s.flashes
	s.flashes = nil
	return flashes
}

func (m *Manager) sign(sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			Issuer:    "bookshop",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

func (m *Manager) validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token claims")
	}

	return claims.SessionID, nil
}
