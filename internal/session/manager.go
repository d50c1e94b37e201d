package session

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/remote"
)

const (
	KeyUser      = "admin_user"
	KeyToken     = "admin_token"
	KeyLoginTime = "admin_login_time"
	KeyAPICookie = "admin_api_cookie"

	MaxAge = 8 * time.Hour
)

var sessionKeys = []string{KeyUser, KeyToken, KeyLoginTime, KeyAPICookie}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*remote.LoginResult, error)
	Logout(ctx context.Context, headers http.Header) error
}

// Manager owns one browser's admin session. Restore is the "page load"
// check; expiry is not re-evaluated afterwards, the remote API rejects stale
// tokens on its own.
type Manager struct {
	store     Store
	auth      Authenticator
	now       func() time.Time
	user      *models.User
	token     string
	cookie    string
	loginTime time.Time
}

func NewManager(store Store, auth Authenticator, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store: store,
		auth:  auth,
		now:   now,
	}
}

// Restore loads a persisted session. Anything incomplete, unreadable or older
// than MaxAge is purged.
func (m *Manager) Restore(ctx context.Context) bool {
	rawUser, okUser := m.store.Get(ctx, KeyUser)
	token, okToken := m.store.Get(ctx, KeyToken)
	rawTime, okTime := m.store.Get(ctx, KeyLoginTime)

	if !okUser || !okToken || !okTime || token == "" {
		m.purge(ctx)
		return false
	}

	ms, err := strconv.ParseInt(rawTime, 10, 64)
	if err != nil {
		m.purge(ctx)
		return false
	}
	loginTime := time.UnixMilli(ms)
	if m.now().Sub(loginTime) >= MaxAge {
		m.purge(ctx)
		return false
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		m.purge(ctx)
		return false
	}

	cookie, _ := m.store.Get(ctx, KeyAPICookie)

	m.user = &user
	m.token = token
	m.cookie = cookie
	m.loginTime = loginTime
	return true
}

// Login never returns an error to the caller; failures are logged and
// reported as false. Storage is only written on success.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	res, err := m.auth.Login(ctx, username, password)
	if err != nil {
		log.Printf("Admin login failed: %v", err)
		return false
	}
	if !bool(res.Response.Success) || res.Response.Token == "" {
		log.Printf("Admin login rejected: success=%v token_present=%v", bool(res.Response.Success), res.Response.Token != "")
		return false
	}

	now := m.now()
	user := buildUser(res.Response.Admin, now)
	rawUser, err := json.Marshal(user)
	if err != nil {
		log.Printf("Admin login: encode user: %v", err)
		return false
	}
	cookie := cookieHeader(res.Cookies)

	if err := m.persist(ctx, string(rawUser), res.Response.Token, now, cookie); err != nil {
		log.Printf("Admin login: persist session: %v", err)
		m.purge(ctx)
		return false
	}

	m.user = &user
	m.token = res.Response.Token
	m.cookie = cookie
	m.loginTime = now
	return true
}

func (m *Manager) persist(ctx context.Context, rawUser, token string, at time.Time, cookie string) error {
	if err := m.store.Set(ctx, KeyUser, rawUser); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyLoginTime, strconv.FormatInt(at.UnixMilli(), 10)); err != nil {
		return err
	}
	if cookie != "" {
		return m.store.Set(ctx, KeyAPICookie, cookie)
	}
	return nil
}

// Logout tells the API first (errors ignored) and then always clears local
// state.
func (m *Manager) Logout(ctx context.Context) {
	if m.auth != nil && m.token != "" {
		if err := m.auth.Logout(ctx, m.AuthHeaders()); err != nil {
			log.Printf("Remote logout failed: %v", err)
		}
	}
	m.purge(ctx)
}

func (m *Manager) purge(ctx context.Context) {
	m.user = nil
	m.token = ""
	m.cookie = ""
	m.loginTime = time.Time{}
	if err := m.store.Clear(ctx, sessionKeys...); err != nil {
		log.Printf("Clear session storage: %v", err)
	}
}

func (m *Manager) IsAuthenticated() bool {
	return m.user != nil && m.token != ""
}

func (m *Manager) User() (models.User, bool) {
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

func (m *Manager) Token() string {
	return m.token
}

func (m *Manager) LoginTime() time.Time {
	return m.loginTime
}

// ExpiresAt is informational only; see Restore.
func (m *Manager) ExpiresAt() time.Time {
	if m.loginTime.IsZero() {
		return time.Time{}
	}
	return m.loginTime.Add(MaxAge)
}

func (m *Manager) AuthHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if m.token != "" {
		h.Set("Authorization", "Bearer "+m.token)
	}
	if m.cookie != "" {
		h.Set("Cookie", m.cookie)
	}
	return h
}

func buildUser(admin *remote.AdminPayload, now time.Time) models.User {
	user := models.User{
		ID:        1,
		Role:      models.RoleAdmin,
		CreatedAt: now,
	}
	if admin == nil {
		return user
	}

	if admin.ID != nil {
		user.ID = int(*admin.ID)
	}
	user.Email = admin.Email
	if role := models.Role(admin.Role); role.Valid() {
		user.Role = role
	}
	if admin.CreatedAt != "" {
		if t, ok := parseTimestamp(admin.CreatedAt); ok {
			user.CreatedAt = t
		}
	}
	return user
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cookieHeader(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}
