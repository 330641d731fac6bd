package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// CookieStore is the client's view of the cookies shared with the server.
type CookieStore interface {
	// Cookies returns every visible cookie as "name=value" pairs joined by
	// "; ", the way a browser exposes document.cookie.
	Cookies() string
	// SetCookie stores c. A negative MaxAge or a past Expires removes it.
	SetCookie(c *http.Cookie)
}

// MemoryCookies is an in-process CookieStore that keeps insertion order.
type MemoryCookies struct {
	mu      sync.RWMutex
	order   []string
	cookies map[string]*http.Cookie
	now     func() time.Time
}

func NewMemoryCookies(initial ...*http.Cookie) *MemoryCookies {
	m := &MemoryCookies{
		cookies: make(map[string]*http.Cookie),
		now:     time.Now,
	}
	for _, c := range initial {
		m.SetCookie(c)
	}
	return m
}

func (m *MemoryCookies) Cookies() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pairs := make([]string, 0, len(m.order))
	for _, name := range m.order {
		pairs = append(pairs, name+"="+m.cookies[name].Value)
	}
	return strings.Join(pairs, "; ")
}

func (m *MemoryCookies) SetCookie(c *http.Cookie) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(m.now()))
	if expired {
		m.remove(c.Name)
		return
	}

	cp := *c
	if _, ok := m.cookies[c.Name]; !ok {
		m.order = append(m.order, c.Name)
	}
	m.cookies[c.Name] = &cp
}

// Cookie returns the last stored cookie with the given name, attributes included.
func (m *MemoryCookies) Cookie(name string) (*http.Cookie, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cookies[name]
	if !ok {
		return nil, false
	}
	cp := *c
	return &cp, true
}

func (m *MemoryCookies) remove(name string) {
	if _, ok := m.cookies[name]; !ok {
		return
	}
	delete(m.cookies, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// JarCookies exposes an http.CookieJar as a CookieStore for one site. Give
// the same jar to the http.Client so cookies set by the server (csrftoken)
// and by the client (access_token) travel both ways.
type JarCookies struct {
	jar http.CookieJar
	u   *url.URL
}

func NewJarCookies(jar http.CookieJar, siteURL string) (*JarCookies, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("parse site url: %w", err)
	}
	root := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	return &JarCookies{jar: jar, u: root}, nil
}

func (j *JarCookies) Cookies() string {
	cookies := j.jar.Cookies(j.u)
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}

func (j *JarCookies) SetCookie(c *http.Cookie) {
	j.jar.SetCookies(j.u, []*http.Cookie{c})
}

// cookieValue finds name among document.cookie style pairs. Whitespace
// around pairs is ignored; the value is URI-decoded when possible.
func cookieValue(raw, name string) string {
	for _, part := range strings.Split(raw, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || strings.TrimSpace(k) != name {
			continue
		}
		if decoded, err := url.PathUnescape(v); err == nil {
			return decoded
		}
		return v
	}
	return ""
}
