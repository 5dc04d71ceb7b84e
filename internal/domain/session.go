package domain

import "time"

// SessionMaxAge bounds how long persisted authentication state is trusted.
const SessionMaxAge = 7 * 24 * time.Hour

type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  float64
	HTTPOnly bool
	Secure   bool
	SameSite string
}

type NameValue struct {
	Name  string
	Value string
}

type Origin struct {
	Origin       string
	LocalStorage []NameValue
}

// SessionState is the live cookie/storage state of a browsing context.
type SessionState struct {
	Cookies []Cookie
	Origins []Origin
	Model   string
}

func (s SessionState) IsEmpty() bool {
	return len(s.Cookies) == 0 && len(s.Origins) == 0
}

type SessionRecord struct {
	Platform  PlatformID
	Cookies   []Cookie
	Origins   []Origin
	Model     string
	CreatedAt time.Time
}

func (r SessionRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}

func (r SessionRecord) IsFresh(now time.Time) bool {
	return r.Age(now) < SessionMaxAge
}

func (r SessionRecord) State() SessionState {
	return SessionState{Cookies: r.Cookies, Origins: r.Origins, Model: r.Model}
}
