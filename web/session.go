package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
)

const sessionCookieName = "tl_session"

// pageState carries one-shot messages across a post/redirect/get cycle.
type pageState struct {
	flash       string
	createDraft *createDraft
}

// sessions keys page state by the browser's session cookie so one browser
// never sees another's flash message or form errors.
type sessions struct {
	mu    sync.Mutex
	state map[string]*pageState
}

func newSessions() *sessions {
	return &sessions{state: make(map[string]*pageState)}
}

// update applies fn to the state of the request's session, issuing a
// session cookie first when the request has none.
func (s *sessions) update(w http.ResponseWriter, r *http.Request, fn func(*pageState)) {
	id := sessionID(r)
	if id == "" {
		id = newSessionID()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    id,
			Path:     "/web/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state[id]
	if state == nil {
		state = &pageState{}
		s.state[id] = state
	}
	fn(state)
}

// consume removes and returns the request's pending state.
func (s *sessions) consume(r *http.Request) pageState {
	id := sessionID(r)
	if id == "" {
		return pageState{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.state[id]
	if !ok {
		return pageState{}
	}
	delete(s.state, id)
	return *state
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func newSessionID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
