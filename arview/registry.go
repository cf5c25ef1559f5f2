// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arview

import "sync"

// registry records the session that is initializing or
// active on each surface, keyed by surface id.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// claim registers a session made by newSession on the given surface
// unless one is already registered, in which case it returns that one
// and false.
func (rg *registry) claim(id string, newSession func() *Session) (*Session, bool) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	if s, ok := rg.sessions[id]; ok {
		return s, false
	}
	if rg.sessions == nil {
		rg.sessions = map[string]*Session{}
	}
	s := newSession()
	rg.sessions[id] = s
	return s, true
}

// release removes the registration of the given surface
// if it still belongs to the given session.
func (rg *registry) release(id string, s *Session) bool {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	if rg.sessions[id] != s {
		return false
	}
	delete(rg.sessions, id)
	return true
}

func (rg *registry) get(id string) *Session {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	return rg.sessions[id]
}

func (rg *registry) len() int {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	return len(rg.sessions)
}
