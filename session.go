package main

import "sync"

// SessionStore maps caller session identifiers to rule configurations.
//
// Lifecycle: an entry exists only after an explicit Set; Resolve on a
// missing key returns the default preset, never an absent value; Clear
// removes the entry so subsequent Resolves revert to the default.
// Implementations must be linearizable per session key. There is no
// implicit expiry.
type SessionStore interface {
	// Resolve returns the stored config for the session, or the
	// default preset when none exists.
	Resolve(sessionID string) RuleConfig

	// Set replaces (never merges) the stored config for the session.
	Set(sessionID string, cfg RuleConfig)

	// Clear removes the session entry if present.
	Clear(sessionID string)
}

// MemorySessionStore is the default in-process SessionStore backed by
// a mutex-guarded map. Cross-session operations contend only on the
// map itself; config values are copied in and out, so callers never
// share mutable state.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]RuleConfig
}

// NewMemorySessionStore returns an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]RuleConfig)}
}

func (s *MemorySessionStore) Resolve(sessionID string) RuleConfig {
	s.mu.RLock()
	cfg, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return DefaultRules()
	}
	return cfg
}

func (s *MemorySessionStore) Set(sessionID string, cfg RuleConfig) {
	s.mu.Lock()
	s.sessions[sessionID] = cfg
	s.mu.Unlock()
}

func (s *MemorySessionStore) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}
