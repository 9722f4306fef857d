package service

import (
	"sync"

	"harborbank/internal/auth/models"
)

// OnAuthStateChange registers listener for every sign-in and sign-out.
// Delivery order among listeners is unspecified.
func (s *Service) OnAuthStateChange(listener models.AuthStateListener) models.Unsubscribe {
	s.listenersMu.Lock()
	key := s.nextListener
	s.nextListener++
	s.listeners[key] = listener
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, key)
			s.listenersMu.Unlock()
		})
	}
}

// notify must be called with opMu held. Each listener gets its own copy.
func (s *Service) notify(session *models.Session) {
	s.listenersMu.Lock()
	snapshot := make([]models.AuthStateListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		snapshot = append(snapshot, l)
	}
	s.listenersMu.Unlock()

	for _, l := range snapshot {
		l(session.Clone())
	}
}
