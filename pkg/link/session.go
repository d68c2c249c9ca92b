package link

import (
	"sync"

	"github.com/google/uuid"

	"github.com/blelink-protocol/blelink-go/pkg/platform"
)

// Session is the handle for an established raw link.
//
// It is created when a connect sequence starts and handed to the caller in
// the ready event once discovery and negotiation complete. The negotiated
// transfer size starts at the conservative ATT minimum and is updated when
// negotiation finishes.
type Session struct {
	// ID uniquely identifies this connection attempt.
	ID string

	// DeviceID is the peripheral this session is bound to.
	DeviceID string

	mu         sync.RWMutex
	mtu        int
	discovered bool
}

// newSession creates a session with the conservative default transfer size.
func newSession(deviceID string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		DeviceID: deviceID,
		mtu:      platform.DefaultATTMTU,
	}
}

// MTU returns the negotiated transfer size. Before negotiation completes
// this is the ATT default minimum.
func (s *Session) MTU() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mtu
}

// ServicesDiscovered reports whether service discovery has completed.
func (s *Session) ServicesDiscovered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.discovered
}

func (s *Session) setMTU(mtu int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mtu = mtu
}

func (s *Session) setDiscovered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discovered = true
}
