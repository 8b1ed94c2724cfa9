package app

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"giftroom/internal/domain"
)

// ErrAlreadyBound reports a second Bind for a connection that is still in a
// room.
var ErrAlreadyBound = errors.New("connection already bound to a room")

// ConnectionRegistry owns the connection -> room-code mapping. A connection
// belongs to at most one room at a time.
type ConnectionRegistry struct {
	mu     sync.RWMutex
	byConn map[domain.ConnID]string
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{byConn: make(map[domain.ConnID]string)}
}

func (r *ConnectionRegistry) Bind(id domain.ConnID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byConn[id]; ok {
		return ErrAlreadyBound
	}
	r.byConn[id] = code
	log.Debug().Str("module", "app.registry").Str("conn", string(id)).Str("code", code).Msg("bound")
	return nil
}

func (r *ConnectionRegistry) Lookup(id domain.ConnID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.byConn[id]
	return code, ok
}

// Unbind removes the mapping. Unbinding an unknown connection is a no-op.
func (r *ConnectionRegistry) Unbind(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byConn, id)
	log.Debug().Str("module", "app.registry").Str("conn", string(id)).Msg("unbound")
}

// Len reports the number of bound connections.
func (r *ConnectionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}
