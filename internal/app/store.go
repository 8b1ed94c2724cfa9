package app

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"giftroom/internal/domain"
)

// ErrCodeCollision reports an attempt to create a room under a code that is
// already live. Callers retry with a fresh code.
var ErrCodeCollision = errors.New("room code already in use")

// room is the authoritative aggregate. All access goes through its mutex;
// snapshots are handed out instead of the live slice.
type room struct {
	mu      sync.Mutex
	code    string
	host    domain.Participant
	members []domain.Participant
	deleted bool
}

func (r *room) snapshotLocked() domain.RoomSnapshot {
	members := make([]domain.Participant, len(r.members))
	copy(members, r.members)
	return domain.RoomSnapshot{Code: r.code, Host: r.host, Members: members}
}

// RoomStore owns every live room, keyed by code. The outer lock guards the
// map only; member lists are guarded per room, so operations on different
// rooms do not block each other.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]*room)}
}

// Create registers a new room with the given host as its only member.
func (s *RoomStore) Create(code string, host domain.Participant) (domain.RoomSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[code]; ok {
		return domain.RoomSnapshot{}, ErrCodeCollision
	}
	r := &room{code: code, host: host, members: []domain.Participant{host}}
	s.rooms[code] = r
	log.Debug().Str("module", "app.store").Str("code", code).Str("host", host.Name).Msg("room created")
	return r.snapshotLocked(), nil
}

func (s *RoomStore) get(code string) (*room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[code]
	return r, ok
}

// Get returns a snapshot of the room, if it exists.
func (s *RoomStore) Get(code string) (domain.RoomSnapshot, bool) {
	r, ok := s.get(code)
	if !ok {
		return domain.RoomSnapshot{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return domain.RoomSnapshot{}, false
	}
	return r.snapshotLocked(), true
}

// AddMember appends p to the room. The name-uniqueness check and the append
// happen under the room lock, so two racing joins with the same name cannot
// both succeed.
func (s *RoomStore) AddMember(code string, p domain.Participant) (domain.RoomSnapshot, error) {
	r, ok := s.get(code)
	if !ok {
		return domain.RoomSnapshot{}, domain.ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return domain.RoomSnapshot{}, domain.ErrRoomNotFound
	}
	for _, m := range r.members {
		if m.Name == p.Name {
			return domain.RoomSnapshot{}, domain.ErrNameTaken
		}
	}
	r.members = append(r.members, p)
	log.Debug().Str("module", "app.store").Str("code", code).Str("name", p.Name).Msg("member added")
	return r.snapshotLocked(), nil
}

// RemoveResult describes what RemoveMember did to the room.
type RemoveResult struct {
	Removed     domain.Participant
	Deleted     bool
	HostChanged bool
	Room        domain.RoomSnapshot // zero when Deleted
}

// RemoveMember drops the member identified by id. If the host leaves and
// members remain, the earliest joiner is promoted. The last member leaving
// deletes the room. Returns false if the room or member does not exist.
func (s *RoomStore) RemoveMember(code string, id domain.ConnID) (RemoveResult, bool) {
	r, ok := s.get(code)
	if !ok {
		return RemoveResult{}, false
	}

	r.mu.Lock()
	if r.deleted {
		r.mu.Unlock()
		return RemoveResult{}, false
	}
	idx := -1
	for i, m := range r.members {
		if m.ConnID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		r.mu.Unlock()
		return RemoveResult{}, false
	}

	res := RemoveResult{Removed: r.members[idx]}
	r.members = append(r.members[:idx], r.members[idx+1:]...)

	if len(r.members) == 0 {
		r.deleted = true
		r.mu.Unlock()
		s.mu.Lock()
		delete(s.rooms, code)
		s.mu.Unlock()
		res.Deleted = true
		log.Debug().Str("module", "app.store").Str("code", code).Msg("room deleted")
		return res, true
	}

	if res.Removed.ConnID == r.host.ConnID {
		r.host = r.members[0]
		res.HostChanged = true
		log.Debug().Str("module", "app.store").Str("code", code).Str("host", r.host.Name).Msg("host promoted")
	}
	res.Room = r.snapshotLocked()
	r.mu.Unlock()
	return res, true
}

// Len reports the number of live rooms.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
