package app

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"giftroom/internal/domain"
)

// RoomService orchestrates the store and the registry into the four client
// operations. Every mutating operation either fully applies or leaves both
// untouched; the returned Outbound set reflects the state after the change.
type RoomService struct {
	store    *RoomStore
	registry *ConnectionRegistry
	codes    CodeGenerator
}

func NewRoomService(store *RoomStore, registry *ConnectionRegistry, codes CodeGenerator) *RoomService {
	return &RoomService{store: store, registry: registry, codes: codes}
}

// CreateRoom opens a fresh room with the caller as host and sole member.
func (s *RoomService) CreateRoom(id domain.ConnID, name string) ([]Outbound, error) {
	if _, ok := s.registry.Lookup(id); ok {
		return nil, domain.ErrAlreadyInRoom
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	host := domain.Participant{ConnID: id, Name: name}
	var snap domain.RoomSnapshot
	for {
		code := s.codes.NewCode()
		created, err := s.store.Create(code, host)
		if err == nil {
			snap = created
			break
		}
		if !errors.Is(err, ErrCodeCollision) {
			return nil, err
		}
		log.Warn().Str("module", "app.service").Str("code", code).Msg("code collision, regenerating")
	}

	if err := s.registry.Bind(id, snap.Code); err != nil {
		// lost a race against another create/join from the same connection
		s.store.RemoveMember(snap.Code, id)
		return nil, domain.ErrAlreadyInRoom
	}

	log.Info().Str("module", "app.service").Str("code", snap.Code).Str("host", name).Msg("room created")
	return toRoom(snap, newRoomCreated(snap)), nil
}

// JoinRoom adds the caller to an existing room under a unique display name.
func (s *RoomService) JoinRoom(id domain.ConnID, code, name string) ([]Outbound, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrRoomIDRequired
	}
	if _, ok := s.store.Get(code); !ok {
		return nil, domain.ErrRoomNotFound
	}
	if _, ok := s.registry.Lookup(id); ok {
		return nil, domain.ErrAlreadyInRoom
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	snap, err := s.store.AddMember(code, domain.Participant{ConnID: id, Name: name})
	if err != nil {
		return nil, err
	}
	if err := s.registry.Bind(id, code); err != nil {
		s.store.RemoveMember(code, id)
		return nil, domain.ErrAlreadyInRoom
	}

	log.Info().Str("module", "app.service").Str("code", code).Str("name", name).Msg("member joined")
	out := toRoom(snap, Joined{Type: "joined", Name: name})
	out = append(out, toRoom(snap, newRoomUpdate(snap))...)
	return out, nil
}

// Leave detaches a disconnected caller from its room, promoting a new host
// or deleting the room as needed. Unknown connections are a no-op.
func (s *RoomService) Leave(id domain.ConnID) []Outbound {
	code, ok := s.registry.Lookup(id)
	if !ok {
		return nil
	}
	s.registry.Unbind(id)

	res, ok := s.store.RemoveMember(code, id)
	if !ok {
		// registry said bound, store disagrees: a broken invariant, not a
		// user error
		log.Error().Str("module", "app.service").Str("conn", string(id)).Str("code", code).Msg("registry bound to missing room member")
		return nil
	}
	if res.Deleted {
		log.Info().Str("module", "app.service").Str("code", code).Msg("last member left, room closed")
		return nil
	}

	var out []Outbound
	if res.HostChanged {
		out = append(out, toRoom(res.Room, HostChanged{Type: "host_changed", HostName: res.Room.Host.Name})...)
	}
	out = append(out, toRoom(res.Room, Disconnected{Type: "disconnected", Name: res.Removed.Name})...)
	out = append(out, toRoom(res.Room, newRoomUpdate(res.Room))...)
	log.Info().Str("module", "app.service").Str("code", code).Str("name", res.Removed.Name).Msg("member left")
	return out
}

// Reveal draws the assignment and addresses each member their giftee
// privately. Pure read plus fan-out; room state is not touched.
func (s *RoomService) Reveal(id domain.ConnID) ([]Outbound, error) {
	code, ok := s.registry.Lookup(id)
	if !ok {
		return nil, domain.ErrNotInRoom
	}
	snap, ok := s.store.Get(code)
	if !ok {
		log.Error().Str("module", "app.service").Str("conn", string(id)).Str("code", code).Msg("registry bound to missing room")
		return nil, domain.ErrNotInRoom
	}
	if snap.Host.ConnID != id {
		return nil, domain.ErrNotHost
	}
	if len(snap.Members) < 2 {
		return nil, domain.ErrNotEnoughParticipants
	}

	perm := Shuffle(snap.Members)
	out := make([]Outbound, 0, len(snap.Members))
	for i, m := range snap.Members {
		out = append(out, Outbound{
			To:    m.ConnID,
			Event: Revealed{Type: "revealed", GifteeName: perm[i].Name},
		})
	}
	log.Info().Str("module", "app.service").Str("code", code).Int("members", len(snap.Members)).Msg("assignment revealed")
	return out, nil
}

// toRoom addresses one event to every member of the snapshot.
func toRoom(snap domain.RoomSnapshot, event any) []Outbound {
	out := make([]Outbound, 0, len(snap.Members))
	for _, m := range snap.Members {
		out = append(out, Outbound{To: m.ConnID, Event: event})
	}
	return out
}
