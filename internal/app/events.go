package app

import "giftroom/internal/domain"

// Outbound is one payload addressed to one connection. Operations return the
// full set they produced; the transport delivers it after the state change,
// best-effort.
type Outbound struct {
	To    domain.ConnID
	Event any
}

// Wire events. Type tags and field names are the client contract.
type (
	ErrorEvent struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}

	RoomCreated struct {
		Type         string   `json:"type"`
		RoomID       string   `json:"room_id"`
		Participants []string `json:"participants"`
		HostName     string   `json:"host_name"`
	}

	Joined struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}

	RoomUpdate struct {
		Type         string   `json:"type"`
		RoomID       string   `json:"room_id"`
		Participants []string `json:"participants"`
		HostName     string   `json:"host_name"`
	}

	Disconnected struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}

	HostChanged struct {
		Type     string `json:"type"`
		HostName string `json:"host_name"`
	}

	Revealed struct {
		Type       string `json:"type"`
		GifteeName string `json:"giftee_name"`
	}
)

func NewErrorEvent(err error) ErrorEvent {
	return ErrorEvent{Type: "error", Message: err.Error()}
}

func newRoomCreated(snap domain.RoomSnapshot) RoomCreated {
	return RoomCreated{
		Type:         "room_created",
		RoomID:       snap.Code,
		Participants: snap.MemberNames(),
		HostName:     snap.Host.Name,
	}
}

func newRoomUpdate(snap domain.RoomSnapshot) RoomUpdate {
	return RoomUpdate{
		Type:         "room_update",
		RoomID:       snap.Code,
		Participants: snap.MemberNames(),
		HostName:     snap.Host.Name,
	}
}
