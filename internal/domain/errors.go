package domain

import "errors"

// Client-visible failures. The message text is the wire contract and must
// not change.
var (
	ErrNameRequired          = errors.New("Name required")
	ErrRoomIDRequired        = errors.New("Room ID required")
	ErrRoomNotFound          = errors.New("Room not found")
	ErrAlreadyInRoom         = errors.New("Already in a room")
	ErrNameTaken             = errors.New("Name already taken")
	ErrNotHost               = errors.New("Not the host")
	ErrNotEnoughParticipants = errors.New("Not enough participants")
	ErrNotInRoom             = errors.New("Not in a room")
)
