package domain

// RoomSnapshot is a read-only copy of a room taken under its lock.
// Members keeps join order; the host is always one of them.
type RoomSnapshot struct {
	Code    string
	Host    Participant
	Members []Participant
}

// MemberNames returns display names in join order, as sent to clients.
func (s RoomSnapshot) MemberNames() []string {
	names := make([]string, 0, len(s.Members))
	for _, m := range s.Members {
		names = append(names, m.Name)
	}
	return names
}
