package domain

// ChatRoom is a community room as listed by the backend.
type ChatRoom struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ChatUser is the author attached to a chat message.
type ChatUser struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ChatMessage is a single message in a room.
type ChatMessage struct {
	ID     ID       `json:"id"`
	RoomID ID       `json:"room_id"`
	Body   string   `json:"body"`
	User   ChatUser `json:"user"`
}

// Author returns the display name of the sender.
func (m ChatMessage) Author() string {
	if m.User.Name != "" {
		return m.User.Name
	}
	return "Member"
}
