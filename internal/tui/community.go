package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/domain"
	"github.com/nemesisgroup/jobportal/pkg/logger"
)

// defaultRotateInterval is how long each room stays highlighted.
const defaultRotateInterval = 2500 * time.Millisecond

// selfName is the author shown on messages sent from this terminal until
// the server confirms them.
const selfName = "You"

// rotationGen is shared by every widget instance so a tick armed by an
// unmounted widget can never match a newer one.
var rotationGen atomic.Int64

func nextRotationGen() int64 { return rotationGen.Add(1) }

// roomsLoadedMsg carries the room list fetched on mount.
type roomsLoadedMsg struct {
	rooms []domain.ChatRoom
	err   error
}

// rotateTickMsg advances the highlighted room. Ticks whose gen differs from
// the widget's current gen are dropped and not re-armed.
type rotateTickMsg struct {
	gen int64
}

// roomMessagesMsg carries the history of roomID.
type roomMessagesMsg struct {
	roomID   domain.ID
	messages []domain.ChatMessage
	err      error
}

// messageSentMsg carries the outcome of an optimistic send.
type messageSentMsg struct {
	roomID domain.ID
	tempID string
	saved  *domain.ChatMessage
	err    error
}

type roomsState int

const (
	roomsLoading roomsState = iota
	roomsReady
)

type messagesState int

const (
	messagesIdle messagesState = iota
	messagesLoading
	messagesReady
)

// entryState tags a chat entry as awaiting the server or confirmed by it.
type entryState int

const (
	entryPending entryState = iota
	entryConfirmed
)

// chatEntry is one line in the message pane. Pending entries are keyed by
// tempID; confirmed ones by the server message id.
type chatEntry struct {
	state  entryState
	tempID string
	msg    domain.ChatMessage
}

func pendingEntry(tempID string, roomID domain.ID, body string) chatEntry {
	return chatEntry{
		state:  entryPending,
		tempID: tempID,
		msg: domain.ChatMessage{
			RoomID: roomID,
			Body:   body,
			User:   domain.ChatUser{ID: "0", Name: selfName},
		},
	}
}

func confirmedEntry(msg domain.ChatMessage) chatEntry {
	return chatEntry{state: entryConfirmed, msg: msg}
}

// key returns the identity of the entry in its current state.
func (e chatEntry) key() string {
	if e.state == entryPending {
		return "pending:" + e.tempID
	}
	return "confirmed:" + e.msg.ID.String()
}

// communityModel is the home page chat widget: rooms rotate on a timer,
// the highlighted room's recent history is shown and messages can be sent.
type communityModel struct {
	client   *client.Client
	interval time.Duration
	gen      int64

	rooms     []domain.ChatRoom
	roomsSt   roomsState
	active    int
	msgSt     messagesState
	entries   []chatEntry
	lastCount int
	err       string
	status    string

	input        string
	inputFocused bool
	scroll       int // lines scrolled up from bottom (0 = at bottom)

	width  int
	height int
}

func newCommunityModel(c *client.Client, interval time.Duration) communityModel {
	if interval <= 0 {
		interval = defaultRotateInterval
	}
	return communityModel{client: c, interval: interval}
}

func (m communityModel) Init() tea.Cmd {
	return m.loadRooms()
}

func (m communityModel) loadRooms() tea.Cmd {
	c := m.client
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		rooms, err := c.ListRooms(context.Background(), "")
		return roomsLoadedMsg{rooms: rooms, err: err}
	}
}

func (m communityModel) rotateTick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return rotateTickMsg{gen: gen}
	})
}

// loadMessages joins room and fetches its history. The result is tagged
// with the room id so a late answer for a previous room can be discarded.
func (m communityModel) loadMessages(room domain.ChatRoom) tea.Cmd {
	c := m.client
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		if err := c.JoinRoom(ctx, room.ID); err != nil {
			return roomMessagesMsg{roomID: room.ID, err: err}
		}
		msgs, err := c.FetchMessages(ctx, room.ID)
		return roomMessagesMsg{roomID: room.ID, messages: msgs, err: err}
	}
}

func (m communityModel) sendMessage(roomID domain.ID, tempID, body string) tea.Cmd {
	c := m.client
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		saved, err := c.SendMessage(context.Background(), roomID, body)
		return messageSentMsg{roomID: roomID, tempID: tempID, saved: saved, err: err}
	}
}

// activeRoom returns the highlighted room, if any.
func (m communityModel) activeRoom() (domain.ChatRoom, bool) {
	if m.active < 0 || m.active >= len(m.rooms) {
		return domain.ChatRoom{}, false
	}
	return m.rooms[m.active], true
}

// activate highlights room idx, restarts the rotation period and loads the
// room's history. Selecting the already active room changes nothing.
func (m communityModel) activate(idx int) (communityModel, tea.Cmd) {
	if len(m.rooms) == 0 {
		return m, nil
	}
	idx = ((idx % len(m.rooms)) + len(m.rooms)) % len(m.rooms)
	if idx == m.active {
		return m, nil
	}
	m.active = idx
	m.gen = nextRotationGen()
	return m.enterRoom(m.rotateTick())
}

// enterRoom starts the history load for the active room alongside tick.
func (m communityModel) enterRoom(tick tea.Cmd) (communityModel, tea.Cmd) {
	room, ok := m.activeRoom()
	if !ok {
		return m, tick
	}
	m.msgSt = messagesLoading
	m.err = ""
	return m, tea.Batch(tick, m.loadMessages(room))
}

func (m communityModel) Update(msg tea.Msg) (communityModel, tea.Cmd) {
	m, cmd := m.update(msg)
	// Auto-scroll: any change in message count jumps back to the newest line.
	if len(m.entries) != m.lastCount {
		m.lastCount = len(m.entries)
		m.scroll = 0
	}
	return m, cmd
}

func (m communityModel) update(msg tea.Msg) (communityModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case roomsLoadedMsg:
		m.roomsSt = roomsReady
		m.active = 0
		if msg.err != nil {
			lg := logger.Get()
			lg.Warn().Err(msg.err).Msg("list chat rooms")
			m.rooms = nil
			return m, nil
		}
		m.rooms = msg.rooms
		if len(m.rooms) == 0 {
			return m, nil
		}
		m.gen = nextRotationGen()
		return m.enterRoom(m.rotateTick())

	case rotateTickMsg:
		if msg.gen != m.gen || len(m.rooms) == 0 {
			return m, nil
		}
		m.active = (m.active + 1) % len(m.rooms)
		return m.enterRoom(m.rotateTick())

	case roomMessagesMsg:
		room, ok := m.activeRoom()
		if !ok || room.ID != msg.roomID {
			lg := logger.Get()
			lg.Debug().Str("room", msg.roomID.String()).Msg("discarding stale room history")
			return m, nil
		}
		m.msgSt = messagesReady
		if msg.err != nil {
			m.err = "Failed to load messages"
			m.entries = nil
			return m, nil
		}
		m.err = ""
		m.entries = make([]chatEntry, 0, len(msg.messages))
		for _, cm := range msg.messages {
			m.entries = append(m.entries, confirmedEntry(cm))
		}
		return m, nil

	case messageSentMsg:
		idx := m.pendingIndex(msg.tempID)
		if idx < 0 {
			// The room's history was replaced while the send was in flight.
			return m, nil
		}
		if msg.err != nil || msg.saved == nil {
			m.entries = append(m.entries[:idx:idx], m.entries[idx+1:]...)
			m.status = "Message not sent"
			return m, nil
		}
		saved := *msg.saved
		saved.Body = m.entries[idx].msg.Body
		entries := make([]chatEntry, len(m.entries))
		copy(entries, m.entries)
		entries[idx] = confirmedEntry(saved)
		m.entries = entries
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.inputFocused {
			return m.updateInput(msg)
		}
		return m.updateNav(msg)
	}
	return m, nil
}

func (m communityModel) pendingIndex(tempID string) int {
	for i, e := range m.entries {
		if e.state == entryPending && e.tempID == tempID {
			return i
		}
	}
	return -1
}

// send appends a pending entry and issues the request. Empty input or no
// active room is a no-op.
func (m communityModel) send() (communityModel, tea.Cmd) {
	body := strings.TrimSpace(m.input)
	room, ok := m.activeRoom()
	if body == "" || !ok {
		return m, nil
	}
	tempID := uuid.NewString()
	entries := make([]chatEntry, len(m.entries), len(m.entries)+1)
	copy(entries, m.entries)
	m.entries = append(entries, pendingEntry(tempID, room.ID, body))
	m.input = ""
	m.status = ""
	return m, m.sendMessage(room.ID, tempID, body)
}

func (m communityModel) updateInput(msg tea.KeyMsg) (communityModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputFocused = false
		return m, nil
	case "enter":
		return m.send()
	default:
		m.input = editRune(m.input, msg.String())
		return m, nil
	}
}

func (m communityModel) updateNav(msg tea.KeyMsg) (communityModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		return m.activate(m.active + 1)
	case "k", "up":
		return m.activate(m.active - 1)
	case "pgup", "ctrl+u":
		m.scroll += 3
	case "pgdown", "ctrl+d":
		m.scroll -= 3
		if m.scroll < 0 {
			m.scroll = 0
		}
	case "i", "enter":
		m.inputFocused = true
		m.status = ""
	}
	return m, nil
}

func (m communityModel) editing() bool { return m.inputFocused }

func (m communityModel) helpKeys() string {
	if m.inputFocused {
		return helpBar(helpEntry("enter", "send"), helpEntry("esc", "done"))
	}
	return helpBar(helpEntry("j/k", "room"), helpEntry("i", "chat"), helpEntry("pgup/pgdn", "scroll"))
}

func (m communityModel) activeRoomName() string {
	if room, ok := m.activeRoom(); ok {
		return room.Name
	}
	if m.roomsSt == roomsLoading {
		return "Loading..."
	}
	return "No rooms"
}

// View renders the widget.
func (m communityModel) View() string {
	var b strings.Builder

	b.WriteString(accentStyle.Render("✦ Community") + "  " + titleStyle.Render("Join Groups & Get Alerts") + "\n")
	b.WriteString(dimStyle.Render("Follow companies, get job updates, and chat in rooms.") + "\n\n")

	b.WriteString(sectionHeaderStyle.Render("Chat Rooms") + "   " +
		dimStyle.Render("Active: ") + selectedStyle.Render(m.activeRoomName()) + "\n")

	if m.roomsSt == roomsLoading {
		b.WriteString(" " + dimStyle.Render("Loading rooms...") + "\n")
	} else {
		for i, r := range m.rooms {
			if i == m.active {
				b.WriteString(" " + activeRoomStyle.Render(" "+r.Name+" →") + "\n")
			} else {
				b.WriteString("  " + normalStyle.Render(r.Name) + "\n")
			}
		}
	}
	b.WriteString(metaStyle.Render("Tip: Join “Interview Tips” for daily short guidance.") + "\n\n")

	if m.msgSt == messagesLoading {
		b.WriteString(sectionHeaderStyle.Render("Loading messages...") + "\n")
	} else {
		b.WriteString(sectionHeaderStyle.Render(fmt.Sprintf("Messages (last %d)", client.MessageHistoryLimit)) + "\n")
	}

	b.WriteString(m.renderMessages(m.viewportHeight()))

	b.WriteString(renderTextInput(m.input, "Type a message...", m.inputFocused) + "\n")
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	return b.String()
}

// viewportHeight is the number of message lines that fit after the
// widget's fixed rows.
func (m communityModel) viewportHeight() int {
	fixed := 8 + len(m.rooms)
	h := m.height - fixed
	if h < 4 {
		h = 4
	}
	return h
}

func (m communityModel) renderMessages(viewportHeight int) string {
	if m.err != "" {
		return " " + errorStyle.Render(m.err) + "\n"
	}
	if m.msgSt != messagesLoading && len(m.entries) == 0 {
		return " " + dimStyle.Render("No messages yet. Say hi 👋") + "\n"
	}

	var lines []string
	for _, e := range m.entries {
		lines = append(lines, strings.Split(m.renderEntry(e), "\n")...)
	}

	total := len(lines)
	maxScroll := total - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := m.scroll
	if scroll > maxScroll {
		scroll = maxScroll
	}
	end := total - scroll
	start := end - viewportHeight
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, line := range lines[start:end] {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func (m communityModel) renderEntry(e chatEntry) string {
	name := e.msg.Author()
	prefix := " " + chatNameStyle.Render(name+":") + " "
	if e.msg.User.Name == selfName {
		prefix = " " + chatSelfNameStyle.Render(name+":") + " "
	}

	width := m.width - lipgloss.Width(prefix) - 2
	if width < 20 {
		width = 20
	}
	body := lipgloss.NewStyle().Width(width).Render(e.msg.Body)
	lines := strings.Split(body, "\n")

	style := chatTextStyle
	if e.state == entryPending {
		style = chatPendingStyle
	}
	out := prefix + style.Render(strings.TrimRight(lines[0], " "))
	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	for _, l := range lines[1:] {
		out += "\n" + indent + style.Render(strings.TrimRight(l, " "))
	}
	if e.state == entryPending {
		out += chatSepStyle.Render(" · ") + chatPendingStyle.Render("sending")
	}
	return out
}
