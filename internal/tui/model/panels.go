package model

import (
	"strconv"
	"unicode"

	"reliefctl/internal/api"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// ListState is the state of one list panel. Seq numbers the loads issued for
// the panel; only the result of the latest one is applied.
type ListState[T any] struct {
	Items   []T
	Loaded  bool
	Loading bool
	Seq     uint64
	Cursor  int
	Err     error
}

// Begin marks a new load and returns its sequence number.
func (l *ListState[T]) Begin() uint64 {
	l.Seq++
	l.Loading = true
	return l.Seq
}

// Current reports whether seq answers the most recent load.
func (l *ListState[T]) Current(seq uint64) bool {
	return seq == l.Seq
}

// Replace swaps in a freshly loaded collection.
func (l *ListState[T]) Replace(items []T) {
	l.Items = items
	l.Loaded = true
	l.Loading = false
	l.Err = nil
	l.clampCursor()
}

// Fail records a failed load; the previous items stay visible.
func (l *ListState[T]) Fail(err error) {
	l.Loading = false
	l.Err = err
}

// Move shifts the cursor by delta, clamped to the list.
func (l *ListState[T]) Move(delta int) {
	l.Cursor += delta
	l.clampCursor()
}

// Selected returns the item under the cursor.
func (l *ListState[T]) Selected() (T, bool) {
	var zero T
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return zero, false
	}
	return l.Items[l.Cursor], true
}

func (l *ListState[T]) clampCursor() {
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// FormField describes one input of a Form.
type FormField struct {
	Label       string
	Placeholder string
	CharLimit   int
	// Digits restricts typing to 0-9.
	Digits bool
	Masked bool
}

// Form is a set of text inputs submitted together. InFlight is set while a
// submission is outstanding; further submissions are dropped until it clears.
type Form struct {
	Fields   []FormField
	Inputs   []textinput.Model
	Focus    int
	InFlight bool
}

// NewForm builds a form with one input per field.
func NewForm(fields ...FormField) *Form {
	f := &Form{Fields: fields}
	for _, field := range fields {
		f.Inputs = append(f.Inputs, newInput(field))
	}
	return f
}

func newInput(field FormField) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = field.Placeholder
	ti.Prompt = ""
	ti.Width = 40
	if field.CharLimit > 0 {
		ti.CharLimit = field.CharLimit
	}
	if field.Masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Value returns the raw value of input i.
func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.Inputs) {
		return ""
	}
	return f.Inputs[i].Value()
}

// SetValue sets input i.
func (f *Form) SetValue(i int, v string) {
	if i < 0 || i >= len(f.Inputs) {
		return
	}
	f.Inputs[i].SetValue(v)
}

// Values returns every input value in field order.
func (f *Form) Values() []string {
	out := make([]string, len(f.Inputs))
	for i := range f.Inputs {
		out[i] = f.Inputs[i].Value()
	}
	return out
}

// Empty reports whether every input is blank.
func (f *Form) Empty() bool {
	for i := range f.Inputs {
		if f.Inputs[i].Value() != "" {
			return false
		}
	}
	return true
}

// FocusField focuses input i and blurs the rest.
func (f *Form) FocusField(i int) {
	if len(f.Inputs) == 0 {
		return
	}
	if i < 0 {
		i = len(f.Inputs) - 1
	}
	if i >= len(f.Inputs) {
		i = 0
	}
	f.Focus = i
	for j := range f.Inputs {
		if j == i {
			f.Inputs[j].Focus()
		} else {
			f.Inputs[j].Blur()
		}
	}
}

// Next and Prev cycle focus through the inputs.
func (f *Form) Next() { f.FocusField(f.Focus + 1) }
func (f *Form) Prev() { f.FocusField(f.Focus - 1) }

// OnLastField reports whether the last input has focus.
func (f *Form) OnLastField() bool {
	return f.Focus == len(f.Inputs)-1
}

// Blur removes focus from every input.
func (f *Form) Blur() {
	for i := range f.Inputs {
		f.Inputs[i].Blur()
	}
}

// Reset clears every input and moves focus back to the first one.
func (f *Form) Reset() {
	for i := range f.Inputs {
		f.Inputs[i].Reset()
	}
	f.Focus = 0
}

// Update forwards msg to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.Focus < 0 || f.Focus >= len(f.Inputs) {
		return nil
	}
	if f.Fields[f.Focus].Digits {
		if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyRunes {
			km.Runes = digitsOnly(km.Runes)
			if len(km.Runes) == 0 {
				return nil
			}
			msg = km
		}
	}
	var cmd tea.Cmd
	f.Inputs[f.Focus], cmd = f.Inputs[f.Focus].Update(msg)
	return cmd
}

func digitsOnly(runes []rune) []rune {
	out := runes[:0:0]
	for _, r := range runes {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

// SupplyRow is a requestable supply with its quantity input. Max is the
// available quantity at render time and is not refreshed until the next load.
type SupplyRow struct {
	Supply   api.Supply
	Qty      textinput.Model
	Max      int
	InFlight bool
}

// NewSupplyRow builds a row with the quantity defaulting to 1.
func NewSupplyRow(s api.Supply) SupplyRow {
	qty := newInput(FormField{Placeholder: "qty", CharLimit: 6})
	qty.Width = 6
	qty.SetValue("1")
	return SupplyRow{Supply: s, Qty: qty, Max: s.Quantity}
}

// SupplyRows wraps a loaded supply list.
func SupplyRows(items []api.Supply) []SupplyRow {
	rows := make([]SupplyRow, 0, len(items))
	for _, s := range items {
		rows = append(rows, NewSupplyRow(s))
	}
	return rows
}

// MentalPhase is the state of the mental-health tab.
type MentalPhase int

const (
	MentalChecking MentalPhase = iota
	MentalUnavailable
	MentalNeedsConfiguration
	MentalChatActive
)

func (p MentalPhase) String() string {
	switch p {
	case MentalChecking:
		return "Checking"
	case MentalUnavailable:
		return "Unavailable"
	case MentalNeedsConfiguration:
		return "NeedsConfiguration"
	case MentalChatActive:
		return "ChatActive"
	default:
		return "Unknown(" + strconv.Itoa(int(p)) + ")"
	}
}

// ChatRole is the author of a transcript entry.
type ChatRole string

const (
	RoleUser   ChatRole = "user"
	RoleBot    ChatRole = "bot"
	RoleSystem ChatRole = "system"
)

// ChatStatus tracks delivery of a user entry.
type ChatStatus int

const (
	ChatDelivered ChatStatus = iota
	ChatPending
	ChatFailed
)

// ChatEntry is one line of the support-chat transcript.
type ChatEntry struct {
	ID     string
	Role   ChatRole
	Text   string
	Status ChatStatus
}

// MentalHealthState is the mental-health tab. The transcript lives only as
// long as one visit to the tab.
type MentalHealthState struct {
	Phase      MentalPhase
	Seq        uint64
	KeyForm    *Form
	ChatForm   *Form
	Transcript []ChatEntry
	Err        error
}

// NewMentalHealthState returns the tab in its checking phase.
func NewMentalHealthState() MentalHealthState {
	return MentalHealthState{
		Phase:    MentalChecking,
		KeyForm:  NewForm(FormField{Label: "API key", Placeholder: "provider API key", Masked: true}),
		ChatForm: NewForm(FormField{Label: "Message", Placeholder: "Type a message", CharLimit: 2000}),
	}
}

// Begin starts a fresh availability check and discards the transcript.
func (s *MentalHealthState) Begin() uint64 {
	s.Seq++
	s.Phase = MentalChecking
	s.Transcript = nil
	s.Err = nil
	s.KeyForm.Reset()
	s.KeyForm.InFlight = false
	s.ChatForm.Reset()
	s.ChatForm.InFlight = false
	return s.Seq
}

// Apply moves to the phase implied by status.
func (s *MentalHealthState) Apply(status api.MentalHealthStatus) {
	switch {
	case !status.Available:
		s.Phase = MentalUnavailable
	case !status.Configured:
		s.Phase = MentalNeedsConfiguration
	default:
		s.Phase = MentalChatActive
	}
}

// AppendUser adds a pending user entry and returns its id.
func (s *MentalHealthState) AppendUser(text string) string {
	id := uuid.NewString()
	s.Transcript = append(s.Transcript, ChatEntry{ID: id, Role: RoleUser, Text: text, Status: ChatPending})
	return id
}

// Deliver marks entry id delivered and appends the bot reply. It reports
// false when the entry is not in the current transcript.
func (s *MentalHealthState) Deliver(id, reply string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.Transcript[i].Status = ChatDelivered
	s.Transcript = append(s.Transcript, ChatEntry{ID: uuid.NewString(), Role: RoleBot, Text: reply})
	return true
}

// FailEntry marks entry id failed and appends a system entry with reason.
func (s *MentalHealthState) FailEntry(id, reason string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.Transcript[i].Status = ChatFailed
	s.Transcript = append(s.Transcript, ChatEntry{ID: uuid.NewString(), Role: RoleSystem, Text: reason})
	return true
}

func (s *MentalHealthState) find(id string) int {
	for i := range s.Transcript {
		if s.Transcript[i].ID == id {
			return i
		}
	}
	return -1
}
