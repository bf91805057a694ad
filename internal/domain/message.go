package domain

// Contact is a phone number shared by the user
type Contact struct {
	Phone string
	Name  string
}

// Document is a file sent by the user
type Document struct {
	FileID   string
	FileName string
	MIME     string
}

// InboundEvent is a decoded user update
type InboundEvent struct {
	UserID   UserID
	Text     string
	Contact  *Contact
	Document *Document
}

// OutboundMessage is a reply to the user.
// Options are selectable labels grouped into rows.
type OutboundMessage struct {
	Text           string
	Options        [][]string
	RequestContact bool
}

// MessageRef identifies a sent message so it can be edited later
type MessageRef string

// CommandResult is the outcome of a command executed outside the flow engine.
// Payload is relayed to the user verbatim.
type CommandResult struct {
	OK      bool
	Payload string
}
