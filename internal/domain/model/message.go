package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is a board post bound to its author at creation time.
type Message struct {
	ID        uuid.UUID
	Title     string
	Text      string
	AuthorID  uuid.UUID
	CreatedAt time.Time
}

// Author holds display data resolved from the author reference.
type Author struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
}

// BoardEntry is a message with its author resolved at read time. Author is nil
// when the author is hidden from the viewer or could not be resolved.
type BoardEntry struct {
	Message
	Author *Author
}

// Masked returns a copy of the entry without author data.
func (e BoardEntry) Masked() BoardEntry {
	e.Author = nil
	e.AuthorID = uuid.Nil
	return e
}

// MessageDraft is the user input for a new message.
type MessageDraft struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
