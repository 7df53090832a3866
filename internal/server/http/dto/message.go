package dto

import (
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
)

// MessageRequest is the new message form.
type MessageRequest struct {
	Title string `form:"title" json:"title"`
	Text  string `form:"text" json:"text"`
}

// AuthorResponse is shown only to members.
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// MessageResponse is a single board entry.
type MessageResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
	Author    *AuthorResponse `json:"author,omitempty"`
}

// ViewerResponse describes the logged-in visitor.
type ViewerResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Member      bool      `json:"member"`
}

// BoardResponse is the body of GET /.
type BoardResponse struct {
	Viewer   *ViewerResponse   `json:"viewer"`
	Messages []MessageResponse `json:"messages"`
}

// ValidationResponse reports rejected input together with the echoed draft.
// Messages is set when the board is re-rendered alongside the form.
type ValidationResponse struct {
	Draft    any                       `json:"draft"`
	Errors   []domainErrors.FieldError `json:"errors"`
	Messages []MessageResponse         `json:"messages,omitempty"`
}

// NewViewer converts an identity; nil stays nil.
func NewViewer(identity *model.Identity) *ViewerResponse {
	if identity == nil {
		return nil
	}
	return &ViewerResponse{
		ID:          identity.ID,
		FirstName:   identity.FirstName,
		LastName:    identity.LastName,
		DisplayName: identity.DisplayName(),
		Email:       identity.LoginID,
		Member:      identity.Member,
	}
}

// NewMessages converts board entries.
func NewMessages(entries []model.BoardEntry) []MessageResponse {
	out := make([]MessageResponse, 0, len(entries))
	for _, e := range entries {
		msg := MessageResponse{ID: e.ID, Title: e.Title, Text: e.Text, CreatedAt: e.CreatedAt}
		if e.Author != nil {
			msg.Author = &AuthorResponse{ID: e.Author.ID, FirstName: e.Author.FirstName, LastName: e.Author.LastName}
		}
		out = append(out, msg)
	}
	return out
}
