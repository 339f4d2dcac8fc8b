package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note represents a note assigned to a user. UserID is a weak owner reference,
// not an ownership relation; deleting a note never touches the user.
type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Text      string             `bson:"text" json:"text"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NoteWithUser is a note annotated with the owning user's username, as returned
// by GET /notes
type NoteWithUser struct {
	Note
	Username string `json:"username"`
}

// CreateNoteRequest is the body of POST /notes
type CreateNoteRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// UpdateNoteRequest is the body of PATCH /notes.
// Completed is a pointer so a missing or mistyped field is distinguishable from
// false. The owner may arrive as "userId" or as the legacy "user" field; OwnerID
// resolves the canonical value.
type UpdateNoteRequest struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	LegacyUser string `json:"user,omitempty"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Completed  *bool  `json:"completed"`
}

// OwnerID returns the canonical owner reference from the request body
func (r *UpdateNoteRequest) OwnerID() string {
	if r.UserID != "" {
		return r.UserID
	}
	return r.LegacyUser
}

// DeleteNoteRequest is the body of DELETE /notes
type DeleteNoteRequest struct {
	ID string `json:"id"`
}
