package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the root user record in the document store. Records written by the
// mobile client may carry fields we never read; Extra keeps them intact for
// pass-through responses.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	AuthUID   string             `bson:"auth_uid,omitempty" json:"auth_uid,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`

	Extra map[string]interface{} `bson:",inline" json:"-"`
}

// DisplayName is what the activity feed shows for a user: the email when we
// have one, otherwise a truncated identifier.
func (u User) DisplayName() string {
	if u.Email != "" {
		return u.Email
	}
	id := u.ID.Hex()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
