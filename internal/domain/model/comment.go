package model

import "time"

type Comment struct {
	ID       int64  `json:"id"`
	Contents string `json:"contents"`
	TodoID   int64  `json:"todoId"`
	User     *User  `json:"user,omitempty"`

	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}
