package model

import "time"

type Todo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Contents string `json:"contents"`
	Weather  string `json:"weather"` // captured once at creation
	User     *User  `json:"user,omitempty"`

	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

func NewTodo(title, contents, weather string, owner *User) *Todo {
	return &Todo{Title: title, Contents: contents, Weather: weather, User: owner}
}
