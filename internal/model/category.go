package model

// Category is a named group of tasks. Names are unique ignoring case.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
