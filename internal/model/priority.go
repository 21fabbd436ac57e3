package model

import "strings"

// DefaultPriorityName is the protected fallback priority.
const DefaultPriorityName = "Default"

// Priority is a named priority label referenced by tasks.
type Priority struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (p Priority) IsDefault() bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), DefaultPriorityName)
}
