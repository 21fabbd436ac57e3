package model

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPostponed  Status = "POSTPONED"
	StatusCompleted  Status = "COMPLETED"
	StatusDelayed    Status = "DELAYED"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusPostponed, StatusCompleted, StatusDelayed}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus accepts enum names in any case, with spaces or dashes instead of underscores.
func ParseStatus(raw string) (Status, error) {
	clean := strings.ToUpper(strings.TrimSpace(raw))
	clean = strings.NewReplacer("-", "_", " ", "_").Replace(clean)
	status := Status(clean)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return status, nil
}
