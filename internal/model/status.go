package model

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func IsTerminal(s Status) bool {
	return s == StatusCompleted
}
