package model

// ItemStatus represents the status of a conversion item
type ItemStatus string

const (
	// ItemStatusIdle means the item was accepted but not converted yet
	ItemStatusIdle ItemStatus = "idle"

	// ItemStatusConverting means the encoder is working on the item
	ItemStatusConverting ItemStatus = "converting"

	// ItemStatusCompleted means a WebP result is available
	ItemStatusCompleted ItemStatus = "completed"

	// ItemStatusError means the conversion failed
	ItemStatusError ItemStatus = "error"
)

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// IsActive returns true while the item is being converted
func (s ItemStatus) IsActive() bool {
	return s == ItemStatusConverting
}

// IsFinished returns true if the item is in a finished state (completed or error)
func (s ItemStatus) IsFinished() bool {
	return s == ItemStatusCompleted || s == ItemStatusError
}

// CanConvert returns true if a conversion may be started for the item
func (s ItemStatus) CanConvert() bool {
	return s == ItemStatusIdle || s == ItemStatusError
}
