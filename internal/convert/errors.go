package convert

import (
	"errors"
	"fmt"
)

// Stage identifies the step of the pipeline that failed
type Stage string

const (
	StageRead    Stage = "read"
	StageDecode  Stage = "decode"
	StageSurface Stage = "surface"
	StageEncode  Stage = "encode"
)

// Human-readable messages surfaced on the failed item
const (
	MsgReadFailed    = "Failed to read file"
	MsgDecodeFailed  = "Failed to load image"
	MsgSurfaceFailed = "Failed to get canvas context"
	MsgEncodeFailed  = "Failed to convert image"
)

// Error is a conversion failure for a single item
type Error struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Detail returns the message together with the underlying cause, for logs
func (e *Error) Detail() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
}

func newError(stage Stage, message string, err error) *Error {
	return &Error{Stage: stage, Message: message, Err: err}
}

// Message extracts the text to show on an item for any error value
func Message(err error) string {
	if err == nil {
		return ""
	}
	var convErr *Error
	if errors.As(err, &convErr) {
		return convErr.Message
	}
	return err.Error()
}
