package companion

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Message types.
const (
	TypeHello      = "hello"
	TypeSteps      = "steps"
	TypeStepsTotal = "steps_total"
	TypeBye        = "bye"
	TypeAck        = "ack"
	TypeError      = "error"
)

var (
	// ErrUnknownMessage is returned for an unrecognized message type.
	ErrUnknownMessage = errors.New("unknown message type")
	// ErrInvalidCount is returned for a negative step count.
	ErrInvalidCount = errors.New("invalid step count")
)

// Message is the JSON envelope exchanged over a session.
type Message struct {
	Type       string     `json:"type"`
	Name       string     `json:"name,omitempty"`
	Count      int        `json:"count,omitempty"`
	At         *time.Time `json:"at,omitempty"`
	StepsToday *int       `json:"steps_today,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// ParseMessage decodes and validates a companion message.
func ParseMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("malformed message: %w", err)
	}
	switch m.Type {
	case TypeHello, TypeBye, TypeAck, TypeError:
	case TypeSteps, TypeStepsTotal:
		if m.Count < 0 {
			return Message{}, fmt.Errorf("%w: %d", ErrInvalidCount, m.Count)
		}
	default:
		return Message{}, fmt.Errorf("%w %q", ErrUnknownMessage, m.Type)
	}
	return m, nil
}

func ackMessage(stepsToday int) Message {
	return Message{Type: TypeAck, StepsToday: &stepsToday}
}

func errorMessage(err error) Message {
	return Message{Type: TypeError, Error: err.Error()}
}
