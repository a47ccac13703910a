package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewConversationID returns an id of the form conv-<12 hex chars>, used
// to key both the context store and the transcript collections.
func NewConversationID() string {
	return "conv-" + shortUUID(12)
}

// NewMessageID returns an id of the form msg-<8 hex chars>.
func NewMessageID() string {
	return "msg-" + shortUUID(8)
}

func shortUUID(length int) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return id[:length]
}
