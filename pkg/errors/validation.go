package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds map ids and node ids accepted from the command line and
// the HTTP API.
const maxIDLength = 256

// ValidateMapID validates a caller-chosen map identifier.
//
// Map ids become part of persisted keys ("<namespace>:<mapId>:known"), so the
// rules are conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No ':' (it separates key segments)
//   - Maximum length of 256 characters
func ValidateMapID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "map id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "map id too long (max %d characters)", maxIDLength)
	}
	if hasControl(id) {
		return New(ErrCodeInvalidID, "map id contains invalid control characters")
	}
	if strings.Contains(id, ":") {
		return New(ErrCodeInvalidID, "map id cannot contain ':'")
	}
	return nil
}

// ValidateNodeID validates a topic, subtopic or card id received from outside
// the process. The engine applies it only to ids missing from the loaded
// hierarchy, so any id present there stays addressable.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "node id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "node id too long (max %d characters)", maxIDLength)
	}
	if hasControl(id) {
		return New(ErrCodeInvalidID, "node id contains invalid control characters")
	}
	return nil
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
