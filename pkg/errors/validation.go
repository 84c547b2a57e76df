package errors

import (
	"unicode"
)

// ValidateID validates a node or link identifier.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
//
// Domain-specific ID conventions (prefixes, UUIDs) are the caller's concern.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "ID cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "ID too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "ID contains control characters")
		}
	}
	return nil
}

// ValidateNodeType validates a node type against the allowed set.
func ValidateNodeType[T ~string](t T, valid map[T]bool) error {
	if !valid[t] {
		return New(ErrCodeInvalidNodeType, "unknown node type %q", string(t))
	}
	return nil
}

// ValidateLinkType validates a link type against the allowed set.
func ValidateLinkType[T ~string](t T, valid map[T]bool) error {
	if !valid[t] {
		return New(ErrCodeInvalidLinkType, "unknown link type %q", string(t))
	}
	return nil
}
