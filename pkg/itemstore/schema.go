package itemstore

import (
	"fmt"
	"regexp"
)

// MaxNamespaceLength is the maximum length for a namespace.
const MaxNamespaceLength = 63

// NamespacePattern matches DNS-compatible names: lowercase alphanumeric,
// hyphens allowed but not at start/end.
var NamespacePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// ValidateNamespace checks if a namespace is usable in Redis keys.
func ValidateNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("namespace cannot be empty")
	}

	if len(namespace) > MaxNamespaceLength {
		return fmt.Errorf("namespace too long: %d characters (max: %d)", len(namespace), MaxNamespaceLength)
	}

	if !NamespacePattern.MatchString(namespace) {
		return fmt.Errorf("invalid namespace '%s': must be lowercase alphanumeric with hyphens (not at start/end)", namespace)
	}

	return nil
}

// ItemKey returns the Redis key for an item.
// Pattern: radar:{namespace}:item:{item_id}
func ItemKey(namespace, itemID string) string {
	return fmt.Sprintf("radar:%s:item:%s", namespace, itemID)
}

// ItemKeyPattern returns the SCAN pattern for items whose ID starts with prefix.
// Pattern: radar:{namespace}:item:{prefix}*
func ItemKeyPattern(namespace, prefix string) string {
	return ItemKey(namespace, prefix) + "*"
}

// ItemSeqKey returns the counter that orders item writes within a namespace.
// Pattern: radar:{namespace}:item_seq
func ItemSeqKey(namespace string) string {
	return fmt.Sprintf("radar:%s:item_seq", namespace)
}

// ItemEventsChannel returns the Pub/Sub channel name for item events.
// Pattern: radar:{namespace}:item_events
func ItemEventsChannel(namespace string) string {
	return fmt.Sprintf("radar:%s:item_events", namespace)
}
