package enums

import "fmt"

// NotificationLevel classifies a transient notification.
type NotificationLevel string

const (
	NotificationLevelSuccess NotificationLevel = "success"
	NotificationLevelError   NotificationLevel = "error"
)

var validNotificationLevels = []NotificationLevel{
	NotificationLevelSuccess,
	NotificationLevelError,
}

// String implements fmt.Stringer.
func (n NotificationLevel) String() string {
	return string(n)
}

// IsValid checks whether the given level matches the canonical enum.
func (n NotificationLevel) IsValid() bool {
	for _, candidate := range validNotificationLevels {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationLevel converts raw strings into NotificationLevel.
func ParseNotificationLevel(value string) (NotificationLevel, error) {
	for _, candidate := range validNotificationLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification level %q", value)
}
