package enums

import "fmt"

// AppStatus tracks whether the storefront session is usable.
type AppStatus string

const (
	AppStatusNormal AppStatus = "normal"
	AppStatusFailed AppStatus = "failed"
)

var validAppStatuses = []AppStatus{
	AppStatusNormal,
	AppStatusFailed,
}

// String implements fmt.Stringer.
func (a AppStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AppStatus.
func (a AppStatus) IsValid() bool {
	for _, candidate := range validAppStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAppStatus converts raw input into an AppStatus.
func ParseAppStatus(value string) (AppStatus, error) {
	for _, candidate := range validAppStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid app status %q", value)
}
