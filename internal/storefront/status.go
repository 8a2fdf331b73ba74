package storefront

import "github.com/angelmondragon/scentshop/pkg/enums"

// Status is the application-level state of a session. Once Failed it never
// returns to Normal.
type Status struct {
	State   enums.AppStatus `json:"state"`
	Message string          `json:"message,omitempty"`
}

func normalStatus() Status {
	return Status{State: enums.AppStatusNormal}
}

func (s Status) Failed() bool {
	return s.State == enums.AppStatusFailed
}
