package instance

import "os"

// GetID identifies the running process in logs: SCENTSHOP_INSTANCE_ID, then
// the Heroku DYNO name, then the hostname.
func GetID() string {
	for _, key := range []string{"SCENTSHOP_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
