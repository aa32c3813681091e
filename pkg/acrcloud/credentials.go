package acrcloud

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingCredentials = errors.New("acrcloud: missing credentials")

// Credentials identify this service to the provider. They are loaded once at
// startup and never mutated afterwards.
type Credentials struct {
	Host         string
	AccessKey    string
	AccessSecret string
}

func (c Credentials) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.AccessKey == "" {
		missing = append(missing, "access key")
	}
	if c.AccessSecret == "" {
		missing = append(missing, "access secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}
