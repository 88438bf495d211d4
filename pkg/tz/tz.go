package tz

import (
	"fmt"
	"time"
)

// Load resolves an IANA timezone name (e.g. "America/Los_Angeles").
func Load(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return loc, nil
}
