package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// ParseTimeout reads a Go duration such as "10s" or "1m30s". Empty input
// means fallback.
func ParseTimeout(input string, fallback time.Duration) (time.Duration, error) {
	d := fallback
	if s := strings.TrimSpace(input); s != "" {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be greater than zero, got %v", d)
	}
	return d, nil
}
