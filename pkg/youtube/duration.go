package youtube

import (
	"fmt"

	"github.com/sosodev/duration"
)

// ParseDurationSeconds converts an ISO 8601 duration string (e.g. "PT4M13S")
// to whole seconds.
func ParseDurationSeconds(iso string) (int64, error) {
	d, err := duration.Parse(iso)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", iso, err)
	}
	return int64(d.ToTimeDuration().Seconds()), nil
}
