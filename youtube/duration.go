package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// ISO-8601 duration as returned by the Data API, eg "PT1H2M3S". Date
// components (days and up) never appear for video durations.
var isoDurationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO-8601 time duration to whole seconds.
func ParseISODuration(raw string) (int, error) {
	m := isoDurationRegex.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("unrecognized ISO-8601 duration: %q", raw)
	}
	var total int
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, err
		}
		total += n * mult
	}
	return total, nil
}
