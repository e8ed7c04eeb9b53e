package gtfsingest

import (
	"fmt"
	"strconv"
	"strings"
)

// parseTime converts a GTFS "HH:MM:SS" timestamp to seconds since midnight.
// Hours may run past 23 for trips continuing into the next service day,
// per GTFS convention - callers must not reinterpret them modulo 86400.
func parseTime(s string) (int32, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("gtfsingest: malformed time %q", s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, fmt.Errorf("gtfsingest: malformed time %q", s)
	}
	return int32(h*3600 + m*60 + sec), nil
}
