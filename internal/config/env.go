package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// QuietEnvVar names the environment variable that silences progress bars.
const QuietEnvVar = "SMT_QUIET"

// IsQuietValue reports whether v asks for quiet mode: "true", "TRUE", or any
// positive integer. Anything else, including an empty or malformed value,
// leaves progress output on.
func IsQuietValue(v string) bool {
	if v == "true" || v == "TRUE" {
		return true
	}

	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		// ParseInt saturates out-of-range input, so the sign survives
		return errors.Is(err, strconv.ErrRange) && n > 0
	}
	return n > 0
}

// QuietFromEnv reads QuietEnvVar once and reports whether it asks for quiet mode.
func QuietFromEnv() bool {
	v, ok := os.LookupEnv(QuietEnvVar)
	if !ok {
		return false
	}
	return IsQuietValue(v)
}
