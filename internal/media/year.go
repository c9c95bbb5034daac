package media

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseYear coerces a string or integer year into its four-digit directory
// segment. JSON numbers arrive as float64 and are accepted when integral.
func ParseYear(value any) (string, error) {
	var raw string
	switch v := value.(type) {
	case string:
		raw = strings.TrimSpace(v)
	case int:
		raw = strconv.Itoa(v)
	case int32:
		raw = strconv.FormatInt(int64(v), 10)
	case int64:
		raw = strconv.FormatInt(v, 10)
	case uint:
		raw = strconv.FormatUint(uint64(v), 10)
	case float64:
		if v != math.Trunc(v) {
			return "", yearError(value)
		}
		raw = strconv.FormatFloat(v, 'f', 0, 64)
	case nil:
		return "", Wrap(ErrValidation, "media", "parse year", "year is required", nil)
	default:
		return "", yearError(value)
	}
	if len(raw) != 4 {
		return "", yearError(value)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", yearError(value)
		}
	}
	return raw, nil
}

func yearError(value any) error {
	return Wrap(ErrValidation, "media", "parse year", fmt.Sprintf("year %v is not a four-digit year", value), nil)
}
