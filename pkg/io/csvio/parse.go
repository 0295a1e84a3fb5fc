package csvio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jbolinge/shift-solver-sub000/pkg/core/model"
)

// dateLayouts lists the accepted input date formats, tried in order.
var dateLayouts = []string{
	model.DateLayout, // YYYY-MM-DD
	"01/02/2006",     // MM/DD/YYYY
	"02/01/2006",     // DD/MM/YYYY
}

// ParseDate parses a date in any accepted format.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (expected YYYY-MM-DD, MM/DD/YYYY, or DD/MM/YYYY)", value)
}

// ParseBool parses the accepted boolean forms, case-insensitive.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized boolean %q (expected true|false|yes|no|1|0)", value)
}

// splitList splits a comma-separated cell into trimmed nonempty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseInt(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

func parseFloat(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}
