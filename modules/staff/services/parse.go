package services

import (
	"strconv"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
)

var dateLayouts = []string{"2006-01-02", "2006/01/02"}

func parseDateField(field, value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, gerrors.Errorf("%s: invalid date %q", field, value)
}

func parseIntField(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, gerrors.Errorf("%s: invalid integer %q", field, value)
	}
	return n, nil
}
