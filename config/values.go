package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseInts parses a list of integers. Each element may itself be a
// comma separated list, which is how lists arrive from the environment
func ParseInts(values []string) ([]int, error) {
	var res []int

	for _, value := range values {
		for _, field := range strings.Split(value, ",") {
			field = strings.TrimSpace(field)
			if len(field) == 0 {
				continue
			}

			i, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid integer %q", field)
			}
			res = append(res, i)
		}
	}

	return res, nil
}
