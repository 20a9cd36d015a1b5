package api

import (
	"strconv"
	"strings"
)

// ValidateAidQuantity parses input and checks it lies in [1, max], where max
// is the available quantity known when the supply list was rendered.
func ValidateAidQuantity(input string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 || n > max {
		return 0, &InvalidQuantityError{Input: input, Max: max}
	}
	return n, nil
}
