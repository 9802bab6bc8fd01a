package order

import (
	"strconv"
	"strings"

	"orderdesk-be/internal/apperr"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCanceled   Status = "CANCELED"
)

var statusNames = map[Status]struct{}{
	StatusPending:    {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCanceled:   {},
}

const statusList = "PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELED"

// ParseStatus resolves free status text case-insensitively. Numeric input is
// rejected outright so enum ordinals can never leak in through the API.
func ParseStatus(text string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(text))

	if _, err := strconv.Atoi(normalized); err == nil {
		return "", apperr.Validationf("numeric status is not allowed, use one of: %s", statusList)
	}

	s := Status(normalized)
	if _, ok := statusNames[s]; !ok {
		return "", apperr.Validationf("invalid order status %q, use one of: %s", text, statusList)
	}
	return s, nil
}
