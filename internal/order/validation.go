package order

import (
	"strings"

	"orderdesk-be/internal/apperr"

	"github.com/google/uuid"
)

const maxAddressLen = 200

// validatePlaceRequest performs the structural checks on an incoming order.
// Pure and side-effect free; runs before any store access.
func validatePlaceRequest(req PlaceRequest) error {
	if len(req.Items) == 0 {
		return apperr.Validationf("order must contain at least one item")
	}

	shipping := strings.TrimSpace(req.ShippingAddress)
	billing := strings.TrimSpace(req.BillingAddress)

	switch {
	case shipping == "":
		return apperr.Validationf("shipping address is required")
	case len(shipping) > maxAddressLen:
		return apperr.Validationf("shipping address must be at most %d characters", maxAddressLen)
	case billing == "":
		return apperr.Validationf("billing address is required")
	case len(billing) > maxAddressLen:
		return apperr.Validationf("billing address must be at most %d characters", maxAddressLen)
	}

	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return apperr.Validationf("item %d has an empty product id", i)
		}
		if item.Quantity <= 0 {
			return apperr.Validationf("item %d quantity must be greater than zero", i)
		}
	}

	return nil
}
