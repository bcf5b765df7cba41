// Package domain defines domain-level errors for the pricing feature.
package domain

import "errors"

var (
	// ErrProductNotFound indicates the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrNoProductsMatched indicates a bulk adjustment matched none of the
	// requested product IDs.
	ErrNoProductsMatched = errors.New("no matching products found")

	// ErrNoProductIDs indicates a bulk adjustment with an empty ID list.
	ErrNoProductIDs = errors.New("no product IDs provided")

	// ErrInvalidMode indicates a bulk adjustment mode other than add/subtract.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidAmount indicates a bulk adjustment amount that is not a
	// positive finite number.
	ErrInvalidAmount = errors.New("amount must be a number > 0")

	// ErrInvalidPrice indicates a price that is not a finite number.
	ErrInvalidPrice = errors.New("invalid price")
)
