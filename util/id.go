// Package util provides utility functions for the shopping cart.
package util

import "github.com/google/uuid"

// NewReceiptID returns a random RFC 4122 v4 UUID string for a checkout receipt.
func NewReceiptID() string {
	return uuid.NewString()
}
