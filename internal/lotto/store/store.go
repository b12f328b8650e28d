// Package store keeps issued purchases for the lifetime of a play session.
package store

import "errors"

var ErrNotFound = errors.New("purchase not found")

const keyPrefix = "lotto_purchase:"

func purchaseKey(purchaseID string) string {
	return keyPrefix + purchaseID
}
