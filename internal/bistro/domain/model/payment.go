package model

import (
	"math"
	"time"
)

const PaymentStatusPending = "pending"

// Payment records a completed checkout. CartIDs are deleted from carts when it is recorded.
type Payment struct {
	ID            DocumentID `json:"_id" bson:"_id,omitempty"`
	Email         string     `json:"email" bson:"email"`
	Price         float64    `json:"price" bson:"price"`
	TransactionID string     `json:"transactionId" bson:"transactionId"`
	Date          time.Time  `json:"date" bson:"date"`
	CartIDs       []string   `json:"cartIds" bson:"cartIds"`
	MenuItemIDs   []string   `json:"menuItemIds" bson:"menuItemIds"`
	Status        string     `json:"status" bson:"status"`
}

// MinorUnits converts a price to the provider's integer amount, rounding half away from zero.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
