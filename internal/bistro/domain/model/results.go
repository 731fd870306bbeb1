package model

// InsertResult acknowledges an insert. InsertedID is nil for the
// "already exists" sentinel of idempotent inserts.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   *DocumentID `json:"insertedId"`
}

// ExistingUserResult is returned by POST /users when the email is taken.
type ExistingUserResult struct {
	Message    string      `json:"message"`
	InsertedID *DocumentID `json:"insertedId"`
}

// UpdateResult relays match and modify counts. Zero matches is not an error.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult relays the deleted count. Zero is not an error.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// PaymentResult is the outcome of recording a payment and clearing its carts.
type PaymentResult struct {
	PaymentResult *InsertResult `json:"paymentResult"`
	DeleteResult  *DeleteResult `json:"deleteResult"`
}

// AdminStats is the dashboard summary.
type AdminStats struct {
	Users    int64   `json:"user"`
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// Inserted builds an acknowledged InsertResult.
func Inserted(id DocumentID) *InsertResult {
	return &InsertResult{Acknowledged: true, InsertedID: &id}
}
