package model

// CartItem is one menu item in a customer's cart.
type CartItem struct {
	ID       DocumentID `json:"_id" bson:"_id,omitempty"`
	MenuID   string     `json:"menuId" bson:"menuId"`
	Email    string     `json:"email" bson:"email"`
	Name     string     `json:"name" bson:"name"`
	Image    string     `json:"image" bson:"image"`
	Price    float64    `json:"price" bson:"price"`
	Quantity int        `json:"quantity" bson:"quantity"`
}
