package model

// MenuItem is a dish in the menu collection.
type MenuItem struct {
	ID       DocumentID `json:"_id" bson:"_id,omitempty"`
	Name     string     `json:"name" bson:"name"`
	Recipe   string     `json:"recipe" bson:"recipe"`
	Image    string     `json:"image" bson:"image"`
	Category string     `json:"category" bson:"category"`
	Price    float64    `json:"price" bson:"price"`
}

// MenuUpdate carries the fields PATCH /menu/:id may set. Nil fields are left untouched.
type MenuUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Recipe   *string  `json:"recipe,omitempty"`
	Image    *string  `json:"image,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// Fields returns the bson field names and values to set.
func (u MenuUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Recipe != nil {
		fields["recipe"] = *u.Recipe
	}
	if u.Image != nil {
		fields["image"] = *u.Image
	}
	if u.Category != nil {
		fields["category"] = *u.Category
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	return fields
}

// Apply copies the set fields onto item.
func (u MenuUpdate) Apply(item *MenuItem) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Recipe != nil {
		item.Recipe = *u.Recipe
	}
	if u.Image != nil {
		item.Image = *u.Image
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Price != nil {
		item.Price = *u.Price
	}
}

// Review is a customer testimonial. Read only.
type Review struct {
	ID      DocumentID `json:"_id" bson:"_id,omitempty"`
	Name    string     `json:"name" bson:"name"`
	Details string     `json:"details" bson:"details"`
	Rating  float64    `json:"rating" bson:"rating"`
}
