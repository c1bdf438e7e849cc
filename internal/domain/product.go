package domain

import "time"

// Product is an owned catalog listing. OwnerID is the principal recorded at
// creation time and is what ownership checks compare against.
type Product struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Quality     int       `bson:"quality" json:"quality"`
	OwnerID     string    `bson:"owner_id" json:"owner_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
