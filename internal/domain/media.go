package domain

import "time"

// Media is an uploaded file kept inline in the document store. ProductID is
// the foreign reference used by event-driven cleanup when a product goes
// away.
type Media struct {
	ID          string    `bson:"_id"`
	Filename    string    `bson:"filename"`
	ContentType string    `bson:"content_type"`
	Size        int64     `bson:"size"`
	Data        []byte    `bson:"data"`
	OwnerID     string    `bson:"owner_id"`
	ProductID   string    `bson:"product_id"`
	CreatedAt   time.Time `bson:"created_at"`
}
