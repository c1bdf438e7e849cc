package dto

// ProductRequest payload for create/update.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quality     int     `json:"quality"`
}
