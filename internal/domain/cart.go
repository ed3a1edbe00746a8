package domain

import "time"

// CartItem is keyed by (user, product, variant); a repeated add for the same
// key updates Quantity on the existing row, it never inserts a second one.
type CartItem struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	ProductID int64     `bson:"product_id" json:"product_id"`
	VariantID int64     `bson:"variant_id" json:"variant_id"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// WishlistItem is pure set membership on (user, product).
type WishlistItem struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	ProductID int64     `bson:"product_id" json:"product_id"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}
