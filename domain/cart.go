package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem holds one (user, product) line. The unique index is the conflict
// target for the insert-or-increment upsert, so a pair can never hold two
// lines even under concurrent adds.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"column:product_id;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartLine is the read model for a cart listing: the stored line joined with
// the product's current data. TotalItem is price at read time times quantity,
// never a snapshot taken when the line was added.
type CartLine struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
	TotalItem   decimal.Decimal `json:"total_item"`
}
