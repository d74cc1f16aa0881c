package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"miniMercado/domain"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

type upsertRow struct {
	ID       uint
	Quantity int
}

// Upsert inserts a cart line or increments an existing one in a single
// statement, so concurrent adds for the same (user, product) pair cannot
// lose an update. Returns the resulting line id and quantity.
func (r *CartRepository) Upsert(ctx context.Context, userID, productID uint, quantity int) (uint, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("context error: %w", err)
	}

	now := time.Now()

	var row upsertRow
	err := r.DB.WithContext(ctx).Raw(`
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = quantity + excluded.quantity, updated_at = excluded.updated_at
		RETURNING id, quantity`,
		userID, productID, quantity, now, now,
	).Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return row.ID, row.Quantity, nil
}

// FindLinesByUser returns the user's cart lines joined with current product
// data. The inner join silently drops lines whose product has been deleted.
func (r *CartRepository) FindLinesByUser(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var lines []domain.CartLine
	err := r.DB.WithContext(ctx).Raw(`
		SELECT c.id, c.product_id, p.name, p.description, p.price, p.image_url, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = ?
		ORDER BY c.id`,
		userID,
	).Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	return lines, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, itemID uint, quantity int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.CartItem{}).Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("cart item not found")
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, itemID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.CartItem{}, itemID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("cart item not found")
	}

	return nil
}

// ClearByUser empties a user's cart. Deleting an already-empty cart is not
// an error.
func (r *CartRepository) ClearByUser(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
