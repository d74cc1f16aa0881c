package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"miniMercado/domain"
	"miniMercado/pkg/logger"
)

// CartRepository contract interface
type CartRepository interface {
	Upsert(ctx context.Context, userID, productID uint, quantity int) (uint, int, error)
	FindLinesByUser(ctx context.Context, userID uint) ([]domain.CartLine, error)
	UpdateQuantity(ctx context.Context, itemID uint, quantity int) error
	Delete(ctx context.Context, itemID uint) error
	ClearByUser(ctx context.Context, userID uint) error
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type cartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewCartService(cartRepo CartRepository, productRepo ProductRepository) *cartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddResult tells the caller whether the add created a new line or merged
// into an existing one, so the handler can answer 201 vs 200.
type AddResult struct {
	ItemID   uint
	Quantity int
	Merged   bool
}

// AddOrMerge puts quantity units of a product into the user's cart. A request
// without a usable quantity defaults to one unit. Accumulation is unbounded,
// matching the store contract.
func (s *cartService) AddOrMerge(ctx context.Context, userID, productID uint, quantity int) (AddResult, error) {
	if userID == 0 || productID == 0 {
		logger.Error("Invalid cart add: user and product are required")
		return AddResult{}, errors.New("user and product are required")
	}

	qty := quantity
	if qty <= 0 {
		qty = 1
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		logger.Error("Product not found for cart add", err)
		return AddResult{}, errors.New("product not found")
	}

	itemID, newQty, err := s.cartRepo.Upsert(ctx, userID, productID, qty)
	if err != nil {
		logger.Error("Failed to upsert cart item", err)
		return AddResult{}, fmt.Errorf("failed to add cart item: %w", err)
	}

	// an existing line always holds at least one unit, so a merge ends
	// strictly above the requested quantity
	return AddResult{
		ItemID:   itemID,
		Quantity: newQty,
		Merged:   newQty > qty,
	}, nil
}

// ListCart returns the user's cart lines priced at read time plus the
// aggregate total. An empty cart yields no lines and a zero total.
func (s *cartService) ListCart(ctx context.Context, userID uint) ([]domain.CartLine, decimal.Decimal, error) {
	if userID == 0 {
		logger.Error("Invalid cart list: user is required")
		return nil, decimal.Zero, errors.New("user is required")
	}

	lines, err := s.cartRepo.FindLinesByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list cart items", err)
		return nil, decimal.Zero, fmt.Errorf("failed to list cart items: %w", err)
	}

	total := decimal.Zero
	for i := range lines {
		lines[i].TotalItem = lines[i].Price.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		total = total.Add(lines[i].TotalItem)
	}

	return lines, total, nil
}

// UpdateQuantity replaces a line's quantity. Zero or negative is invalid
// input, not a delete.
func (s *cartService) UpdateQuantity(ctx context.Context, itemID uint, quantity int) error {
	if quantity <= 0 {
		logger.Error("Invalid cart quantity update: quantity must be greater than zero")
		return errors.New("quantity must be greater than zero")
	}

	if err := s.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		logger.Error("Failed to update cart item quantity", err)
		return err
	}

	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, itemID uint) error {
	if err := s.cartRepo.Delete(ctx, itemID); err != nil {
		logger.Error("Failed to remove cart item", err)
		return err
	}

	return nil
}

// ClearCart empties the user's cart; clearing an already-empty cart succeeds.
func (s *cartService) ClearCart(ctx context.Context, userID uint) error {
	if err := s.cartRepo.ClearByUser(ctx, userID); err != nil {
		logger.Error("Failed to clear cart", err)
		return err
	}

	return nil
}
