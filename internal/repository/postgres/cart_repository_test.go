package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"miniMercado/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.CartItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) domain.Product {
	t.Helper()

	p := domain.Product{Name: name, Price: decimal.RequireFromString(price)}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return p
}

func TestCartUpsertCreatesThenIncrements(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	product := seedProduct(t, db, "Coffee", "12.50")

	id1, qty1, err := repo.Upsert(context.Background(), 1, product.ID, 2)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if qty1 != 2 {
		t.Fatalf("expected quantity 2 got %d", qty1)
	}

	id2, qty2, err := repo.Upsert(context.Background(), 1, product.ID, 3)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if qty2 != 5 {
		t.Fatalf("expected merged quantity 5 got %d", qty2)
	}
	if id1 != id2 {
		t.Fatalf("expected same line, got ids %d and %d", id1, id2)
	}

	var count int64
	db.Model(&domain.CartItem{}).Where("user_id = ?", 1).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single line per (user, product), got %d", count)
	}
}

func TestCartUpsertSeparatesUsersAndProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	coffee := seedProduct(t, db, "Coffee", "12.50")
	sugar := seedProduct(t, db, "Sugar", "3.99")

	if _, _, err := repo.Upsert(context.Background(), 1, coffee.ID, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, _, err := repo.Upsert(context.Background(), 1, sugar.ID, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, _, err := repo.Upsert(context.Background(), 2, coffee.ID, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var count int64
	db.Model(&domain.CartItem{}).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 distinct lines, got %d", count)
	}
}

func TestFindLinesByUserJoinsCurrentPrice(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	coffee := seedProduct(t, db, "Coffee", "12.50")

	if _, _, err := repo.Upsert(context.Background(), 1, coffee.ID, 2); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// price changes after the line was added; the listing must see the
	// current price, not a snapshot
	if err := db.Model(&domain.Product{}).Where("id = ?", coffee.ID).
		Update("price", decimal.RequireFromString("15.00")).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	lines, err := repo.FindLinesByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line got %d", len(lines))
	}
	if !lines[0].Price.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("expected current price 15.00 got %s", lines[0].Price)
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 got %d", lines[0].Quantity)
	}
	if lines[0].Name != "Coffee" {
		t.Fatalf("expected joined name got %q", lines[0].Name)
	}
}

func TestFindLinesByUserExcludesOrphans(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	coffee := seedProduct(t, db, "Coffee", "12.50")
	sugar := seedProduct(t, db, "Sugar", "3.99")

	if _, _, err := repo.Upsert(context.Background(), 1, coffee.ID, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, _, err := repo.Upsert(context.Background(), 1, sugar.ID, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := db.Delete(&domain.Product{}, sugar.ID).Error; err != nil {
		t.Fatalf("delete product: %v", err)
	}

	lines, err := repo.FindLinesByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected orphaned line to be excluded, got %d lines", len(lines))
	}
	if lines[0].ProductID != coffee.ID {
		t.Fatalf("expected remaining line for product %d got %d", coffee.ID, lines[0].ProductID)
	}
}

func TestUpdateQuantityNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)

	err := repo.UpdateQuantity(context.Background(), 404, 3)
	if err == nil || err.Error() != "cart item not found" {
		t.Fatalf("expected cart item not found, got %v", err)
	}
}

func TestDeleteAndClear(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	coffee := seedProduct(t, db, "Coffee", "12.50")
	sugar := seedProduct(t, db, "Sugar", "3.99")

	id, _, err := repo.Upsert(context.Background(), 1, coffee.ID, 1)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, _, err := repo.Upsert(context.Background(), 1, sugar.ID, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(context.Background(), id); err == nil {
		t.Fatal("expected not found on double delete")
	}

	if err := repo.ClearByUser(context.Background(), 1); err != nil {
		t.Fatalf("clear: %v", err)
	}

	// clearing an already-empty cart succeeds
	if err := repo.ClearByUser(context.Background(), 1); err != nil {
		t.Fatalf("clear on empty cart: %v", err)
	}

	var count int64
	db.Model(&domain.CartItem{}).Where("user_id = ?", 1).Count(&count)
	if count != 0 {
		t.Fatalf("expected empty cart got %d lines", count)
	}
}
