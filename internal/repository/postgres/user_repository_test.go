package postgres

import (
	"context"
	"strings"
	"testing"

	"miniMercado/domain"
)

func seedUser(t *testing.T, repo *UserRepository, cpf, email string) domain.User {
	t.Helper()

	u := domain.User{
		FullName:    "Maria Silva",
		CPF:         cpf,
		BirthDate:   "1990-04-12",
		PhoneNumber: "11987654321",
		Email:       email,
		Password:    "hashed",
	}
	if err := repo.Create(context.Background(), &u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func TestUserCreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	created := seedUser(t, repo, "12345678901", "maria@example.com")

	byID, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.CPF != "12345678901" {
		t.Fatalf("unexpected cpf %q", byID.CPF)
	}

	byEmail, err := repo.FindByEmail(context.Background(), "maria@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("expected id %d got %d", created.ID, byEmail.ID)
	}

	byCPF, err := repo.FindByCPF(context.Background(), "12345678901")
	if err != nil {
		t.Fatalf("find by cpf: %v", err)
	}
	if byCPF.ID != created.ID {
		t.Fatalf("expected id %d got %d", created.ID, byCPF.ID)
	}
}

func TestUserCreateDuplicateCPF(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "12345678901", "maria@example.com")

	dup := domain.User{
		FullName:    "Other",
		CPF:         "12345678901",
		PhoneNumber: "11900000000",
		Email:       "other@example.com",
		Password:    "hashed",
	}
	err := repo.Create(context.Background(), &dup)
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestUserUpdateKeepsCPFAndPassword(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	created := seedUser(t, repo, "12345678901", "maria@example.com")

	created.FullName = "Maria S. Silva"
	created.CPF = "99999999999" // must be ignored by the update column list
	created.Password = "tampered"
	created.PhoneNumber = "11912345678"
	if err := repo.Update(context.Background(), &created); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.CPF != "12345678901" {
		t.Fatalf("cpf must not change on update, got %q", stored.CPF)
	}
	if stored.Password != "hashed" {
		t.Fatalf("password must not change on update, got %q", stored.Password)
	}
	if stored.FullName != "Maria S. Silva" || stored.PhoneNumber != "11912345678" {
		t.Fatalf("mutable fields not updated: %+v", stored)
	}
}

func TestUserDelete(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	created := seedUser(t, repo, "12345678901", "maria@example.com")

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(context.Background(), created.ID); err == nil {
		t.Fatal("expected not found after delete")
	}

	if err := repo.Delete(context.Background(), created.ID); err == nil {
		t.Fatal("expected error on double delete")
	}
}
