package user

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"miniMercado/domain"
	"miniMercado/pkg/logger"
	"miniMercado/pkg/utils"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByCPF(ctx context.Context, cpf string) (domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

// CartRepository contract interface, used to cascade cart lines on account
// deletion.
type CartRepository interface {
	ClearByUser(ctx context.Context, userID uint) error
}

// TokenRepository contract interface
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token, ipAddress, userAgent string, ttl time.Duration) error
	DeleteToken(ctx context.Context, userID, token string) error
}

type userService struct {
	userRepo  UserRepository
	cartRepo  CartRepository
	tokenRepo TokenRepository
	validate  *validator.Validate
}

func NewUserService(
	userRepo UserRepository,
	cartRepo CartRepository,
	tokenRepo TokenRepository,
	validate *validator.Validate,
) *userService {
	return &userService{
		userRepo:  userRepo,
		cartRepo:  cartRepo,
		tokenRepo: tokenRepo,
		validate:  validate,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.CPF, "required,len=11,number"); err != nil {
		logger.Error("Invalid cpf format", err)
		return domain.User{}, errors.New("invalid cpf: must contain 11 numeric digits")
	}

	if err := s.validate.Var(user.PhoneNumber, "required,len=11,number"); err != nil {
		logger.Error("Invalid phone number format", err)
		return domain.User{}, errors.New("invalid phone number: must contain area code plus 9 numeric digits")
	}

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check unique fields up front for field-specific conflicts
	existingUser, err := s.userRepo.FindByCPF(ctx, user.CPF)
	if err == nil && existingUser.ID > 0 {
		logger.Error("CPF already registered")
		return domain.User{}, errors.New("cpf already registered")
	}

	existingUser, err = s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already registered")
		return domain.User{}, errors.New("email already registered")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:    user.FullName,
		CPF:         user.CPF,
		BirthDate:   user.BirthDate,
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
		Address:     user.Address,
		Password:    passwordHash,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		// The unique indexes still catch races past the pre-checks. The
		// translated error carries no column name, so re-run the lookups
		// to keep the field-specific message.
		if strings.Contains(err.Error(), "duplicate") {
			if raced, findErr := s.userRepo.FindByCPF(ctx, user.CPF); findErr == nil && raced.ID > 0 {
				return domain.User{}, errors.New("cpf already registered")
			}
			return domain.User{}, errors.New("email already registered")
		}
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same error so callers cannot probe which emails
// are registered.
func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Login with unknown email", err)
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if ok := utils.CheckPassword(password, user.Password); !ok {
		logger.Error("Login with incorrect password")
		return "", domain.User{}, errors.New("invalid credentials")
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if err := s.tokenRepo.StoreToken(ctx, userIDStr, token, ipAddress, userAgent, utils.JWTTTL()); err != nil {
		// the JWT is self-contained; losing the Redis record only costs
		// server-side invalidation on logout
		logger.Warn("Failed to store session token", err)
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIDStr := strconv.FormatUint(uint64(userID), 10)

	if err := s.tokenRepo.DeleteToken(ctx, userIDStr, token); err != nil {
		logger.Error("Failed to delete session token", err)
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// UpdateUser replaces the mutable profile fields. CPF and password never
// change through this path.
func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", err)
		return domain.User{}, err
	}

	if err := s.validate.Var(updateData.PhoneNumber, "required,len=11,number"); err != nil {
		logger.Error("Invalid phone number format", err)
		return domain.User{}, errors.New("invalid phone number: must contain area code plus 9 numeric digits")
	}

	if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	// Check if email already exists (excluding current user)
	userWithEmail, err := s.userRepo.FindByEmail(ctx, updateData.Email)
	if err == nil && userWithEmail.ID != id {
		logger.Error("Email already registered")
		return domain.User{}, errors.New("email already registered")
	}

	existingUser.FullName = updateData.FullName
	existingUser.BirthDate = updateData.BirthDate
	existingUser.PhoneNumber = updateData.PhoneNumber
	existingUser.Email = updateData.Email
	existingUser.Address = updateData.Address

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return domain.User{}, errors.New("email already registered")
		}
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

// DeleteUser removes the account and cascades the user's cart lines.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	_, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for deletion", err)
		return err
	}

	if err := s.cartRepo.ClearByUser(ctx, id); err != nil {
		logger.Error("Failed to clear cart for deleted user", err)
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	return nil
}
