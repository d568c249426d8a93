package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"volnasup.ru/shop/internal/shared/apperr"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service { return &Service{repo: repo} }

// Register creates a customer account. Duplicate emails come back as a
// field error, not a generic failure.
func (s *Service) Register(ctx context.Context, email, password, name string) (User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, apperr.InvalidErr("Проверьте введённые данные.", map[string]string{
			"email": "Этот e-mail уже зарегистрирован.",
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, apperr.Wrap(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperr.Wrap(err)
	}

	u, err := s.repo.Create(ctx, email, string(hash), name, RoleCustomer)
	if err != nil {
		return User{}, apperr.Wrap(err)
	}
	return u, nil
}

// Login checks credentials. Unknown email and wrong password produce
// the same public message.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, apperr.UnauthorizedErr("Неверный e-mail или пароль.")
		}
		return User{}, apperr.Wrap(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, apperr.UnauthorizedErr("Неверный e-mail или пароль.")
	}
	return u, nil
}
