package usecases_port

import (
	"context"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
)

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, in domain.RegistrationInput) (*domain.Account, *domain.TokenPair, error)
}

type LoginUserUseCasePort interface {
	// login - имя пользователя или email
	Execute(ctx context.Context, login, password string) (*domain.User, *domain.TokenPair, error)
}

type RefreshTokenUseCasePort interface {
	Execute(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}

type VerifyEmailUseCasePort interface {
	Execute(ctx context.Context, token string) error
}

type GetMeUseCasePort interface {
	Execute(ctx context.Context, principal domain.Principal) (*domain.Account, error)
}

type AuthenticateUseCasePort interface {
	Execute(ctx context.Context, accessToken string) (*domain.Principal, error)
}
