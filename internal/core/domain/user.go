package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	minUsernameLength = 3
	maxUsernameLength = 150
)

// User - учетная запись, роль определяет тип профиля
type User struct {
	ID            uuid.UUID
	Username      string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Mobile        string
	Role          Role
	EmailVerified bool
	CreatedAt     time.Time
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Principal - аутентифицированный вызывающий для проверок доступа
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// CheckPassword сравнивает предоставленный пароль с хэшем
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// StudentProfile хранит университет студента
type StudentProfile struct {
	UserID       uuid.UUID
	UniversityID *uuid.UUID
	Course       string
	Year         string
	CreatedAt    time.Time
}

type BrokerProfile struct {
	UserID      uuid.UUID
	CompanyName string
	CreatedAt   time.Time
}

// Account - пользователь с профилем, соответствующим роли
type Account struct {
	User    User
	Student *StudentProfile
	Broker  *BrokerProfile
}

// RegistrationInput - данные саморегистрации
type RegistrationInput struct {
	Username     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Mobile       string
	Role         Role
	UniversityID *uuid.UUID
	Course       string
	Year         string
	CompanyName  string
}

// NewAccount проверяет данные регистрации, хэширует пароль и создает профиль роли
func NewAccount(in RegistrationInput, now time.Time) (*Account, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	verr := &ValidationError{}
	if n := len(username); n < minUsernameLength || n > maxUsernameLength {
		verr.Add("username", "username must be between 3 and 150 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		verr.Add("email", "enter a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		verr.Add("password", "password must be at least 8 characters")
	}
	switch in.Role {
	case RoleStudent:
		if in.UniversityID == nil || *in.UniversityID == uuid.Nil {
			verr.Add("university_id", "university is required for students")
		}
		if strings.TrimSpace(in.Course) == "" {
			verr.Add("course", "course is required for students")
		}
	case RoleBroker:
	case RoleAdmin:
		verr.Add("role", "admin accounts cannot be self-registered")
	default:
		verr.Add("role", "role must be student or broker")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &Account{
		User: User{
			ID:           uuid.New(),
			Username:     username,
			Email:        email,
			PasswordHash: string(hashedPassword),
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			Mobile:       strings.TrimSpace(in.Mobile),
			Role:         in.Role,
			CreatedAt:    now,
		},
	}

	switch in.Role {
	case RoleStudent:
		universityID := *in.UniversityID
		acc.Student = &StudentProfile{
			UserID:       acc.User.ID,
			UniversityID: &universityID,
			Course:       strings.TrimSpace(in.Course),
			Year:         strings.TrimSpace(in.Year),
			CreatedAt:    now,
		}
	case RoleBroker:
		acc.Broker = &BrokerProfile{
			UserID:      acc.User.ID,
			CompanyName: strings.TrimSpace(in.CompanyName),
			CreatedAt:   now,
		}
	}

	return acc, nil
}

// TokenType различает назначение JWT
type TokenType string

const (
	TokenAccess       TokenType = "access"
	TokenRefresh      TokenType = "refresh"
	TokenVerification TokenType = "email_verification"
)

// Claims - данные, которые зашиваются в JWT токен
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
	Type   TokenType
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}
