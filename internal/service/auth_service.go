package service

import (
	"context"
	"errors"
	"time"

	"finflow/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token      string `json:"token"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// --- Interface ---

// AuthService authenticates the seeded demo accounts and issues role-scoped
// JWTs. There is no user management: the directory is fixed, one account per
// workflow role.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
}

type demoAccount struct {
	Username     string
	Name         string
	EmployeeID   string
	Department   string
	Role         model.Role
	passwordHash []byte
}

type authService struct {
	accounts map[string]*demoAccount
	secret   []byte
}

// NewAuthService seeds the demo directory. Hashes are computed at startup so
// no credential material is stored in source beyond the demo passwords.
func NewAuthService(secret []byte) (AuthService, error) {
	seed := []struct {
		username, password, name, employeeID, department string
		role                                             model.Role
	}{
		{"alex", "employee123", "Alex Johnson", "E-123", "Technology", model.RoleEmployee},
		{"samantha", "manager123", "Samantha Carter", "M-456", "Technology", model.RoleManager},
		{"daniel", "finance123", "Daniel Jackson", "F-789", "Finance", model.RoleFinance},
	}

	accounts := make(map[string]*demoAccount, len(seed))
	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		accounts[u.username] = &demoAccount{
			Username:     u.username,
			Name:         u.name,
			EmployeeID:   u.employeeID,
			Department:   u.department,
			Role:         u.role,
			passwordHash: hash,
		}
	}

	return &authService{accounts: accounts, secret: secret}, nil
}

// --- Implementation ---

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	account, ok := s.accounts[req.Username]
	if !ok {
		return nil, errors.New("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(req.Password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  account.EmployeeID,
		"name": account.Name,
		"dept": account.Department,
		"role": string(account.Role),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{
		Token:      tokenString,
		Name:       account.Name,
		EmployeeID: account.EmployeeID,
		Department: account.Department,
		Role:       string(account.Role),
	}, nil
}
