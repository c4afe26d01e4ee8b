package services

import (
	"errors"

	"redheart/internal/domain"
	"redheart/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

// Login checks the operator's password and opens a fresh session.
func (s *AuthService) Login(email, password string) (*domain.Session, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	sid := uuid.NewString()
	if err := s.Users.CreateSession(sid, u.ID); err != nil {
		return nil, err
	}
	return &domain.Session{ID: sid, UserID: u.ID, Email: u.Email, Name: u.Name}, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.DeleteSession(sid)
}

// Session resolves a sid; any lookup failure means not logged in.
func (s *AuthService) Session(sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, ErrBadCreds
	}
	return s.Users.Session(sid)
}
