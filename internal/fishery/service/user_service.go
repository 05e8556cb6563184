// Package service provides the implementation of fishery regulation business logic.
package service

import (
	"context"
	"time"

	"github.com/finwatch/finwatch/internal/fishery/store"
)

// UserService is the read-only user directory. Accounts are managed out of band.
type UserService interface {
	FindByID(ctx context.Context, id int64) (*UserDto, error)
	FindAll(ctx context.Context) ([]UserDto, error)
	FindByRole(ctx context.Context, role store.UserRole) ([]UserDto, error)
}

type UserDto struct {
	ID        int64          `json:"id"`
	FullName  string         `json:"fullName"`
	Email     string         `json:"email"`
	Role      store.UserRole `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

type Users struct {
	users store.Users
}

func NewUserService(users store.Users) *Users {
	return &Users{users: users}
}

func (s *Users) FindByID(ctx context.Context, id int64) (*UserDto, error) {
	found, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDto(found), nil
}

func (s *Users) FindAll(ctx context.Context) ([]UserDto, error) {
	users, err := s.users.FindAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return toUserDtos(users), nil
}

func (s *Users) FindByRole(ctx context.Context, role store.UserRole) ([]UserDto, error) {
	users, err := s.users.FindUsersByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return toUserDtos(users), nil
}

func toUserDto(u *store.User) *UserDto {
	return &UserDto{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toUserDtos(users []store.User) []UserDto {
	dtos := make([]UserDto, 0, len(users))
	for i := range users {
		dtos = append(dtos, *toUserDto(&users[i]))
	}
	return dtos
}
