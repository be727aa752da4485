package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

type UserStatus string

const (
	UserStatusPending UserStatus = "PENDING"
	UserStatusActive  UserStatus = "ACTIVE"
)

type User struct {
	ID       string `gorm:"type:varchar(50);primary_key"`
	Username string `gorm:"type:varchar(50);uniqueIndex"`
	Password string `gorm:"type:varchar(255)"`
	FullName string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(255)"`

	Roles  RoleSet    `gorm:"type:text"`
	Status UserStatus `gorm:"type:varchar(20);not null"`
	Active bool       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Users []User

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r))
	}
	return names
}

func (u *User) LoginAllowed() bool {
	return u.Active && u.Status == UserStatusActive
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func (r *repository) SaveUser(ctx context.Context, user *User) error {
	tx := r.withContext(ctx).Save(user)
	return tx.Error
}

func (r *repository) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	tx := r.withContext(ctx).First(&u, "id = ?", id)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &u, nil
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	tx := r.withContext(ctx).First(&u, "username = ?", username)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &u, nil
}

func (r *repository) ListUsers(ctx context.Context) (Users, error) {
	var users = []User{}
	tx := r.withContext(ctx).Order("created_at").Find(&users)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return users, nil
}
