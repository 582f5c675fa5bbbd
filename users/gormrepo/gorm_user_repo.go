// Package gormrepo persists users in postgres so sessions survive a restart.
package gormrepo

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/jrsteele09/go-expenses-tracker/users"
	"golang.org/x/oauth2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ users.UserRepo = (*Repo)(nil)

type userRecord struct {
	ID           string `gorm:"primaryKey"`
	Email        string
	Name         string
	Picture      string
	AccessToken  string
	RefreshToken string
	TokenType    string
	TokenExpiry  time.Time
	CreatedAt    time.Time
	LastLogin    time.Time
}

func (userRecord) TableName() string {
	return "users"
}

type Repo struct {
	db *gorm.DB
}

// Open connects to postgres using dsn and migrates the users table.
func Open(dsn string) (*Repo, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("[gormrepo Open] failed to connect: %w", err)
	}
	return New(db)
}

func New(db *gorm.DB) (*Repo, error) {
	if err := db.AutoMigrate(&userRecord{}); err != nil {
		return nil, fmt.Errorf("[gormrepo New] failed to migrate users: %w", err)
	}
	return &Repo{db: db}, nil
}

// Close releases the underlying connection pool.
func (r *Repo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("[gormrepo Close] %w", err)
	}
	return sqlDB.Close()
}

func (r *Repo) Get(id string) (*users.User, error) {
	var rec userRecord
	if err := r.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("[gormrepo Get] %w", err)
	}
	return fromRecord(rec), nil
}

// Upsert inserts the user or, on a repeat login, refreshes profile and token columns.
func (r *Repo) Upsert(user *users.User) error {
	if user == nil || user.ID == "" {
		return errors.New("user id is required")
	}
	rec := toRecord(user)
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "name", "picture",
			"access_token", "refresh_token", "token_type", "token_expiry",
			"last_login",
		}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("[gormrepo Upsert] %w", err)
	}
	return nil
}

func toRecord(u *users.User) userRecord {
	rec := userRecord{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Picture:   u.Picture,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
	if u.Token != nil {
		rec.AccessToken = u.Token.AccessToken
		rec.RefreshToken = u.Token.RefreshToken
		rec.TokenType = u.Token.TokenType
		rec.TokenExpiry = u.Token.Expiry
	}
	return rec
}

func fromRecord(rec userRecord) *users.User {
	u := &users.User{
		ID:        rec.ID,
		Email:     rec.Email,
		Name:      rec.Name,
		Picture:   rec.Picture,
		CreatedAt: rec.CreatedAt,
		LastLogin: rec.LastLogin,
	}
	if rec.AccessToken != "" || rec.RefreshToken != "" {
		u.Token = &oauth2.Token{
			AccessToken:  rec.AccessToken,
			RefreshToken: rec.RefreshToken,
			TokenType:    rec.TokenType,
			Expiry:       rec.TokenExpiry,
		}
	}
	return u
}
