package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"filmoteca/user"
)

// UserModel represents the database model for users
type UserModel struct {
	ID        int64   `gorm:"primaryKey"`
	Username  string  `gorm:"not null;unique"`
	Email     string  `gorm:"not null;unique"`
	FullName  *string `gorm:"type:text"`
	IsActive  bool    `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRepository implements user.Repository interface
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user in the database
func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	model := toModelUser(u)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, "username") || isUniqueViolation(err, "email") {
			return user.User{}, user.ErrUserExists
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

// Users returns a page of users in insertion order.
func (r *UserRepository) Users(ctx context.Context, skip, limit int) ([]user.User, error) {
	var models []UserModel
	err := r.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = toDomainUser(model)
	}
	return users, nil
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

// ExistsByUsernameOrEmail runs the combined duplicate lookup used as the
// creation precondition.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateUser loads the record, merges the patch into it and saves the
// result. Save writes every column, so a full name cleared by an explicit
// null ends up NULL in the row.
func (r *UserRepository) UpdateUser(ctx context.Context, id int64, patch user.UpdateUser) (user.User, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	merged := patch.Apply(current)
	model := toModelUser(merged)
	model.ID = current.ID
	model.CreatedAt = current.CreatedAt
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if isUniqueViolation(err, "username") || isUniqueViolation(err, "email") {
			return user.User{}, user.ErrUserExists
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

// DeleteUser removes a user by id.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toDomainUser(model UserModel) user.User {
	return user.User{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		FullName:  model.FullName,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
	}
}

func toModelUser(u user.User) UserModel {
	return UserModel{
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: u.IsActive,
	}
}
