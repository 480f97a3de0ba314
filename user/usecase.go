package user

import "context"

type Service interface {
	AddUser(ctx context.Context, u User) (User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	UpdateUser(ctx context.Context, id int64, patch UpdateUser) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	Users(ctx context.Context, skip, limit int) ([]User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	// ExistsByUsernameOrEmail reports whether any row matches the username
	// OR the email. Either collision alone blocks creation.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateUser(ctx context.Context, id int64, patch UpdateUser) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) AddUser(ctx context.Context, u User) (User, error) {
	u.IsActive = true
	if err := u.Validate(); err != nil {
		return User{}, err
	}

	taken, err := uc.r.ExistsByUsernameOrEmail(ctx, u.Username, u.Email)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrUserExists
	}

	return uc.r.CreateUser(ctx, u)
}

func (uc *Usecase) ListUsers(ctx context.Context, skip, limit int) ([]User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return uc.r.Users(ctx, skip, limit)
}

func (uc *Usecase) GetUserByID(ctx context.Context, id int64) (User, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) UpdateUser(ctx context.Context, id int64, patch UpdateUser) (User, error) {
	return uc.r.UpdateUser(ctx, id, patch)
}

func (uc *Usecase) DeleteUser(ctx context.Context, id int64) error {
	return uc.r.DeleteUser(ctx, id)
}
