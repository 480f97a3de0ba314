package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
}

func NewConnection(opts Options) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn(opts)), &gorm.Config{})
}

func dsn(opts Options) string {
	sslmode := "disable"
	if opts.SSLMode {
		sslmode = "require"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		opts.Host, opts.Port, opts.DBUser, opts.Password, opts.DBName, sslmode,
	)
}

// AutoMigrate creates the movies and users tables when absent. Versioned
// DDL lives in migrations/, this keeps a fresh database usable without a
// separate migrate run.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&MovieModel{}, &UserModel{})
}
