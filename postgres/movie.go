package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"filmoteca/movie"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID           int64         `gorm:"primaryKey"`
	TmdbID       int64         `gorm:"column:tmdb_id;not null;uniqueIndex"`
	Title        string        `gorm:"not null"`
	Overview     *string       `gorm:"type:text"`
	ReleaseDate  *time.Time    `gorm:"type:date"`
	GenreIDs     pq.Int64Array `gorm:"column:genre_ids;type:bigint[];not null;default:'{}'"`
	VoteAverage  *float64
	VoteCount    *int64
	PosterPath   *string
	BackdropPath *string
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// CreateMovie inserts a movie and returns it with the generated id and
// timestamp.
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := toModelMovie(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, "tmdb") {
			return movie.Movie{}, movie.ErrDuplicateTmdbID
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// Movies returns a page of movies in insertion order, optionally filtered
// by a case-insensitive title substring.
func (r *MovieRepository) Movies(ctx context.Context, f movie.ListFilter) ([]movie.Movie, error) {
	q := r.db.WithContext(ctx).Model(&MovieModel{}).Order("id")
	if f.Title != "" {
		q = q.Where("title ILIKE ?", "%"+f.Title+"%")
	}

	var models []MovieModel
	if err := q.Offset(f.Skip).Limit(f.Limit).Find(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, nil
}

// GetByID fetches a movie by its local id.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// GetByTmdbID fetches a movie by its catalog id.
func (r *MovieRepository) GetByTmdbID(ctx context.Context, tmdbID int64) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Where("tmdb_id = ?", tmdbID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// UpdateMovie loads the record, merges the patch into it and saves the
// result. Save writes every column, so fields cleared by an explicit null
// end up NULL in the row.
func (r *MovieRepository) UpdateMovie(ctx context.Context, id int64, patch movie.UpdateMovie) (movie.Movie, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return movie.Movie{}, err
	}

	merged := patch.Apply(current)
	model := toModelMovie(merged)
	model.ID = current.ID
	model.CreatedAt = current.CreatedAt
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// DeleteMovie removes a movie by id.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MovieModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

// ImportMovies inserts the given movies inside one transaction, skipping
// ones whose tmdb id is already present. Nothing commits on a mid-batch
// failure, so the returned count is exact.
func (r *MovieRepository) ImportMovies(ctx context.Context, movies []movie.Movie) (int, error) {
	count := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range movies {
			var existing int64
			if err := tx.Model(&MovieModel{}).Where("tmdb_id = ?", m.TmdbID).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			model := toModelMovie(m)
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:           model.ID,
		TmdbID:       model.TmdbID,
		Title:        model.Title,
		Overview:     model.Overview,
		ReleaseDate:  model.ReleaseDate,
		GenreIDs:     []int64(model.GenreIDs),
		VoteAverage:  model.VoteAverage,
		VoteCount:    model.VoteCount,
		PosterPath:   model.PosterPath,
		BackdropPath: model.BackdropPath,
		CreatedAt:    model.CreatedAt,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	genres := m.GenreIDs
	if genres == nil {
		genres = []int64{}
	}
	return MovieModel{
		TmdbID:       m.TmdbID,
		Title:        m.Title,
		Overview:     m.Overview,
		ReleaseDate:  m.ReleaseDate,
		GenreIDs:     pq.Int64Array(genres),
		VoteAverage:  m.VoteAverage,
		VoteCount:    m.VoteCount,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
	}
}

// isUniqueViolation reports whether err is a unique constraint violation on
// a constraint whose name contains constraintPart. The gorm postgres driver
// speaks pgx, so violations surface as *pgconn.PgError; the pq branch covers
// connections opened through database/sql with lib/pq.
func isUniqueViolation(err error, constraintPart string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), constraintPart)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(strings.ToLower(pqErr.Constraint), constraintPart)
	}
	return false
}
