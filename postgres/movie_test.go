package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"filmoteca/movie"
	"filmoteca/pkg/optional"
	"filmoteca/postgres"
)

func TestMovieRepository_CreateMovie(t *testing.T) {
	// Arrange - Setup shared database container and connection
	dbName, dbUser, dbPass := "movie_create_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")

	t.Run("successfully creates a movie", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		overview := "A hacker learns the truth."
		release := time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC)
		m := movie.Movie{
			TmdbID:      603,
			Title:       "The Matrix",
			Overview:    &overview,
			ReleaseDate: &release,
			GenreIDs:    []int64{28, 878},
		}

		// Act
		created, err := repo.CreateMovie(context.Background(), m)

		// Assert
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.NotZero(t, created.CreatedAt)
		assert.Equal(t, []int64{28, 878}, created.GenreIDs)
		assertMovieExists(t, db, m)
	})

	t.Run("nil genre list is stored as empty array", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)

		// Act
		created, err := repo.CreateMovie(context.Background(), movie.Movie{TmdbID: 604, Title: "Reloaded"})

		// Assert
		require.NoError(t, err)
		fetched, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{}, fetched.GenreIDs)
	})

	t.Run("rejects duplicate tmdb id", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		_, err := repo.CreateMovie(context.Background(), movie.Movie{TmdbID: 603, Title: "The Matrix"})
		require.NoError(t, err)

		// Act
		_, err = repo.CreateMovie(context.Background(), movie.Movie{TmdbID: 603, Title: "Different Title"})

		// Assert
		assert.ErrorIs(t, err, movie.ErrDuplicateTmdbID)
	})
}

func TestMovieRepository_Movies(t *testing.T) {
	dbName, dbUser, dbPass := "movie_list_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")

	t.Run("pages in insertion order", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		mustCreateMovies(t, repo, []movie.Movie{
			{TmdbID: 1, Title: "First"},
			{TmdbID: 2, Title: "Second"},
			{TmdbID: 3, Title: "Third"},
		})

		// Act
		page, err := repo.Movies(context.Background(), movie.ListFilter{Skip: 1, Limit: 2})

		// Assert
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "Second", page[0].Title)
		assert.Equal(t, "Third", page[1].Title)
	})

	t.Run("filters by case-insensitive title substring", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		mustCreateMovies(t, repo, []movie.Movie{
			{TmdbID: 1, Title: "The Matrix"},
			{TmdbID: 2, Title: "Heat"},
			{TmdbID: 3, Title: "The Matrix Reloaded"},
		})

		// Act
		matches, err := repo.Movies(context.Background(), movie.ListFilter{Limit: 10, Title: "matrix"})

		// Assert
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("returns empty list when no movies exist", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)

		// Act
		page, err := repo.Movies(context.Background(), movie.ListFilter{Limit: 10})

		// Assert
		require.NoError(t, err)
		assert.Empty(t, page)
	})
}

func TestMovieRepository_GetByTmdbID(t *testing.T) {
	dbName, dbUser, dbPass := "movie_get_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")

	t.Run("finds a stored movie by catalog id", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		created, err := repo.CreateMovie(context.Background(), movie.Movie{TmdbID: 603, Title: "The Matrix"})
		require.NoError(t, err)

		// Act
		found, err := repo.GetByTmdbID(context.Background(), 603)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("returns not found for unknown catalog id", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)

		_, err := repo.GetByTmdbID(context.Background(), 999999)

		assert.ErrorIs(t, err, movie.ErrMovieNotFound)
	})
}

func TestMovieRepository_UpdateMovie(t *testing.T) {
	dbName, dbUser, dbPass := "movie_update_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")

	t.Run("updates only supplied fields", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		overview := "Original overview"
		created, err := repo.CreateMovie(context.Background(), movie.Movie{
			TmdbID:   603,
			Title:    "The Matrix",
			Overview: &overview,
		})
		require.NoError(t, err)
		newTitle := "The Matrix (1999)"

		// Act
		updated, err := repo.UpdateMovie(context.Background(), created.ID, movie.UpdateMovie{Title: &newTitle})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
		require.NotNil(t, updated.Overview, "untouched fields keep their value")
		assert.Equal(t, overview, *updated.Overview)
	})

	t.Run("explicit null clears stored fields", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		overview := "A hacker learns the truth."
		release := time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC)
		created, err := repo.CreateMovie(context.Background(), movie.Movie{
			TmdbID:      603,
			Title:       "The Matrix",
			Overview:    &overview,
			ReleaseDate: &release,
		})
		require.NoError(t, err)

		// Act
		updated, err := repo.UpdateMovie(context.Background(), created.ID, movie.UpdateMovie{
			Overview:    optional.Null[string](),
			ReleaseDate: optional.Null[time.Time](),
		})

		// Assert
		require.NoError(t, err)
		assert.Nil(t, updated.Overview)
		assert.Nil(t, updated.ReleaseDate)
		stored, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Overview, "the cleared value must not survive a reload")
		assert.Nil(t, stored.ReleaseDate)
		assert.Equal(t, "The Matrix", stored.Title)
	})

	t.Run("empty patch returns the current record", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		created, err := repo.CreateMovie(context.Background(), movie.Movie{TmdbID: 603, Title: "The Matrix"})
		require.NoError(t, err)

		updated, err := repo.UpdateMovie(context.Background(), created.ID, movie.UpdateMovie{})

		require.NoError(t, err)
		assert.Equal(t, created.Title, updated.Title)
	})

	t.Run("replaces the genre list wholesale", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		created, err := repo.CreateMovie(context.Background(), movie.Movie{
			TmdbID:   603,
			Title:    "The Matrix",
			GenreIDs: []int64{28},
		})
		require.NoError(t, err)
		genres := []int64{878, 53}

		updated, err := repo.UpdateMovie(context.Background(), created.ID, movie.UpdateMovie{GenreIDs: &genres})

		require.NoError(t, err)
		assert.Equal(t, genres, updated.GenreIDs)
	})

	t.Run("returns not found for missing movie", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		title := "Nobody"

		_, err := repo.UpdateMovie(context.Background(), 12345, movie.UpdateMovie{Title: &title})

		assert.ErrorIs(t, err, movie.ErrMovieNotFound)
	})
}

func TestMovieRepository_DeleteMovie(t *testing.T) {
	dbName, dbUser, dbPass := "movie_delete_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")

	t.Run("deleted movie is gone", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		created, err := repo.CreateMovie(context.Background(), movie.Movie{TmdbID: 603, Title: "The Matrix"})
		require.NoError(t, err)

		// Act
		err = repo.DeleteMovie(context.Background(), created.ID)

		// Assert
		require.NoError(t, err)
		_, err = repo.GetByID(context.Background(), created.ID)
		assert.ErrorIs(t, err, movie.ErrMovieNotFound)
	})

	t.Run("returns not found for missing movie", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)

		err := repo.DeleteMovie(context.Background(), 12345)

		assert.ErrorIs(t, err, movie.ErrMovieNotFound)
	})
}

func TestMovieRepository_ImportMovies(t *testing.T) {
	dbName, dbUser, dbPass := "movie_import_test", "testuser", "testpass"
	db := CreateConnection(t, dbName, dbUser, dbPass)
	MigrateTestDatabase(t, db, "../migrations")

	t.Run("skips already stored catalog ids and counts only inserts", func(t *testing.T) {
		// Arrange
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)
		_, err := repo.CreateMovie(context.Background(), movie.Movie{TmdbID: 7, Title: "Known Movie"})
		require.NoError(t, err)

		// Act
		count, err := repo.ImportMovies(context.Background(), []movie.Movie{
			{TmdbID: 42, Title: "New Movie"},
			{TmdbID: 7, Title: "Known Movie"},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, count, "only the unknown catalog id should be inserted")
		movies, err := repo.Movies(context.Background(), movie.ListFilter{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, movies, 2)
	})

	t.Run("empty batch inserts nothing", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)

		count, err := repo.ImportMovies(context.Background(), nil)

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("duplicate ids within one batch insert once", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		repo := postgres.NewMovieRepository(db)

		count, err := repo.ImportMovies(context.Background(), []movie.Movie{
			{TmdbID: 42, Title: "New Movie"},
			{TmdbID: 42, Title: "New Movie Again"},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func mustCreateMovies(t *testing.T, repo *postgres.MovieRepository, movies []movie.Movie) {
	t.Helper()
	for _, m := range movies {
		_, err := repo.CreateMovie(context.Background(), m)
		require.NoError(t, err)
	}
}

// assertMovieExists verifies that a movie row exists with the expected values
func assertMovieExists(t testing.TB, db *gorm.DB, expected movie.Movie) {
	t.Helper()
	var model postgres.MovieModel
	result := db.Where("tmdb_id = ?", expected.TmdbID).First(&model)
	require.NoError(t, result.Error, "movie should exist in database")
	assert.Equal(t, expected.Title, model.Title)
	assert.NotZero(t, model.ID)
}

// cleanupMovieDatabase truncates the movies table to ensure test isolation
func cleanupMovieDatabase(t testing.TB, db *gorm.DB) {
	t.Helper()
	err := db.Exec("TRUNCATE TABLE movies RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
}
