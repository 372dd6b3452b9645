// Package song provides read access to the song catalogue.
package song

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/song/mock_repository.go -package=mock_song

// ErrNotFound is returned when no song has the requested id.
var ErrNotFound = errors.New("song not found")

// Song is the catalogue entry learners practice with.
type Song struct {
	ID        string    `db:"id" yaml:"id"`
	Title     string    `db:"title" yaml:"title"`
	Artist    string    `db:"artist" yaml:"artist"`
	Language  string    `db:"language" yaml:"language"`
	Lyrics    string    `db:"lyrics" yaml:"lyrics"`
	CreatedAt time.Time `db:"created_at" yaml:"-"`
	UpdatedAt time.Time `db:"updated_at" yaml:"-"`
}

// SongRepository defines read operations on songs.
type SongRepository interface {
	FindByID(ctx context.Context, id string) (Song, error)
}

// DBSongRepository implements SongRepository using MySQL.
type DBSongRepository struct {
	db *sqlx.DB
}

// NewDBSongRepository creates a new DBSongRepository.
func NewDBSongRepository(db *sqlx.DB) *DBSongRepository {
	return &DBSongRepository{db: db}
}

// FindByID returns the song with the given id.
func (r *DBSongRepository) FindByID(ctx context.Context, id string) (Song, error) {
	var s Song
	if err := r.db.GetContext(ctx, &s, "SELECT id, title, artist, language, lyrics, created_at, updated_at FROM songs WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, fmt.Errorf("find song %s: %w", id, ErrNotFound)
		}
		return Song{}, fmt.Errorf("find song %s: %w", id, err)
	}
	return s, nil
}

// Save inserts the song or replaces the metadata and lyrics of an existing one.
func (r *DBSongRepository) Save(ctx context.Context, s Song) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO songs (id, title, artist, language, lyrics) VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE title = VALUES(title), artist = VALUES(artist), language = VALUES(language), lyrics = VALUES(lyrics)`,
		s.ID, s.Title, s.Artist, s.Language, s.Lyrics,
	); err != nil {
		return fmt.Errorf("save song %s: %w", s.ID, err)
	}
	return nil
}
