package pronunciation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/songlingo/songlingo/internal/database"
)

// DBExerciseRepository implements ExerciseRepository using MySQL. It only inserts.
type DBExerciseRepository struct {
	db *sqlx.DB
}

// NewDBExerciseRepository creates a new DBExerciseRepository.
func NewDBExerciseRepository(db *sqlx.DB) *DBExerciseRepository {
	return &DBExerciseRepository{db: db}
}

// Create inserts one exercise and fills in its assigned ID and CreatedAt.
func (r *DBExerciseRepository) Create(ctx context.Context, exercise *PersistedExercise) error {
	if exercise.ReferenceAudioURL == "" {
		return fmt.Errorf("exercise %q has no reference audio", exercise.WordOrPhrase)
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO pronunciation_exercises (user_id, song_id, difficulty, language, word_or_phrase, phonetic_transcription, context_sentence, vocabulary_record_id, reference_audio_url) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			exercise.UserID,
			exercise.SongID,
			exercise.Difficulty,
			exercise.Language,
			exercise.WordOrPhrase,
			exercise.PhoneticTranscription,
			exercise.ContextSentence,
			nullString(exercise.VocabularyRecordID),
			exercise.ReferenceAudioURL,
		)
		if err != nil {
			return fmt.Errorf("insert pronunciation exercise: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		if err := tx.GetContext(ctx, &exercise.CreatedAt, "SELECT created_at FROM pronunciation_exercises WHERE id = ?", id); err != nil {
			return fmt.Errorf("load created_at of pronunciation exercise %d: %w", id, err)
		}
		exercise.ID = id
		return nil
	})
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
