// Package pronunciation generates song-based pronunciation exercises with
// reference audio and transcribes learner recordings.
package pronunciation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// MinExercises and MaxExercises bound the exercise set of one request.
	MinExercises = 5
	MaxExercises = 8
	// MaxWordTokens is the longest wordOrPhrase accepted, in whitespace-separated tokens.
	MaxWordTokens = 3
	// MaxFieldLength is the longest wordOrPhrase or phoneticTranscription the
	// exercise table stores, in characters.
	MaxFieldLength = 255
	// StrugglingMastery is the mastery score below which a word is prioritized.
	StrugglingMastery = 50
)

var (
	// ErrPipelineExhausted means synthesis succeeded but no exercise survived
	// materialization and persistence.
	ErrPipelineExhausted = errors.New("pipeline exhausted")
	ErrInvalidRequest    = errors.New("invalid exercise request")
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// VocabularyItem is one word from the learner's vocabulary history.
type VocabularyItem struct {
	Word         string `json:"word" yaml:"word"`
	Translation  string `json:"translation" yaml:"translation"`
	MasteryScore int    `json:"masteryScore" yaml:"mastery_score"`
	RecordID     string `json:"vocabularyRecordId" yaml:"id"`
}

// ExerciseRequest is built per call and never persisted.
type ExerciseRequest struct {
	UserID     string
	SongID     string
	Difficulty Difficulty
	Language   string
	Vocabulary []VocabularyItem
}

// Normalized trims the song id and lowercases the language so requests from
// every entry point store the same values.
func (r ExerciseRequest) Normalized() ExerciseRequest {
	r.SongID = strings.TrimSpace(r.SongID)
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	return r
}

func (r ExerciseRequest) Validate() error {
	var problems []string
	if strings.TrimSpace(r.SongID) == "" {
		problems = append(problems, "song id is required")
	}
	if !r.Difficulty.Valid() {
		problems = append(problems, fmt.Sprintf("difficulty %q is not one of beginner, intermediate, advanced", r.Difficulty))
	}
	if strings.TrimSpace(r.Language) == "" {
		problems = append(problems, "language is required")
	}
	for _, item := range r.Vocabulary {
		if item.MasteryScore < 0 || item.MasteryScore > 100 {
			problems = append(problems, fmt.Sprintf("mastery score %d of %q is outside 0..100", item.MasteryScore, item.Word))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, ", "), ErrInvalidRequest)
	}
	return nil
}

// GeneratedExercise is one exercise as produced by the generative model.
type GeneratedExercise struct {
	WordOrPhrase          string `json:"wordOrPhrase"`
	PhoneticTranscription string `json:"phoneticTranscription"`
	ContextSentence       string `json:"contextSentence"`
	VocabularyRecordID    string `json:"vocabularyRecordId,omitempty"`
}

// PersistedExercise is immutable once created; corrections require a new record.
type PersistedExercise struct {
	ID                    int64      `db:"id" json:"id"`
	UserID                string     `db:"user_id" json:"-"`
	SongID                string     `db:"song_id" json:"songIdentifier"`
	Difficulty            Difficulty `db:"difficulty" json:"difficultyTier"`
	Language              string     `db:"language" json:"targetLanguage"`
	WordOrPhrase          string     `db:"word_or_phrase" json:"wordOrPhrase"`
	PhoneticTranscription string     `db:"phonetic_transcription" json:"phoneticTranscription"`
	ContextSentence       string     `db:"context_sentence" json:"contextSentence"`
	VocabularyRecordID    string     `db:"vocabulary_record_id" json:"vocabularyRecordId,omitempty"`
	ReferenceAudioURL     string     `db:"reference_audio_url" json:"referenceAudioUrl"`
	CreatedAt             time.Time  `db:"created_at" json:"createdAt"`
}

func newPersistedExercise(req ExerciseRequest, exercise GeneratedExercise, audioURL string) *PersistedExercise {
	return &PersistedExercise{
		UserID:                req.UserID,
		SongID:                req.SongID,
		Difficulty:            req.Difficulty,
		Language:              req.Language,
		WordOrPhrase:          exercise.WordOrPhrase,
		PhoneticTranscription: exercise.PhoneticTranscription,
		ContextSentence:       exercise.ContextSentence,
		VocabularyRecordID:    exercise.VocabularyRecordID,
		ReferenceAudioURL:     audioURL,
	}
}

// TranscriptionResult is returned verbatim to the caller for scoring.
type TranscriptionResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

func tokenCount(s string) int {
	return len(strings.Fields(s))
}
