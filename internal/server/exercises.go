package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/songlingo/songlingo/internal/auth"
	"github.com/songlingo/songlingo/internal/config"
	"github.com/songlingo/songlingo/internal/pronunciation"
)

const maxExerciseRequestBytes = 1 << 20

type exerciseRequestBody struct {
	SongIdentifier    string               `json:"songIdentifier" validate:"required"`
	DifficultyTier    string               `json:"difficultyTier" validate:"required,oneof=beginner intermediate advanced"`
	Language          string               `json:"language" validate:"required"`
	LearnerVocabulary []vocabularyItemBody `json:"learnerVocabulary" validate:"dive"`
}

type vocabularyItemBody struct {
	Word               string `json:"word" validate:"required"`
	Translation        string `json:"translation"`
	MasteryScore       int    `json:"masteryScore" validate:"min=0,max=100"`
	VocabularyRecordID string `json:"vocabularyRecordId"`
}

type exercisesResponse struct {
	Exercises []pronunciation.PersistedExercise `json:"exercises"`
}

func (b exerciseRequestBody) toRequest(userID string) pronunciation.ExerciseRequest {
	req := pronunciation.ExerciseRequest{
		UserID:     userID,
		SongID:     b.SongIdentifier,
		Difficulty: pronunciation.Difficulty(b.DifficultyTier),
		Language:   b.Language,
	}
	for _, item := range b.LearnerVocabulary {
		req.Vocabulary = append(req.Vocabulary, pronunciation.VocabularyItem{
			Word:         item.Word,
			Translation:  item.Translation,
			MasteryScore: item.MasteryScore,
			RecordID:     item.VocabularyRecordID,
		})
	}
	return req.Normalized()
}

// CreateExercises handles POST /v1/pronunciation/exercises.
func (h *Handler) CreateExercises(w http.ResponseWriter, r *http.Request) {
	var body exerciseRequestBody
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExerciseRequestBytes))
	if err := decoder.Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "request body must be a JSON object: "+err.Error())
		return
	}
	if err := h.validate.Struct(body); err != nil {
		h.writeError(w, http.StatusBadRequest, config.ValidationMessages(err, h.trans))
		return
	}

	var userID string
	if claims, ok := auth.ClaimsFrom(r.Context()); ok {
		userID = claims.Subject
	}

	result, err := h.pipeline.Run(r.Context(), body.toRequest(userID))
	if err != nil {
		status, message := exerciseErrorStatus(err)
		slog.Default().Error("failed to generate exercises",
			"songId", body.SongIdentifier,
			"status", status,
			"error", err)
		h.writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, exercisesResponse{Exercises: result.Exercises})
}
