package pronunciation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/songlingo/songlingo/internal/metrics"
	"github.com/songlingo/songlingo/internal/song"
)

//go:generate mockgen -source=pipeline.go -destination=../mocks/pronunciation/mock_pipeline.go -package=mock_pronunciation

// ExerciseSource produces the validated exercise list of one request.
type ExerciseSource interface {
	Synthesize(ctx context.Context, req ExerciseRequest, sg song.Song) ([]GeneratedExercise, error)
}

// AudioSource materializes reference audio for one exercise.
type AudioSource interface {
	CheckLanguage(language string) error
	Materialize(ctx context.Context, req ExerciseRequest, index int, exercise GeneratedExercise) (string, error)
}

// ExerciseRepository stores exercises. Records are never updated.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *PersistedExercise) error
}

type state string

const (
	stateStarted            state = "started"
	stateSynthesizing       state = "synthesizing"
	stateMaterializingAudio state = "materializing_audio"
	statePersisting         state = "persisting"
	stateCompleted          state = "completed"
	stateFailed             state = "failed"
)

// Outcome is the result of one exercise: either Exercise or Err is set.
type Outcome struct {
	Index    int
	Exercise *PersistedExercise
	Err      error
}

// Result holds the persisted exercises in model order and every outcome,
// skipped ones included.
type Result struct {
	Exercises []PersistedExercise
	Outcomes  []Outcome
}

// Skipped returns the number of exercises that did not survive the pipeline.
func (r Result) Skipped() int {
	return len(r.Outcomes) - len(r.Exercises)
}

// Pipeline drives synthesis, materialization and persistence for one request.
type Pipeline struct {
	songs       song.SongRepository
	exercises   ExerciseSource
	audio       AudioSource
	repository  ExerciseRepository
	concurrency int
}

func NewPipeline(songs song.SongRepository, exercises ExerciseSource, audio AudioSource, repository ExerciseRepository, concurrency int) *Pipeline {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		songs:       songs,
		exercises:   exercises,
		audio:       audio,
		repository:  repository,
		concurrency: concurrency,
	}
}

// Run generates and stores the exercises of req. A failing exercise is
// skipped; the request fails with ErrPipelineExhausted only if none survive.
func (p *Pipeline) Run(ctx context.Context, req ExerciseRequest) (Result, error) {
	req = req.Normalized()
	startedAt := time.Now()
	logger := slog.Default().With("userId", req.UserID, "songId", req.SongID, "language", req.Language)
	logger.Info("exercise pipeline", "state", stateStarted, "difficulty", req.Difficulty)

	exercises, err := p.prepare(ctx, logger, req)
	if err != nil {
		logger.Error("exercise pipeline", "state", stateFailed, "error", err)
		metrics.RecordPipelineRun("failed")
		return Result{}, err
	}

	outcomes := make([]Outcome, len(exercises))
	if p.concurrency == 1 {
		for i, exercise := range exercises {
			outcomes[i] = p.process(ctx, logger, req, i, exercise)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(p.concurrency)
		for i, exercise := range exercises {
			g.Go(func() error {
				outcomes[i] = p.process(ctx, logger, req, i, exercise)
				return nil
			})
		}
		_ = g.Wait()
	}

	result := Result{Outcomes: outcomes}
	var causes []error
	for _, outcome := range outcomes {
		metrics.RecordExercise(outcome.Err == nil)
		if outcome.Err != nil {
			causes = append(causes, outcome.Err)
			continue
		}
		result.Exercises = append(result.Exercises, *outcome.Exercise)
	}

	if len(result.Exercises) == 0 {
		causes = append([]error{ErrPipelineExhausted}, causes...)
		err := fmt.Errorf("all %d exercises failed: %w", len(exercises), errors.Join(causes...))
		logger.Error("exercise pipeline", "state", stateFailed, "error", err)
		metrics.RecordPipelineRun("exhausted")
		return result, err
	}

	logger.Info("exercise pipeline",
		"state", stateCompleted,
		"persisted", len(result.Exercises),
		"skipped", result.Skipped(),
		"latency_ms", time.Since(startedAt).Milliseconds())
	if result.Skipped() > 0 {
		metrics.RecordPipelineRun("partial")
	} else {
		metrics.RecordPipelineRun("completed")
	}
	return result, nil
}

func (p *Pipeline) prepare(ctx context.Context, logger *slog.Logger, req ExerciseRequest) ([]GeneratedExercise, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := p.audio.CheckLanguage(req.Language); err != nil {
		return nil, fmt.Errorf("audio.CheckLanguage > %w", err)
	}
	sg, err := p.songs.FindByID(ctx, req.SongID)
	if err != nil {
		return nil, fmt.Errorf("songs.FindByID > %w", err)
	}

	logger.Info("exercise pipeline", "state", stateSynthesizing, "vocabulary", len(req.Vocabulary))
	exercises, err := p.exercises.Synthesize(ctx, req, sg)
	if err != nil {
		return nil, fmt.Errorf("exercises.Synthesize > %w", err)
	}
	return exercises, nil
}

// process runs one exercise to completion. The record is only created after
// its audio has been uploaded.
func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, req ExerciseRequest, index int, exercise GeneratedExercise) Outcome {
	logger = logger.With("index", index, "wordOrPhrase", exercise.WordOrPhrase)

	logger.Debug("exercise pipeline", "state", stateMaterializingAudio)
	audioURL, err := p.audio.Materialize(ctx, req, index, exercise)
	if err != nil {
		logger.Warn("skipped exercise", "state", stateMaterializingAudio, "error", err)
		return Outcome{Index: index, Err: fmt.Errorf("audio.Materialize > %w", err)}
	}

	logger.Debug("exercise pipeline", "state", statePersisting, "referenceAudioUrl", audioURL)
	persisted := newPersistedExercise(req, exercise, audioURL)
	if err := p.repository.Create(ctx, persisted); err != nil {
		logger.Warn("skipped exercise", "state", statePersisting, "referenceAudioUrl", audioURL, "error", err)
		return Outcome{Index: index, Err: fmt.Errorf("repository.Create > %w", err)}
	}
	return Outcome{Index: index, Exercise: persisted}
}
