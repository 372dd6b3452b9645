package pronunciation_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_pronunciation "github.com/songlingo/songlingo/internal/mocks/pronunciation"
	mock_song "github.com/songlingo/songlingo/internal/mocks/song"
	mock_storage "github.com/songlingo/songlingo/internal/mocks/storage"
	"github.com/songlingo/songlingo/internal/pronunciation"
	"github.com/songlingo/songlingo/internal/provider"
	"github.com/songlingo/songlingo/internal/song"
)

type pipelineMocks struct {
	songs      *mock_song.MockSongRepository
	exercises  *mock_pronunciation.MockExerciseSource
	audio      *mock_pronunciation.MockAudioSource
	repository *mock_pronunciation.MockExerciseRepository
}

func newPipeline(t *testing.T, concurrency int) (*pronunciation.Pipeline, pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		songs:      mock_song.NewMockSongRepository(ctrl),
		exercises:  mock_pronunciation.NewMockExerciseSource(ctrl),
		audio:      mock_pronunciation.NewMockAudioSource(ctrl),
		repository: mock_pronunciation.NewMockExerciseRepository(ctrl),
	}
	return pronunciation.NewPipeline(m.songs, m.exercises, m.audio, m.repository, concurrency), m
}

func generated(n int) []pronunciation.GeneratedExercise {
	exercises := make([]pronunciation.GeneratedExercise, n)
	for i := range exercises {
		word := fmt.Sprintf("palabra%d", i+1)
		exercises[i] = pronunciation.GeneratedExercise{
			WordOrPhrase:          word,
			PhoneticTranscription: "/" + word + "/",
			ContextSentence:       "Ella dijo " + word + ".",
		}
	}
	return exercises
}

func expectSynthesis(m pipelineMocks, exercises []pronunciation.GeneratedExercise) {
	m.audio.EXPECT().CheckLanguage("spanish").Return(nil)
	m.songs.EXPECT().FindByID(gomock.Any(), "s1").Return(testSong, nil)
	m.exercises.EXPECT().Synthesize(gomock.Any(), gomock.Any(), testSong).Return(exercises, nil)
}

func audioURL(index int) string {
	return fmt.Sprintf("https://cdn.example.com/pronunciation/s1/%d.mp3", index)
}

func persistedWords(exercises []pronunciation.PersistedExercise) []string {
	var got []string
	for _, e := range exercises {
		got = append(got, e.WordOrPhrase)
	}
	return got
}

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		setupMock   func(m pipelineMocks)
		wantWords   []string
		wantSkipped int
		wantErr     error
	}{
		{
			name:        "persists every exercise in model order",
			concurrency: 1,
			setupMock: func(m pipelineMocks) {
				expectSynthesis(m, generated(6))
				m.audio.EXPECT().Materialize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pronunciation.ExerciseRequest, i int, _ pronunciation.GeneratedExercise) (string, error) {
						return audioURL(i), nil
					}).Times(6)
				m.repository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(6)
			},
			wantWords: []string{"palabra1", "palabra2", "palabra3", "palabra4", "palabra5", "palabra6"},
		},
		{
			name:        "a failing third exercise does not stop the others",
			concurrency: 1,
			setupMock: func(m pipelineMocks) {
				expectSynthesis(m, generated(6))
				m.audio.EXPECT().Materialize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pronunciation.ExerciseRequest, i int, _ pronunciation.GeneratedExercise) (string, error) {
						if i == 2 {
							return "", fmt.Errorf("elevenlabs: %w", provider.ErrProviderUnavailable)
						}
						return audioURL(i), nil
					}).Times(6)
				m.repository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(5)
			},
			wantWords:   []string{"palabra1", "palabra2", "palabra4", "palabra5", "palabra6"},
			wantSkipped: 1,
		},
		{
			name:        "a failing insert skips only that exercise",
			concurrency: 1,
			setupMock: func(m pipelineMocks) {
				expectSynthesis(m, generated(5))
				m.audio.EXPECT().Materialize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pronunciation.ExerciseRequest, i int, _ pronunciation.GeneratedExercise) (string, error) {
						return audioURL(i), nil
					}).Times(5)
				m.repository.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *pronunciation.PersistedExercise) error {
						if e.WordOrPhrase == "palabra1" {
							return errors.New("deadlock found")
						}
						return nil
					}).Times(5)
			},
			wantWords:   []string{"palabra2", "palabra3", "palabra4", "palabra5"},
			wantSkipped: 1,
		},
		{
			name:        "concurrent processing keeps model order",
			concurrency: 4,
			setupMock: func(m pipelineMocks) {
				expectSynthesis(m, generated(8))
				m.audio.EXPECT().Materialize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ pronunciation.ExerciseRequest, i int, _ pronunciation.GeneratedExercise) (string, error) {
						time.Sleep(time.Duration(8-i) * time.Millisecond)
						if i == 5 {
							return "", errors.New("upload failed")
						}
						return audioURL(i), nil
					}).Times(8)
				m.repository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(7)
			},
			wantWords:   []string{"palabra1", "palabra2", "palabra3", "palabra4", "palabra5", "palabra7", "palabra8"},
			wantSkipped: 1,
		},
		{
			name:        "every exercise failing exhausts the pipeline",
			concurrency: 1,
			setupMock: func(m pipelineMocks) {
				expectSynthesis(m, generated(5))
				m.audio.EXPECT().Materialize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("bucket unavailable")).Times(5)
			},
			wantErr: pronunciation.ErrPipelineExhausted,
		},
		{
			name:        "synthesis failure fails the request",
			concurrency: 1,
			setupMock: func(m pipelineMocks) {
				m.audio.EXPECT().CheckLanguage("spanish").Return(nil)
				m.songs.EXPECT().FindByID(gomock.Any(), "s1").Return(testSong, nil)
				m.exercises.EXPECT().Synthesize(gomock.Any(), gomock.Any(), testSong).
					Return(nil, fmt.Errorf("too few: %w", provider.ErrSchemaViolation))
			},
			wantErr: provider.ErrSchemaViolation,
		},
		{
			name:        "unknown song fails before synthesis",
			concurrency: 1,
			setupMock: func(m pipelineMocks) {
				m.audio.EXPECT().CheckLanguage("spanish").Return(nil)
				m.songs.EXPECT().FindByID(gomock.Any(), "s1").Return(song.Song{}, song.ErrNotFound)
			},
			wantErr: song.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline, m := newPipeline(t, tt.concurrency)
			tt.setupMock(m)

			result, err := pipeline.Run(context.Background(), testRequest())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, result.Exercises)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWords, persistedWords(result.Exercises))
			assert.Equal(t, tt.wantSkipped, result.Skipped())
			for _, e := range result.Exercises {
				assert.NotEmpty(t, e.ReferenceAudioURL)
				assert.Equal(t, "learner-1", e.UserID)
				assert.Equal(t, "s1", e.SongID)
			}
		})
	}
}

func TestPipeline_Run_UnsupportedLanguage(t *testing.T) {
	pipeline, m := newPipeline(t, 1)
	m.audio.EXPECT().CheckLanguage("klingon").Return(provider.ErrUnsupportedLanguage)

	req := testRequest()
	req.Language = "klingon"
	_, err := pipeline.Run(context.Background(), req)
	assert.ErrorIs(t, err, provider.ErrUnsupportedLanguage)
}

func TestPipeline_Run_NormalizesLanguage(t *testing.T) {
	pipeline, m := newPipeline(t, 1)
	expectSynthesis(m, generated(5))
	m.audio.EXPECT().Materialize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req pronunciation.ExerciseRequest, i int, _ pronunciation.GeneratedExercise) (string, error) {
			assert.Equal(t, "spanish", req.Language)
			return audioURL(i), nil
		}).Times(5)
	m.repository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(5)

	req := testRequest()
	req.Language = " Spanish"
	result, err := pipeline.Run(context.Background(), req)
	require.NoError(t, err)
	for _, e := range result.Exercises {
		assert.Equal(t, "spanish", e.Language)
	}
}

func TestPipeline_Run_InvalidRequest(t *testing.T) {
	pipeline, _ := newPipeline(t, 1)

	req := testRequest()
	req.Difficulty = "expert"
	_, err := pipeline.Run(context.Background(), req)
	assert.ErrorIs(t, err, pronunciation.ErrInvalidRequest)
}

// Upload must complete before the record is inserted; a failing insert still
// leaves the uploaded audio behind.
func TestPipeline_Run_ExhaustedKeepsCauses(t *testing.T) {
	pipeline, m := newPipeline(t, 1)
	expectSynthesis(m, generated(5))
	rateLimited := &provider.Error{
		Kind:       provider.ErrProviderUnavailable,
		Provider:   "elevenlabs",
		Operation:  "synthesize_speech",
		StatusCode: 429,
	}
	m.audio.EXPECT().Materialize(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("speech.SynthesizeSpeech > %w", rateLimited)).Times(5)

	result, err := pipeline.Run(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, pronunciation.ErrPipelineExhausted)
	assert.ErrorIs(t, err, provider.ErrProviderUnavailable)
	assert.Equal(t, 429, provider.UpstreamStatus(err))
	assert.Equal(t, 5, result.Skipped())
}

func TestPipeline_Run_UploadsBeforeInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	songs := mock_song.NewMockSongRepository(ctrl)
	exercises := mock_pronunciation.NewMockExerciseSource(ctrl)
	speech := mock_pronunciation.NewMockSpeechSynthesizer(ctrl)
	store := mock_storage.NewMockObjectStore(ctrl)
	repository := mock_pronunciation.NewMockExerciseRepository(ctrl)

	speech.EXPECT().VoiceFor("spanish").Return("voice-es", nil).AnyTimes()
	songs.EXPECT().FindByID(gomock.Any(), "s1").Return(testSong, nil)
	exercises.EXPECT().Synthesize(gomock.Any(), gomock.Any(), testSong).Return(generated(5), nil)

	var calls []any
	var uploaded []string
	for i := 0; i < 5; i++ {
		word := fmt.Sprintf("palabra%d", i+1)
		url := audioURL(i)
		calls = append(calls,
			speech.EXPECT().SynthesizeSpeech(gomock.Any(), word, "voice-es").Return([]byte(word), nil),
			store.EXPECT().Upload(gomock.Any(), gomock.Any(), "audio/mpeg", []byte(word)).
				DoAndReturn(func(context.Context, string, string, []byte) (string, error) {
					uploaded = append(uploaded, url)
					return url, nil
				}),
			repository.EXPECT().Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, e *pronunciation.PersistedExercise) error {
					require.Contains(t, uploaded, e.ReferenceAudioURL, "audio must exist before the record")
					return errors.New("insert failed")
				}),
		)
	}
	gomock.InOrder(calls...)

	materializer := pronunciation.NewAudioMaterializer(speech, store, pronunciation.WithUploadDelay(0))
	pipeline := pronunciation.NewPipeline(songs, exercises, materializer, repository, 1)

	_, err := pipeline.Run(context.Background(), testRequest())
	assert.ErrorIs(t, err, pronunciation.ErrPipelineExhausted)
	assert.Len(t, uploaded, 5)
}

func TestPipeline_Run_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	songs := mock_song.NewMockSongRepository(ctrl)
	generator := mock_pronunciation.NewMockExerciseGenerator(ctrl)
	speech := mock_pronunciation.NewMockSpeechSynthesizer(ctrl)
	store := mock_storage.NewMockObjectStore(ctrl)
	repository := mock_pronunciation.NewMockExerciseRepository(ctrl)

	items := validItems(6)
	items[0] = validItem("amor")
	items[0]["vocabularyRecordId"] = "v1"

	songs.EXPECT().FindByID(gomock.Any(), "s1").Return(testSong, nil)
	generator.EXPECT().GenerateExercises(gomock.Any(), gomock.Any(), gomock.Any()).Return(exercisesJSON(t, items), nil)
	speech.EXPECT().VoiceFor("spanish").Return("voice-es", nil).AnyTimes()
	speech.EXPECT().SynthesizeSpeech(gomock.Any(), gomock.Any(), "voice-es").Return([]byte("mp3"), nil).Times(6)
	store.EXPECT().Upload(gomock.Any(), gomock.Any(), "audio/mpeg", []byte("mp3")).
		DoAndReturn(func(_ context.Context, name, _ string, _ []byte) (string, error) {
			return "https://cdn.example.com/" + name, nil
		}).Times(6)
	var nextID int64
	repository.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *pronunciation.PersistedExercise) error {
			nextID++
			e.ID = nextID
			return nil
		}).Times(6)

	pipeline := pronunciation.NewPipeline(songs,
		pronunciation.NewExerciseSynthesizer(generator),
		pronunciation.NewAudioMaterializer(speech, store, pronunciation.WithTokenSource(sequentialTokens())),
		repository, 1)

	result, err := pipeline.Run(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, result.Exercises, 6)
	assert.Equal(t, []string{"amor", "palabra2", "palabra3", "palabra4", "palabra5", "palabra6"}, persistedWords(result.Exercises))

	urls := make(map[string]bool)
	for i, e := range result.Exercises {
		assert.Equal(t, int64(i+1), e.ID)
		assert.Equal(t, fmt.Sprintf("https://cdn.example.com/pronunciation/s1/%d-t%d.mp3", i, i+1), e.ReferenceAudioURL)
		assert.Equal(t, pronunciation.DifficultyBeginner, e.Difficulty)
		assert.Equal(t, "spanish", e.Language)
		urls[e.ReferenceAudioURL] = true
	}
	assert.Len(t, urls, 6)
	assert.Equal(t, "v1", result.Exercises[0].VocabularyRecordID)
}
