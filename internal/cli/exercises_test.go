package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cli "github.com/songlingo/songlingo/internal/mocks/cli"
	"github.com/songlingo/songlingo/internal/pronunciation"
	"github.com/songlingo/songlingo/internal/provider"
)

func newTestCLI(t *testing.T) (*ExerciseCLI, *mock_cli.MockExercisePipeline, *mock_cli.MockTranscriber, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	ctrl := gomock.NewController(t)
	pipeline := mock_cli.NewMockExercisePipeline(ctrl)
	transcriber := mock_cli.NewMockTranscriber(ctrl)
	var stdout bytes.Buffer
	return NewExerciseCLI(pipeline, transcriber, &stdout), pipeline, transcriber, &stdout
}

func TestExerciseCLI_Generate(t *testing.T) {
	req := pronunciation.ExerciseRequest{SongID: "s1", Difficulty: pronunciation.DifficultyBeginner, Language: "spanish"}

	t.Run("prints exercises and skipped ones", func(t *testing.T) {
		cli, pipeline, _, stdout := newTestCLI(t)
		amor := pronunciation.PersistedExercise{
			ID: 11, WordOrPhrase: "amor", PhoneticTranscription: "aˈmoɾ", ContextSentence: "El amor es más fuerte.",
			VocabularyRecordID: "v1", ReferenceAudioURL: "https://cdn.example.com/a.mp3",
		}
		pipeline.EXPECT().Run(gomock.Any(), req).Return(pronunciation.Result{
			Exercises: []pronunciation.PersistedExercise{amor},
			Outcomes: []pronunciation.Outcome{
				{Index: 0, Exercise: &amor},
				{Index: 1, Err: errors.New("audio.Materialize > upload failed")},
			},
		}, nil)

		require.NoError(t, cli.Generate(context.Background(), req))
		assert.Equal(t, `11. amor [aˈmoɾ] (vocabulary v1)
   El amor es más fuerte.
   https://cdn.example.com/a.mp3
skipped exercise 2: audio.Materialize > upload failed
1 exercises created, 1 skipped
`, stdout.String())
	})

	t.Run("returns pipeline errors", func(t *testing.T) {
		cli, pipeline, _, stdout := newTestCLI(t)
		pipeline.EXPECT().Run(gomock.Any(), req).Return(pronunciation.Result{}, pronunciation.ErrPipelineExhausted)

		err := cli.Generate(context.Background(), req)
		assert.ErrorIs(t, err, pronunciation.ErrPipelineExhausted)
		assert.Empty(t, stdout.String())
	})
}

func TestExerciseCLI_Transcribe(t *testing.T) {
	audioFile := filepath.Join(t.TempDir(), "recording.wav")
	require.NoError(t, os.WriteFile(audioFile, []byte("RIFF"), 0644))

	t.Run("detects the mime type from the extension", func(t *testing.T) {
		cli, _, transcriber, stdout := newTestCLI(t)
		transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any(), "audio/wav").Return(pronunciation.TranscriptionResult{Text: "te quiero", Confidence: 0.876}, nil)

		require.NoError(t, cli.Transcribe(context.Background(), audioFile, ""))
		assert.Equal(t, "te quiero\nconfidence: 0.88\n", stdout.String())
	})

	t.Run("explicit mime type", func(t *testing.T) {
		cli, _, transcriber, _ := newTestCLI(t)
		transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any(), "audio/webm").
			Return(pronunciation.TranscriptionResult{}, provider.ErrInvalidAudio)

		err := cli.Transcribe(context.Background(), audioFile, "audio/webm")
		assert.ErrorIs(t, err, provider.ErrInvalidAudio)
	})

	t.Run("missing file", func(t *testing.T) {
		cli, _, _, _ := newTestCLI(t)
		err := cli.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.webm"), "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadVocabulary(t *testing.T) {
	path := writeFile(t, "vocabulary.yml", `- id: v1
  word: amor
  translation: love
  mastery_score: 30
- id: v2
  word: noche
  translation: night
  mastery_score: 80
`)

	got, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.Equal(t, []pronunciation.VocabularyItem{
		{Word: "amor", Translation: "love", MasteryScore: 30, RecordID: "v1"},
		{Word: "noche", Translation: "night", MasteryScore: 80, RecordID: "v2"},
	}, got)

	_, err = LoadVocabulary(writeFile(t, "broken.yml", "{{invalid yaml content"))
	assert.ErrorContains(t, err, "yaml.Unmarshal")
}

func TestLoadSongs(t *testing.T) {
	got, err := LoadSongs(writeFile(t, "songs.yml", `- id: s1
  title: Bésame Mucho
  artist: Consuelo Velázquez
  language: spanish
  lyrics: |
    Bésame, bésame mucho
`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bésame Mucho", got[0].Title)
	assert.Equal(t, "Bésame, bésame mucho\n", got[0].Lyrics)

	_, err = LoadSongs(writeFile(t, "songs.yml", "- id: s2\n  title: Untitled\n"))
	assert.ErrorContains(t, err, "song 1")
}
