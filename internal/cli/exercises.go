package cli

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/songlingo/songlingo/internal/pronunciation"
	"github.com/songlingo/songlingo/internal/song"
)

//go:generate mockgen -source=exercises.go -destination=../mocks/cli/mock_exercises.go -package=mock_cli

type ExercisePipeline interface {
	Run(ctx context.Context, req pronunciation.ExerciseRequest) (pronunciation.Result, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, mimeType string) (pronunciation.TranscriptionResult, error)
}

// ExerciseCLI runs the pronunciation pipeline from the terminal.
type ExerciseCLI struct {
	pipeline     ExercisePipeline
	transcriber  Transcriber
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
}

func NewExerciseCLI(pipeline ExercisePipeline, transcriber Transcriber, stdoutWriter io.Writer) *ExerciseCLI {
	return &ExerciseCLI{
		pipeline:     pipeline,
		transcriber:  transcriber,
		stdoutWriter: stdoutWriter,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}
}

// Generate creates the exercises of req and prints them in model order,
// followed by the skipped ones.
func (cli *ExerciseCLI) Generate(ctx context.Context, req pronunciation.ExerciseRequest) error {
	result, err := cli.pipeline.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("pipeline.Run > %w", err)
	}

	for _, exercise := range result.Exercises {
		cli.writeExercise(exercise)
	}
	for _, outcome := range result.Outcomes {
		if outcome.Err != nil {
			_, _ = cli.red.Fprintf(cli.stdoutWriter, "skipped exercise %d: %v\n", outcome.Index+1, outcome.Err)
		}
	}
	_, _ = cli.green.Fprintf(cli.stdoutWriter, "%d exercises created, %d skipped\n", len(result.Exercises), result.Skipped())
	return nil
}

func (cli *ExerciseCLI) writeExercise(exercise pronunciation.PersistedExercise) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%d. %s", exercise.ID, exercise.WordOrPhrase)
	_, _ = fmt.Fprintf(cli.stdoutWriter, " [%s]", exercise.PhoneticTranscription)
	if exercise.VocabularyRecordID != "" {
		_, _ = fmt.Fprintf(cli.stdoutWriter, " (vocabulary %s)", exercise.VocabularyRecordID)
	}
	_, _ = fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.italic.Fprintf(cli.stdoutWriter, "   %s\n", exercise.ContextSentence)
	_, _ = fmt.Fprintf(cli.stdoutWriter, "   %s\n", exercise.ReferenceAudioURL)
}

// Transcribe sends a recorded audio file to speech-to-text and prints the transcript.
func (cli *ExerciseCLI) Transcribe(ctx context.Context, audioFile, mimeType string) error {
	file, err := os.Open(audioFile)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", audioFile, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if mimeType == "" {
		mimeType = audioTypeByExtension(filepath.Ext(audioFile))
	}
	result, err := cli.transcriber.Transcribe(ctx, file, mimeType)
	if err != nil {
		return fmt.Errorf("transcriber.Transcribe > %w", err)
	}

	_, _ = cli.bold.Fprintln(cli.stdoutWriter, result.Text)
	_, _ = fmt.Fprintf(cli.stdoutWriter, "confidence: %.2f\n", result.Confidence)
	return nil
}

var audioTypes = map[string]string{
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".wav":  "audio/wav",
	".webm": "audio/webm",
}

func audioTypeByExtension(ext string) string {
	if mimeType, ok := audioTypes[strings.ToLower(ext)]; ok {
		return mimeType
	}
	return mime.TypeByExtension(ext)
}

// LoadVocabulary reads a YAML list of vocabulary items.
func LoadVocabulary(path string) ([]pronunciation.VocabularyItem, error) {
	var items []pronunciation.VocabularyItem
	if err := readYAML(path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// LoadSongs reads a YAML list of songs for the catalogue.
func LoadSongs(path string) ([]song.Song, error) {
	var songs []song.Song
	if err := readYAML(path, &songs); err != nil {
		return nil, err
	}
	for i, sg := range songs {
		if sg.ID == "" || sg.Title == "" || sg.Lyrics == "" {
			return nil, fmt.Errorf("song %d in %s needs an id, a title and lyrics", i+1, path)
		}
	}
	return songs, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return nil
}
