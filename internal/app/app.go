// Package app wires the pronunciation services from configuration.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/songlingo/songlingo/internal/config"
	"github.com/songlingo/songlingo/internal/pronunciation"
	"github.com/songlingo/songlingo/internal/provider"
	"github.com/songlingo/songlingo/internal/provider/deepgram"
	"github.com/songlingo/songlingo/internal/provider/elevenlabs"
	"github.com/songlingo/songlingo/internal/provider/openai"
	"github.com/songlingo/songlingo/internal/song"
	"github.com/songlingo/songlingo/internal/storage/supabase"
)

// Services are the components shared by the server and the CLI.
type Services struct {
	Gateway       *provider.Gateway
	Pipeline      *pronunciation.Pipeline
	Transcription *pronunciation.TranscriptionService

	closers []func() error
}

// RequireCredentials reports every provider credential missing from cfg.
func RequireCredentials(cfg *config.Config) error {
	var missing []string
	if cfg.OpenAI.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if cfg.ElevenLabs.APIKey == "" {
		missing = append(missing, "ELEVENLABS_API_KEY")
	}
	if cfg.Deepgram.APIKey == "" {
		missing = append(missing, "DEEPGRAM_API_KEY")
	}
	if cfg.Storage.Supabase.URL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.Storage.Supabase.ServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("environment variables are required: %s", strings.Join(missing, ", "))
	}
	return nil
}

// NewServices builds the provider clients, the gateway and the pipeline.
func NewServices(cfg *config.Config, db *sqlx.DB) (*Services, error) {
	if err := RequireCredentials(cfg); err != nil {
		return nil, err
	}

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	elevenlabsClient := elevenlabs.NewClient(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.Model, cfg.ElevenLabs.OutputFormat, cfg.ElevenLabs.BaseURL)
	deepgramClient := deepgram.NewClient(cfg.Deepgram.APIKey, cfg.Deepgram.Model, cfg.Deepgram.BaseURL)

	gateway := provider.NewGateway(provider.Config{
		Timeout:       time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		Voices:        cfg.Voices,
		MaxAudioBytes: cfg.Provider.MaxAudioBytes,
	}, openaiClient, elevenlabsClient, deepgramClient)

	store := supabase.NewStore(supabase.Config{
		URL:        cfg.Storage.Supabase.URL,
		ServiceKey: cfg.Storage.Supabase.ServiceKey,
		Bucket:     cfg.Storage.Supabase.Bucket,
	})

	pipeline := pronunciation.NewPipeline(
		song.NewDBSongRepository(db),
		pronunciation.NewExerciseSynthesizer(gateway),
		pronunciation.NewAudioMaterializer(gateway, store, pronunciation.WithUploadAttempts(cfg.Storage.UploadAttempts)),
		pronunciation.NewDBExerciseRepository(db),
		cfg.Pipeline.Concurrency,
	)

	return &Services{
		Gateway:       gateway,
		Pipeline:      pipeline,
		Transcription: pronunciation.NewTranscriptionService(gateway, cfg.Provider.MaxAudioBytes),
		closers:       []func() error{openaiClient.Close, elevenlabsClient.Close, deepgramClient.Close},
	}, nil
}

// Close releases the provider clients.
func (s *Services) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
