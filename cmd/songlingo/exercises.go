package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/songlingo/songlingo/internal/app"
	"github.com/songlingo/songlingo/internal/cli"
	"github.com/songlingo/songlingo/internal/database"
	"github.com/songlingo/songlingo/internal/pronunciation"
)

func newExercisesCommand() *cobra.Command {
	exercisesCmd := &cobra.Command{
		Use:   "exercises",
		Short: "Pronunciation exercise commands",
	}
	exercisesCmd.AddCommand(newExercisesGenerateCommand())
	return exercisesCmd
}

func newExercisesGenerateCommand() *cobra.Command {
	var (
		songID         string
		difficulty     string
		language       string
		vocabularyFile string
		userID         string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate pronunciation exercises with reference audio for a song",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pronunciation.ExerciseRequest{
				UserID:     userID,
				SongID:     songID,
				Difficulty: pronunciation.Difficulty(difficulty),
				Language:   language,
			}.Normalized()
			if vocabularyFile != "" {
				vocabulary, err := cli.LoadVocabulary(vocabularyFile)
				if err != nil {
					return fmt.Errorf("load vocabulary: %w", err)
				}
				req.Vocabulary = vocabulary
			}
			if err := req.Validate(); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			services, err := app.NewServices(cfg, db)
			if err != nil {
				return fmt.Errorf("create services: %w", err)
			}
			defer func() { _ = services.Close() }()

			return cli.NewExerciseCLI(services.Pipeline, services.Transcription, os.Stdout).
				Generate(cmd.Context(), req)
		},
	}
	cmd.Flags().StringVar(&songID, "song", "", "song identifier")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(pronunciation.DifficultyBeginner), "beginner, intermediate or advanced")
	cmd.Flags().StringVar(&language, "language", "", "target language, for example spanish")
	cmd.Flags().StringVar(&vocabularyFile, "vocabulary", "", "YAML file with the learner vocabulary")
	cmd.Flags().StringVar(&userID, "user", "cli", "learner id the exercises belong to")
	_ = cmd.MarkFlagRequired("song")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}

func newTranscribeCommand() *cobra.Command {
	var mimeType string

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a recorded audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			services, err := app.NewServices(cfg, nil)
			if err != nil {
				return fmt.Errorf("create services: %w", err)
			}
			defer func() { _ = services.Close() }()

			return cli.NewExerciseCLI(services.Pipeline, services.Transcription, os.Stdout).
				Transcribe(cmd.Context(), args[0], mimeType)
		},
	}
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "audio mime type, detected from the file extension by default")
	return cmd
}
