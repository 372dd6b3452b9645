package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/songlingo/songlingo/internal/cli"
	"github.com/songlingo/songlingo/internal/database"
	"github.com/songlingo/songlingo/internal/song"
)

func newSongsCommand() *cobra.Command {
	songsCmd := &cobra.Command{
		Use:   "songs",
		Short: "Song catalogue commands",
	}
	songsCmd.AddCommand(newSongsImportCommand())
	return songsCmd
}

func newSongsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <songs.yml>",
		Short: "Import songs and lyrics into the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songs, err := cli.LoadSongs(args[0])
			if err != nil {
				return fmt.Errorf("load songs: %w", err)
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

			repo := song.NewDBSongRepository(db)
			for _, sg := range songs {
				if err := repo.Save(cmd.Context(), sg); err != nil {
					return err
				}
			}
			fmt.Printf("%d songs imported\n", len(songs))
			return nil
		},
	}
}
