package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"journalmind/internal/config"
	"journalmind/internal/connections"
	"journalmind/internal/embedding"
	"journalmind/internal/journal"
	"journalmind/internal/llm"
	"journalmind/internal/storage"
)

var (
	detectBackend string
	detectJSON    bool
)

func init() {
	detectCmd.Flags().StringVar(&detectBackend, "backend", "local", "detection backend: local or remote")
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "print connections as JSON")
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Run connection detection over stored entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()

		ctx := cmd.Context()
		entries, err := storage.NewEntryRepo(db).ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		var detector connections.Detector
		switch detectBackend {
		case "local":
			lex, err := loadLexicon(cfg.LexiconPath)
			if err != nil {
				return err
			}
			var provider embedding.Provider
			if cfg.VectorsPath != "" {
				loaded, err := embedding.LoadVectorFile(cfg.VectorsPath)
				if err != nil {
					return fmt.Errorf("failed to load word vectors: %w", err)
				}
				provider = loaded
			}
			detector = connections.NewLocalDetector(lex, provider)
		case "remote":
			detector = connections.NewRemoteDetector(llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName))
		default:
			return fmt.Errorf("unknown backend %q (use local or remote)", detectBackend)
		}

		conns, err := detector.Detect(ctx, entries)
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}

		if detectJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(conns)
		}
		printConnections(entries, conns)
		return nil
	},
}

func printConnections(entries []journal.Entry, conns []journal.Connection) {
	sequences := make(map[string]int, len(entries))
	for _, e := range entries {
		sequences[e.ID] = e.Sequence
	}
	fmt.Printf("%d connections across %d entries\n", len(conns), len(entries))
	for _, c := range conns {
		fmt.Printf("  [%d] -> [%d]  %-16s %.2f  %s\n",
			sequences[c.SourceEntryID], sequences[c.TargetEntryID], c.Type, c.Confidence, c.Description)
	}
}
