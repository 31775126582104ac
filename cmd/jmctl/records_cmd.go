package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"journalmind/internal/config"
	"journalmind/internal/continuity"
)

var (
	recordsSourceApp  string
	recordsEntityType string
	recordsEntityID   string
	recordsCounts     bool
)

func init() {
	recordsCmd.Flags().StringVar(&recordsSourceApp, "source-app", "", "filter by source app")
	recordsCmd.Flags().StringVar(&recordsEntityType, "entity-type", "", "filter by entity type (person, concept, place, ...)")
	recordsCmd.Flags().StringVar(&recordsEntityID, "entity-id", "", "filter by entity identifier (requires --entity-type)")
	recordsCmd.Flags().BoolVar(&recordsCounts, "counts", false, "print record counts per source app instead of records")
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Query the continuity record store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		store := continuity.NewFileStore(cfg.ContinuityStorePath)

		if recordsCounts {
			counts, err := store.RecordCounts()
			if err != nil {
				return fmt.Errorf("failed to count records: %w", err)
			}
			return printJSON(counts)
		}

		var records []continuity.ContinuityRecord
		switch {
		case recordsSourceApp != "":
			records, err = store.FetchBySourceApp(recordsSourceApp)
		case recordsEntityType != "" && recordsEntityID != "":
			records, err = store.FetchByEntity(continuity.EntityType(recordsEntityType), recordsEntityID)
		case recordsEntityType != "":
			records, err = store.FetchByEntityType(continuity.EntityType(recordsEntityType))
		case recordsEntityID != "":
			return fmt.Errorf("--entity-id requires --entity-type")
		default:
			records, err = store.LoadAll()
		}
		if err != nil {
			return fmt.Errorf("failed to query records: %w", err)
		}
		return printJSON(records)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
