package cli

import (
	"github.com/spf13/cobra"

	"github.com/campuslabs/ubot/internal/adapters/driven/vectorstore/sqlite"
)

var sourcesLimit int

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List a sample of indexed chunks",
	Long: `Prints the index size and a sample of indexed chunks with their
titles. Useful for checking what the bot can actually answer from.`,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().IntVar(&sourcesLimit, "limit", 20, "maximum entries to list")
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	index, err := sqlite.NewIndex(settings.Index.Dir, settings.Index.Collection)
	if err != nil {
		return err
	}
	defer index.Close()

	count, err := index.Count(cmd.Context())
	if err != nil {
		return err
	}
	entries, err := index.Sample(cmd.Context(), sourcesLimit)
	if err != nil {
		return err
	}

	cmd.Printf("%d chunks indexed\n", count)
	for _, entry := range entries {
		line := "  " + entry.ID
		if entry.Metadata.Title != "" {
			line += "  (" + entry.Metadata.Title + ")"
		}
		cmd.Println(line)
	}
	return nil
}
