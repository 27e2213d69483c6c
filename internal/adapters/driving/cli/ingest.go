package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuslabs/ubot/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Index content files into the knowledge base",
	Long: `Walks a directory for .txt and .md files, chunks and embeds their
contents, and stores the chunks in the vector index. With no argument the
configured data directory is used.

Chunk IDs derive from file paths, so re-ingesting the same tree replaces
chunks rather than duplicating them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := a.settings.Ingest.DataDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("%w: no data directory configured; pass one as an argument", domain.ErrConfiguration)
	}

	stats, err := a.ingester.IngestDir(cmd.Context(), dir)
	if err != nil {
		return err
	}

	cmd.Printf("Ingested %d chunks from %d files (%d files skipped).\n", stats.Chunks, stats.Files, stats.Skipped)
	return nil
}
