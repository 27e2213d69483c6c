package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askTopK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long: `Asks one question against the indexed knowledge base and prints the
answer with its sources. For a conversation, use "ubot chat".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "number of chunks to retrieve (default from config)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	topK := askTopK
	if topK <= 0 {
		topK = a.settings.Chat.TopK
	}

	question := strings.Join(args, " ")
	answer, err := a.answers.GenerateAnswer(cmd.Context(), question, nil, topK)
	if err != nil {
		return err
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println("\nSources:")
		for i, src := range answer.Sources {
			line := fmt.Sprintf("  [%d] %s", i+1, src.Title)
			if src.URL != "" {
				line += " (" + src.URL + ")"
			}
			cmd.Println(line)
		}
	}
	return nil
}
