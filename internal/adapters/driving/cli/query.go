package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

var (
	queryTopK        int
	queryShowContext bool
)

// exitSentinels end the interactive loop.
var exitSentinels = map[string]bool{"exit": true, "quit": true}

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask questions about indexed documents",
	Long: `Answers a question using the indexed documents. With a question
argument, answers once and exits. Without arguments, starts an interactive
loop; type "exit" or "quit" to leave.

Answers are generated by the configured LLM, grounded in the most similar
indexed chunks. When no LLM is available, the retrieved chunks are shown
directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	queryCmd.Flags().BoolVar(&queryShowContext, "show-context", false, "print retrieved chunks alongside the answer")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	topK := queryTopK
	if topK <= 0 {
		topK = defaultTopK
	}

	ctx := context.Background()

	if len(args) == 1 {
		return answerOne(ctx, cmd, args[0], topK)
	}

	return interactiveLoop(ctx, cmd, topK)
}

// interactiveLoop reads questions from stdin until EOF or an exit sentinel.
func interactiveLoop(ctx context.Context, cmd *cobra.Command, topK int) error {
	cmd.Println("Ask questions about your documents. Type \"exit\" or \"quit\" to leave.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("\n> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if exitSentinels[strings.ToLower(question)] {
			cmd.Println("Bye.")
			return nil
		}

		if err := answerOne(ctx, cmd, question, topK); err != nil {
			// One bad question must not end the session.
			cmd.Printf("Error: %v\n", err)
		}
	}
}

// answerOne retrieves context for a single question and prints the answer.
func answerOne(ctx context.Context, cmd *cobra.Command, question string, topK int) error {
	results, err := retrievalService.Retrieve(ctx, question, topK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No relevant documents found.")
		return nil
	}

	answered := false
	if answerService != nil {
		answer, err := answerService.Answer(ctx, question, results)
		switch {
		case err == nil:
			cmd.Println(answer)
			answered = true
		case errors.Is(err, domain.ErrLLMUnavailable):
			cmd.Println("LLM unavailable; showing retrieved context instead.")
		default:
			return fmt.Errorf("answer generation failed: %w", err)
		}
	}

	if !answered || queryShowContext {
		printResults(cmd, results)
	}
	return nil
}

func printResults(cmd *cobra.Command, results []domain.RetrievalResult) {
	cmd.Println()
	for _, r := range results {
		cmd.Printf("  [%d] %s (chunk %d, score %.3f)\n",
			r.Rank, r.Metadata.SourceFile, r.Metadata.ChunkIndex, r.Score)
		cmd.Printf("      %s\n", snippet(r.Content, 200))
	}
}

// snippet truncates text to at most n runes for display.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
