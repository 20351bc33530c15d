// Package cli provides the cobra command-line interface for IntelliRAG.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/intellirag/intellirag-cli/internal/core/ports/driving"
	"github.com/intellirag/intellirag-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services the commands depend on, injected by main before Execute.
var (
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	answerService    driving.AnswerService
	defaultTopK      = 5
)

// initServices is installed by main and builds the services once the
// config path is known. Left nil in tests, which inject services directly.
var initServices func(configPath string) error

var (
	configPath  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "intellirag",
	Short: "Local document question answering",
	Long: `IntelliRAG indexes your documents (pdf, docx, txt, csv, xlsx) into a
local vector store and answers questions about them using retrieval
augmented generation. Everything runs on your machine.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if initServices != nil {
			return initServices(configPath)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.intellirag/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// SetInitializer installs the function that builds services from config.
// It runs once before any command body.
func SetInitializer(f func(configPath string) error) {
	initServices = f
}

// SetServices injects the service implementations the commands use.
func SetServices(ingest driving.IngestService, retrieval driving.RetrievalService, answer driving.AnswerService, topK int) {
	ingestService = ingest
	retrievalService = retrieval
	answerService = answer
	if topK > 0 {
		defaultTopK = topK
	}
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
