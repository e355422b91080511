package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

func init() {
	rootCmd.AddCommand(levelsCmd)
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List log levels",
	Long: `List the log levels from least to most severe. The configured
minimum level is marked with an asterisk.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	// An invalid configured level marks nothing.
	current, err := currentConfig().MinLevel()
	if err != nil {
		current = -1
	}

	w := cmd.OutOrStdout()
	for _, l := range logger.Levels() {
		marker := " "
		if l == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-7s [%s]\n", marker, l, l.Tag())
	}
	return nil
}
