package cli

import (
	"fmt"
	"os"

	"gitbrag/internal/providers"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported providers and models",
}

type providerInfo struct {
	Provider string
	Models   []string
}

var knownModels = []providerInfo{
	{
		Provider: "gemini",
		Models: []string{
			"gemini-2.0-flash",
			"gemini-2.0-flash-lite",
			"gemini-1.5-pro",
		},
	},
	{
		Provider: "openai",
		Models: []string{
			"gpt-4o",
			"gpt-4o-mini",
			"gpt-4.1-mini",
		},
	},
	{
		Provider: "anthropic",
		Models: []string{
			"claude-sonnet-4-6",
			"claude-opus-4-6",
			"claude-haiku-4-5",
		},
	},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers, suggested models, and credential status",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range knownModels {
			envName := providers.EnvVar(info.Provider)
			status := "not set"
			if os.Getenv(envName) != "" {
				status = "set"
			}
			fmt.Fprintf(os.Stdout, "%s (%s: %s)\n", info.Provider, envName, status)
			for _, m := range info.Models {
				fmt.Fprintf(os.Stdout, "  %s\n", m)
			}
		}
		fmt.Fprintln(os.Stdout, "\nSeveral comma-separated keys in one variable rotate on rate limits.")
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
}
