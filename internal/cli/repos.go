package cli

import (
	"fmt"
	"os"

	"gitbrag/internal/config"
	"gitbrag/internal/gitsrc"
	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List the repositories discovery would analyze",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		repos, err := gitsrc.DiscoverRepos(cfg.ScanRoot, cfg.ScanDepth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if len(repos) == 0 {
			fmt.Fprintf(os.Stdout, "No git repositories found under %s\n", cfg.ScanRoot)
			return nil
		}
		for _, r := range repos {
			fmt.Fprintf(os.Stdout, "%s\t%s\n", r.Name, r.Path)
		}
		return nil
	},
}

func init() {
	reposCmd.Flags().StringVar(&flagDir, "dir", "", "Root directory to scan for repositories")
}
