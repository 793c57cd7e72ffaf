package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/repodash/internal/config"
	"github.com/raphi011/repodash/internal/output"
)

func newListCmd() *cobra.Command {
	var (
		root       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List repositories below the root",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List repository roots below the root directory.

Directories without any repository below them are collapsed into their
highest such ancestor. The root itself is shown as "~".`,
		Example: `  repodash list              # One path per line
  repodash list --json       # JSON array, as served at /list
  repodash list -r ~/Code    # List a different directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			rootDir, err := resolveRoot(cfg, root)
			if err != nil {
				return err
			}
			warnNestedRoot(ctx, rootDir)

			paths := newService(cfg, rootDir, nil).ListRepositories(ctx)
			if jsonOutput {
				if paths == nil {
					paths = []string{}
				}
				return out.PrintJSON(paths)
			}
			for _, p := range paths {
				out.Println(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Directory to scan (default: config root_dir or working directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.MarkFlagDirname("root")

	return cmd
}
