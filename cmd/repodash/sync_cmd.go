package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/repodash/internal/config"
	"github.com/raphi011/repodash/internal/dashboard"
	"github.com/raphi011/repodash/internal/git"
	"github.com/raphi011/repodash/internal/output"
)

func newSyncCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:     "sync push|pull PATH",
		Short:   "Push or pull a repository",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(2),
		Long: `Run "git push" or "git pull" in a repository below the root.

No refspec is passed; git uses the configured upstream. Quote "~" when
addressing the root so the shell does not expand it.`,
		Example: `  repodash sync pull api     # git pull in <root>/api
  repodash sync push '~'     # git push in the root repository`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []string{string(git.Push), string(git.Pull)}, cobra.ShellCompDirectiveNoFileComp
			}
			if len(args) == 1 {
				return completeRepoPaths(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			op, err := git.ParseOperation(args[0])
			if err != nil {
				return err
			}
			path := args[1]

			rootDir, err := resolveRoot(cfg, root)
			if err != nil {
				return err
			}

			svc := newService(cfg, rootDir, nil)
			err = svc.Sync(ctx, path, op)
			if errors.Is(err, dashboard.ErrNotFound) {
				return notFoundError(path, svc.ListRepositories(ctx))
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			out.Printf("%s successful\n", op)
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Directory to scan (default: config root_dir or working directory)")
	cmd.MarkFlagDirname("root")

	return cmd
}
