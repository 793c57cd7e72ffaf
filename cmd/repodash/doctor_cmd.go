package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/repodash/internal/config"
	"github.com/raphi011/repodash/internal/doctor"
	"github.com/raphi011/repodash/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var (
		root   string
		static string
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose the dashboard setup",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Check git, the root directory, the dashboard page and every listed
repository. Repositories whose status cannot be read, or whose current
branch has no upstream, are reported.

Exits non-zero when an error-level issue is found.`,
		Example: `  repodash doctor              # Check the configured root
  repodash doctor -r ~/Code    # Check a different directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			rootDir, err := resolveRoot(cfg, root)
			if err != nil {
				return err
			}
			staticDir, err := resolveStatic(cfg, rootDir, static)
			if err != nil {
				return err
			}

			report := doctor.Run(ctx, doctor.Options{
				Root:      rootDir,
				StaticDir: staticDir,
				Service:   newService(cfg, rootDir, nil),
			})
			doctor.Print(out.Writer(), report)

			if report.HasErrors() {
				return errors.New("doctor found errors")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Directory to scan (default: config root_dir or working directory)")
	cmd.Flags().StringVar(&static, "static", "", "Directory with the dashboard page")
	cmd.MarkFlagDirname("root")
	cmd.MarkFlagDirname("static")

	return cmd
}
