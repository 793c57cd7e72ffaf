package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/repodash/internal/config"
	"github.com/raphi011/repodash/internal/dashboard"
	"github.com/raphi011/repodash/internal/liveness"
	"github.com/raphi011/repodash/internal/log"
	"github.com/raphi011/repodash/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		port              int
		host              string
		root              string
		static            string
		noFetch           bool
		keepaliveTimeout  time.Duration
		keepaliveInterval time.Duration
		copyURL           bool
	)

	cmd := &cobra.Command{
		Use:     "serve [PORT]",
		Short:   "Start the dashboard server",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Start the dashboard server for the repositories below the root directory.

The server stops on its own when no request arrived within the keepalive
timeout; the dashboard page polls /keepalive every second. Use
--keepalive-timeout 0s to keep it running.

Static files (index.html and friends) are served from --static, or from
<root>/start.app when that directory exists.`,
		Example: `  repodash serve                   # Serve the configured root on port 8080
  repodash serve 9000              # Serve on port 9000
  repodash serve --root ~/Code     # Serve a different directory
  repodash serve --no-fetch        # Skip git fetch (offline)
  repodash serve --copy-url        # Copy the dashboard URL to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			cfg := *config.FromContext(ctx)

			if len(args) == 1 {
				if cmd.Flags().Changed("port") {
					return fmt.Errorf("port given both as argument and --port")
				}
				p, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid port %q: %w", args[0], err)
				}
				port = p
			}
			if len(args) == 1 || cmd.Flags().Changed("port") {
				if err := config.ValidatePort(port); err != nil {
					return err
				}
				cfg.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if noFetch {
				cfg.Fetch = false
			}
			if cmd.Flags().Changed("keepalive-timeout") {
				cfg.Keepalive.Timeout = keepaliveTimeout
			}
			if cmd.Flags().Changed("keepalive-interval") {
				if keepaliveInterval <= 0 {
					return fmt.Errorf("invalid --keepalive-interval %s: must be greater than zero", keepaliveInterval)
				}
				cfg.Keepalive.Interval = keepaliveInterval
			}

			rootDir, err := resolveRoot(&cfg, root)
			if err != nil {
				return err
			}
			warnNestedRoot(ctx, rootDir)

			staticDir, err := resolveStatic(&cfg, rootDir, static)
			if err != nil {
				return err
			}

			sup := liveness.New(liveness.SystemClock{}, cfg.Keepalive.Interval, cfg.Keepalive.Timeout)
			var toucher dashboard.Toucher
			if sup != nil {
				toucher = sup
			}

			svc := newService(&cfg, rootDir, toucher)
			srv := server.New(svc, server.Options{
				StaticDir:  staticDir,
				Supervisor: sup,
				Logger:     l,
			})

			ln, err := net.Listen("tcp", cfg.Addr())
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
			}

			url := "http://" + ln.Addr().String() + "/"
			l.Printf("Serving %s on %s\n", rootDir, url)
			if !cfg.Keepalive.Enabled() {
				l.Printf("Keepalive disabled; stop with Ctrl-C\n")
			}
			if staticDir == "" {
				l.Printf("Warning: no static directory; only the JSON endpoints are available\n")
			}
			if copyURL {
				if err := clipboard.WriteAll(url); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			err = srv.Serve(ctx, ln)
			if errors.Is(err, liveness.ErrExpired) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on")
	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to listen on")
	cmd.Flags().StringVarP(&root, "root", "r", "", "Directory to scan (default: config root_dir or working directory)")
	cmd.Flags().StringVar(&static, "static", "", "Directory with the dashboard page")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Do not fetch remotes before status queries")
	cmd.Flags().DurationVar(&keepaliveTimeout, "keepalive-timeout", config.DefaultKeepaliveTimeout, "Idle time before shutdown (0s disables)")
	cmd.Flags().DurationVar(&keepaliveInterval, "keepalive-interval", config.DefaultKeepaliveInterval, "How often to check for idleness")
	cmd.Flags().BoolVar(&copyURL, "copy-url", false, "Copy the dashboard URL to the clipboard")

	cmd.MarkFlagDirname("root")
	cmd.MarkFlagDirname("static")

	return cmd
}

// resolveStatic picks the static directory: the flag, then config, then
// <root>/start.app if it exists. Empty means no static files.
func resolveStatic(cfg *config.Config, root, override string) (string, error) {
	dir := override
	if dir == "" {
		dir = cfg.StaticDir
	}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve static dir %s: %w", dir, err)
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return "", fmt.Errorf("static dir %s is not a directory", abs)
		}
		return abs, nil
	}

	for _, name := range config.DefaultExclude {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}
