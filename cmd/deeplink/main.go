package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yral-dev/deeplink/internal/config"
	"github.com/yral-dev/deeplink/internal/errors"
	"github.com/yral-dev/deeplink/pkg/approutes"
	"github.com/yral-dev/deeplink/pkg/deeplink"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code. With --json,
// errors are printed as JSON too.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		if asJSON, _ := rootCmd.PersistentFlags().GetBool("json"); asJSON {
			errors.PrintErrorJSON(stderr, err)
		} else {
			errors.PrintError(stderr, err)
		}
		return 1
	}
	return 0
}

// cli is the state shared by all commands.
type cli struct {
	configPath string
	scheme     string
	host       string
	jsonOut    bool

	cfg    *config.Config
	logger *slog.Logger
	svc    *deeplink.Service
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "deeplink",
		Short: "Parse and build app deep links",
		Long: `deeplink resolves app links and push payloads against the app's
routing table and builds links for routes.

Configuration is read from deeplink.json or deeplink.yaml in the current
directory, then DEEPLINK_SCHEME, DEEPLINK_HOST and DEEPLINK_LOG_LEVEL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Configuration file (default: ./deeplink.json or ./deeplink.yaml)")
	flags.StringVar(&c.scheme, "scheme", "", "Scheme of built links")
	flags.StringVar(&c.host, "host", "", "Host of built links (empty for hostless links)")
	flags.BoolVar(&c.jsonOut, "json", false, "Print JSON output")

	rootCmd.AddCommand(
		parseCmd(c),
		paramsCmd(c),
		buildCmd(c),
		routesCmd(c),
		initCmd(c),
		versionCmd(),
	)

	return rootCmd
}

// setup resolves configuration and creates the service.
func (c *cli) setup(cmd *cobra.Command, stderr io.Writer) error {
	cfg, err := config.Resolve(c.configPath, ".")
	if err != nil {
		return err
	}
	c.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = cfg.Log.NewLogger(stderr)
	c.svc = approutes.NewService(
		deeplink.WithScheme(cfg.Scheme),
		deeplink.WithHost(cfg.Host),
		deeplink.WithParserHostlessSchemes(cfg.HostlessSchemes...),
		deeplink.WithLogger(c.logger),
	)

	c.logger.Debug("configuration loaded",
		"path", cfg.Path(),
		"scheme", cfg.Scheme,
		"host", cfg.Host,
	)
	return nil
}

// applyFlags overrides cfg with the flags set on the command line.
func (c *cli) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("scheme") {
		cfg.Scheme = c.scheme
	}
	if flags.Changed("host") {
		cfg.Host = c.host
	}
}

// outf writes one line to the command output.
func outf(cmd *cobra.Command, format string, args ...any) {
	outfTo(cmd.OutOrStdout(), format, args...)
}

func outfTo(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
