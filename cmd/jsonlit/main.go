package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"text/tabwriter"

	"github.com/708u/jsonlit"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// RenderCommander is the interface for render execution.
type RenderCommander interface {
	Run(ctx context.Context, ids []string, opts jsonlit.RenderOptions) (jsonlit.RenderResult, error)
}

// ListCommander defines the interface for list operations.
type ListCommander interface {
	Run(ctx context.Context, pattern string) (jsonlit.ListResult, error)
}

// CheckCommander defines the interface for check operations.
type CheckCommander interface {
	Run(ctx context.Context, opts jsonlit.CheckOptions) (jsonlit.CheckResult, error)
}

// InitCommander defines the interface for init operations.
type InitCommander interface {
	Run(ctx context.Context, dir string, opts jsonlit.InitOptions) (jsonlit.InitResult, error)
}

type options struct {
	renderCommander    RenderCommander // nil = use default
	listCommander      ListCommander   // nil = use default
	checkCommander     CheckCommander  // nil = use default
	initCommander      InitCommander   // nil = use default
	commandIDGenerator func() string   // nil = use jsonlit.GenerateCommandID
}

// Option configures newRootCmd.
type Option func(*options)

// WithRenderCommander sets the RenderCommander instance for testing.
func WithRenderCommander(cmd RenderCommander) Option {
	return func(o *options) {
		o.renderCommander = cmd
	}
}

// WithListCommander sets the ListCommander instance for testing.
func WithListCommander(cmd ListCommander) Option {
	return func(o *options) {
		o.listCommander = cmd
	}
}

// WithCheckCommander sets the CheckCommander instance for testing.
func WithCheckCommander(cmd CheckCommander) Option {
	return func(o *options) {
		o.checkCommander = cmd
	}
}

// WithInitCommander sets the InitCommander instance for testing.
func WithInitCommander(cmd InitCommander) Option {
	return func(o *options) {
		o.initCommander = cmd
	}
}

// WithCommandIDGenerator sets the command ID generator for testing.
func WithCommandIDGenerator(gen func() string) Option {
	return func(o *options) {
		o.commandIDGenerator = gen
	}
}

func resolveDirectory(dirFlag, baseCwd string) (string, error) {
	if dirFlag == "" {
		return baseCwd, nil
	}

	resolved := dirFlag
	if !filepath.IsAbs(dirFlag) {
		resolved = filepath.Join(baseCwd, dirFlag)
	}

	resolved, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("cannot change to '%s': %w", dirFlag, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot change to '%s': not a directory", dirFlag)
	}

	return resolved, nil
}

// createLogger returns a nop logger unless -v was given; -vv enables debug output.
func createLogger(w io.Writer, verbosity int, idGen func() string) *slog.Logger {
	if verbosity < 1 {
		return jsonlit.NewNopLogger()
	}
	handler := jsonlit.NewCLIHandler(w, jsonlit.VerbosityToLevel(verbosity))
	return slog.New(handler.WithAttrs([]slog.Attr{
		jsonlit.LogAttrKeyCmdID.Attr(idGen()),
	}))
}

// printResult writes a formatted result to the command's streams.
func printResult(cmd *cobra.Command, r jsonlit.Formatter, opts jsonlit.FormatOptions) {
	formatted := r.Format(opts)
	if formatted.Stderr != "" {
		fmt.Fprint(cmd.ErrOrStderr(), formatted.Stderr)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatted.Stdout)
}

func dialectNames() []string {
	var names []string
	for _, d := range jsonlit.Dialects() {
		names = append(names, string(d))
	}
	return names
}

func newRootCmd(opts ...Option) *cobra.Command {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var (
		cfg       *jsonlit.Config
		cwd       string
		dirFlag   string
		colorFlag string
	)

	idGen := func() string {
		if o.commandIDGenerator != nil {
			return o.commandIDGenerator()
		}
		return jsonlit.GenerateCommandID()
	}

	loggerFor := func(cmd *cobra.Command) *slog.Logger {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		log := createLogger(cmd.ErrOrStderr(), verbosity, idGen)
		log.Debug(fmt.Sprintf("source_dir=%s dialect=%s indent=%q", cfg.SourceDir, cfg.Dialect, cfg.Indent),
			jsonlit.LogAttrKeyCategory.Attr(jsonlit.LogCategoryConfig))
		return log
	}

	completeDocuments := func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		currentCwd, err := os.Getwd()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		flag, _ := cmd.Root().PersistentFlags().GetString("directory")
		dir, err := resolveDirectory(flag, currentCwd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		result, err := jsonlit.LoadConfig(dir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		ids, err := jsonlit.NewDefaultStore(result.Config.SourceDir, nil).List("")
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var completions []string
		for _, id := range ids {
			if strings.HasPrefix(id, toComplete) {
				completions = append(completions, id)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}

	rootCmd := &cobra.Command{
		Use:           "jsonlit",
		Short:         "Render JSON documents as JSON, Python or JavaScript literals",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			originalCwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			cwd, err = resolveDirectory(dirFlag, originalCwd)
			if err != nil {
				return err
			}

			jsonlit.SetColorMode(jsonlit.ColorMode(colorFlag))

			result, err := jsonlit.LoadConfig(cwd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			for _, w := range result.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			cfg = result.Config
			return nil
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	renderCmd := &cobra.Command{
		Use:   "render <id>...",
		Short: "Render documents as literals",
		Long: `Render documents as literals.

Each <id> names <source_dir>/<id>.json. The dialect defaults to the
configured one (json unless set). --indent is placed after every newline
of the output, so the snippet can be pasted into an indented block:

  jsonlit render examples/user --lang python --indent "    "`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, _ := cmd.Flags().GetBool("quiet")

			dialect := cfg.Dialect
			if cmd.Flags().Changed("lang") {
				lang, _ := cmd.Flags().GetString("lang")
				dialect = jsonlit.Dialect(lang)
			}
			indent := cfg.Indent
			if cmd.Flags().Changed("indent") {
				indent, _ = cmd.Flags().GetString("indent")
			}

			log := loggerFor(cmd)

			var renderCmd RenderCommander
			if o.renderCommander != nil {
				renderCmd = o.renderCommander
			} else {
				renderCmd = jsonlit.NewDefaultRenderCommand(cfg, log)
			}
			result, err := renderCmd.Run(cmd.Context(), args, jsonlit.RenderOptions{
				Dialect: dialect,
				Indent:  indent,
			})
			if err != nil {
				return err
			}

			printResult(cmd, result, jsonlit.FormatOptions{Quiet: quiet})
			return nil
		},
	}
	renderCmd.Flags().StringP("lang", "l", "", "Output dialect: "+strings.Join(dialectNames(), ", "))
	renderCmd.Flags().StringP("indent", "i", "", "Prefix placed after every newline")
	renderCmd.Flags().BoolP("quiet", "q", false, "Omit document headers when rendering several ids")
	renderCmd.RegisterFlagCompletionFunc("lang", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return dialectNames(), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(renderCmd)

	listCmd := &cobra.Command{
		Use:   "list [pattern]",
		Short: "List document ids",
		Long: `List document ids.

The optional pattern is a doublestar glob relative to source_dir:

  jsonlit list "api/**/*.json"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pattern string
			if len(args) == 1 {
				pattern = args[0]
			}

			var listCmd ListCommander
			if o.listCommander != nil {
				listCmd = o.listCommander
			} else {
				listCmd = jsonlit.NewListCommand(jsonlit.NewDefaultStore(cfg.SourceDir, loggerFor(cmd)))
			}
			result, err := listCmd.Run(cmd.Context(), pattern)
			if err != nil {
				return err
			}

			printResult(cmd, result, jsonlit.FormatOptions{})
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	checkCmd := &cobra.Command{
		Use:   "check [pattern]",
		Short: "Verify that every document decodes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			quiet, _ := cmd.Flags().GetBool("quiet")
			jobs, _ := cmd.Flags().GetInt("jobs")

			var pattern string
			if len(args) == 1 {
				pattern = args[0]
			}

			var checkCmd CheckCommander
			if o.checkCommander != nil {
				checkCmd = o.checkCommander
			} else {
				checkCmd = jsonlit.NewDefaultCheckCommand(cfg, loggerFor(cmd))
			}
			result, err := checkCmd.Run(cmd.Context(), jsonlit.CheckOptions{
				Pattern: pattern,
				Jobs:    jobs,
			})
			if err != nil {
				return err
			}

			printResult(cmd, result, jsonlit.FormatOptions{
				Verbose: verbosity >= 1,
				Quiet:   quiet,
			})

			if result.HasErrors() {
				return fmt.Errorf("check failed with %d error(s)", result.ErrorCount())
			}
			return nil
		},
	}
	checkCmd.Flags().BoolP("quiet", "q", false, "Only show errors")
	checkCmd.Flags().IntP("jobs", "j", 0, "Number of documents to decode in parallel (default: GOMAXPROCS)")
	rootCmd.AddCommand(checkCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create .jsonlit/settings.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			verbosity, _ := cmd.Flags().GetCount("verbose")

			var initCmd InitCommander
			if o.initCommander != nil {
				initCmd = o.initCommander
			} else {
				initCmd = jsonlit.NewDefaultInitCommand()
			}
			result, err := initCmd.Run(cmd.Context(), cwd, jsonlit.InitOptions{Force: force})
			if err != nil {
				return err
			}

			printResult(cmd, result, jsonlit.FormatOptions{Verbose: verbosity >= 1})
			return nil
		},
	}
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing settings")
	rootCmd.AddCommand(initCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
			fmt.Fprintf(w, "version:\t%s\n", version)
			fmt.Fprintf(w, "commit:\t%s\n", commit)
			fmt.Fprintf(w, "date:\t%s\n", date)
			w.Flush()
		},
	}
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&dirFlag, "directory", "C", "", "Run as if jsonlit was started in <path>")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Enable verbose output (-v for verbose, -vv for debug)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color output: auto, always, never")

	return rootCmd
}

var rootCmd = newRootCmd()

func main() {
	os.Exit(run())
}

func run() int {
	if profFile := os.Getenv("JSONLIT_CPUPROFILE"); profFile != "" {
		f, err := os.Create(profFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "jsonlit: failed to create CPU profile: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "jsonlit: failed to start CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "jsonlit:", err)
		return 1
	}
	return 0
}
