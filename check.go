package jsonlit

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CheckCommand validates the configuration and decodes every document so a
// documentation build fails before rendering anything.
type CheckCommand struct {
	FS     FileSystem
	Store  DocumentStore
	Config *Config
	Log    *slog.Logger
}

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Pattern string // doublestar pattern, empty for all documents
	Jobs    int    // parallel decodes, <= 0 for GOMAXPROCS
}

// CheckSeverity represents the severity level of a check item.
type CheckSeverity string

const (
	SeverityOK    CheckSeverity = "ok"
	SeverityWarn  CheckSeverity = "warn"
	SeverityError CheckSeverity = "error"
)

// CheckCategory represents the category of a check item.
type CheckCategory string

const (
	CategoryConfig    CheckCategory = "config"
	CategoryDocuments CheckCategory = "documents"
)

// CheckItem represents a single check result.
type CheckItem struct {
	Category CheckCategory
	Severity CheckSeverity
	Message  string
	Detail   string
}

// CheckResult holds the result of all checks.
type CheckResult struct {
	Items []CheckItem
}

// NewCheckCommand creates a CheckCommand with explicit dependencies (for testing).
func NewCheckCommand(fs FileSystem, store DocumentStore, cfg *Config, log *slog.Logger) *CheckCommand {
	if log == nil {
		log = NewNopLogger()
	}
	return &CheckCommand{
		FS:     fs,
		Store:  store,
		Config: cfg,
		Log:    log,
	}
}

// NewDefaultCheckCommand creates a CheckCommand with production defaults.
func NewDefaultCheckCommand(cfg *Config, log *slog.Logger) *CheckCommand {
	return NewCheckCommand(osFS{}, NewDefaultStore(cfg.SourceDir, log), cfg, log)
}

func (r CheckResult) count(sev CheckSeverity) int {
	n := 0
	for _, item := range r.Items {
		if item.Severity == sev {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of errors.
func (r CheckResult) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warnings.
func (r CheckResult) WarningCount() int { return r.count(SeverityWarn) }

// OKCount returns the number of passing items.
func (r CheckResult) OKCount() int { return r.count(SeverityOK) }

// HasErrors reports whether any check failed.
func (r CheckResult) HasErrors() bool { return r.ErrorCount() > 0 }

// Run executes all checks. The returned error is reserved for failures of
// the check itself, such as cancellation; invalid documents are items.
func (c *CheckCommand) Run(ctx context.Context, opts CheckOptions) (CheckResult, error) {
	var result CheckResult

	if !c.checkConfig(&result) {
		return result, nil
	}

	ids, err := c.Store.List(opts.Pattern)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Category: CategoryDocuments,
			Severity: SeverityError,
			Message:  err.Error(),
		})
		return result, nil
	}
	if len(ids) == 0 {
		result.Items = append(result.Items, CheckItem{
			Category: CategoryDocuments,
			Severity: SeverityWarn,
			Message:  "no documents found",
		})
		return result, nil
	}

	items, err := c.checkDocuments(ctx, ids, opts.Jobs)
	if err != nil {
		return CheckResult{}, err
	}
	result.Items = append(result.Items, items...)
	return result, nil
}

// checkConfig reports on the source directory. It returns false when the
// documents cannot be checked at all.
func (c *CheckCommand) checkConfig(result *CheckResult) bool {
	dir := c.Config.SourceDir
	info, err := c.FS.Stat(dir)
	switch {
	case err != nil && c.FS.IsNotExist(err):
		result.Items = append(result.Items, CheckItem{
			Category: CategoryConfig,
			Severity: SeverityError,
			Message:  fmt.Sprintf("source_dir does not exist: %s", dir),
		})
		return false
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Category: CategoryConfig,
			Severity: SeverityError,
			Message:  fmt.Sprintf("cannot access source_dir: %v", err),
		})
		return false
	case info != nil && !info.IsDir():
		result.Items = append(result.Items, CheckItem{
			Category: CategoryConfig,
			Severity: SeverityError,
			Message:  fmt.Sprintf("source_dir is not a directory: %s", dir),
		})
		return false
	}

	result.Items = append(result.Items, CheckItem{
		Category: CategoryConfig,
		Severity: SeverityOK,
		Message:  fmt.Sprintf("source_dir exists: %s", dir),
	})
	return true
}

func (c *CheckCommand) checkDocuments(ctx context.Context, ids []string, jobs int) ([]CheckItem, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns items[i], so no lock is needed.
	items := make([]CheckItem, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(ids)))

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			item := CheckItem{Category: CategoryDocuments, Message: id}
			if _, err := c.Store.Load(id); err != nil {
				item.Severity = SeverityError
				item.Detail = err.Error()
				c.Log.Debug(fmt.Sprintf("%s: %v", id, err), LogAttrKeyCategory.Attr(LogCategoryCheck))
			} else {
				item.Severity = SeverityOK
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// Format formats the CheckResult for display.
func (r CheckResult) Format(opts FormatOptions) FormatResult {
	if opts.Quiet {
		iw := NewIndentWriter("  ")
		for _, item := range r.Items {
			if item.Severity == SeverityError {
				iw.Linef("[error] %s", item.line())
			}
		}
		return FormatResult{Stdout: iw.String()}
	}

	iw := NewIndentWriter("  ")
	wrote := false
	for _, cat := range []CheckCategory{CategoryConfig, CategoryDocuments} {
		var items []CheckItem
		for _, item := range r.Items {
			if item.Category == cat && (item.Severity != SeverityOK || opts.Verbose) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		if wrote {
			iw.Blank()
		}
		wrote = true

		iw.Linef("%s", colorHeader(string(cat)+":"))
		iw.Indent()
		for _, item := range items {
			iw.Linef("%s %s", item.marker(), item.Message)
			if item.Detail != "" {
				iw.Indent()
				iw.Block(colorDetail(item.Detail))
				iw.Dedent()
			}
		}
		iw.Dedent()
	}

	if wrote {
		iw.Blank()
	}
	iw.Linef("Summary: %d ok, %d errors, %d warnings", r.OKCount(), r.ErrorCount(), r.WarningCount())

	return FormatResult{Stdout: iw.String()}
}

func (item CheckItem) marker() string {
	switch item.Severity {
	case SeverityOK:
		return colorSuccess("✓")
	case SeverityWarn:
		return colorHeader("!")
	default:
		return colorFailure("✗")
	}
}

func (item CheckItem) line() string {
	if item.Detail == "" {
		return item.Message
	}
	return item.Message + ": " + item.Detail
}
