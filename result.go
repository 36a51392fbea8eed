package jsonlit

// FormatOptions configures how command results are printed.
type FormatOptions struct {
	Verbose bool
	Quiet   bool
}

// FormatResult holds formatted output strings.
type FormatResult struct {
	Stdout string
	Stderr string
}

// Formatter formats command results.
type Formatter interface {
	Format(opts FormatOptions) FormatResult
}
