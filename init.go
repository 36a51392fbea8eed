package jsonlit

import (
	"context"
	"fmt"
	"path/filepath"
)

const settingsTemplate = `# jsonlit project configuration

# Directory holding <id>.json documents, relative to the project root
source_dir = "source/json"

# Default dialect: json, python or javascript
dialect = "json"

# Prefix placed after every newline of a rendered snippet
# indent = "    "
`

// InitCommand initializes jsonlit configuration in a directory.
type InitCommand struct {
	FS FileSystem
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Force bool
}

// InitResult holds the result of the init command.
type InitResult struct {
	ConfigDir    string
	SettingsPath string
	Created      bool
	Skipped      bool
	Overwritten  bool
}

// NewInitCommand creates an InitCommand with explicit dependencies (for testing).
func NewInitCommand(fs FileSystem) *InitCommand {
	return &InitCommand{
		FS: fs,
	}
}

// NewDefaultInitCommand creates an InitCommand with production defaults.
func NewDefaultInitCommand() *InitCommand {
	return NewInitCommand(osFS{})
}

// Run writes the settings template under dir.
func (c *InitCommand) Run(_ context.Context, dir string, opts InitOptions) (InitResult, error) {
	configDirPath := filepath.Join(dir, configDir)
	settingsPath := filepath.Join(configDirPath, configFileName)

	result := InitResult{
		ConfigDir:    configDirPath,
		SettingsPath: settingsPath,
	}

	_, err := c.FS.Stat(settingsPath)
	exists := err == nil || !c.FS.IsNotExist(err)

	if exists && !opts.Force {
		result.Skipped = true
		return result, nil
	}

	if err := c.FS.MkdirAll(configDirPath, 0755); err != nil {
		return result, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := c.FS.WriteFile(settingsPath, []byte(settingsTemplate), 0644); err != nil {
		return result, fmt.Errorf("failed to write settings file: %w", err)
	}

	result.Created = true
	result.Overwritten = exists

	return result, nil
}

// Format formats the result for output.
func (r InitResult) Format(opts FormatOptions) FormatResult {
	if opts.Quiet {
		return FormatResult{}
	}

	relPath := filepath.Join(configDir, configFileName)

	var stdout string
	switch {
	case r.Skipped:
		stdout = fmt.Sprintf("Skipped %s (already exists)\n", relPath)
	case r.Overwritten:
		stdout = fmt.Sprintf("Created %s (overwritten)\n", relPath)
	case r.Created:
		stdout = fmt.Sprintf("Created %s\n", relPath)
	}

	if opts.Verbose && r.Created {
		stdout += fmt.Sprintf("  path: %s\n", r.SettingsPath)
	}

	return FormatResult{Stdout: stdout}
}
