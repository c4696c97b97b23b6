package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/optsmigrate/internal/app"
)

// DirEnv names the environment variable consulted when no directory is
// given on the command line. It may be set through a .env file.
const DirEnv = "OPTSMIGRATE_DIR"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("optsmigrate", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
optsmigrate - Migrate bracketed backend options to options tables.

Rewrites registry documents that embed options in backend identifiers,
such as "ubi:owner/repo[exe=tool]", into explicit [backends.options]
tables. Documents without annotations are left untouched.

Usage:
  optsmigrate [options] [REGISTRY_DIR]

Arguments:
  REGISTRY_DIR
    Directory containing the registry documents. Defaults to $%s.

Options:
`, DirEnv)
		flagSet.PrintDefaults()
	}

	dirFlag := flagSet.String("dir", "", "Directory containing the registry documents.")
	dFlag := flagSet.String("d", "", "Directory containing the registry documents (shorthand).")
	extFlag := flagSet.String("ext", ".toml", "Extension of the documents to process.")
	keyFlag := flagSet.String("key", "backends", "Reserved key declaring the backend list.")
	conflictFlag := flagSet.String("on-conflict", "fail", "What to do when an option already exists: 'fail', 'keep' or 'replace'.")
	checkFlag := flagSet.Bool("check", false, "Report documents that need migration without writing; exit 1 if any do.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var dir string
	switch {
	case *dirFlag != "":
		dir = *dirFlag
	case *dFlag != "":
		dir = *dFlag
	case flagSet.NArg() > 0:
		dir = flagSet.Arg(0)
	default:
		dir = os.Getenv(DirEnv)
	}
	slog.Debug("Registry directory determined.", "dir", dir)

	if dir == "" {
		slog.Debug("No directory provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *keyFlag == "" {
		return nil, false, &ExitError{Code: 2, Message: "invalid key: must not be empty"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Dir:        dir,
		Ext:        *extFlag,
		Key:        *keyFlag,
		OnConflict: strings.ToLower(*conflictFlag),
		Check:      *checkFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
