package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/colrun/colrun/packages/collection"
	"github.com/colrun/colrun/packages/config"
	"github.com/colrun/colrun/packages/env"
	"github.com/colrun/colrun/packages/history"
	"github.com/colrun/colrun/packages/output"
	"github.com/colrun/colrun/packages/runner"
)

var runCmd = &cobra.Command{
	Use:   "run <collection>",
	Short: "Run an HTTP request collection",
	Long: `Run the requests of a collection file in document order.

Examples:
  colrun run api.json
  colrun run api.json --env staging.json
  colrun run postman_export.json -e vars.env --output junit --output-file report.xml
  colrun run api.json --bail --timeout 5000 --delay 250`,
	Args: cobra.ExactArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	envFlag         string
	outputFlag      string
	outputFileFlag  string
	bailFlag        bool
	timeoutFlag     int
	delayFlag       int
	verboseFlag     bool
	noColorFlag     bool
	insecureFlag    bool
	proxyFlag       string
	watchFlag       bool
	saveHistoryFlag string
	configFlag      string
)

func init() {
	runCmd.Flags().StringVarP(&envFlag, "env", "e", getEnvString("COLRUN_ENV", ""), "Path to environment file (.json, .yaml, .env) (env: COLRUN_ENV)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("COLRUN_OUTPUT", "console"), "Output format: console, json, junit, tap (env: COLRUN_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("COLRUN_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: COLRUN_OUTPUT_FILE)")
	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("COLRUN_BAIL", false), "Stop on first failing request (env: COLRUN_BAIL)")
	runCmd.Flags().IntVar(&timeoutFlag, "timeout", getEnvInt("COLRUN_TIMEOUT", 30000), "Request timeout in milliseconds (env: COLRUN_TIMEOUT)")
	runCmd.Flags().IntVar(&delayFlag, "delay", getEnvInt("COLRUN_DELAY", 0), "Delay between requests in milliseconds (env: COLRUN_DELAY)")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("COLRUN_NO_COLOR", false), "Disable colored output (env: COLRUN_NO_COLOR)")
	runCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("COLRUN_INSECURE", false), "Disable SSL certificate validation (env: COLRUN_INSECURE)")
	runCmd.Flags().StringVar(&proxyFlag, "proxy", getEnvString("COLRUN_PROXY", ""), "Proxy URL for HTTP requests (env: COLRUN_PROXY)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the collection for changes and re-run")
	runCmd.Flags().StringVar(&saveHistoryFlag, "save-history", getEnvString("COLRUN_HISTORY", ""), "SQLite file to record run summaries in (env: COLRUN_HISTORY)")
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("COLRUN_CONFIG", ""), "Path to config file (env: COLRUN_CONFIG)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func runCommand(cmd *cobra.Command, args []string) error {
	collectionPath := args[0]

	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return err
	}

	// CLI flags win over config file values; config values win over
	// built-in defaults.
	timeout := time.Duration(timeoutFlag) * time.Millisecond
	if !cmd.Flags().Changed("timeout") && fileConfig.Timeout > 0 {
		timeout = time.Duration(fileConfig.Timeout) * time.Millisecond
	}
	delay := time.Duration(delayFlag) * time.Millisecond
	if !cmd.Flags().Changed("delay") && fileConfig.Delay > 0 {
		delay = time.Duration(fileConfig.Delay) * time.Millisecond
	}
	reporter := outputFlag
	if !cmd.Flags().Changed("output") && fileConfig.Reporter != "" {
		reporter = fileConfig.Reporter
	}
	outputFile := outputFileFlag
	if outputFile == "" {
		outputFile = fileConfig.OutputFile
	}
	envPath := envFlag
	if envPath == "" {
		envPath = fileConfig.Environment
	}
	proxy := fileConfig.Proxy
	if proxyFlag != "" {
		proxy = proxyFlag
	}
	validateSSL := fileConfig.GetValidateSSL()
	if insecureFlag {
		validateSSL = false
	}
	bail := bailFlag || fileConfig.GetBail()
	verbose := verboseFlag || fileConfig.GetVerbose()
	noColor := noColorFlag || fileConfig.GetNoColor()

	var outWriter *os.File
	if outputFile != "" {
		outWriter, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer outWriter.Close()
	}

	formatter, err := newFormatter(reporter, outWriter, verbose, noColor)
	if err != nil {
		return err
	}
	formatter.FormatHeader(version)

	environment := env.Environment{}
	if envPath != "" {
		environment, err = env.LoadFile(envPath)
		if err != nil {
			return err
		}
	}

	col, err := collection.Load(collectionPath)
	if err != nil {
		return err
	}

	r := runner.NewRunner(&runner.Config{
		Timeout:        timeout,
		Delay:          delay,
		Bail:           bail,
		Verbose:        verbose,
		ValidateSSL:    validateSSL,
		Proxy:          proxy,
		DefaultHeaders: fileConfig.Headers,
	})
	if verbose {
		r.SetWarnFunc(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		})
	}

	runOnce := func(col *collection.Collection) *runner.RunResult {
		result := r.Run(col, environment)
		formatter.FormatResult(result)
		if flushable, ok := formatter.(output.Flushable); ok {
			if err := flushable.Flush(result.Duration); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to write output: %v\n", err)
			}
		}
		if saveHistoryFlag != "" {
			if err := saveHistory(saveHistoryFlag, result); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}
		return result
	}

	result := runOnce(col)

	if !watchFlag {
		if result.Failures+result.Errors > 0 {
			os.Exit(ExitTestFailure)
		}
		return nil
	}

	return watchAndRerun(cmd, collectionPath, envPath, func() {
		col, err := collection.Load(collectionPath)
		if err != nil {
			formatter.FormatError(err)
			return
		}
		if envPath != "" {
			if reloaded, err := env.LoadFile(envPath); err == nil {
				environment = reloaded
			} else {
				formatter.FormatError(err)
			}
		}
		// Fresh formatter per re-run: accumulating formats need clean state.
		formatter, err = newFormatter(reporter, outWriter, verbose, noColor)
		if err != nil {
			return
		}
		runOnce(col)
	})
}

func newFormatter(reporter string, outWriter *os.File, verbose, noColor bool) (output.Formatter, error) {
	switch strings.ToLower(reporter) {
	case "json":
		opts := []output.JSONOption{}
		if outWriter != nil {
			opts = append(opts, output.JSONWithWriter(outWriter))
		}
		return output.NewJSONFormatter(opts...), nil
	case "junit":
		opts := []output.JUnitOption{}
		if outWriter != nil {
			opts = append(opts, output.JUnitWithWriter(outWriter))
		}
		return output.NewJUnitFormatter(opts...), nil
	case "tap":
		opts := []output.TAPOption{}
		if outWriter != nil {
			opts = append(opts, output.TAPWithWriter(outWriter))
		}
		return output.NewTAPFormatter(opts...), nil
	case "console":
		opts := []output.ConsoleOption{
			output.WithVerbose(verbose),
			output.WithNoColor(noColor),
		}
		if outWriter != nil {
			opts = append(opts, output.WithWriter(outWriter))
		}
		return output.NewConsoleFormatter(opts...), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use console, json, junit or tap)", reporter)
	}
}

func saveHistory(path string, result *runner.RunResult) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(result)
}

// watchAndRerun blocks watching the collection (and environment, if any)
// for writes, invoking rerun after each debounced change.
func watchAndRerun(cmd *cobra.Command, collectionPath, envPath string, rerun func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{
		filepath.Clean(collectionPath): true,
	}
	dirs := map[string]bool{
		filepath.Dir(collectionPath): true,
	}
	if envPath != "" {
		watched[filepath.Clean(envPath)] = true
		dirs[filepath.Dir(envPath)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) && watched[filepath.Clean(event.Name)] {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-running...\n", event.Name)
					rerun()
					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "warning: watcher error: %v\n", err)
		}
	}
}
