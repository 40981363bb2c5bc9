package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/juren53/tagwriter"
	"github.com/juren53/tagwriter/pkg/adapters/embedded"
	"github.com/juren53/tagwriter/pkg/session"
)

var (
	verbose        bool
	exiftoolPath   string
	timeoutSeconds int
	useEmbedded    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tagwriter",
	Short: "Edit IPTC/EXIF/XMP metadata on image files",
	Long: `Tagwriter reads and writes descriptive metadata (headline, caption,
credit, copyright, ...) on JPEG, PNG and TIFF files via ExifTool,
keeping IPTC, EXIF and XMP namespace variants consistent.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&exiftoolPath, "exiftool", "", "Path to the exiftool executable (default: $PATH lookup)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "Tool timeout in seconds (default 30)")
	rootCmd.PersistentFlags().BoolVar(&useEmbedded, "embedded", false, "Decode metadata without ExifTool (read-only)")
}

// loadSession reads the persisted preferences, tolerating a missing file.
func loadSession() *session.Config {
	path, err := session.DefaultConfigPath()
	if err != nil {
		return &session.Config{}
	}
	cfg, err := session.LoadConfig(path)
	if err != nil {
		slog.Warn("ignoring unreadable config", "path", path, "error", err)
		return &session.Config{}
	}
	return cfg
}

// saveSession persists preferences best-effort; a failure is not fatal.
func saveSession(cfg *session.Config) {
	path, err := session.DefaultConfigPath()
	if err != nil {
		return
	}
	if err := cfg.Save(path); err != nil {
		slog.Warn("could not persist config", "path", path, "error", err)
	}
}

// recordRecent stores the file in the recents list in absolute form, so
// the same file opened through different relative paths deduplicates.
func recordRecent(cfg *session.Config, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfg.AddRecentFile(path)
}

// newService builds the metadata service, letting flags override the
// persisted preferences.
func newService(cfg *session.Config, extra ...tagwriter.Option) (*tagwriter.Service, error) {
	opts := []tagwriter.Option{
		tagwriter.WithLogger(slog.Default()),
	}
	if useEmbedded {
		opts = append(opts, tagwriter.WithBackend(embedded.New()))
	}

	toolPath := cfg.ExiftoolPath
	if exiftoolPath != "" {
		toolPath = exiftoolPath
	}
	if toolPath != "" {
		opts = append(opts, tagwriter.WithExiftoolPath(toolPath))
	}

	timeout := cfg.TimeoutSeconds
	if timeoutSeconds > 0 {
		timeout = timeoutSeconds
	}
	if timeout > 0 {
		opts = append(opts, tagwriter.WithTimeout(time.Duration(timeout)*time.Second))
	}

	opts = append(opts, extra...)
	return tagwriter.New(opts...)
}
