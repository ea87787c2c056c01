package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"storymap/internal/config"
	"storymap/internal/infra/logx"
	"storymap/internal/ui"
)

var (
	storiesRef string
	configPath string
	logFile    string
	logLevel   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "storymap [stories]",
	Short: "Browse stories on a terminal map",
	Long: `storymap shows stories pinned to the places they were told.

Stories are read from a JSON or YAML file or from a backend endpoint
returning {"stories": [...]} pages. Filter them by region, type of place
or speaker, pick pins on the map, or pick stories from the list.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			storiesRef = args[0]
		}
		if !cmd.Flags().Changed("log-level") {
			if cfg, _ := config.Load(configPath); cfg.LogLevel != "" {
				logLevel = cfg.LogLevel
			}
		}
		closeLog, err := setupLogging()
		if err != nil {
			return err
		}
		defer closeLog()

		_, err = tea.NewProgram(
			ui.InitialModel(configPath, storiesRef),
			tea.WithAltScreen(),
		).Run()
		return err
	},
}

// setupLogging enables file logging when DEBUG is set or --log-file given.
func setupLogging() (func(), error) {
	path := logFile
	if path == "" && len(os.Getenv("DEBUG")) > 0 {
		path = "storymap.log"
		logLevel = "debug"
	}
	if path == "" {
		return func() {}, nil
	}
	lvl, err := logx.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	f, err := logx.OpenFile(path, lvl)
	if err != nil {
		return nil, err
	}
	logx.SetVerbose(verbose)
	fmt.Printf("Logging to %s. Run 'tail -f %s' to follow.\n", path, path)
	return func() { f.Close() }, nil
}

func main() {
	rootCmd.Flags().StringVarP(&storiesRef, "stories", "s", "", "story file or backend URL (overrides STORIES_SOURCE)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "path to the rc file")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "append JSON logs to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "do not truncate long log lines")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
