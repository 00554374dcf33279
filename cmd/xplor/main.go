package main

import (
	"fmt"
	"os"

	"xplor/internal/config"
	"xplor/internal/gui"
	"xplor/internal/locations"
	"xplor/internal/log"
	"xplor/internal/tui"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile string
	rootDir string
	debug   bool
	cfg     *config.Config
)

// Entry point for the application
func main() {
	rootCmd := &cobra.Command{
		Use:   "xplor [directory]",
		Short: "A small graphical file explorer",
		Long: `Xplor shows a directory tree beside an entry list over the same
filesystem, with shortcut buttons for the standard user directories.
Running xplor without a subcommand opens the graphical explorer.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config
			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				fmt.Printf("Warning: Could not load config: %v. Using default settings.\n", configErr)
				cfg = config.New()
			}

			log.SetDebug(debug || cfg.Log.Debug)
			if cfg.Log.File != "" {
				log.Configure(log.WithFile(cfg.Log.File))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(startDir(args), "", "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/xplor/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "root directory to explore (default is the filesystem root)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(guiCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(locationsCmd())
	rootCmd.AddCommand(versionCmd())

	// Execute the command
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// startDir picks the explorer root: the positional argument wins over the
// --root flag.
func startDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return rootDir
}

// runGUI builds and runs the graphical explorer
func runGUI(root, assetsDir, stylePath string) error {
	app, err := gui.NewApp(cfg, gui.Options{
		ConfigPath: cfgFile,
		AssetsDir:  assetsDir,
		StylePath:  stylePath,
		Root:       root,
	})
	if err != nil {
		return fmt.Errorf("error starting explorer: %w", err)
	}
	app.Run()
	return nil
}

// guiCmd creates the GUI command for the CLI
func guiCmd() *cobra.Command {
	var assetsDir string
	var stylePath string

	cmd := &cobra.Command{
		Use:   "gui [directory]",
		Short: "Launch the graphical explorer",
		Long:  `Launch the graphical explorer window. This is also what running xplor without a subcommand does.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(startDir(args), assetsDir, stylePath)
		},
	}

	cmd.Flags().StringVarP(&assetsDir, "assets", "a", "", "Directory holding icons and the stylesheet (overrides the defaults)")
	cmd.Flags().StringVarP(&stylePath, "style", "s", "", "Stylesheet file to apply (startup fails if it cannot be loaded)")

	return cmd
}

// tuiCmd represents the TUI command
func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [directory]",
		Short: "Start the terminal explorer",
		Long:  `Start the terminal explorer: the same tree and entry panes rendered in the terminal.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tui.Run(cfg, tui.Options{Root: startDir(args)}); err != nil {
				return fmt.Errorf("error running terminal explorer: %w", err)
			}
			return nil
		},
	}

	return cmd
}

// locationsCmd lists the standard locations and where they resolve
func locationsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Show the standard locations",
		Long:  `Show the six standard locations and the directories they resolve to on this system.`,
		Run: func(cmd *cobra.Command, args []string) {
			resolver := locations.NewResolver(cfg.Locations)
			for _, loc := range locations.All() {
				paths := resolver.Resolve(loc)
				if len(paths) == 0 {
					fmt.Printf("%-10s (not available)\n", loc.Title())
					continue
				}
				fmt.Printf("%-10s %s\n", loc.Title(), paths[0])
				if all {
					for _, p := range paths[1:] {
						fmt.Printf("%-10s %s\n", "", p)
					}
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every candidate directory, not just the first")

	return cmd
}

// versionCmd prints the version string
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the xplor version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("xplor %s\n", version)
		},
	}
}
