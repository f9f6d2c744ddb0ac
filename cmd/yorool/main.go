// ABOUTME: CLI entrypoint for yorool: the radio-group demo, its terminal UI and trace inspection.
// ABOUTME: A cobra root loads .env files and configuration once, then dispatches to subcommands.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/yorool/config"
)

var version = "dev"

// app is the state shared by subcommands once the root has run its setup.
type app struct {
	configPath string
	dataDirArg string
	verbose    bool

	cfg     config.Config
	dataDir string
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(&app{stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "yorool",
		Short:         "Cooperative query/response widgets, shown on a radio group",
		Long:          "yorool drives widget protocols written as straight-line code across UI ticks.\nRun without a subcommand to open the terminal UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/yorool/config.yaml)")
	flags.StringVar(&a.dataDirArg, "data-dir", "", "Data directory for traces (default: $XDG_DATA_HOME/yorool)")
	flags.BoolVar(&a.verbose, "verbose", false, "Log router diagnostics to stderr")

	root.AddCommand(
		newTUICmd(a),
		newDemoCmd(a),
		newTraceCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// prepare loads .env files and routes the log.
func (a *app) prepare() {
	loadDotEnv(dotEnvCandidates())

	log.SetOutput(io.Discard)
	if a.verbose {
		log.SetOutput(a.stderr)
	}
}

// setup prepares, then loads configuration and the data directory.
func (a *app) setup() error {
	a.prepare()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	dir, err := resolveDataDir(a.dataDirArg)
	if err != nil {
		return err
	}
	a.dataDir = dir
	log.Printf("component=cli action=setup data_dir=%s max_ticks=%d strict=%t",
		dir, cfg.Router.MaxTicks, cfg.Router.StrictContracts)
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.stdout, "yorool %s\n", version)
		},
	}
}
