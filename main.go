package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/helixmed/helix-core/internal/api"
	"github.com/helixmed/helix-core/internal/cli"
	"github.com/helixmed/helix-core/internal/config"
	"github.com/helixmed/helix-core/internal/service"
	"github.com/helixmed/helix-core/internal/storage"
	"github.com/helixmed/helix-core/internal/userdata"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`helix - medical AI prompt library and learning companion

USAGE:
    helix [OPTIONS] [COMMAND]

OPTIONS:
    --help       Show this help information
    --version    Print version information
    --init       Initialize a new content library
    --serve      Start the HTTP API server
    --port       Port for the API server (overrides HELIX_PORT)

COMMANDS:
    list, ls           List prompts
    search <query>     Fuzzy search prompts
    get, show <id>     Show a specific prompt
    render <id>        Render a prompt with key=value inputs
    copy <id>          Render and copy to clipboard
    favorites          List or toggle favorite prompts
    tags               List all tags
    tag-search <expr>  Search by tag expression (AND/OR/NOT)
    search-saved       Manage saved searches
    courses            List courses with progress
    complete           Mark a lesson done
    uncomplete         Undo a lesson completion
    progress           Show getting-started progress
    guides             List guides with progress
    journals           Browse the journal directory
    stats              Show XP, level, and streaks
    help               Show CLI command help

EXAMPLES:
    helix --init                                 # Initialize the library
    helix --serve --port 9000                    # Start the API server
    helix search "discharge summary"             # Search prompts
    helix render clinical-summary notes="..."    # Render with inputs
    helix tag-search "(documentation OR notes)"  # Tag expression search
    helix complete ai-basics what-is-ai          # Record lesson progress

STORAGE:
    Default directory: ~/.helix
    Override with: HELIX_DATA_DIR=<path>
    User data backend: HELIX_USERDATA_BACKEND=sqlite|file|memory
`)
}

// openKV opens the configured user data backend.
func openKV(cfg *config.Config) (userdata.KV, error) {
	switch cfg.UserDataBackend {
	case config.BackendSQLite:
		return userdata.NewSQLiteKV(filepath.Join(cfg.DataDir, "userdata.db"))
	case config.BackendFile:
		return userdata.NewFileKV(filepath.Join(cfg.DataDir, "userdata"))
	case config.BackendMemory:
		return userdata.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown user data backend %q", cfg.UserDataBackend)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var serve bool
	var port int

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize a new content library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&serve, "serve", false, "Start the HTTP API server")
	flag.IntVar(&port, "port", 0, "Port for the API server")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("helix version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if port != 0 {
		cfg.Port = port
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	library, err := storage.NewLibrary(cfg.DataDir, logger.Named("storage"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing library: %v\n", err)
		os.Exit(1)
	}

	if initLib {
		if err := library.InitLibrary(); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing library: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Initialized helix library in %s\n", cfg.DataDir)
		return
	}

	kv, err := openKV(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening user data store: %v\n", err)
		os.Exit(1)
	}
	if closer, ok := kv.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	svc := service.New(library, kv, logger)

	if serve {
		srv := api.NewServer(svc, cfg.Port, logger.Named("api"))
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting API server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		printHelp()
		return
	}

	cliHandler := cli.NewCLI(svc)
	if err := cliHandler.ExecuteCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
