package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/bootstrap"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/config"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/logger"
	"github.com/abeluzrivera/Fullstack-Test-01/internal/version"

	"go.uber.org/zap"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		version.PrintVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "server":
		runServer()
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Usage: %s [OPTIONS] COMMAND\n\n", os.Args[0])
	fmt.Println("Collaborative project and task board API")
	fmt.Println("\nCommands:")
	fmt.Println("  server    Start the API server")
	fmt.Println("\nOptions:")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println("  -h, --help       Show this help message")
}

func runServer() {
	// Load first so LOG_LEVEL and LOG_DEV can come from .env
	cfg := config.Load()

	l, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	if err := bootstrap.Run(context.Background(), cfg); err != nil {
		zap.L().Error("[Server] Exited with error", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}
