package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/blur-faces-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	var imagePath string
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("blur-faces-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		default:
			if strings.HasPrefix(os.Args[1], "-") {
				fmt.Fprintf(os.Stderr, "unknown option: %s\n", os.Args[1])
				os.Exit(2)
			}
			imagePath = os.Args[1]
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug {
		log.Printf("Blur Faces MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.NewWithConfig(cfg)

	// An image named on the command line is opened before serving; a file
	// that cannot be loaded ends the process without starting a session.
	if imagePath != "" {
		if _, err := srv.Open(imagePath); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("blur-faces-mcp - MCP server for blurring faces and other regions of an image")
	fmt.Println()
	fmt.Println("Usage: blur-faces-mcp [options] [image]")
	fmt.Println()
	fmt.Println("If an image path is given it is opened before the server starts.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  BLUR_FACES_LOG_LEVEL=debug        Enable debug logging")
	fmt.Println("  BLUR_FACES_SUFFIX=_blurred        Suffix inserted before the saved file's extension")
	fmt.Println("  BLUR_FACES_OVERLAY=#00FF00        Brush ring and label color in previews")
	fmt.Println("  BLUR_FACES_MAX_PREVIEW=1920x1080  Largest preview size")
	fmt.Println()
	fmt.Println("Keys (blur_key): + or = radius up, - radius down, ] blur up, [ blur down,")
	fmt.Println("u undo, q save and quit, esc quit without saving.")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
