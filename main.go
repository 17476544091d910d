package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/lowtide/ircd/internal/ircd"
)

func main() {
	log.SetFlags(0)

	port, password, err := parseArgs(os.Args[1:])
	if err != nil {
		printUsage(err)
		os.Exit(1)
	}

	cfg := ircd.Config{
		ListenAddr: fmt.Sprintf(":%d", port),
		Password:   password,
		ServerName: ircd.DefaultServerName,
	}

	signal.Ignore(syscall.SIGQUIT, syscall.SIGTSTP)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("listening on %s", cfg.ListenAddr)

	if err := ircd.NewServer(cfg).Run(ctx); err != nil {
		log.Printf("server error: %s", err)
		os.Exit(1)
	}
}

// parseArgs validates the two required positional arguments described in
// section 6: port (an integer in [1024, 65535]) and a non-empty password.
func parseArgs(args []string) (int, string, error) {
	if len(args) != 2 {
		return 0, "", fmt.Errorf("expected exactly 2 arguments, got %d", len(args))
	}

	port, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, "", fmt.Errorf("port must be an integer: %s", err)
	}
	if port < 1024 || port > 65535 {
		return 0, "", fmt.Errorf("port must be in [1024, 65535], got %d", port)
	}

	password := args[1]
	if password == "" {
		return 0, "", fmt.Errorf("password must not be empty")
	}

	return port, password, nil
}

func printUsage(err error) {
	log.Printf("error: %s", err)
	log.Printf("usage: %s <port> <password>", os.Args[0])
}
