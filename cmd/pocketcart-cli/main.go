package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pocketcart/internal/client"
	"pocketcart/internal/config"
	"pocketcart/internal/localstore"
	"pocketcart/pkg/logger"
)

const usage = `usage: pocketcart-cli <command> [args]

commands:
  register <email> <password> <name>
  login <email> <password>
  logout
  budget [amount]
  trip show|add|check|price|qty|rm|toggle-all|checkout ...
  lists
  list new|show|add|check|rm|toggle-all|delete ...
  history [start end]
`

type cli struct {
	api   *client.Client
	store *localstore.Store
	log   logger.Logger
	out   io.Writer
}

func main() {
	log := logger.New(os.Stderr, slog.LevelWarn, os.Getenv("LOG_FORMAT"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], log); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, log logger.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.LoadClient(log)
	if err != nil {
		return err
	}
	store, err := localstore.Open(cfg.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	c := &cli{
		api:   client.New(cfg, log),
		store: store,
		log:   log,
		out:   os.Stdout,
	}
	if session, ok, err := store.Session(ctx); err != nil {
		return err
	} else if ok {
		c.api.SetToken(session.Token)
	}

	command, rest := strings.ToLower(args[0]), args[1:]
	switch command {
	case "register":
		return c.register(ctx, rest)
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.logout(ctx)
	case "budget":
		return c.budget(ctx, rest)
	case "trip":
		return c.trip(ctx, rest)
	case "lists":
		return c.lists(ctx)
	case "list":
		return c.list(ctx, rest)
	case "history":
		return c.history(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		return errUsage
	}
}
