package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/raushankrgupta/skinbox/app"
	"github.com/raushankrgupta/skinbox/config"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/utils"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "skinbox",
		Usage: "Personal skincare box terminal client",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "as", Usage: "log in with this email for a single command"},
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			catalogCommand(),
			recommendCommand(),
			boxesCommand(),
			orderCommand(),
			statusCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withApp builds the application from the environment for the duration of fn
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	log.Logger = logger
	if cfg.Storage == config.StorageMemory {
		logger.Debug().Msg("in-memory storage: sessions and boxes end with this command")
	}

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	return fn(ctx, a)
}

var errNotLoggedIn = errors.New("not logged in, run `skinbox login --email ...` or pass --as")

// currentUser resolves the session slot, logging in first when --as is given
func currentUser(ctx context.Context, c *cli.Command, a *app.App) (models.SessionIdentity, error) {
	if email := c.String("as"); email != "" {
		return a.Sessions.Login(ctx, email)
	}
	identity, err := a.Sessions.Current(ctx)
	if err != nil {
		return models.SessionIdentity{}, err
	}
	if identity == nil {
		return models.SessionIdentity{}, errNotLoggedIn
	}
	return *identity, nil
}

func requireAdmin(ctx context.Context, c *cli.Command, a *app.App) (models.SessionIdentity, error) {
	user, err := currentUser(ctx, c, a)
	if err != nil {
		return user, err
	}
	if !user.IsAdmin() {
		return user, errors.New("this command needs an admin session")
	}
	return user, nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
