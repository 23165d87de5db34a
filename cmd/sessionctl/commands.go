package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/go-auth-session/internal/config"
	"github.com/urfave/cli/v3"
)

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:  "sessionctl",
		Usage: "sign in to the incidents API and keep the session alive",
		Commands: []*cli.Command{
			loginCommand(),
			refreshCommand(),
			getCommand(),
			whoamiCommand(),
			logoutCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.New(ctx)
			if err != nil {
				return err
			}
			displayAppname(cfg.GetAppName())
			return cli.ShowAppHelp(cmd)
		},
	}
}

// withApp builds the app for one command and closes it afterwards.
func withApp(ctx context.Context, cmd *cli.Command, fn func(a *app) error) (err error) {
	cfg, err := config.New(ctx)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, cmd.Root().Writer)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(a)
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and store the session tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Usage:    "account name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "account password",
				Sources:  cli.EnvVars("SESSIONCTL_PASSWORD"),
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(ctx, cmd, func(a *app) error {
				resp, err := a.client.Login(ctx, cmd.String("username"), cmd.String("password"))
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "signed in as %s (%s)\n", resp.User, resp.Role)
				return nil
			})
		},
	}
}

func refreshCommand() *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "exchange the refresh token for a new access token",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(ctx, cmd, func(a *app) error {
				if err := a.client.RefreshToken(ctx); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "access token refreshed")
				return nil
			})
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "GET an API path with the stored session",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("path is required")
			}
			return withApp(ctx, cmd, func(a *app) error {
				resp, err := a.client.Get(ctx, path)
				if err != nil {
					return err
				}
				defer resp.Body.Close()

				fmt.Fprintln(a.out, resp.Status)
				_, err = io.Copy(a.out, resp.Body)
				return err
			})
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the claims of the stored access token",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(ctx, cmd, func(a *app) error {
				claims, err := a.client.Whoami(ctx)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", strings.Repeat(" ", 2))
				return enc.Encode(claims)
			})
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "invalidate the refresh token and clear the stored session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withApp(ctx, cmd, func(a *app) error {
				return a.client.Logout(ctx)
			})
		},
	}
}
