// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements harmonictl, the operator command line for the Harmonia API.

Configuration hierarchy (highest to lowest priority):

 1. Flags
 2. Environment variables (HARMONICTL_*)
 3. Config file (~/.harmonictl.yaml)
 4. Defaults
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taibuivan/harmonia/internal/client"
)

// # Configuration Keys

const (
	keyServer   = "server"
	keyToken    = "token"
	keyEmail    = "email"
	keyPassword = "password"
	keyFormat   = "format"
	keyTimeout  = "timeout"
	keyVerbose  = "verbose"

	envPrefix      = "HARMONICTL"
	configFileName = ".harmonictl"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RootOptions holds the resolved global settings shared by every command.
type RootOptions struct {
	ConfigFile string
	config     *viper.Viper
}

func (o *RootOptions) format() string { return o.config.GetString(keyFormat) }

/*
NewRootCommand builds the harmonictl command tree.

Description: Every invocation gets its own viper instance, so commands can be
built repeatedly in tests without sharing state.
*/
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{config: viper.New()}

	cmd := &cobra.Command{
		Use:   "harmonictl",
		Short: "Operate the Harmonia music-rights backend",
		Long: `harmonictl talks to a Harmonia API server.

It inspects split sheets, applies deliverable packs, edits contract term
drafts and bulk-imports deliverables from a YAML manifest.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(); err != nil {
				return err
			}
			if format := opts.format(); format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format %q: must be %s or %s", format, FormatText, FormatJSON)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default: $HOME/.harmonictl.yaml)")
	flags.String(keyServer, "http://localhost:8080", "API base URL")
	flags.String(keyToken, "", "bearer token (skips cookie login)")
	flags.String(keyEmail, "", "staff email for cookie login")
	flags.String(keyPassword, "", "staff password for cookie login")
	flags.String(keyFormat, FormatText, "output format (text|json)")
	flags.Duration(keyTimeout, 30*time.Second, "overall deadline per command")
	flags.BoolP(keyVerbose, "v", false, "log requests to stderr")

	for _, key := range []string{keyServer, keyToken, keyEmail, keyPassword, keyFormat, keyTimeout, keyVerbose} {
		_ = opts.config.BindPFlag(key, flags.Lookup(key))
	}

	cmd.AddCommand(NewSplitsCommand(opts))
	cmd.AddCommand(NewPacksCommand(opts))
	cmd.AddCommand(NewTermsCommand(opts))
	cmd.AddCommand(NewDeliverablesCommand(opts))

	return cmd
}

// load reads the config file and environment into the viper instance.
func (o *RootOptions) load() error {
	v := o.config
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", o.ConfigFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// # Session

// connect builds an API client and, without a bearer token, opens a cookie session.
func (o *RootOptions) connect(ctx context.Context, cmd *cobra.Command) (*client.Client, error) {
	v := o.config

	level := slog.LevelWarn
	if v.GetBool(keyVerbose) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	options := []client.Option{client.WithLogger(logger)}
	if token := v.GetString(keyToken); token != "" {
		options = append(options, client.WithBearerToken(token))
	}

	c, err := client.New(v.GetString(keyServer), options...)
	if err != nil {
		return nil, err
	}

	if v.GetString(keyToken) == "" {
		email, password := v.GetString(keyEmail), v.GetString(keyPassword)
		if email == "" || password == "" {
			c.Close()
			return nil, errors.New("no credentials: set --token or --email and --password")
		}
		if _, err := c.Login(ctx, email, password); err != nil {
			c.Close()
			return nil, fmt.Errorf("login: %w", err)
		}
	}

	return c, nil
}

// run wraps a command body with the deadline and a connected client.
func (o *RootOptions) run(cmd *cobra.Command, body func(ctx context.Context, c *client.Client, out io.Writer) error) error {
	timeout := o.config.GetDuration(keyTimeout)
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	c, err := o.connect(ctx, cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	return body(ctx, c, cmd.OutOrStdout())
}
