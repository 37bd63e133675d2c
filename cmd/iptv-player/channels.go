package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/alorle/iptv-player/config"
	"github.com/alorle/iptv-player/internal/application"
	"github.com/alorle/iptv-player/internal/channel"
)

// storeOpener returns an unloaded ChannelStore and a cleanup function.
type storeOpener func(cmd *cobra.Command) (*application.ChannelStore, func(), error)

// storeFlags are the config overrides accepted by the channels commands.
type storeFlags struct {
	driver   string
	path     string
	dsn      string
	encoding string
}

// newChannelsCommand creates the channels command. A nil opener opens the
// configured store; tests pass their own.
func newChannelsCommand(open storeOpener) *cobra.Command {
	flags := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Manage the channel list",
		Long:  `List, add, remove and export channels without starting the player.`,
	}

	cmd.PersistentFlags().StringVar(&flags.driver, "store", "", "preference store driver (bolt, postgres, memory)")
	cmd.PersistentFlags().StringVar(&flags.path, "db-path", "", "bolt database path")
	cmd.PersistentFlags().StringVar(&flags.dsn, "database-url", "", "PostgreSQL connection string")
	cmd.PersistentFlags().StringVar(&flags.encoding, "encoding", "", "channel list encoding (json, yaml)")

	if open == nil {
		open = flags.open
	}

	cmd.AddCommand(newChannelsListCommand(open))
	cmd.AddCommand(newChannelsAddCommand(open))
	cmd.AddCommand(newChannelsRemoveCommand(open))
	cmd.AddCommand(newChannelsExportCommand(open))

	return cmd
}

// open loads the configuration, applies the flag overrides and opens the store.
func (f *storeFlags) open(cmd *cobra.Command) (*application.ChannelStore, func(), error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if f.driver != "" {
		cfg.Store.Driver = f.driver
	}
	if f.path != "" {
		cfg.Store.Path = f.path
	}
	if f.dsn != "" {
		cfg.Store.DatabaseURL = f.dsn
	}
	if f.encoding != "" {
		cfg.Store.Encoding = f.encoding
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), "WARN")
	prefs, cleanup, err := openPreferenceStore(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return application.NewChannelStore(prefs, newChannelCodec(cfg), logger), cleanup, nil
}

// loadStore opens and loads the channel store. Corrupt data is reported
// and the defaults are used, as the player does on start.
func loadStore(ctx context.Context, cmd *cobra.Command, open storeOpener) (*application.ChannelStore, func(), error) {
	store, cleanup, err := open(cmd)
	if err != nil {
		return nil, nil, err
	}

	if _, err := store.Load(ctx); err != nil {
		if !errors.Is(err, channel.ErrCorruptPersistedData) {
			cleanup()
			return nil, nil, err
		}
		cmd.PrintErrln("warning:", err)
	}

	return store, cleanup, nil
}

func newChannelsListCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List channels in play order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := loadStore(cmd.Context(), cmd, open)
			if err != nil {
				return err
			}
			defer cleanup()

			channels := store.Channels()
			if len(channels) == 0 {
				cmd.Println("No channels")
				return nil
			}

			for i, ch := range channels {
				cmd.Printf("%d\t%s\t%s\n", i, ch.Name(), ch.URL())
			}
			return nil
		},
	}
}

func newChannelsAddCommand(open storeOpener) *cobra.Command {
	var logo string

	cmd := &cobra.Command{
		Use:   "add [NAME] [URL]",
		Short: "Append a channel to the list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The JSON encoding cannot carry invalid UTF-8 unchanged.
			for _, value := range []string{args[0], args[1], logo} {
				if !utf8.ValidString(value) {
					return fmt.Errorf("invalid UTF-8 in %q", value)
				}
			}

			store, cleanup, err := loadStore(cmd.Context(), cmd, open)
			if err != nil {
				return err
			}
			defer cleanup()

			ch := channel.NewChannel(args[0], args[1], logo)
			store.Append(cmd.Context(), ch)

			cmd.Printf("Added channel %d: %s\n", store.Len()-1, ch.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&logo, "logo", "", "channel logo URL")

	return cmd
}

func newChannelsRemoveCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [INDEX]",
		Short: "Remove the channel at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid channel index %q", args[0])
			}

			store, cleanup, err := loadStore(cmd.Context(), cmd, open)
			if err != nil {
				return err
			}
			defer cleanup()

			ch, err := store.At(index)
			if err != nil {
				return err
			}
			if err := store.RemoveAt(cmd.Context(), index); err != nil {
				return err
			}

			cmd.Printf("Removed channel %d: %s\n", index, ch.Name())
			return nil
		},
	}
}

func newChannelsExportCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the channel list as an M3U playlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := loadStore(cmd.Context(), cmd, open)
			if err != nil {
				return err
			}
			defer cleanup()

			playlist, err := application.NewPlaylistService(store).GenerateM3U(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to generate playlist: %w", err)
			}

			cmd.Print(playlist)
			return nil
		},
	}
}
