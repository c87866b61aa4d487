package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openclaw/clawdesk/internal/client"
	"github.com/openclaw/clawdesk/internal/client/config"
	"github.com/openclaw/clawdesk/internal/utils"
	"github.com/openclaw/clawdesk/internal/version"
)

func init() {
	rootCmd.AddCommand(newDaemonCmd())
}

func newDaemonCmd() *cobra.Command {
	var addr string
	var authToken string
	var noAuth bool

	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Start the clawdesk daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			slog.Info("clawdesk", "version", version.Version, "revision", version.Revision, "build", version.BuildDate)

			// Flag beats environment beats default.
			configPath := ""
			if cmd.Flag("config").Changed {
				configPath = cmd.Flag("config").Value.String()
			} else if envPath := viper.GetString("config_path"); envPath != "" {
				configPath = envPath
			} else {
				configPath = config.DefaultConfigPath
			}
			slog.Info("daemon using config", "path", configPath)

			if !cmd.Flag("http-addr").Changed {
				if envAddr := viper.GetString("http_addr"); envAddr != "" {
					addr = envAddr
				}
			}
			if authToken == "" {
				authToken = viper.GetString("http_token")
			}
			if authToken == "" && !noAuth {
				// Fresh token per run; the frontend reads it from our
				// stdout when it spawns us.
				authToken = utils.TokenHex(16)
				slog.Info("control plane token", "token", authToken)
			}

			daemon, err := client.NewDaemon(&client.ControlPlaneConfig{
				Addr:       addr,
				AuthToken:  authToken,
				ConfigPath: configPath,
			})
			if err != nil {
				return err
			}

			defer slog.Info("Bye!")
			if err := daemon.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("daemon start", "error", err)
				return err
			}
			return nil
		},
	}

	daemonCmd.Flags().StringVarP(&addr, "http-addr", "a", "localhost:17938", "Address to bind the local http server")
	daemonCmd.Flags().StringVarP(&authToken, "http-token", "t", "", "Access token for the local http server")
	daemonCmd.Flags().BoolVar(&noAuth, "no-auth", false, "Disable control plane auth (local development only)")

	viper.SetEnvPrefix("CLAWDESK")
	viper.AutomaticEnv()

	return daemonCmd
}
