package main

import (
	"time"

	"github.com/spf13/cobra"

	"helheim/internal/config"
	"helheim/internal/token"
)

func newTokenCmd() *cobra.Command {
	var (
		userGUID string
		expires  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a bearer token for a user",
		Long:  "Generate an HS256 bearer token signed with the configured JWT secret. Useful for testing and operator access.",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}

			codec, err := token.NewHS256Codec(cfg.Auth.JWTSecret)
			if err != nil {
				return err
			}
			signed, err := codec.Encode(map[string]string{"user_guid": userGUID}, expires)
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"access_token": signed})
		},
	}

	cmd.Flags().StringVar(&userGUID, "user-guid", "", "user guid claim")
	cmd.Flags().DurationVar(&expires, "expires", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user-guid")
	return cmd
}
