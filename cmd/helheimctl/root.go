package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"helheim/internal/config"
	"helheim/internal/repository"
	"helheim/internal/store"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "helheimctl",
		Short:         "Helheim operator CLI",
		Long:          "Operator tooling for realms, memberships, and accounts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newRealmCmd())
	rootCmd.AddCommand(newTokenCmd())
	return rootCmd
}

// repos bundles the repositories the CLI commands operate on.
type repos struct {
	cfg      *config.Config
	realms   *repository.RealmRepo
	accounts *repository.AccountRepo
}

// connect loads config and builds DynamoDB-backed repositories.
func connect(ctx context.Context) (*repos, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(awsCfg)

	realmStore := store.NewDynamoStore(client, store.TableSpec{
		Name:         cfg.RealmsTable,
		PartitionKey: "guid",
		SortKey:      "s_key",
	})
	accountStore := store.NewDynamoStore(client, store.TableSpec{
		Name:         cfg.AuthTable,
		PartitionKey: "guid",
	})

	return &repos{
		cfg:      cfg,
		realms:   repository.NewRealmRepo(realmStore, cfg.RealmsUserGSI),
		accounts: repository.NewAccountRepo(accountStore, cfg.AuthUsernameGSI),
	}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
