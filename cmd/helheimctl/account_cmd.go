package main

import (
	"github.com/spf13/cobra"

	"helheim/internal/domain"
	accountsvc "helheim/internal/service/account"
	"helheim/internal/token"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newAccountCreateCmd())
	cmd.AddCommand(newAccountGetCmd())
	cmd.AddCommand(newAccountDeleteCmd())
	return cmd
}

func newAccountCreateCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			r, err := connect(ctx)
			if err != nil {
				return err
			}
			svc := accountsvc.NewService(r.accounts, token.NewBcryptHasher())

			account, err := svc.Create(ctx, domain.CreateAccount{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}
			return printJSON(account)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAccountGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <guid>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := connect(ctx)
			if err != nil {
				return err
			}
			svc := accountsvc.NewService(r.accounts, token.NewBcryptHasher())

			account, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(account)
		},
	}
	return cmd
}

func newAccountDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <guid>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := connect(ctx)
			if err != nil {
				return err
			}
			svc := accountsvc.NewService(r.accounts, token.NewBcryptHasher())
			return svc.Delete(ctx, args[0])
		},
	}
	return cmd
}
