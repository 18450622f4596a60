package main

import (
	"time"

	"github.com/spf13/cobra"

	"helheim/internal/domain"
)

func newRealmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realm",
		Short: "Manage realms and memberships",
	}

	cmd.AddCommand(newRealmCreateCmd())
	cmd.AddCommand(newRealmAddUserCmd())
	cmd.AddCommand(newRealmMembersCmd())
	return cmd
}

func newRealmCreateCmd() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a realm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			r, err := connect(ctx)
			if err != nil {
				return err
			}

			realm := &domain.Realm{
				GUID:        domain.NewID(),
				Name:        name,
				Description: description,
				CreatedAt:   time.Now().UTC(),
			}
			if err := r.realms.PutRealm(ctx, realm); err != nil {
				return err
			}
			return printJSON(realm)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "realm name")
	cmd.Flags().StringVar(&description, "description", "", "realm description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRealmAddUserCmd() *cobra.Command {
	var (
		userGUID string
		username string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "add-user <realm-guid>",
		Short: "Add a user to a realm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := connect(ctx)
			if err != nil {
				return err
			}

			// Realm must exist; account must exist and match the username.
			if _, err := r.realms.GetRealm(ctx, args[0]); err != nil {
				return err
			}
			account, err := r.accounts.Get(ctx, userGUID)
			if err != nil {
				return err
			}
			if username == "" {
				username = account.Username
			}

			membership := &domain.RealmUser{
				GUID:      domain.NewID(),
				RealmGUID: args[0],
				UserGUID:  userGUID,
				Username:  username,
				Role:      role,
				CreatedAt: time.Now().UTC(),
			}
			if err := r.realms.PutMembership(ctx, membership); err != nil {
				return err
			}
			return printJSON(membership)
		},
	}

	cmd.Flags().StringVar(&userGUID, "user-guid", "", "account guid to add")
	cmd.Flags().StringVar(&username, "username", "", "display username (defaults to the account's)")
	cmd.Flags().StringVar(&role, "role", domain.RoleAdmin, "membership role")
	_ = cmd.MarkFlagRequired("user-guid")
	return cmd
}

func newRealmMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members <realm-guid>",
		Short: "List a realm's memberships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := connect(ctx)
			if err != nil {
				return err
			}
			members, err := r.realms.ListMembers(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(members)
		},
	}
	return cmd
}
