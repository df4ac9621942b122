package cmd

import (
	"errors"
	"fmt"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/mongodb"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var appCmd = &cobra.Command{
	Use:     "app",
	Short:   "Manage OAuth applications",
	Aliases: []string{"apps"},
}

var appCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision a new OAuth application",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		ownerID, _ := cmd.Flags().GetString("owner")
		if name == "" {
			return errors.New("application name is required via --name")
		}

		ctx := cmd.Context()
		if err := mongodb.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName); err != nil {
			return fmt.Errorf("failed to connect to store: %w", err)
		}
		defer mongodb.CloseMongoDB(ctx)

		appRepo, err := mongodb.NewAppRepository(ctx, mongodb.GetDB())
		if err != nil {
			return err
		}

		app := &domain.App{
			Name:         name,
			ClientID:     uuid.NewString(),
			ClientSecret: uuid.NewString(),
			OwnerID:      ownerID,
		}
		if _, err := appRepo.CreateApp(ctx, app); err != nil {
			return err
		}

		fmt.Printf("App created\n  client_id:     %s\n  client_secret: %s\n", app.ClientID, app.ClientSecret)
		return nil
	},
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List provisioned OAuth applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := mongodb.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName); err != nil {
			return fmt.Errorf("failed to connect to store: %w", err)
		}
		defer mongodb.CloseMongoDB(ctx)

		appRepo, err := mongodb.NewAppRepository(ctx, mongodb.GetDB())
		if err != nil {
			return err
		}

		apps, err := appRepo.ListApps(ctx)
		if err != nil {
			return err
		}
		for _, app := range apps {
			fmt.Printf("%s\t%s\t(owner %s)\n", app.ClientID, app.Name, app.OwnerID)
		}
		return nil
	},
}

func init() {
	appCreateCmd.Flags().String("name", "", "Display name of the application")
	appCreateCmd.Flags().String("owner", "", "User id of the owning account")

	appCmd.AddCommand(appCreateCmd)
	appCmd.AddCommand(appListCmd)
	rootCmd.AddCommand(appCmd)
}
