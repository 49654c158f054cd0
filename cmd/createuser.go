package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/supakorn-kn/go-library/auth"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/objects"
	"go.uber.org/zap"
)

var createUserFlags struct {
	password  string
	email     string
	librarian bool
}

var createUserCmd = &cobra.Command{
	Use:   "createuser <username>",
	Short: "Create a library user",
	Long: `Create a user who can sign in to the catalog.

With --librarian the user is granted catalog.can_mark_returned, which opens the
list of all loans, loan renewal and the JSON API. Running it with --librarian for
an existing username grants the permission to that user.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateUser,
}

func init() {

	createUserCmd.Flags().StringVarP(&createUserFlags.password, "password", "p", "", "Password of the new user")
	createUserCmd.Flags().StringVar(&createUserFlags.email, "email", "", "Email address")
	createUserCmd.Flags().BoolVar(&createUserFlags.librarian, "librarian", false, "Grant "+objects.CanMarkReturnedPermission)
	_ = createUserCmd.MarkFlagRequired("password")
}

func runCreateUser(cmd *cobra.Command, args []string) error {

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	username := args[0]

	hash, err := auth.HashPassword(createUserFlags.password)
	if err != nil {
		return err
	}

	user := objects.User{
		Username:     username,
		PasswordHash: hash,
		Email:        createUserFlags.email,
	}

	if createUserFlags.librarian {
		user.Permissions = []string{objects.CanMarkReturnedPermission}
	}

	created, err := a.models.Users.Create(ctx, user)
	if errors.DataAlreadyInUsedError.IsEqual(err) && createUserFlags.librarian {

		existing, err := a.models.Users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}

		if err := a.models.Users.GrantPermission(ctx, existing.UserID, objects.CanMarkReturnedPermission); err != nil {
			return err
		}

		a.logger.Info("Permission granted", zap.String("username", username), zap.String("permission", objects.CanMarkReturnedPermission))
		return nil
	}

	if err != nil {
		return err
	}

	a.logger.Info("User created", zap.String("username", created.Username), zap.Bool("librarian", created.IsLibrarian()))
	fmt.Fprintln(cmd.OutOrStdout(), created.UserID)

	return nil
}
