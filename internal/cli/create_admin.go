package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/learnhub/internal/auth"
	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/database/users"
	"github.com/mrlokans/learnhub/internal/entities"
)

// CreateAdminCommand provisions an ADMIN account. Registration over HTTP only
// ever creates students, so this is how the first administrator is made.
type CreateAdminCommand struct {
	Email    string
	Password string
	Name     string

	cfg *config.Config
}

func NewCreateAdminCommand(cfg *config.Config) *CreateAdminCommand {
	return &CreateAdminCommand{cfg: cfg}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address of the administrator (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password, at least 8 characters (required)")
	fs.StringVar(&cmd.Name, "name", "Administrator", "Display name")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}
	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	db, err := database.NewDatabase(cmd.cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, err := auth.NewService(users.NewRepository(db.DB), auth.NewTokenIssuer(cmd.cfg.Auth.JWTSecret, cmd.cfg.Auth.TokenExpiry), cmd.cfg.Auth)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := svc.CreateUserWithRole(ctx, cmd.Email, cmd.Password, cmd.Name, entities.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("Created administrator %s (id %d)\n", session.User.Email, session.User.ID)
	return nil
}
