package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/database"
)

// MigrateCommand creates or updates the schema and exits.
type MigrateCommand struct {
	cfg *config.Config
}

func NewMigrateCommand(cfg *config.Config) *MigrateCommand {
	return &MigrateCommand{cfg: cfg}
}

func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Apply the schema to the database named by DATABASE_DRIVER and\n")
		fmt.Fprintf(os.Stderr, "DATABASE_PATH or DATABASE_DSN.\n")
	}
	return fs.Parse(args)
}

func (cmd *MigrateCommand) Run() error {
	db, err := database.NewDatabase(cmd.cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Schema up to date (%s)\n", cmd.cfg.Database.Driver)
	return nil
}
