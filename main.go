package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/customeros/mailtickets/config"
	"github.com/customeros/mailtickets/internal/database"
	"github.com/customeros/mailtickets/internal/repository"
	"github.com/customeros/mailtickets/server"
)

func main() {
	app := &cli.App{
		Name:  "mailtickets",
		Usage: "turns inbound support email into tickets",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Run database migrations and seed default statuses and priorities",
				Action: migrate,
			},
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, nil, cli.Exit("config initialization failed: "+err.Error(), 1)
	}

	ticketingDB, err := database.InitTicketingDatabase(cfg.DatabaseConfig)
	if err != nil {
		return nil, nil, cli.Exit("ticketing database initialization failed: "+err.Error(), 1)
	}
	return cfg, ticketingDB, nil
}

func migrate(c *cli.Context) error {
	cfg, ticketingDB, err := setup()
	if err != nil {
		return err
	}

	if err := repository.MigrateDB(cfg.DatabaseConfig, ticketingDB); err != nil {
		return cli.Exit("database migration failed: "+err.Error(), 1)
	}
	if err := repository.NewTermRepository(ticketingDB).SeedDefaults(context.Background()); err != nil {
		return cli.Exit("seeding default terms failed: "+err.Error(), 1)
	}

	log.Println("Database migration completed successfully")
	return nil
}

func serve(c *cli.Context) error {
	cfg, ticketingDB, err := setup()
	if err != nil {
		return err
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Mailtickets starting up...")

	srv, err := server.NewServer(cfg, ticketingDB)
	if err != nil {
		return cli.Exit("server setup failed: "+err.Error(), 1)
	}

	if err := srv.Run(); err != nil {
		return cli.Exit("server startup failed: "+err.Error(), 1)
	}

	log.Println("Shutdown complete")
	return nil
}
