package main

import (
	"flag"
	"fmt"
	"sort"

	"marketadmin/internal/app/config"
	"marketadmin/internal/app/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	configFile := flag.String("config", "", "path to a toml config file")
	demo := flag.Bool("demo", false, "seed demo accounts, a product and a pending payment")
	demoPassword := flag.String("demo-password", "admin123", "password of the demo accounts")
	flag.Parse()

	cfg, err := config.NewConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	// New migrates every model and seeds the platforms.
	repo, err := repository.New(cfg.FakeAPI.DSN)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	defer repo.Close()
	log.Info("Database migration completed successfully")

	if *demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(*demoPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		d, err := repo.SeedDemo(string(hash))
		if err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Infof("Demo admin %s, pending payment %s", d.Admin.Email, d.Payment.ID)
	}

	counts, err := repo.Counts()
	if err != nil {
		log.Fatal(err)
	}
	tables := make([]string, 0, len(counts))
	for name := range counts {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	for _, name := range tables {
		fmt.Printf("%-12s %d\n", name, counts[name])
	}
}
