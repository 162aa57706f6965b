// cmd/addcontestant/main.go
// Registers a contestant directly in the database, handy for seeding the
// roster before the event starts.
//
// Usage:
//
//	go run ./cmd/addcontestant -name "Team Pearl" -userid pearl01
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/shuckfest/leaderboard/config"
	bundb "github.com/shuckfest/leaderboard/db"
	"github.com/shuckfest/leaderboard/models"
)

func main() {
	name := flag.String("name", "", "display name (required)")
	userID := flag.String("userid", "", "external user id (required)")
	flag.Parse()

	if *name == "" || *userID == "" {
		log.Fatal("both -name and -userid are required")
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(context.Background(), db); err != nil {
		log.Fatal("create tables:", err)
	}

	contestant := &models.Contestant{
		Name:   *name,
		UserID: *userID,
	}

	if _, err := db.NewInsert().Model(contestant).Exec(context.Background()); err != nil {
		log.Fatal("insert contestant:", err)
	}

	fmt.Printf("contestant %q saved as id %d\n", *name, contestant.ID)
}
