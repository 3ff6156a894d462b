package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/spikeware/courtside/internal/database"
	"github.com/spikeware/courtside/internal/identity"
	"github.com/spikeware/courtside/internal/roster"
	"github.com/spikeware/courtside/internal/schedule"
)

var sampleNames = []string{
	"Sofia Berg",
	"Erik Lund",
	"Maja Holm",
	"Oscar Dahl",
	"Elin Strand",
	"Viktor Falk",
	"Hanna Ek",
	"Jonas Vik",
	"Freja Aas",
	"Nils Bakke",
	"Ida Ruud",
}

func main() {
	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "courtside.db"
	}

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), "./migrations")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	users := identity.New(db)
	matches := schedule.New(db)
	rosterStore := roster.New(db)

	seeded := make([]*identity.User, 0, len(sampleNames))
	for _, name := range sampleNames {
		user, err := users.ResolveUser(name, "Team")
		if err != nil {
			log.Fatalf("Failed to seed user %s: %s", name, err)
		}
		seeded = append(seeded, user)
	}
	log.Info("Ensured sample users exist.", "count", len(seeded))

	created, err := matches.EnsureWeeklySlots(time.Now())
	if err != nil {
		log.Fatalf("Failed to create weekly slots: %s", err)
	}
	log.Info("Ensured weekly slots exist.", "created", created)

	start, end := schedule.WeekBounds(time.Now())
	week, err := matches.MatchesInRange(start, end)
	if err != nil {
		log.Fatalf("Failed to load weekly matches: %s", err)
	}
	if len(week) < 3 {
		log.Info("Not enough matches this week to seed rsvps, done.")
		return
	}

	// One full match with a waitlist, one nearly full, the rest left open.
	seedRoster(rosterStore, week[0], seeded[:5])
	seedRoster(rosterStore, week[1], seeded[5:8])

	log.Info("Seeding complete.")
}

func seedRoster(store roster.RosterStore, match *schedule.Match, players []*identity.User) {
	for _, player := range players {
		if _, err := store.Join(match.ID, player.ID); err != nil {
			log.Warn("Skipping rsvp", "match", match.ID, "player", player.Name, "error", err)
		}
	}
	log.Info("Seeded match roster", "match", match.ID, "slot", match.TimeSlot, "players", len(players))
}
