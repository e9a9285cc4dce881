package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

// Imports the HR user feed. Expected CSV columns:
// employee_id,email,first_name,last_name,role,work_location,career_start_date,career_break_months,last_working_day,skills
// Dates are YYYY-MM-DD; empty cells mean null. The skills cell is a
// semicolon-separated list of name:rating pairs, e.g. "Go:4;SQL:3".
func main() {
	var file string
	var dryRun bool
	flag.StringVar(&file, "file", "", "Path to the users CSV file")
	flag.BoolVar(&dryRun, "dry-run", true, "If true, do not persist updates; just print changes")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment variables")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	if file == "" {
		log.Fatal().Msg("-file is required")
	}

	db, err := storage.NewDB(dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer db.Close()

	f, err := os.Open(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("open csv")
	}
	defer f.Close()

	ctx := context.Background()
	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		log.Fatal().Err(err).Msg("read csv header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"employee_id", "email", "first_name", "last_name"} {
		if _, ok := cols[required]; !ok {
			log.Fatal().Str("column", required).Msg("missing required csv column")
		}
	}

	imported, skipped := 0, 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal().Err(err).Int("line", line).Msg("read csv record")
		}

		upsert, ratings, err := parseRecord(cols, record)
		if err != nil {
			log.Warn().Err(err).Int("line", line).Msg("skipping record")
			skipped++
			continue
		}

		if dryRun {
			log.Info().Str("employee_id", upsert.EmployeeID).Str("email", upsert.Email).
				Int("skills", len(ratings)).Msg("would import")
			imported++
			continue
		}
		userID, err := db.UpsertUser(ctx, upsert)
		if err != nil {
			log.Warn().Err(err).Int("line", line).Msg("upsert failed")
			skipped++
			continue
		}
		if err := db.UpsertSkillRatings(ctx, userID, ratings); err != nil {
			log.Warn().Err(err).Int("line", line).Msg("skill ratings failed")
		}
		imported++
	}

	log.Info().Int("imported", imported).Int("skipped", skipped).Bool("dry_run", dryRun).Msg("import finished")
}

func parseRecord(cols map[string]int, record []string) (storage.UserUpsert, map[string]int, error) {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	u := storage.UserUpsert{
		EmployeeID: cell("employee_id"),
		Email:      cell("email"),
		FirstName:  cell("first_name"),
		LastName:   cell("last_name"),
	}
	if u.EmployeeID == "" || u.Email == "" {
		return u, nil, errEmptyKey
	}

	if role := cell("role"); role != "" {
		u.RoleName = &role
	}
	if loc := cell("work_location"); loc != "" {
		u.WorkLocation = &loc
	}

	var err error
	if u.CareerStartDate, err = parseDateCell(cell("career_start_date")); err != nil {
		return u, nil, err
	}
	if u.LastWorkingDay, err = parseDateCell(cell("last_working_day")); err != nil {
		return u, nil, err
	}
	if raw := cell("career_break_months"); raw != "" {
		if u.CareerBreakMonths, err = strconv.Atoi(raw); err != nil {
			return u, nil, err
		}
	}

	ratings, err := parseSkillsCell(cell("skills"))
	if err != nil {
		return u, nil, err
	}
	return u, ratings, nil
}

var errEmptyKey = eris.New("employee_id and email are required")

// parseSkillsCell splits "Go:4;SQL:3" into a name->rating map.
func parseSkillsCell(s string) (map[string]int, error) {
	if s == "" {
		return nil, nil
	}
	ratings := make(map[string]int)
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, raw, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, eris.Errorf("malformed skill entry %q", pair)
		}
		rating, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || rating < 0 || rating > 5 {
			return nil, eris.Errorf("invalid rating in skill entry %q", pair)
		}
		ratings[strings.TrimSpace(name)] = rating
	}
	return ratings, nil
}

func parseDateCell(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
