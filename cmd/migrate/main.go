package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/irfanmohammad01/real-estate-marketing/internal/auth"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping: %v", err)
	}
	log.Println("Connected to database")

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("read migrations dir %s: %v", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, f := range files {
		path := filepath.Join(dir, f)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			log.Printf("SKIP  %s (empty)", f)
			continue
		}
		if _, err := db.Exec(string(data)); err != nil {
			log.Fatalf("apply %s: %v", f, err)
		}
		log.Printf("OK    %s", f)
	}
	log.Printf("Applied %d migration files", len(files))

	if err := seedSuperUser(db); err != nil {
		log.Fatalf("seed super user: %v", err)
	}
}

// seedSuperUser upserts the bootstrap platform account when
// SUPER_USER_EMAIL and SUPER_USER_PASSWORD are set, so a fresh install has
// someone who can create organizations.
func seedSuperUser(db *sql.DB) error {
	email := os.Getenv("SUPER_USER_EMAIL")
	password := os.Getenv("SUPER_USER_PASSWORD")
	if email == "" || password == "" {
		return nil
	}
	if err := auth.ValidateComplexity(password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO super_users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, lower($2), $3, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET password_hash = $3, updated_at = NOW()
	`, uuid.New().String(), email, hash)
	if err != nil {
		return err
	}
	log.Printf("Super user %s ready", email)
	return nil
}
