package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/geonews/geonews/internal/auth"
)

type output struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		name        = flag.String("name", "admin", "User name")
		email       = flag.String("email", "admin@geonews.local", "User email")
		password    = flag.String("password", "", "User password (required)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "password is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	var id int64
	err = db.QueryRow(
		`INSERT INTO users (name, email, hashed_password) VALUES ($1, $2, $3) RETURNING id`,
		*name, *email, hashed,
	).Scan(&id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	result := output{UserID: id, Name: *name, Email: *email}

	if *format == "json" {
		if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("user created\n  id:    %d\n  name:  %s\n  email: %s\n", result.UserID, result.Name, result.Email)
}
