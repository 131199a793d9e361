// seed loads a demo dataset for local development: one company with two bank
// accounts, an admin user, and a handful of parties. Safe to re-run; rows are
// matched by their natural keys.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"freightledger/internal/db"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Seeding company...")
	var companyID int
	err = tx.QueryRow(ctx, `
		INSERT INTO companies (company_name, company_address, company_email, gst_no, pan_no, phone_number)
		SELECT 'Shree Freight Carriers', 'Transport Nagar, Indore', 'office@shreefreight.example', '23ABCDE1234F1Z5', 'ABCDE1234F', '9800000001'
		WHERE NOT EXISTS (SELECT 1 FROM companies WHERE company_name = 'Shree Freight Carriers')
		RETURNING id
	`).Scan(&companyID)
	if err != nil {
		// Company already seeded; resolve its id.
		if err := tx.QueryRow(ctx,
			"SELECT id FROM companies WHERE company_name = 'Shree Freight Carriers'").Scan(&companyID); err != nil {
			log.Fatalf("Failed to seed company: %v", err)
		}
	}

	log.Println("Seeding bank accounts...")
	_, err = tx.Exec(ctx, `
		INSERT INTO banks (company_id, ac_holder_name, account_no, branch_name, ifsc_code, is_primary)
		SELECT $1, v.holder, v.acct, v.branch, v.ifsc, v.primary_flag
		FROM (VALUES
			('Shree Freight Carriers', '50100200300401', 'Indore Main', 'HDFC0000123', true),
			('Shree Freight Carriers', '910020030040050', 'Indore MG Road', 'ICIC0000456', false)
		) AS v(holder, acct, branch, ifsc, primary_flag)
		WHERE NOT EXISTS (SELECT 1 FROM banks WHERE company_id = $1 AND account_no = v.acct)
	`, companyID)
	if err != nil {
		log.Fatalf("Failed to seed banks: %v", err)
	}

	log.Println("Seeding admin user...")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO users (full_name, email, password_hash, role)
		VALUES ('Admin', 'admin@shreefreight.example', $1, 'admin')
		ON CONFLICT (email) DO NOTHING
	`, string(hash))
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Println("Seeding parties...")
	_, err = tx.Exec(ctx, `
		INSERT INTO parties (party_name, party_phone, party_address)
		SELECT v.name, v.phone, v.address
		FROM (VALUES
			('Agarwal Traders', '9811111111', 'Siyaganj, Indore'),
			('Mahesh Agro Industries', '9822222222', 'Dewas Road, Ujjain'),
			('Bansal Steel Suppliers', '9833333333', 'Pithampur')
		) AS v(name, phone, address)
		WHERE NOT EXISTS (SELECT 1 FROM parties WHERE party_name = v.name)
	`)
	if err != nil {
		log.Fatalf("Failed to seed parties: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit seed: %v", err)
	}
	log.Println("Seed data loaded")
}
