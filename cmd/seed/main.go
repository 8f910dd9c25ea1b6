// seed inserts development sample data for local testing. Run via go run ./cmd/seed.
// Idempotent: skips inserts if the dev owner (dev@example.com) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	companydomain "account-platform/backend/internal/company/domain"
	companyrepo "account-platform/backend/internal/company/repository"
	"account-platform/backend/internal/config"
	creddomain "account-platform/backend/internal/credential/domain"
	credrepo "account-platform/backend/internal/credential/repository"
	"account-platform/backend/internal/db"
	"account-platform/backend/internal/security"
	userdomain "account-platform/backend/internal/user/domain"
	userrepo "account-platform/backend/internal/user/repository"
)

const (
	devOwnerEmail   = "dev@example.com"
	devMemberEmail  = "member@example.com"
	devPassword     = "Password123"
	devCompanyID    = "dev-company-001"
	devOwnerID      = "dev-user-001"
	devMemberID     = "dev-user-002"
	devOwnerCredID  = "dev-credential-001"
	devMemberCredID = "dev-credential-002"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	creds := credrepo.NewPostgresRepository(conn)
	companies := companyrepo.NewPostgresRepository(conn)

	ctx := context.Background()

	existing, err := users.GetByEmail(ctx, devOwnerEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (dev@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash(devPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()

	if err := companies.Create(ctx, &companydomain.Company{
		ID:        devCompanyID,
		Name:      "Acme Dev",
		Status:    companydomain.StatusActive,
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("create company: %v", err)
	}

	if err := users.Create(ctx, &userdomain.User{
		ID:        devOwnerID,
		CompanyID: devCompanyID,
		Email:     devOwnerEmail,
		FirstName: "Dev",
		LastName:  "Owner",
		Locale:    "en",
		Role:      userdomain.RoleOwner,
		Status:    userdomain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		log.Fatalf("create owner user: %v", err)
	}

	if err := users.Create(ctx, &userdomain.User{
		ID:        devMemberID,
		CompanyID: devCompanyID,
		Email:     devMemberEmail,
		FirstName: "Dev",
		LastName:  "Member",
		Locale:    "en",
		Role:      userdomain.RoleMember,
		Status:    userdomain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		log.Fatalf("create member user: %v", err)
	}

	if err := creds.Create(ctx, &creddomain.Credential{
		ID:           devOwnerCredID,
		UserID:       devOwnerID,
		Provider:     creddomain.ProviderLocal,
		ProviderID:   devOwnerEmail,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}); err != nil {
		log.Fatalf("create owner credential: %v", err)
	}

	if err := creds.Create(ctx, &creddomain.Credential{
		ID:           devMemberCredID,
		UserID:       devMemberID,
		Provider:     creddomain.ProviderLocal,
		ProviderID:   devMemberEmail,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}); err != nil {
		log.Fatalf("create member credential: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Owner login: %s / %s\n", devOwnerEmail, devPassword)
	fmt.Printf("Member login: %s / %s\n", devMemberEmail, devPassword)
}
