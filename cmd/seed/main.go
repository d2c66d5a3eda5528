package main

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"admissions/internal/config"
	"admissions/internal/credential"
	"admissions/internal/db"
	"admissions/internal/model"
	"admissions/internal/repository"
)

type staffFixture struct {
	FullName    string
	Email       string
	StaffNumber string
	Department  string
	Password    string
}

type courseFixture struct {
	Code     string
	Title    string
	UnitLoad int
	Program  string
	StaffIdx int
}

var staffFixtures = []staffFixture{
	{FullName: "Dr. Amina Yusuf", Email: "a.yusuf@josmed.edu.ng", StaffNumber: "STF/001", Department: "Anatomy", Password: "changeme1"},
	{FullName: "Dr. Emeka Obi", Email: "e.obi@josmed.edu.ng", StaffNumber: "STF/002", Department: "Physiology", Password: "changeme2"},
	{FullName: "Mrs. Grace Danladi", Email: "g.danladi@josmed.edu.ng", StaffNumber: "STF/003", Department: "Records", Password: "changeme3"},
}

var courseFixtures = []courseFixture{
	{Code: "ANA101", Title: "Gross Anatomy I", UnitLoad: 4, Program: "Medicine", StaffIdx: 0},
	{Code: "ANA102", Title: "Histology", UnitLoad: 3, Program: "Medicine", StaffIdx: 0},
	{Code: "PHY101", Title: "Human Physiology I", UnitLoad: 4, Program: "Medicine", StaffIdx: 1},
	{Code: "PHY102", Title: "Neurophysiology", UnitLoad: 3, Program: "Medicine", StaffIdx: 1},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	policy, err := credential.ParsePolicy(cfg.PasswordEncoding)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Staff{}, &model.Course{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	staffRepo := repository.NewStaffRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)

	staffIDs := make([]uuid.UUID, len(staffFixtures))
	created := 0
	for i, fixture := range staffFixtures {
		existing, err := staffRepo.FindByEmail(ctx, fixture.Email)
		if err == nil {
			staffIDs[i] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Lookup staff %s: %v", fixture.Email, err)
		}

		encoded, err := credential.Encode(fixture.Password, policy)
		if err != nil {
			log.Fatalf("Encode password: %v", err)
		}
		staff := &model.Staff{
			FullName:    fixture.FullName,
			Email:       fixture.Email,
			StaffNumber: fixture.StaffNumber,
			Department:  fixture.Department,
			Password:    encoded,
		}
		if err := staffRepo.Create(ctx, staff); err != nil {
			log.Fatalf("Create staff %s: %v", fixture.Email, err)
		}
		staffIDs[i] = staff.ID
		created++
	}
	log.Printf("Seeded %d staff (%d already present)", created, len(staffFixtures)-created)

	created = 0
	for _, fixture := range courseFixtures {
		if _, err := courseRepo.FindByCode(ctx, fixture.Code); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Lookup course %s: %v", fixture.Code, err)
		}

		assigned := staffIDs[fixture.StaffIdx]
		course := &model.Course{
			Code:            fixture.Code,
			Title:           fixture.Title,
			UnitLoad:        fixture.UnitLoad,
			Program:         fixture.Program,
			AssignedStaffID: &assigned,
		}
		if err := courseRepo.Create(ctx, course); err != nil {
			log.Fatalf("Create course %s: %v", fixture.Code, err)
		}
		created++
	}
	log.Printf("Seeded %d courses (%d already present)", created, len(courseFixtures)-created)

	log.Println("Seed completed")
}
