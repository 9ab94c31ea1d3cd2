package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/models"
)

const (
	DemoPassword   = "123456"
	DemoPatientDNI = "12345678"
)

type SeedOptions struct {
	BcryptCost   int
	FakePatients int
}

var demoSpecialties = []string{
	"Cardiología",
	"Dermatología",
	"Pediatría",
	"Neurología",
	"Oftalmología",
}

var demoOffices = []struct {
	name   string
	active bool
}{
	{"Consultorio A", true},
	{"Consultorio B", true},
	{"Consultorio C", false},
	{"Consultorio Central", true},
	{"Consultorio Norte", true},
}

// Seed loads the demo data. Running it twice leaves the data unchanged.
func Seed(ctx context.Context, db *gorm.DB, opts SeedOptions) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// --------------------------------------------------
		// 1. Especialidades y consultorios
		// --------------------------------------------------
		specialties := make([]models.Specialty, 0, len(demoSpecialties))
		for _, name := range demoSpecialties {
			s := models.Specialty{Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&s).Error; err != nil {
				return fmt.Errorf("seed specialty %s: %w", name, err)
			}
			specialties = append(specialties, s)
		}

		var firstOffice models.Office
		for i, o := range demoOffices {
			office := models.Office{Name: o.name, Lifecycle: models.Lifecycle{Active: o.active}}
			if err := tx.Where("name = ?", o.name).FirstOrCreate(&office).Error; err != nil {
				return fmt.Errorf("seed office %s: %w", o.name, err)
			}
			if i == 0 {
				firstOffice = office
			}
		}

		// --------------------------------------------------
		// 2. Cobertura y obra social
		// --------------------------------------------------
		coverage := models.Coverage{Name: "Plan 210"}
		if err := tx.Where("name = ?", coverage.Name).FirstOrCreate(&coverage).Error; err != nil {
			return fmt.Errorf("seed coverage: %w", err)
		}

		insurer := models.Insurer{
			Code:       "OSDE",
			Name:       "OSDE",
			Phone:      "0810-555-6733",
			Email:      "contacto@osde.com.ar",
			CoverageID: &coverage.ID,
			Lifecycle:  models.Lifecycle{Active: true},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&insurer).Error; err != nil {
			return fmt.Errorf("seed insurer: %w", err)
		}

		// --------------------------------------------------
		// 3. Doctor y paciente de demo
		// --------------------------------------------------
		doctor := models.Doctor{
			FirstName:     "Juan",
			LastName:      "Pérez",
			Phone:         "11-5555-0001",
			Email:         "juan.perez@turnera.com",
			LicenseNumber: "MN-10001",
			Specialties:   specialties[:1],
			Lifecycle:     models.Lifecycle{Active: true},
		}
		if err := tx.Where("license_number = ?", doctor.LicenseNumber).FirstOrCreate(&doctor).Error; err != nil {
			return fmt.Errorf("seed doctor: %w", err)
		}

		birth := time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC)
		insurerCode := insurer.Code
		patient := models.Patient{
			DNI:          DemoPatientDNI,
			FirstName:    "Carlos",
			LastName:     "López",
			BirthDate:    &birth,
			Address:      "Av. Corrientes 1234",
			Phone:        "11-5555-0002",
			Email:        "carlos.lopez@turnera.com",
			InsurerCode:  &insurerCode,
			MemberNumber: "123456789",
			CoverageID:   &coverage.ID,
			Lifecycle:    models.Lifecycle{Active: true},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&patient).Error; err != nil {
			return fmt.Errorf("seed patient: %w", err)
		}

		schedule := models.Schedule{
			DoctorID:    doctor.ID,
			OfficeID:    firstOffice.ID,
			Weekday:     "lunes",
			StartTime:   "09:00",
			EndTime:     "13:00",
			SlotMinutes: 30,
		}
		if err := tx.
			Where("doctor_id = ? AND office_id = ? AND weekday = ?", schedule.DoctorID, schedule.OfficeID, schedule.Weekday).
			FirstOrCreate(&schedule).Error; err != nil {
			return fmt.Errorf("seed schedule: %w", err)
		}

		// --------------------------------------------------
		// 4. Usuarios de demo
		// --------------------------------------------------
		cost := opts.BcryptCost
		if cost < bcrypt.DefaultCost {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
		if err != nil {
			return err
		}

		users := []models.User{
			{Email: "admin@turnera.com", Name: "Admin Sistema", Role: string(access.RoleAdmin)},
			{Email: "doctor@turnera.com", Name: "Dr. Juan Pérez", Role: string(access.RoleDoctor), Reference: strconv.FormatUint(uint64(doctor.ID), 10)},
			{Email: "secretaria@turnera.com", Name: "María González", Role: string(access.RoleSecretaria)},
			{Email: "paciente@turnera.com", Name: "Carlos López", Role: string(access.RolePaciente), Reference: DemoPatientDNI},
		}
		for _, u := range users {
			u.PasswordHash = string(hash)
			u.Active = true
			if err := tx.Where("email = ?", u.Email).FirstOrCreate(&u).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
		}

		// --------------------------------------------------
		// 5. Pacientes falsos
		// --------------------------------------------------
		if opts.FakePatients > 0 {
			if err := seedFakePatients(tx, opts.FakePatients, insurer.Code); err != nil {
				return err
			}
		}

		log.Info().
			Int("specialties", len(specialties)).
			Int("offices", len(demoOffices)).
			Int("users", len(users)).
			Int("fake_patients", opts.FakePatients).
			Msg("seed complete")

		return nil
	})
}

func seedFakePatients(tx *gorm.DB, count int, insurerCode string) error {
	const batchSize = 500

	faker := gofakeit.New(time.Now().UnixNano())

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		batch := make([]models.Patient, 0, end-offset)
		for i := offset; i < end; i++ {
			birth := faker.DateRange(
				time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
			)
			birth = time.Date(birth.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
			code := insurerCode

			batch = append(batch, models.Patient{
				DNI:          strconv.Itoa(faker.Number(20000000, 49999999)),
				FirstName:    faker.FirstName(),
				LastName:     faker.LastName(),
				BirthDate:    &birth,
				Address:      faker.Street(),
				Phone:        faker.Phone(),
				Email:        faker.Email(),
				InsurerCode:  &code,
				MemberNumber: faker.DigitN(9),
				Lifecycle:    models.Lifecycle{Active: true},
			})
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&batch).Error; err != nil {
			return fmt.Errorf("seed fake patients: %w", err)
		}

		log.Info().Int("done", end).Int("total", count).Msg("fake patients seeded")
	}

	return nil
}
