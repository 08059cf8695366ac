package main

import (
	"context"
	"log"
	"time"

	"dancehub/internal/database"
	"dancehub/internal/domain"
	"dancehub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("dancehub.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM tickets")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM memberships")
	db.Exec("DELETE FROM courses")
	db.Exec("DELETE FROM instructors")
	db.Exec("DELETE FROM schools")
	db.Exec("DELETE FROM identities")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	users := repository.NewUserRepository(db)
	identities := repository.NewIdentityRepository(db)
	schools := repository.NewSchoolRepository(db)
	instructors := repository.NewInstructorRepository(db)
	courses := repository.NewCourseRepository(db)
	bookings := repository.NewBookingRepository(db)
	tickets := repository.NewTicketRepository(db)

	log.Println("Creating users...")

	schoolUser := mustUser(ctx, users, identities, &domain.User{
		DisplayName: "Tango Esquina",
		Email:       "okul@dancehub.app",
		Roles:       []domain.Role{domain.RoleSchool},
	}, "okul1234")

	instructorUser := mustUser(ctx, users, identities, &domain.User{
		DisplayName: "Deniz Kaya",
		Email:       "deniz@dancehub.app",
		Roles:       []domain.Role{domain.RoleInstructor},
		Level:       domain.LevelProfessional,
	}, "deniz1234")

	studentUser := mustUser(ctx, users, identities, &domain.User{
		DisplayName: "Ayşe Demir",
		Email:       "ayse@dancehub.app",
		Roles:       []domain.Role{domain.RoleStudent},
		Level:       domain.LevelBeginner,
	}, "ayse1234")

	log.Println("Creating tenants and courses...")

	school := &domain.School{
		UserID:      schoolUser.ID,
		DisplayName: schoolUser.DisplayName,
		Email:       schoolUser.Email,
		Address:     "Kadıköy, İstanbul",
		IBAN:        "TR33 0006 1005 1978 6457 8413 26",
	}
	if err := schools.Create(ctx, school); err != nil {
		log.Fatal(err)
	}

	instructor := &domain.Instructor{
		UserID:      instructorUser.ID,
		DisplayName: instructorUser.DisplayName,
		Email:       instructorUser.Email,
		Specialties: []string{"tango", "salsa"},
		Bio:         "15 yıllık tango eğitmeni",
	}
	if err := instructors.Create(ctx, instructor); err != nil {
		log.Fatal(err)
	}

	courseA := &domain.Course{
		Name:         "Tango Başlangıç",
		SchoolID:     school.ID,
		InstructorID: instructor.ID,
		Schedule: []domain.ScheduleSlot{
			{Day: "Tuesday", Time: "19:00"},
			{Day: "Thursday", Time: "19:00"},
		},
	}
	courseB := &domain.Course{
		Name:         "Salsa Orta Seviye",
		SchoolID:     school.ID,
		InstructorID: instructor.ID,
		Schedule:     []domain.ScheduleSlot{{Day: "Saturday", Time: "14:00"}},
	}
	for _, c := range []*domain.Course{courseA, courseB} {
		if err := courses.Create(ctx, c); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating transactions...")

	now := time.Now()
	seedBookings := []domain.Booking{
		{CourseID: courseA.ID, StudentName: studentUser.DisplayName, Price: "1.250,00 TL", PaymentStatus: domain.PaymentPaid, PayoutStatus: domain.PayoutPaid, CreatedAt: now.AddDate(0, 0, -3)},
		{CourseID: courseA.ID, StudentName: "Mehmet Öz", Price: "1.250,00 TL", PaymentStatus: domain.PaymentPaid, PayoutStatus: domain.PayoutPending, CreatedAt: now.AddDate(0, 0, -10)},
		{CourseID: courseB.ID, StudentName: "Elif Can", Price: "950 TL", PaymentStatus: domain.PaymentUnpaid, PayoutStatus: domain.PayoutPending, CreatedAt: now.AddDate(0, -1, 0)},
	}
	for i := range seedBookings {
		if err := bookings.Create(ctx, &seedBookings[i]); err != nil {
			log.Fatal(err)
		}
	}

	seedTickets := []domain.Ticket{
		{SellerID: school.ID, DiscountedPrice: "400 TL", FestivalName: "İstanbul Dans Festivali", Status: domain.TicketStatusActive, CreatedAt: now.AddDate(0, 0, -1)},
		{SellerID: school.ID, DiscountedPrice: "400 TL", FestivalName: "İstanbul Dans Festivali", Status: "iptal", CreatedAt: now.AddDate(0, 0, -2)},
	}
	for i := range seedTickets {
		if err := tickets.Create(ctx, &seedTickets[i]); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed complete.")
	log.Printf("school user: okul@dancehub.app / okul1234 (school id %d)", school.ID)
	log.Printf("instructor:  deniz@dancehub.app / deniz1234")
	log.Printf("student:     ayse@dancehub.app / ayse1234")
}

func mustUser(ctx context.Context, users *repository.UserRepository, identities *repository.IdentityRepository, u *domain.User, password string) *domain.User {
	if err := users.Create(ctx, u); err != nil {
		log.Fatal(err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	ident := &domain.Identity{
		UserID:       u.ID,
		Email:        u.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := identities.Create(ctx, ident); err != nil {
		log.Fatal(err)
	}
	return u
}
