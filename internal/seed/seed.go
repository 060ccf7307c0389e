package seed

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"medispa-app-server/internal/models"
)

// Run populates a fresh database with demo users and a day of bookings so
// the scheduler has something to draw. No-op when users already exist.
func Run(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("seed skipped, database already populated")
		return nil
	}

	admin := models.User{
		Email: "admin@radiance-spa.test", FirstName: "Dana", LastName: "Whitfield",
		Role: models.RoleAdmin,
	}
	providers := []models.User{
		{Email: "s.hart@radiance-spa.test", FirstName: "Simone", LastName: "Hart",
			Role: models.RoleProvider, Specialties: "laser,facial"},
		{Email: "j.okafor@radiance-spa.test", FirstName: "Jide", LastName: "Okafor",
			Role: models.RoleProvider, Specialties: "injectables,consultation"},
	}
	patients := []models.User{
		{Email: "alice@example.test", FirstName: "Alice", LastName: "Nguyen",
			Role: models.RolePatient, Condition: "rosacea"},
		{Email: "bob@example.test", FirstName: "Bob", LastName: "Marsh",
			Role: models.RolePatient, Condition: "acne scarring"},
		{Email: "carol@example.test", FirstName: "Carol", LastName: "Iversen",
			Role: models.RolePatient},
	}

	users := append([]models.User{admin}, append(providers, patients...)...)
	for i := range users {
		if err := users[i].SetPassword("changeme123"); err != nil {
			return err
		}
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	// A morning with overlapping bookings, to exercise the overlap packer
	day := time.Now().AddDate(0, 0, 1)
	at := func(hour, min int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
	}
	appointments := []models.Appointment{
		{PatientID: users[3].ID, ProviderID: users[1].ID,
			StartTime: at(9, 0), EndTime: at(9, 30), Type: models.TypeTherapy},
		{PatientID: users[4].ID, ProviderID: users[1].ID,
			StartTime: at(9, 15), EndTime: at(9, 45), Type: models.TypeConsultation},
		{PatientID: users[5].ID, ProviderID: users[2].ID,
			StartTime: at(10, 0), EndTime: at(11, 0), Type: models.TypeFollowUp},
	}
	for i := range appointments {
		appointments[i].Status = models.StatusScheduled
		if err := db.Create(&appointments[i]).Error; err != nil {
			return err
		}
	}

	log.Info("demo data seeded",
		zap.Int("users", len(users)), zap.Int("appointments", len(appointments)))
	return nil
}
