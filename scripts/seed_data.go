package main

import (
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"farhanmaulana/hire-screener/internal/config"
	"farhanmaulana/hire-screener/internal/models"
)

// Seeds candidate profiles, jobs, applications, and the default score weights
// for local development. Safe to run more than once.
func main() {
	log.Println("🚀 Starting data seed...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	seedSettings(db)
	profiles := seedProfiles(db)
	jobs := seedJobs(db)
	seedApplications(db, profiles, jobs)

	log.Println("✅ Seed completed successfully")
}

func seedSettings(db *gorm.DB) {
	settings := []models.SystemSetting{
		{Key: "resume_weight", Value: "40"},
		{Key: "interview_weight", Value: "60"},
	}

	for _, s := range settings {
		if err := db.Where(models.SystemSetting{Key: s.Key}).FirstOrCreate(&s).Error; err != nil {
			log.Printf("⚠️  Failed to seed setting %s: %v", s.Key, err)
		}
	}
	log.Println("✅ Settings seeded")
}

func seedProfiles(db *gorm.DB) []models.Profile {
	profiles := []models.Profile{
		{
			Name:         "Alice Johnson",
			Email:        "alice.johnson@example.com",
			Title:        "Senior React Developer",
			Experience:   "5 years",
			ResumeSkills: pq.StringArray{"React", "TypeScript", "Node.js", "GraphQL", "AWS"},
		},
		{
			Name:         "Bob Smith",
			Email:        "bob.smith@example.com",
			Title:        "Full Stack Engineer",
			Experience:   "3 years",
			ResumeSkills: pq.StringArray{"JavaScript", "Python", "Django", "PostgreSQL", "Docker"},
		},
		{
			Name:         "Carol Williams",
			Email:        "carol.williams@example.com",
			Title:        "UI/UX Designer",
			Experience:   "4 years",
			ResumeSkills: pq.StringArray{"Figma", "UI Design", "UX Research", "Prototyping", "CSS"},
		},
		{
			Name:         "David Brown",
			Email:        "david.brown@example.com",
			Title:        "Network Engineer",
			Experience:   "6 years",
			ResumeSkills: pq.StringArray{"Network Security", "Routing", "TCP/IP", "Firewall", "CCNA"},
		},
		{
			Name:         "Eve Davis",
			Email:        "eve.davis@example.com",
			Title:        "Data Scientist",
			Experience:   "4 years",
			ResumeSkills: pq.StringArray{"Python", "Machine Learning", "TensorFlow", "SQL", "Statistics"},
		},
	}

	for i := range profiles {
		if err := db.Where(models.Profile{Email: profiles[i].Email}).
			Attrs(profiles[i]).
			FirstOrCreate(&profiles[i]).Error; err != nil {
			log.Printf("⚠️  Failed to seed profile %s: %v", profiles[i].Email, err)
		}
	}

	log.Printf("✅ %d profiles seeded", len(profiles))
	return profiles
}

func seedJobs(db *gorm.DB) []models.Job {
	jobs := []models.Job{
		{
			Title:           "Senior React Developer",
			Description:     "Build modern web apps using React and TypeScript",
			Skills:          pq.StringArray{"React", "TypeScript", "Node.js", "REST API"},
			ExperienceLevel: models.LevelSenior,
		},
		{
			Title:           "Full Stack Engineer",
			Description:     "Work on frontend and backend systems",
			Skills:          pq.StringArray{"JavaScript", "Python", "PostgreSQL", "Docker"},
			ExperienceLevel: models.LevelMid,
		},
		{
			Title:           "UI/UX Designer",
			Description:     "Design intuitive user interfaces for web and mobile apps",
			Skills:          pq.StringArray{"Figma", "UI Design", "UX Research", "Prototyping"},
			ExperienceLevel: models.LevelMid,
		},
		{
			Title:           "Data Scientist",
			Description:     "Analyze large datasets and build ML models",
			Skills:          pq.StringArray{"Python", "Machine Learning", "TensorFlow", "SQL"},
			ExperienceLevel: models.LevelSenior,
		},
		{
			Title:           "QA Engineer",
			Description:     "Ensure software quality through testing",
			Skills:          pq.StringArray{"Selenium", "Jest", "Cypress", "API Testing"},
			ExperienceLevel: models.LevelJunior,
		},
	}

	for i := range jobs {
		if err := db.Where(models.Job{Title: jobs[i].Title}).
			Attrs(jobs[i]).
			FirstOrCreate(&jobs[i]).Error; err != nil {
			log.Printf("⚠️  Failed to seed job %s: %v", jobs[i].Title, err)
		}
	}

	log.Printf("✅ %d jobs seeded", len(jobs))
	return jobs
}

func seedApplications(db *gorm.DB, profiles []models.Profile, jobs []models.Job) {
	if len(profiles) == 0 || len(jobs) == 0 {
		log.Println("⚠️  No profiles or jobs, skipping applications")
		return
	}

	count := 0
	for i, profile := range profiles {
		job := jobs[i%len(jobs)]

		app := models.Application{
			JobID:       job.ID,
			CandidateID: profile.ID,
			Status:      models.ApplicationPending,
		}

		if err := db.Where(models.Application{JobID: job.ID, CandidateID: profile.ID}).
			Attrs(app).
			FirstOrCreate(&app).Error; err != nil {
			log.Printf("⚠️  Failed to seed application for %s: %v", profile.Email, err)
			continue
		}
		count++
	}

	log.Printf("✅ %d applications seeded", count)
}
