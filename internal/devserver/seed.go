package devserver

import (
	"fmt"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/application"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/Abraxas-365/hireboard/recruitment/job"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
)

// Demo accounts created by Seed
const (
	DemoPassword      = "password123"
	DemoSeekerEmail   = "seeker@hireboard.dev"
	DemoEmployerEmail = "employer@hireboard.dev"
	SeedJobCount      = 25
)

var seedTitles = []struct {
	title  string
	skills []string
	level  kernel.ExperienceLevel
}{
	{"Backend Engineer", []string{"Go", "PostgreSQL", "Docker"}, kernel.ExperienceMid},
	{"Frontend Developer", []string{"TypeScript", "React", "CSS"}, kernel.ExperienceMid},
	{"Site Reliability Engineer", []string{"Kubernetes", "Go", "Terraform"}, kernel.ExperienceSenior},
	{"Data Engineer", []string{"Python", "SQL", "Airflow"}, kernel.ExperienceMid},
	{"Mobile Developer", []string{"Kotlin", "Swift"}, kernel.ExperienceEntry},
	{"Engineering Manager", []string{"Leadership", "Go", "Hiring"}, kernel.ExperienceLead},
	{"QA Engineer", []string{"Testing", "Cypress"}, kernel.ExperienceEntry},
}

var seedLocations = []string{"Lima", "Madrid", "Berlin", "New York", "Remote"}

var seedTypes = []kernel.EmploymentType{
	kernel.EmploymentFullTime,
	kernel.EmploymentFullTime,
	kernel.EmploymentContract,
	kernel.EmploymentPartTime,
	kernel.EmploymentInternship,
}

// Seed fills the store with two demo accounts, SeedJobCount open jobs, one
// application and a few notifications
func Seed(s *Store) error {
	employerUser, err := s.CreateAccount(auth.RegisterRequest{
		Email:       DemoEmployerEmail,
		Password:    DemoPassword,
		FirstName:   "Erin",
		LastName:    "Employer",
		Role:        kernel.RoleEmployer,
		CompanyName: "Acme Labs",
	})
	if err != nil {
		return fmt.Errorf("seed employer: %w", err)
	}
	seekerUser, err := s.CreateAccount(auth.RegisterRequest{
		Email:     DemoSeekerEmail,
		Password:  DemoPassword,
		FirstName: "Sam",
		LastName:  "Seeker",
		Role:      kernel.RoleJobSeeker,
	})
	if err != nil {
		return fmt.Errorf("seed seeker: %w", err)
	}

	for _, sk := range []seeker.SkillRequest{
		{Name: "Go", Level: seeker.SkillAdvanced},
		{Name: "PostgreSQL", Level: seeker.SkillIntermediate},
		{Name: "Docker", Level: seeker.SkillIntermediate},
	} {
		if _, err := s.AddSkill(seekerUser.ID, sk); err != nil {
			return fmt.Errorf("seed skill: %w", err)
		}
	}

	var first *job.Job
	for i := range SeedJobCount {
		t := seedTitles[i%len(seedTitles)]
		location := seedLocations[i%len(seedLocations)]
		minSalary := float64(40000 + 5000*(i%8))
		maxSalary := minSalary + 30000

		j, err := s.CreateJob(employerUser, job.CreateJobRequest{
			Title:           kernel.JobTitle(fmt.Sprintf("%s #%d", t.title, i+1)),
			Description:     kernel.JobDescription("Join Acme Labs as a " + t.title + "."),
			Location:        location,
			EmploymentType:  seedTypes[i%len(seedTypes)],
			ExperienceLevel: t.level,
			SalaryMin:       &minSalary,
			SalaryMax:       &maxSalary,
			IsRemote:        location == "Remote",
			Requirements:    []kernel.JobRequirement{"Good communication", "2+ years of experience"},
			Benefits:        []kernel.JobBenefit{"Health insurance", "Learning budget"},
			Skills:          t.skills,
		})
		if err != nil {
			return fmt.Errorf("seed job %d: %w", i, err)
		}
		if first == nil {
			first = j
		}
	}

	if _, err := s.Submit(seekerUser, application.SubmitApplicationRequest{
		JobID:       first.ID,
		CoverLetter: "I would love to work on your backend.",
	}); err != nil {
		return fmt.Errorf("seed application: %w", err)
	}

	s.Notify(seekerUser.ID, notification.TypeSystem, "Welcome to Hireboard", "Complete your profile to get better recommendations.")
	s.Notify(seekerUser.ID, notification.TypeJobMatch, "New jobs for you", "Several new Go jobs match your skills.")
	return nil
}
