// Package ai answers the assistant endpoints of the development backend,
// either with OpenAI or with a deterministic keyword heuristic.
package ai

import (
	"context"
	"slices"
	"strings"
)

// JobDoc is the part of a job the assistant reasons about
type JobDoc struct {
	ID          string
	Title       string
	Company     string
	Description string
	Level       string
	Skills      []string
}

// Text renders the job for embeddings and prompts
func (j JobDoc) Text() string {
	return j.Title + " at " + j.Company + " (" + j.Level + ")\nSkills: " +
		strings.Join(j.Skills, ", ") + "\n" + j.Description
}

// Candidate is the seeker profile the assistant matches against jobs
type Candidate struct {
	Name     string
	Headline string
	Summary  string
	Skills   []string
}

// Text renders the candidate for embeddings and prompts
func (c Candidate) Text() string {
	return c.Name + " - " + c.Headline + "\nSkills: " + strings.Join(c.Skills, ", ") + "\n" + c.Summary
}

// Document is an uploaded resume
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Match is a job ranked for a candidate
type Match struct {
	JobID         string   `json:"job_id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
}

// Analysis is the assessment of a resume, against a job when one is given
type Analysis struct {
	Pages         int      `json:"pages,omitempty"`
	Skills        []string `json:"skills"`
	MatchedSkills []string `json:"matched_skills,omitempty"`
	MissingSkills []string `json:"missing_skills,omitempty"`
	Score         float64  `json:"score"`
	Summary       string   `json:"summary"`
	Suggestions   []string `json:"suggestions"`
}

// Question is a generated interview question
type Question struct {
	Question string `json:"question"`
	Category string `json:"category"`
	Skill    string `json:"skill,omitempty"`
}

// Evaluation grades an interview answer from 1 to 10
type Evaluation struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Feedback     string   `json:"feedback"`
}

// Engine answers the four assistant operations
type Engine interface {
	MatchJobs(ctx context.Context, c Candidate, jobs []JobDoc, limit int) ([]Match, error)
	AnalyzeResume(ctx context.Context, doc Document, job *JobDoc) (*Analysis, error)
	InterviewQuestions(ctx context.Context, job JobDoc, count int) ([]Question, error)
	EvaluateAnswer(ctx context.Context, question, answer string, job *JobDoc) (*Evaluation, error)
}

// splitSkills partitions wanted into those mentioned in text and the rest
func splitSkills(text string, wanted []string) (matched, missing []string) {
	lower := strings.ToLower(text)
	for _, s := range wanted {
		if s == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(s)) {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

func overlap(a, b []string) []string {
	var out []string
	for _, x := range a {
		if slices.ContainsFunc(b, func(y string) bool { return strings.EqualFold(x, y) }) {
			out = append(out, x)
		}
	}
	return out
}

func ratio(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of)
}

func clampCount(n, def, max int) int {
	if n <= 0 {
		return def
	}
	return min(n, max)
}
