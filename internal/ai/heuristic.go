package ai

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Abraxas-365/hireboard/internal/pdf"
)

// Heuristic is the offline engine: keyword and skill overlap only
type Heuristic struct{}

var _ Engine = Heuristic{}

// MatchJobs ranks jobs by the share of their skills the candidate has
func (Heuristic) MatchJobs(_ context.Context, c Candidate, jobs []JobDoc, limit int) ([]Match, error) {
	limit = clampCount(limit, 5, 50)
	out := make([]Match, 0, len(jobs))
	for _, j := range jobs {
		matched := overlap(j.Skills, c.Skills)
		out = append(out, Match{
			JobID:         j.ID,
			Title:         j.Title,
			Company:       j.Company,
			Score:         math.Round(ratio(len(matched), len(j.Skills))*100) / 100,
			MatchedSkills: matched,
		})
	}
	slices.SortStableFunc(out, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return out[:min(limit, len(out))], nil
}

// AnalyzeResume reads the PDF text layer and looks for the job's skills in it
func (Heuristic) AnalyzeResume(_ context.Context, doc Document, job *JobDoc) (*Analysis, error) {
	a := &Analysis{Skills: []string{}, Suggestions: []string{}}

	var text string
	if doc.ContentType == "application/pdf" {
		info, err := pdf.Inspect(doc.Data)
		if err != nil {
			return nil, err
		}
		a.Pages = info.Pages
		if text, err = pdf.ExtractText(doc.Data); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(text) == "" {
		a.Summary = "No text could be read from the resume."
		a.Suggestions = append(a.Suggestions, "Upload a text based PDF so the content can be read.")
		return a, nil
	}

	words := len(strings.Fields(text))
	a.Summary = fmt.Sprintf("Resume with %d words over %d page(s).", words, max(a.Pages, 1))
	if words < 150 {
		a.Suggestions = append(a.Suggestions, "Add more detail about your experience and achievements.")
	}
	if a.Pages > 2 {
		a.Suggestions = append(a.Suggestions, "Keep the resume to two pages.")
	}

	if job != nil {
		a.MatchedSkills, a.MissingSkills = splitSkills(text, job.Skills)
		a.Skills = append(a.Skills, a.MatchedSkills...)
		a.Score = math.Round(ratio(len(a.MatchedSkills), len(job.Skills))*100) / 100
		for _, s := range a.MissingSkills {
			a.Suggestions = append(a.Suggestions, "Mention your experience with "+s+" if you have it.")
		}
	}
	return a, nil
}

var questionTemplates = []Question{
	{Category: "technical", Question: "Walk us through a project where you used %s. What would you do differently?"},
	{Category: "technical", Question: "How do you keep your %s skills current?"},
	{Category: "behavioral", Question: "Tell us about a time you disagreed with a teammate on a %s decision."},
}

var genericQuestions = []Question{
	{Category: "behavioral", Question: "Why are you interested in the %s role?"},
	{Category: "behavioral", Question: "Describe the most difficult problem you solved in your last position."},
	{Category: "situational", Question: "How would you plan your first 90 days as %s?"},
}

// InterviewQuestions fills templates with the job's skills and title
func (Heuristic) InterviewQuestions(_ context.Context, job JobDoc, count int) ([]Question, error) {
	count = clampCount(count, 5, 20)
	var out []Question
	for i := 0; len(out) < count; i++ {
		if i < len(job.Skills)*len(questionTemplates) {
			skill := job.Skills[i/len(questionTemplates)]
			q := questionTemplates[i%len(questionTemplates)]
			out = append(out, Question{Category: q.Category, Skill: skill, Question: fmt.Sprintf(q.Question, skill)})
			continue
		}
		q := genericQuestions[i%len(genericQuestions)]
		text := q.Question
		if strings.Contains(text, "%s") {
			text = fmt.Sprintf(text, job.Title)
		}
		out = append(out, Question{Category: q.Category, Question: text})
	}
	return out, nil
}

// EvaluateAnswer scores length, structure and coverage of the job's skills
func (Heuristic) EvaluateAnswer(_ context.Context, question, answer string, job *JobDoc) (*Evaluation, error) {
	e := &Evaluation{Strengths: []string{}, Improvements: []string{}}
	words := len(strings.Fields(answer))

	score := 2
	switch {
	case words >= 120:
		score += 4
		e.Strengths = append(e.Strengths, "Detailed answer")
	case words >= 50:
		score += 3
	case words >= 15:
		score += 1
		e.Improvements = append(e.Improvements, "Give more detail and a concrete example")
	default:
		e.Improvements = append(e.Improvements, "The answer is too short to evaluate")
	}

	lower := strings.ToLower(answer)
	if strings.Contains(lower, "for example") || strings.Contains(lower, "when i") || strings.Contains(lower, "result") {
		score += 2
		e.Strengths = append(e.Strengths, "Uses a concrete example")
	} else {
		e.Improvements = append(e.Improvements, "Structure the answer as situation, action and result")
	}

	if job != nil {
		matched, _ := splitSkills(answer, job.Skills)
		if len(matched) > 0 {
			score += min(2, len(matched))
			e.Strengths = append(e.Strengths, "Relates the answer to "+strings.Join(matched, ", "))
		}
	}

	e.Score = min(score, 10)
	e.Feedback = fmt.Sprintf("Scored %d/10 for %q.", e.Score, question)
	return e, nil
}
