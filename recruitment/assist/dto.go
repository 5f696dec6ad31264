package assist

import "github.com/Abraxas-365/hireboard/pkg/kernel"

// JobMatchesRequest asks for the jobs closest to the signed-in job seeker
type JobMatchesRequest struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

// AnalyzeResumeRequest asks for feedback on a resume, the uploaded one when
// ResumeURL is empty
type AnalyzeResumeRequest struct {
	ResumeURL kernel.FileURL `json:"resume_url,omitempty" validate:"omitempty,url"`
	JobID     kernel.JobID   `json:"job_id,omitempty"`
}

// InterviewQuestionsRequest asks for practice questions for a job
type InterviewQuestionsRequest struct {
	JobID kernel.JobID `json:"job_id" validate:"required"`
	Count int          `json:"count,omitempty" validate:"omitempty,min=1,max=20"`
}

// EvaluateAnswerRequest asks for feedback on an answer to a question
type EvaluateAnswerRequest struct {
	Question string       `json:"question" validate:"required,max=1000"`
	Answer   string       `json:"answer" validate:"required,max=5000"`
	JobID    kernel.JobID `json:"job_id,omitempty"`
}
