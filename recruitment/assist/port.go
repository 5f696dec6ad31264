package assist

import "context"

// Gateway is the AI assist API. Each call posts req as JSON and returns the
// response body untouched.
type Gateway interface {
	JobMatches(ctx context.Context, req any) (Result, error)
	AnalyzeResume(ctx context.Context, req any) (Result, error)
	GenerateInterviewQuestions(ctx context.Context, req any) (Result, error)
	EvaluateAnswer(ctx context.Context, req any) (Result, error)
}
