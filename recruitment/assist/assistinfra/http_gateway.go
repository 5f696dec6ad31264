package assistinfra

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/recruitment/assist"
)

const basePath = "/api/ai"

// HTTPGateway implements assist.Gateway over the REST API
type HTTPGateway struct {
	client *httpx.Client
}

// NewHTTPGateway creates a new assist gateway
func NewHTTPGateway(client *httpx.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

var _ assist.Gateway = (*HTTPGateway)(nil)

// JobMatches - POST /api/ai/job-matches
func (g *HTTPGateway) JobMatches(ctx context.Context, req any) (assist.Result, error) {
	return g.call(ctx, assist.OpJobMatches, req)
}

// AnalyzeResume - POST /api/ai/analyze-resume
func (g *HTTPGateway) AnalyzeResume(ctx context.Context, req any) (assist.Result, error) {
	return g.call(ctx, assist.OpAnalyzeResume, req)
}

// GenerateInterviewQuestions - POST /api/ai/interview-questions
func (g *HTTPGateway) GenerateInterviewQuestions(ctx context.Context, req any) (assist.Result, error) {
	return g.call(ctx, assist.OpInterviewQuestions, req)
}

// EvaluateAnswer - POST /api/ai/evaluate-answer
func (g *HTTPGateway) EvaluateAnswer(ctx context.Context, req any) (assist.Result, error) {
	return g.call(ctx, assist.OpEvaluateAnswer, req)
}

func (g *HTTPGateway) call(ctx context.Context, op assist.Operation, req any) (assist.Result, error) {
	if req == nil {
		req = struct{}{}
	}
	var resp assist.Result
	if err := g.client.Post(ctx, basePath+"/"+string(op), req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
