package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Abraxas-365/hireboard/internal/ai/embeddings"
	"github.com/Abraxas-365/hireboard/internal/ai/resumeparser"
	"github.com/Abraxas-365/hireboard/internal/pdf"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const maxResumePages = 10

// OpenAI answers with GPT-4o and text-embedding-3-small
type OpenAI struct {
	client  *openai.Client
	embed   *embeddings.Generator
	resumes *resumeparser.Parser
}

var _ Engine = (*OpenAI)(nil)

// NewOpenAI creates the engine. opts are appended to every client, e.g.
// option.WithBaseURL for a compatible gateway.
func NewOpenAI(apiKey string, opts ...option.RequestOption) *OpenAI {
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAI{
		client:  &client,
		embed:   embeddings.NewGenerator(apiKey, opts...),
		resumes: resumeparser.NewParser(apiKey, opts...),
	}
}

// MatchJobs ranks jobs by embedding similarity with the candidate
func (o *OpenAI) MatchJobs(ctx context.Context, c Candidate, jobs []JobDoc, limit int) ([]Match, error) {
	limit = clampCount(limit, 5, 50)
	if len(jobs) == 0 {
		return []Match{}, nil
	}
	docs := make([]string, len(jobs))
	for i, j := range jobs {
		docs[i] = j.Text()
	}
	ranked, err := o.embed.Rank(ctx, c.Text(), docs)
	if err != nil {
		return nil, err
	}

	out := make([]Match, 0, limit)
	for _, r := range ranked[:min(limit, len(ranked))] {
		j := jobs[r.Index]
		out = append(out, Match{
			JobID:         j.ID,
			Title:         j.Title,
			Company:       j.Company,
			Score:         math.Round(r.Score*100) / 100,
			MatchedSkills: overlap(j.Skills, c.Skills),
		})
	}
	return out, nil
}

// AnalyzeResume parses the resume with vision and compares it with the job
func (o *OpenAI) AnalyzeResume(ctx context.Context, doc Document, job *JobDoc) (*Analysis, error) {
	var pages [][]byte
	var err error
	switch doc.ContentType {
	case "application/pdf":
		pages, err = pdf.RenderPages(doc.Data, maxResumePages)
	default:
		var page []byte
		page, err = pdf.ToJPEG(doc.Data)
		pages = [][]byte{page}
	}
	if err != nil {
		return nil, err
	}

	data, err := o.resumes.ParsePages(ctx, pages)
	if err != nil {
		return nil, err
	}
	logx.Debugf("ai: parsed resume %s, %d skills", doc.Name, len(data.Skills))

	a := &Analysis{
		Pages:       len(pages),
		Skills:      data.Skills,
		Summary:     data.Summary,
		Suggestions: []string{},
	}
	if job == nil {
		return a, nil
	}

	text := data.FormatForMatching()
	a.MatchedSkills, a.MissingSkills = splitSkills(text, job.Skills)
	ranked, err := o.embed.Rank(ctx, job.Text(), []string{text})
	if err != nil {
		return nil, err
	}
	a.Score = math.Round(ranked[0].Score*100) / 100
	for _, s := range a.MissingSkills {
		a.Suggestions = append(a.Suggestions, "Mention your experience with "+s+" if you have it.")
	}
	return a, nil
}

// InterviewQuestions asks the model for questions tailored to the job
func (o *OpenAI) InterviewQuestions(ctx context.Context, job JobDoc, count int) ([]Question, error) {
	count = clampCount(count, 5, 20)
	var resp struct {
		Questions []Question `json:"questions"`
	}
	prompt := fmt.Sprintf(`Write %d interview questions for this job. Return JSON {"questions": [{"question": string, "category": "technical"|"behavioral"|"situational", "skill": string}]}.

%s`, count, job.Text())
	if err := o.chatJSON(ctx, "You are an experienced technical recruiter.", prompt, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// EvaluateAnswer asks the model to grade an interview answer
func (o *OpenAI) EvaluateAnswer(ctx context.Context, question, answer string, job *JobDoc) (*Evaluation, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\nAnswer: %s\n", question, answer)
	if job != nil {
		fmt.Fprintf(&b, "\nJob:\n%s\n", job.Text())
	}
	b.WriteString(`
Grade the answer. Return JSON {"score": 1-10, "strengths": string[], "improvements": string[], "feedback": string}.`)

	var e Evaluation
	if err := o.chatJSON(ctx, "You are an interviewer giving candid, constructive feedback.", b.String(), &e); err != nil {
		return nil, err
	}
	e.Score = max(1, min(e.Score, 10))
	return &e, nil
}

func (o *OpenAI) chatJSON(ctx context.Context, system, user string, out any) error {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model: openai.ChatModelGPT4o,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.4),
		MaxTokens:   openai.Int(1500),
	})
	if err != nil {
		return fmt.Errorf("openai chat error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return errors.New("no response from openai")
	}
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("failed to parse completion JSON: %w", err)
	}
	return nil
}
