package resumeparser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// Parser extracts structured data from resumes with the OpenAI chat API
type Parser struct {
	client *openai.Client
}

// NewParser creates a parser
func NewParser(apiKey string, opts ...option.RequestOption) *Parser {
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &Parser{client: &client}
}

// ResumeData represents structured resume information
type ResumeData struct {
	PersonalInfo   PersonalInfo `json:"personal_info"`
	Summary        string       `json:"summary"`
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Languages      []string     `json:"languages,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type Experience struct {
	Company          string   `json:"company"`
	Title            string   `json:"title"`
	StartDate        string   `json:"start_date"` // YYYY-MM
	EndDate          string   `json:"end_date"`   // YYYY-MM or "Present"
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduation_date"` // YYYY-MM
}

const systemPrompt = `You are a professional resume parser. Extract ALL information from the resume and return ONLY valid JSON.`

const schemaPrompt = `Return the resume in the following JSON structure:

{
  "personal_info": {"name": string, "email": string, "phone": string, "location": string, "linkedin": string},
  "summary": string (max 250 words),
  "skills": string[],
  "experience": [{"company": string, "title": string, "start_date": "YYYY-MM", "end_date": "YYYY-MM" or "Present", "responsibilities": string[]}],
  "education": [{"institution": string, "degree": string, "field": string, "graduation_date": "YYYY-MM"}],
  "languages": string[],
  "certifications": string[]
}

Omit what is not present. Newest entries first. Return ONLY the JSON.`

// ParsePages parses a resume from JPEG page images, all pages in one request
func (p *Parser) ParsePages(ctx context.Context, pages [][]byte) (*ResumeData, error) {
	if len(pages) == 0 {
		return nil, errors.New("no pages provided")
	}

	parts := []openai.ChatCompletionContentPartUnionParam{{
		OfText: &openai.ChatCompletionContentPartTextParam{
			Type: constant.Text("text"),
			Text: schemaPrompt,
		},
	}}
	for _, page := range pages {
		parts = append(parts, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(page),
					Detail: "high",
				},
			},
		})
	}

	return p.complete(ctx, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: parts,
			},
		},
	})
}

// ParseText parses a resume from its extracted text
func (p *Parser) ParseText(ctx context.Context, text string) (*ResumeData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("resume text is empty")
	}
	return p.complete(ctx, openai.UserMessage(schemaPrompt+"\n\nResume:\n"+text))
}

func (p *Parser) complete(ctx context.Context, user openai.ChatCompletionMessageParamUnion) (*ResumeData, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			user,
		},
		Model: openai.ChatModelGPT4o,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return nil, fmt.Errorf("openai resume parse error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var data ResumeData
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &data); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return &data, nil
}

// FormatForMatching renders the resume as plain text for embeddings and prompts
func (rd *ResumeData) FormatForMatching() string {
	var b strings.Builder
	if rd.PersonalInfo.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", rd.PersonalInfo.Name)
	}
	if rd.PersonalInfo.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", rd.PersonalInfo.Location)
	}
	if rd.Summary != "" {
		fmt.Fprintf(&b, "\nSummary: %s\n", rd.Summary)
	}
	if len(rd.Skills) > 0 {
		fmt.Fprintf(&b, "\nSkills: %s\n", strings.Join(rd.Skills, ", "))
	}
	if len(rd.Experience) > 0 {
		b.WriteString("\nExperience:\n")
		for _, exp := range rd.Experience {
			fmt.Fprintf(&b, "- %s at %s (%s to %s)\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate)
			for _, r := range exp.Responsibilities {
				fmt.Fprintf(&b, "  * %s\n", r)
			}
		}
	}
	if len(rd.Education) > 0 {
		b.WriteString("\nEducation:\n")
		for _, edu := range rd.Education {
			fmt.Fprintf(&b, "- %s in %s from %s (%s)\n", edu.Degree, edu.Field, edu.Institution, edu.GraduationDate)
		}
	}
	if len(rd.Certifications) > 0 {
		fmt.Fprintf(&b, "\nCertifications: %s\n", strings.Join(rd.Certifications, ", "))
	}
	return b.String()
}
