package main

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/assist"
)

func init() {
	register("matches", "AI picked job matches for your profile", runMatches)
	register("analyze", "AI feedback on your resume", runAnalyze)
	register("questions", "AI practice interview questions for a job", runQuestions)
	register("evaluate", "AI feedback on an interview answer", runEvaluate)
}

func printResult(res assist.Result) {
	fmt.Fprintln(out, res.Pretty())
}

func runMatches(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("matches")
	limit := fs.Int("limit", 10, "number of matches")
	if err := fs.Parse(args); err != nil {
		return err
	}
	res, err := app.Assist.JobMatches(ctx, assist.JobMatchesRequest{Limit: *limit})
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func runAnalyze(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("analyze")
	resume := fs.String("resume-url", "", "resume to analyze, the uploaded one by default")
	jobID := fs.String("job", "", "job to compare the resume against")
	if err := fs.Parse(args); err != nil {
		return err
	}
	res, err := app.Assist.AnalyzeResume(ctx, assist.AnalyzeResumeRequest{
		ResumeURL: kernel.FileURL(*resume),
		JobID:     kernel.JobID(*jobID),
	})
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func runQuestions(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("questions")
	count := fs.IntP("count", "n", 5, "number of questions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := needArg(fs, "job id")
	if err != nil {
		return err
	}
	res, err := app.Assist.GenerateInterviewQuestions(ctx, assist.InterviewQuestionsRequest{
		JobID: kernel.JobID(id),
		Count: *count,
	})
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func runEvaluate(ctx context.Context, app *Container, args []string) error {
	fs := newFlags("evaluate")
	question := fs.StringP("question", "q", "", "interview question")
	answer := fs.StringP("answer", "a", "", "your answer (prompted when empty)")
	jobID := fs.String("job", "", "job the question belongs to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ask(question, "Question")
	ask(answer, "Answer")

	res, err := app.Assist.EvaluateAnswer(ctx, assist.EvaluateAnswerRequest{
		Question: *question,
		Answer:   *answer,
		JobID:    kernel.JobID(*jobID),
	})
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}
