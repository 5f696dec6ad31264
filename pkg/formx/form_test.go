package formx_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/formx"
)

type posting struct {
	Title     string     `json:"title" validate:"required,max=20"`
	Email     string     `json:"email" validate:"omitempty,email"`
	SalaryMin *float64   `json:"salaryMin"`
	SalaryMax *float64   `json:"salaryMax"`
	Start     *time.Time `json:"startDate"`
	End       *time.Time `json:"endDate"`
}

var PostingRules = []formx.Rule[posting]{
	formx.GreaterThan("salaryMax", "must exceed the minimum salary",
		func(p posting) *float64 { return p.SalaryMin },
		func(p posting) *float64 { return p.SalaryMax }),
	formx.After("endDate", "must be after the start date",
		func(p posting) *time.Time { return p.Start },
		func(p posting) *time.Time { return p.End }),
}

func ptr[V any](v V) *V { return &v }

func TestValidate(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)

	tests := []struct {
		name   string
		data   posting
		fields []string
	}{
		{"valid", posting{Title: "Go developer", SalaryMin: ptr(10.0), SalaryMax: ptr(20.0)}, nil},
		{"missing title", posting{}, []string{"title"}},
		{"title too long", posting{Title: "a very long job title indeed"}, []string{"title"}},
		{"bad email", posting{Title: "x", Email: "nope"}, []string{"email"}},
		{"salary range inverted", posting{Title: "x", SalaryMin: ptr(20.0), SalaryMax: ptr(10.0)}, []string{"salaryMax"}},
		{"salary range equal", posting{Title: "x", SalaryMin: ptr(20.0), SalaryMax: ptr(20.0)}, []string{"salaryMax"}},
		{"only min salary", posting{Title: "x", SalaryMin: ptr(20.0)}, nil},
		{"dates inverted", posting{Title: "x", Start: &feb, End: &jan}, []string{"endDate"}},
		{"dates ordered", posting{Title: "x", Start: &jan, End: &feb}, nil},
		{"several", posting{Email: "nope", Start: &feb, End: &jan}, []string{"title", "email", "endDate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formx.Validate(tt.data, PostingRules...)
			if len(got) != len(tt.fields) {
				t.Fatalf("Validate() = %v, want errors on %v", got, tt.fields)
			}
			for i, fe := range got {
				if fe.Field != tt.fields[i] {
					t.Errorf("error %d on %q, want %q", i, fe.Field, tt.fields[i])
				}
				if fe.Message == "" {
					t.Errorf("error %d has no message", i)
				}
			}
		})
	}
}

func TestSaveSkipsGatewayWhenInvalid(t *testing.T) {
	calls := 0
	f := formx.New(posting{}, func(context.Context, posting) error {
		calls++
		return nil
	}, formx.WithRules(PostingRules...))

	err := f.Save(context.Background())
	if !errx.IsCode(err, formx.CodeInvalid) {
		t.Fatalf("Save error = %v, want %s", err, formx.CodeInvalid)
	}
	if calls != 0 {
		t.Errorf("save called %d times for invalid data", calls)
	}
	if len(f.Errors()) != 1 || f.Errors()[0].Field != "title" {
		t.Errorf("Errors() = %v", f.Errors())
	}
}

func TestSaveFailureKeepsData(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server message shown verbatim",
			err:  errx.FromHTTPResponse(http.StatusUnprocessableEntity, []byte(`{"error":"Unprocessable Entity","message":"Job title already used"}`)),
			want: "Job title already used",
		},
		{
			name: "no server message",
			err:  errx.FromHTTPResponse(http.StatusInternalServerError, []byte(`oops`)),
			want: "Could not save the job",
		},
		{
			name: "transport failure",
			err:  errx.Transport(errors.New("dial tcp: connection refused")),
			want: errx.ConnectionMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := 0
			f := formx.New(posting{Title: "Go developer"},
				func(context.Context, posting) error { return tt.err },
				formx.WithFallback[posting]("Could not save the job"),
				formx.OnSave(func(context.Context, posting) { saved++ }),
			)
			f.Edit(func(p *posting) { p.Email = "jobs@example.com" })

			if err := f.Save(context.Background()); err == nil {
				t.Fatal("Save should fail")
			}
			if got := f.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
			if d := f.Data(); d.Title != "Go developer" || d.Email != "jobs@example.com" {
				t.Errorf("data lost: %+v", d)
			}
			if saved != 0 {
				t.Error("OnSave fired after a failure")
			}
			if f.Saving() {
				t.Error("still saving")
			}
		})
	}
}

func TestSaveSuccessFiresOnSave(t *testing.T) {
	var got posting
	f := formx.New(posting{Title: "Go developer"},
		func(context.Context, posting) error { return nil },
		formx.OnSave(func(_ context.Context, p posting) { got = p }),
	)
	if err := f.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got.Title != "Go developer" {
		t.Errorf("OnSave got %+v", got)
	}
	if f.Message() != "" {
		t.Errorf("Message() = %q after success", f.Message())
	}
}
