package httpx_test

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recorder struct {
	mu     sync.Mutex
	tokens []string
}

func (r *recorder) HandleUnauthorized(_ context.Context, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, token)
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    item
		wantErr bool
	}{
		{name: "envelope", body: `{"success":true,"data":{"id":"1","name":"a"},"message":"ok"}`, want: item{ID: "1", Name: "a"}},
		{name: "bare payload", body: `{"id":"2","name":"b"}`, want: item{ID: "2", Name: "b"}},
		{name: "bare payload with data key", body: `{"id":"3","name":"c","data":"x"}`, want: item{ID: "3", Name: "c"}},
		{name: "envelope with null data", body: `{"success":true,"data":null}`},
		{name: "empty body", body: ``},
		{name: "failed envelope", body: `{"success":false,"message":"nope"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got item
			err := httpx.Decode([]byte(tt.body), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClientSendsHeadersAndDecodesEnvelope(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":"7","name":"go"}}`)
	}))
	defer srv.Close()

	c := httpx.New(httpx.Config{BaseURL: srv.URL + "/", UserAgent: "test/1"}, httpx.WithTokenSource(staticToken("tok-1")))
	var out item
	if err := c.Get(context.Background(), "/api/jobs/7", httpx.PageQuery(kernel.PaginationOptions{Page: 2, PageSize: 5}), &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if out.ID != "7" {
		t.Errorf("out = %+v", out)
	}
	if h := got.Header.Get("Authorization"); h != "Bearer tok-1" {
		t.Errorf("Authorization = %q", h)
	}
	if h := got.Header.Get("User-Agent"); h != "test/1" {
		t.Errorf("User-Agent = %q", h)
	}
	if got.Header.Get(httpx.HeaderRequestID) == "" {
		t.Error("request id header missing")
	}
	if got.URL.Path != "/api/jobs/7" || got.URL.Query().Get("page") != "2" || got.URL.Query().Get("limit") != "5" {
		t.Errorf("URL = %s", got.URL)
	}
}

func TestClientOmitsAuthorizationWhenSignedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := httpx.New(httpx.Config{BaseURL: srv.URL}, httpx.WithTokenSource(staticToken("")))
	if err := c.Delete(context.Background(), "/api/x", nil); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestClientReportsUnauthorizedWithRequestToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(errx.Response{Code: "AUTH_TOKEN_EXPIRED", Message: "Session expired"})
	}))
	defer srv.Close()

	rec := &recorder{}
	c := httpx.New(httpx.Config{BaseURL: srv.URL}, httpx.WithTokenSource(staticToken("old")), httpx.WithUnauthorizedHandler(rec))
	err := c.Post(context.Background(), "/api/jobs/1/save", nil, nil)

	e, ok := errx.As(err)
	if !ok {
		t.Fatalf("error %T is not *errx.Error", err)
	}
	if e.Type != errx.TypeUnauthorized || e.Code != "AUTH_TOKEN_EXPIRED" || !e.FromServer() {
		t.Errorf("error = %+v", e)
	}
	if len(rec.tokens) != 1 || rec.tokens[0] != "old" {
		t.Errorf("unauthorized hook got %v", rec.tokens)
	}
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	rec := &recorder{}
	c := httpx.New(httpx.Config{BaseURL: base}, httpx.WithUnauthorizedHandler(rec))
	err := c.Get(context.Background(), "/health", nil, nil)
	if !errx.IsType(err, errx.TypeExternal) {
		t.Fatalf("error = %v, want external", err)
	}
	if got := errx.UserMessage(err, "fallback"); got != errx.ConnectionMessage {
		t.Errorf("UserMessage() = %q", got)
	}
	if len(rec.tokens) != 0 {
		t.Error("transport failures are not unauthorized")
	}
}

func TestClientMultipartUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		part, err := mr.NextPart()
		if err != nil {
			t.Errorf("NextPart() error = %v", err)
			return
		}
		data, _ := io.ReadAll(part)
		if part.FormName() != "resume" || part.FileName() != "cv.pdf" || string(data) != "%PDF" {
			t.Errorf("part %s/%s = %q", part.FormName(), part.FileName(), data)
		}
		if ct := part.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("part Content-Type = %q", ct)
		}
		_, _ = io.WriteString(w, `{"url":"http://files/cv.pdf"}`)
	}))
	defer srv.Close()

	c := httpx.New(httpx.Config{BaseURL: srv.URL})
	var out struct {
		URL string `json:"url"`
	}
	err := c.PostMultipart(context.Background(), "/upload", &httpx.MultipartForm{
		Files: []httpx.File{{FieldName: "resume", FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
	}, &out)
	if err != nil {
		t.Fatalf("PostMultipart() error = %v", err)
	}
	if !strings.HasSuffix(out.URL, "cv.pdf") {
		t.Errorf("URL = %q", out.URL)
	}
}

func TestPath(t *testing.T) {
	if got := httpx.Path("/api/jobs", "a b", "save"); got != "/api/jobs/a%20b/save" {
		t.Errorf("Path() = %q", got)
	}
}

func TestDecodePaginatedMeta(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIDs   string
		wantPage  kernel.Page
		wantEmpty bool
	}{
		{
			name:     "item array with meta",
			body:     `{"success":true,"data":[{"id":"3"},{"id":"4"}],"meta":{"number":2,"size":2,"total":5,"pages":3}}`,
			wantIDs:  "3,4",
			wantPage: kernel.Page{Number: 2, Size: 2, Total: 5, Pages: 3},
		},
		{
			name:     "paginated object",
			body:     `{"success":true,"data":{"items":[{"id":"1"}],"page":{"number":1,"size":10,"total":1,"pages":1}}}`,
			wantIDs:  "1",
			wantPage: kernel.Page{Number: 1, Size: 10, Total: 1, Pages: 1},
		},
		{
			name:      "empty array with meta",
			body:      `{"success":true,"data":[],"meta":{"number":1,"size":10,"total":0,"pages":0}}`,
			wantPage:  kernel.Page{Number: 1, Size: 10},
			wantEmpty: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got kernel.Paginated[item]
			if err := httpx.Decode([]byte(tt.body), &got); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			ids := make([]string, len(got.Items))
			for i, it := range got.Items {
				ids[i] = it.ID
			}
			if s := strings.Join(ids, ","); s != tt.wantIDs {
				t.Errorf("items = %s, want %s", s, tt.wantIDs)
			}
			if got.Page != tt.wantPage {
				t.Errorf("page = %+v, want %+v", got.Page, tt.wantPage)
			}
			if got.Empty != tt.wantEmpty {
				t.Errorf("empty = %v, want %v", got.Empty, tt.wantEmpty)
			}
		})
	}
}
