package analyses

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/advisor"
	"job-recommender/internal/extract"
	"job-recommender/internal/jobsearch"
	"job-recommender/internal/llm"
	"job-recommender/internal/shared/telemetry"
)

// scriptedLLM answers by prompt prefix.
type scriptedLLM struct {
	mu      sync.Mutex
	answers map[string]string
	errs    map[string]error
	calls   []llm.Request
}

func (s *scriptedLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	for prefix, err := range s.errs {
		if strings.HasPrefix(req.Prompt, prefix) {
			return "", err
		}
	}
	for prefix, answer := range s.answers {
		if strings.HasPrefix(req.Prompt, prefix) {
			return answer, nil
		}
	}
	return "", nil
}

func defaultLLM() *scriptedLLM {
	return &scriptedLLM{answers: map[string]string{
		"Summarize":        "Go developer with 5 years of backend experience.",
		"Analyze":          "Missing Kubernetes certification.",
		"Based on":         "Learn cloud-native tooling.",
		"You are a career": "Backend Engineer, Platform Engineer",
	}}
}

type stubJobs struct {
	jobs    []jobsearch.JobRecord
	err     error
	queries []jobsearch.Query
}

func (s *stubJobs) Search(ctx context.Context, q jobsearch.Query) ([]jobsearch.JobRecord, error) {
	s.queries = append(s.queries, q)
	return s.jobs, s.err
}

func fakeExtract(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return "", &extract.DocumentParseError{Err: errors.New("not a PDF file: invalid header")}
	}
	return string(bytes.TrimPrefix(data, []byte("%PDF"))), nil
}

func newTestService(gen llm.Generator, jobs advisor.JobSearcher) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return &Service{
		Repo:           repo,
		Advisor:        &advisor.Service{LLM: gen, Jobs: jobs},
		Extract:        fakeExtract,
		SearchDefaults: jobsearch.Query{Location: "India", Rows: 60},
	}, repo
}

func setupRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func multipartRequest(t *testing.T, target, field, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
