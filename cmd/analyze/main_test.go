package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-recommender/internal/analyses"
	"job-recommender/internal/jobsearch"
	"job-recommender/internal/llm"
	"job-recommender/internal/shared/config"
)

type cannedLLM struct{}

func (cannedLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	if strings.HasPrefix(req.Prompt, "You are a career") {
		return "Backend Engineer, SRE", nil
	}
	return "answer", nil
}

type cannedJobs struct{}

func (cannedJobs) Search(ctx context.Context, q jobsearch.Query) ([]jobsearch.JobRecord, error) {
	return []jobsearch.JobRecord{{"title": q.Title, "companyName": "Acme"}}, nil
}

func writeResume(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF resume"), 0o600))
	return path
}

func testDeps() *deps {
	return &deps{
		extract: func(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
			return string(data), nil
		},
		llm:  cannedLLM{},
		jobs: cannedJobs{},
	}
}

func TestWriteTextSectionsAndJobs(t *testing.T) {
	var buf bytes.Buffer
	writeText(&buf, report{
		Sections: []sectionReport{
			{Title: "Resume Summary", Text: "Go developer."},
			{Title: "Skill Gaps & Missing Areas", Error: "quota exceeded"},
		},
		Recommendation: &analyses.RecommendationView{
			Keyword:  "Backend Engineer",
			Location: "India",
			Jobs:     []analyses.JobView{{Title: "Backend Engineer", CompanyName: "Acme", Location: "Pune", Link: "https://example.test/1"}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "## Resume Summary\nGo developer.\n")
	assert.Contains(t, out, "error: quota exceeded")
	assert.Contains(t, out, "## Top LinkedIn Jobs (Backend Engineer, India)")
	assert.Contains(t, out, "**Backend Engineer** at *Acme*")
}

func TestWriteTextNoJobs(t *testing.T) {
	var buf bytes.Buffer
	writeText(&buf, report{Recommendation: &analyses.RecommendationView{Keyword: "SRE", Empty: true, Warning: "Job search failed: boom"}})

	assert.Contains(t, buf.String(), "warning: Job search failed: boom")
	assert.Contains(t, buf.String(), "No LinkedIn jobs found.")
}

func TestRunJSONKeepsLogsOffStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := config.Config{JobSearchLocation: "India", JobSearchRows: 60}

	err := run(context.Background(), cfg, []string{"-resume", writeResume(t), "-json", "-recommend"}, &stdout, &stderr, testDeps())
	require.NoError(t, err)

	dec := json.NewDecoder(&stdout)
	var got report
	require.NoError(t, dec.Decode(&got))
	var extra any
	assert.ErrorIs(t, dec.Decode(&extra), io.EOF)

	require.Len(t, got.Sections, 3)
	assert.Equal(t, "answer", got.Sections[0].Text)
	require.NotNil(t, got.Recommendation)
	assert.Equal(t, "Backend Engineer", got.Recommendation.Keyword)
	assert.Contains(t, stderr.String(), "advisor.step_complete")
}

func TestRunRequiresResume(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), config.Config{}, nil, &stdout, &stderr, testDeps())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume path is required")
	assert.Empty(t, stdout.String())
}
