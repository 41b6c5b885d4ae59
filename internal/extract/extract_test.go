package extract

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

type fakePages struct {
	pages []string
	errAt int
}

func (f fakePages) NumPage() int { return len(f.pages) }

func (f fakePages) PageText(i int) (string, error) {
	if i == f.errAt {
		return "", errors.New("broken content stream")
	}
	return f.pages[i-1], nil
}

func TestConcatPagesPreservesOrder(t *testing.T) {
	ctx := context.Background()

	got, err := concatPages(ctx, fakePages{pages: []string{"Jane Doe\n", "", "Experience\n"}})
	if err != nil {
		t.Fatalf("concat pages: %v", err)
	}
	if got != "Jane Doe\nExperience\n" {
		t.Fatalf("unexpected text %q", got)
	}

	reordered, err := concatPages(ctx, fakePages{pages: []string{"Experience\n", "", "Jane Doe\n"}})
	if err != nil {
		t.Fatalf("concat pages: %v", err)
	}
	if reordered == got {
		t.Fatalf("expected page order to change the result")
	}
}

func TestConcatPagesNoPages(t *testing.T) {
	got, err := concatPages(context.Background(), fakePages{})
	if err != nil {
		t.Fatalf("concat pages: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestConcatPagesReportsFailingPage(t *testing.T) {
	_, err := concatPages(context.Background(), fakePages{pages: []string{"a", "b", "c"}, errAt: 2})
	var parseErr *DocumentParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected DocumentParseError, got %v", err)
	}
	if parseErr.Page != 2 {
		t.Fatalf("expected page 2, got %d", parseErr.Page)
	}
}

func TestConcatPagesHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := concatPages(ctx, fakePages{pages: []string{"a"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtractTextRejectsNonPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "garbage", data: []byte("this is not a pdf at all")},
		{name: "empty", data: nil},
		{name: "truncated header", data: []byte("%PDF-1.4\n%%EOF")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(context.Background(), strings.NewReader(string(tt.data)))
			var parseErr *DocumentParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected DocumentParseError, got %v", err)
			}
		})
	}
}

func TestExtractTextFromBytesRejectsUnsupportedMime(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("PK\x03\x04"), "application/zip", "resume.docx")
	var parseErr *DocumentParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected DocumentParseError, got %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	tests := []struct {
		mime     string
		fileName string
		data     []byte
		want     string
	}{
		{mime: "application/pdf; charset=binary", want: mimePDF},
		{mime: "application/octet-stream", fileName: "cv.PDF", want: mimePDF},
		{mime: "", fileName: "cv.txt", data: []byte("%PDF-1.7"), want: mimePDF},
		{mime: "text/plain", fileName: "cv.txt", want: "text/plain"},
		{mime: "", fileName: "cv", want: "unknown"},
	}
	for _, tt := range tests {
		if got := normalizeMimeType(tt.mime, tt.fileName, tt.data); got != tt.want {
			t.Fatalf("normalizeMimeType(%q, %q) = %q, want %q", tt.mime, tt.fileName, got, tt.want)
		}
	}
}

func TestExtractTextReadsRealPDFInPageOrder(t *testing.T) {
	data, err := os.ReadFile("testdata/two_pages.pdf")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	fromBytes, err := ExtractTextFromBytes(context.Background(), data, "application/pdf", "two_pages.pdf")
	if err != nil {
		t.Fatalf("extract from bytes: %v", err)
	}
	first := strings.Index(fromBytes, "Page one alpha")
	second := strings.Index(fromBytes, "Page two beta")
	if first < 0 || second < 0 {
		t.Fatalf("expected both pages in text, got %q", fromBytes)
	}
	if first >= second {
		t.Fatalf("expected page one before page two, got %q", fromBytes)
	}

	fromReader, err := ExtractText(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("extract from reader: %v", err)
	}
	if fromReader != fromBytes {
		t.Fatalf("reader and bytes paths differ: %q vs %q", fromReader, fromBytes)
	}
}
