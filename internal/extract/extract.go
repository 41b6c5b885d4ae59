package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// DocumentParseError reports a document that could not be opened or read.
// Page is 1-based; zero means the failure happened before any page was read.
type DocumentParseError struct {
	Page int
	Err  error
}

func (e *DocumentParseError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("parse document: page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("parse document: %v", e.Err)
}

func (e *DocumentParseError) Unwrap() error { return e.Err }

// pageSource is the subset of a parsed PDF the extractor needs.
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

// ExtractText reads a PDF stream once and returns the text of all pages in order.
// Library used: github.com/ledongthuc/pdf.
func ExtractText(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", &DocumentParseError{Err: fmt.Errorf("read: %w", err)}
	}
	return extractPDF(ctx, raw)
}

// ExtractTextFromBytes extracts text from an in-memory upload. Only PDF is supported;
// mimeType and fileName are used to reject other formats early.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if normalized := normalizeMimeType(mimeType, fileName, data); normalized != mimePDF {
		return "", &DocumentParseError{Err: fmt.Errorf("unsupported mime type: %s", normalized)}
	}
	return extractPDF(ctx, data)
}

func extractPDF(ctx context.Context, data []byte) (string, error) {
	src, err := openPDF(data)
	if err != nil {
		return "", err
	}
	return concatPages(ctx, src)
}

// concatPages joins page texts verbatim. A page with no text contributes "".
func concatPages(ctx context.Context, src pageSource) (string, error) {
	var buf strings.Builder
	for i := 1; i <= src.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := src.PageText(i)
		if err != nil {
			return "", &DocumentParseError{Page: i, Err: err}
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

type pdfPages struct {
	reader *pdf.Reader
}

func openPDF(data []byte) (src pageSource, err error) {
	if len(data) == 0 {
		return nil, &DocumentParseError{Err: fmt.Errorf("empty document")}
	}
	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			src = nil
			err = &DocumentParseError{Err: fmt.Errorf("malformed pdf: %v", rec)}
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DocumentParseError{Err: err}
	}
	return pdfPages{reader: reader}, nil
}

func (p pdfPages) NumPage() int {
	return p.reader.NumPage()
}

func (p pdfPages) PageText(i int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("malformed page: %v", rec)
		}
	}()
	page := p.reader.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == mimePDF {
		return mimePDF
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return mimePDF
	}
	switch clean {
	case "", "application/octet-stream", "binary/octet-stream":
		if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
			return mimePDF
		}
	}
	if clean == "" {
		return "unknown"
	}
	return clean
}
