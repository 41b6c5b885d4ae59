package util

import "testing"

func TestFingerprint(t *testing.T) {
	got := Fingerprint([]byte("%PDF resume"))
	if got != Fingerprint([]byte("%PDF resume")) {
		t.Fatalf("expected stable fingerprint, got %s", got)
	}
	if got == Fingerprint([]byte("%PDF other")) {
		t.Fatalf("expected different inputs to differ")
	}
	if len(got) != 16 {
		t.Fatalf("expected 16 hex characters, got %d", len(got))
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("fingerprint contains non-hex character: %c", ch)
		}
	}
}

func TestDisplayFileName(t *testing.T) {
	cases := map[string]string{
		"cv.pdf":                 "cv.pdf",
		"  cv.pdf ":              "cv.pdf",
		"../../etc/passwd":       "passwd",
		`C:\Users\me\resume.pdf`: "resume.pdf",
		"":                       "resume.pdf",
		"..":                     "resume.pdf",
		"/":                      "resume.pdf",
	}
	for in, want := range cases {
		if got := DisplayFileName(in); got != want {
			t.Fatalf("DisplayFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
