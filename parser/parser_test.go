package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Registry tests
// ---------------------------------------------------------------------------

func TestRegistryBuiltInParsers(t *testing.T) {
	reg := NewRegistry()

	formats := []string{"docx", "pdf", "xlsx", "pptx", "txt", "doc", "xls", "ppt"}

	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			p, err := reg.Get(format)
			if err != nil {
				t.Fatalf("Get(%q) returned error: %v", format, err)
			}
			found := false
			for _, f := range p.SupportedFormats() {
				if f == format {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("parser for %q does not list it in SupportedFormats(): %v",
					format, p.SupportedFormats())
			}
		})
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()

	for _, format := range []string{"csv", "json", "html", "rtf", "odt", ""} {
		t.Run("format_"+format, func(t *testing.T) {
			p, err := reg.Get(format)
			if err == nil {
				t.Errorf("Get(%q) expected error for unknown format, got parser: %v", format, p)
			}
		})
	}
}

func TestRegistryCustomParser(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Get("md"); err == nil {
		t.Fatal("expected error for unregistered format")
	}

	reg.Register("md", &TextParser{}) // markdown read as plain lines
	if _, err := reg.Get("md"); err != nil {
		t.Fatalf("Get(\"md\") after Register returned error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TextParser / LegacyParser
// ---------------------------------------------------------------------------

func TestTextParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.txt")
	content := "\ufeff1. What is 2 < 3?\r\nA. true\r\n\r\nB. false"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := (&TextParser{}).Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{"1. What is 2 &lt; 3?", "A. true", "", "B. false"}
	if len(res.Paragraphs) != len(want) {
		t.Fatalf("got %d paragraphs, want %d: %q", len(res.Paragraphs), len(want), res.Paragraphs)
	}
	for i := range want {
		if res.Paragraphs[i] != want[i] {
			t.Errorf("Paragraphs[%d] = %q, want %q", i, res.Paragraphs[i], want[i])
		}
	}
}

func TestTextParserOnlyBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.txt")
	if err := os.WriteFile(path, []byte("\ufeff"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := (&TextParser{}).Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Paragraphs == nil || len(res.Paragraphs) != 0 {
		t.Errorf("Paragraphs = %#v, want empty non-nil slice", res.Paragraphs)
	}
}

func TestLegacyParserRejects(t *testing.T) {
	_, err := (&LegacyParser{}).Parse(context.Background(), "old.doc")
	if !errors.Is(err, ErrLegacyFormat) {
		t.Errorf("err = %v, want ErrLegacyFormat", err)
	}
}

// ---------------------------------------------------------------------------
// splitPageIntoParagraphs
// ---------------------------------------------------------------------------

func TestSplitPageIntoParagraphs(t *testing.T) {
	text := "  1. Which gas?  \n\nA. O2 & N2\n   \nB. CO2\n"
	got := splitPageIntoParagraphs(text)

	want := []string{"1. Which gas?", "A. O2 &amp; N2", "B. CO2"}
	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitPageIntoParagraphsEmpty(t *testing.T) {
	if got := splitPageIntoParagraphs("   \n\n  "); len(got) != 0 {
		t.Errorf("expected no paragraphs, got %q", got)
	}
}

func TestPDFParserMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\ngarbage"), 0644); err != nil {
		t.Fatal(err)
	}

	p := &PDFParser{}
	if _, err := p.Parse(context.Background(), path); err == nil {
		t.Fatal("expected error for malformed PDF")
	}
}
