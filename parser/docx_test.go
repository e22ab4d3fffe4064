package parser

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
)

// addZipFile writes one entry to a zip archive under construction.
func addZipFile(t *testing.T, w *zip.Writer, name string, data []byte) {
	t.Helper()
	fw, err := w.Create(name)
	if err != nil {
		t.Fatalf("creating zip entry %s: %v", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("writing zip entry %s: %v", name, err)
	}
}

// createTestZip builds an archive with the given entries in t.TempDir().
func createTestZip(t *testing.T, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	w := zip.NewWriter(f)
	for entry, body := range entries {
		addZipFile(t, w, entry, []byte(body))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}
	return path
}

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
            xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Title"/><w:rPr><w:b/></w:rPr></w:pPr><w:r><w:t>Chemistry Quiz</w:t></w:r></w:p>
    <w:p>
      <w:r><w:t xml:space="preserve">1. What is </w:t></w:r>
      <w:r><w:rPr><w:i/></w:rPr><w:t>x</w:t></w:r>
      <w:r><w:rPr><w:vertAlign w:val="superscript"/></w:rPr><w:t>2</w:t></w:r>
      <w:r><w:t>?</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:rPr><w:b/></w:rPr><w:t>A.</w:t></w:r>
      <w:r><w:t xml:space="preserve"> H</w:t></w:r>
      <w:r><w:rPr><w:vertAlign w:val="subscript"/></w:rPr><w:t>2</w:t></w:r>
      <w:r><w:t>O &amp; salt</w:t></w:r>
    </w:p>
    <w:p><w:r><w:t>B. two</w:t><w:br/><w:t>lines</w:t><w:tab/><w:t>tabbed</w:t></w:r></w:p>
    <w:p><w:r><w:rPr><w:b w:val="0"/></w:rPr><w:t>not bold</w:t></w:r></w:p>
    <w:p>
      <w:r>
        <w:drawing><wp:inline><a:graphic><a:graphicData><w:t>hidden</w:t></a:graphicData></a:graphic></wp:inline></w:drawing>
      </w:r>
    </w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>cell 1</w:t></w:r></w:p><w:p><w:r><w:t>more</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>cell 2</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p/>
  </w:body>
</w:document>`

func TestParseDocxXML(t *testing.T) {
	paras, err := parseDocxXML([]byte(testDocumentXML))
	if err != nil {
		t.Fatalf("parseDocxXML: %v", err)
	}

	want := []string{
		"Chemistry Quiz",
		"1. What is <em>x</em><sup>2</sup>?",
		"<strong>A.</strong> H<sub>2</sub>O &amp; salt",
		"B. two<br />lines\ttabbed",
		"not bold",
		"",
		"<table><tr><td>cell 1<br />more</td><td>cell 2</td></tr></table>",
		"",
	}
	if len(paras) != len(want) {
		t.Fatalf("got %d paragraphs, want %d: %q", len(paras), len(want), paras)
	}
	for i := range want {
		if paras[i] != want[i] {
			t.Errorf("paragraph[%d] = %q, want %q", i, paras[i], want[i])
		}
	}
}

func TestParseDocxXMLMalformed(t *testing.T) {
	if _, err := parseDocxXML([]byte("<w:document><w:body><w:p>")); err == nil {
		t.Error("expected error for truncated XML")
	}
}

func TestDOCXParserParse(t *testing.T) {
	path := createTestZip(t, "quiz.docx", map[string]string{
		"word/document.xml": testDocumentXML,
	})

	res, err := (&DOCXParser{}).Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Method != "native" {
		t.Errorf("Method = %q, want native", res.Method)
	}
	if len(res.Paragraphs) != 8 {
		t.Errorf("got %d paragraphs, want 8", len(res.Paragraphs))
	}
	if res.Metadata["paragraph_count"] != "8" {
		t.Errorf("paragraph_count = %q, want 8", res.Metadata["paragraph_count"])
	}
}

func TestDOCXParserMissingDocument(t *testing.T) {
	path := createTestZip(t, "broken.docx", map[string]string{
		"word/styles.xml": "<styles/>",
	})
	if _, err := (&DOCXParser{}).Parse(context.Background(), path); err == nil {
		t.Error("expected error when word/document.xml is missing")
	}
}

func TestDOCXParserNotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&DOCXParser{}).Parse(context.Background(), path); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestDOCXParserCancelled(t *testing.T) {
	path := createTestZip(t, "quiz.docx", map[string]string{
		"word/document.xml": testDocumentXML,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&DOCXParser{}).Parse(ctx, path); err == nil {
		t.Error("expected error for cancelled context")
	}
}
