package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/brunobiangulo/goquiz/markup"
)

type DOCXParser struct{}

func (p *DOCXParser) SupportedFormats() []string { return []string{"docx"} }

func (p *DOCXParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}
	defer r.Close()

	// Find word/document.xml
	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("word/document.xml not found in DOCX")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paras, err := parseDocxXML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing DOCX XML: %w", err)
	}

	return &ParseResult{
		Paragraphs: paras,
		Method:     "native",
		Metadata: map[string]string{
			"paragraph_count": fmt.Sprintf("%d", len(paras)),
		},
	}, nil
}

// skippedElements carry images, embedded objects or field codes. Their whole
// subtree is ignored, which is how drawings and text boxes are dropped.
var skippedElements = map[string]bool{
	"drawing":          true,
	"pict":             true,
	"object":           true,
	"AlternateContent": true,
	"instrText":        true,
	"delText":          true,
}

// runFormat is the subset of run properties rendered as inline markup.
type runFormat struct {
	bold   bool
	italic bool
	vert   string // "superscript", "subscript" or ""
}

// wrap renders text with the run's formatting, innermost first.
func (f runFormat) wrap(text string) string {
	if text == "" {
		return ""
	}
	switch f.vert {
	case "superscript":
		text = "<sup>" + text + "</sup>"
	case "subscript":
		text = "<sub>" + text + "</sub>"
	}
	if f.italic {
		text = "<em>" + text + "</em>"
	}
	if f.bold {
		text = "<strong>" + text + "</strong>"
	}
	return text
}

// onOff reads an OOXML toggle property: present without w:val means on.
func onOff(se xml.StartElement) bool {
	for _, a := range se.Attr {
		if a.Name.Local == "val" {
			switch strings.ToLower(a.Value) {
			case "0", "false", "off", "none":
				return false
			}
		}
	}
	return true
}

func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// parseDocxXML walks word/document.xml and returns one markup fragment per
// body paragraph. A top-level table becomes a single fragment holding the
// whole <table>; paragraphs inside a cell are joined with breaks.
func parseDocxXML(data []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var (
		paras     []string
		para      strings.Builder
		runText   strings.Builder
		table     strings.Builder
		format    runFormat
		inPara    bool
		inRun     bool
		inRPr     bool
		tblDepth  int
		cellParas int
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skippedElements[t.Name.Local] {
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					table.Reset()
					table.WriteString("<table>")
				}
			case "tr":
				if tblDepth == 1 {
					table.WriteString("<tr>")
				}
			case "tc":
				if tblDepth == 1 {
					table.WriteString("<td>")
					cellParas = 0
				}
			case "p":
				inPara = true
				para.Reset()
			case "r":
				if inPara {
					inRun = true
					format = runFormat{}
					runText.Reset()
				}
			case "rPr":
				if inRun {
					inRPr = true
				}
			case "b":
				if inRPr {
					format.bold = onOff(t)
				}
			case "i":
				if inRPr {
					format.italic = onOff(t)
				}
			case "vertAlign":
				if inRPr {
					format.vert = attrValue(t, "val")
				}
			case "t":
				if inRun {
					var s string
					if err := decoder.DecodeElement(&s, &t); err != nil {
						return nil, err
					}
					runText.WriteString(markup.Escape(s))
				}
			case "tab":
				if inRun {
					runText.WriteString("\t")
				}
			case "br", "cr":
				if inRun {
					runText.WriteString(markup.Break)
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "rPr":
				inRPr = false
			case "r":
				if inRun {
					para.WriteString(format.wrap(runText.String()))
					inRun = false
				}
			case "p":
				if !inPara {
					continue
				}
				inPara = false
				if tblDepth > 0 {
					if cellParas > 0 {
						table.WriteString(markup.Break)
					}
					table.WriteString(para.String())
					cellParas++
					continue
				}
				paras = append(paras, para.String())
			case "tc":
				if tblDepth == 1 {
					table.WriteString("</td>")
				}
			case "tr":
				if tblDepth == 1 {
					table.WriteString("</tr>")
				}
			case "tbl":
				tblDepth--
				if tblDepth == 0 {
					table.WriteString("</table>")
					paras = append(paras, table.String())
				}
			}
		}
	}

	return paras, nil
}
