package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/brunobiangulo/goquiz/markup"
)

// PPTXParser reads slide text frames in slide order. Every DrawingML
// paragraph becomes one paragraph fragment; pictures are skipped.
type PPTXParser struct{}

func (p *PPTXParser) SupportedFormats() []string { return []string{"pptx"} }

func (p *PPTXParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening PPTX: %w", err)
	}
	defer r.Close()

	// Collect slide files (ppt/slides/slide1.xml, slide2.xml, ...)
	slideFiles := make(map[int]*zip.File)
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			num := extractSlideNumber(f.Name)
			if num > 0 {
				slideFiles[num] = f
			}
		}
	}

	// Sort by slide number
	nums := make([]int, 0, len(slideFiles))
	for n := range slideFiles {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var paras []string
	for _, num := range nums {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rc, err := slideFiles[num].Open()
		if err != nil {
			return nil, fmt.Errorf("opening slide %d: %w", num, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading slide %d: %w", num, err)
		}

		slideParas, err := extractPPTXSlideParagraphs(data)
		if err != nil {
			return nil, fmt.Errorf("parsing slide %d: %w", num, err)
		}
		paras = append(paras, slideParas...)
	}

	if len(nums) == 0 {
		return nil, fmt.Errorf("no slides found in PPTX")
	}

	return &ParseResult{
		Paragraphs: paras,
		Method:     "native",
		Metadata: map[string]string{
			"slide_count": strconv.Itoa(len(nums)),
		},
	}, nil
}

// extractPPTXSlideParagraphs renders every a:p of a slide as markup.
func extractPPTXSlideParagraphs(data []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var (
		paras   []string
		para    strings.Builder
		runText strings.Builder
		format  runFormat
		inPara  bool
		inRun   bool
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
			switch t.Name.Local {
			case "pic", "graphicFrame":
				if err := decoder.Skip(); err != nil {
					return nil, err
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
					format = drawingRunFormat(t)
				}
			case "t":
				if inRun {
					var s string
					if err := decoder.DecodeElement(&s, &t); err != nil {
						return nil, err
					}
					runText.WriteString(markup.Escape(s))
				}
			case "br":
				if inPara {
					para.WriteString(markup.Break)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				if inRun {
					para.WriteString(format.wrap(runText.String()))
					inRun = false
				}
			case "p":
				if inPara {
					paras = append(paras, para.String())
					inPara = false
				}
			}
		}
	}
	return paras, nil
}

// drawingRunFormat reads a:rPr attributes: b, i and baseline (a positive
// baseline raises the run, a negative one lowers it).
func drawingRunFormat(se xml.StartElement) runFormat {
	var f runFormat
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "b":
			f.bold = a.Value == "1" || a.Value == "true"
		case "i":
			f.italic = a.Value == "1" || a.Value == "true"
		case "baseline":
			n, err := strconv.Atoi(a.Value)
			if err != nil {
				continue
			}
			switch {
			case n > 0:
				f.vert = "superscript"
			case n < 0:
				f.vert = "subscript"
			}
		}
	}
	return f
}

func extractSlideNumber(name string) int {
	// Extract number from "ppt/slides/slide1.xml"
	name = strings.TrimPrefix(name, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}
