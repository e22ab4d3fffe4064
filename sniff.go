package goquiz

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// expectedMIME lists, per format, the MIME types the file content may be
// detected as. Ancestors in the mimetype tree count as a match.
var expectedMIME = map[string][]string{
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/zip"},
	"pptx": {"application/vnd.openxmlformats-officedocument.presentationml.presentation", "application/zip"},
	"pdf":  {"application/pdf"},
	"txt":  {"text/plain"},
	"doc":  {"application/x-ole-storage"},
	"xls":  {"application/x-ole-storage"},
	"ppt":  {"application/x-ole-storage"},
}

// sniff checks that the bytes at path look like format.
func sniff(path, format string) error {
	want, ok := expectedMIME[format]
	if !ok {
		return nil
	}
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detecting content type: %w", err)
	}
	for m := detected; m != nil; m = m.Parent() {
		for _, w := range want {
			if m.Is(w) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s content detected as %s", ErrUnsupportedFormat, format, detected.String())
}
