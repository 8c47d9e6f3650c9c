package xmlutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"

	"github.com/getsoapkit/soapkit/pkg/logging"
)

// OccurrenceAll selects every occurrence of a tag when editing.
const OccurrenceAll = "All"

// Editor rewrites named tags in XML template files.
type Editor struct {
	log *slog.Logger
}

// NewEditor creates an Editor. A nil logger disables logging.
func NewEditor(log *slog.Logger) *Editor {
	return &Editor{log: logging.Or(log)}
}

// EditFile loads the XML file at path, sets the text of the elements named
// by each key in values to the corresponding value, and writes the result
// to <outputName>.xml in the same directory as the input. Tags with no
// match are logged and skipped. The path of the written file is returned.
//
// occurrence selects which occurrence of a repeated tag to rewrite:
// OccurrenceAll (or empty) rewrites every occurrence, a number rewrites
// only that occurrence. The number is a 0-based position, unlike the
// 1-based index used by Navigator.Text; existing suites depend on both
// conventions, so neither can change.
func (e *Editor) EditFile(path string, values map[string]string, outputName, occurrence string) (string, error) {
	if values == nil {
		return "", errors.New("new values must be a non-nil map of tag to value")
	}

	doc, err := ParseFile(path)
	if err != nil {
		return "", err
	}

	for tag, value := range values {
		matches := FindByLocalName(doc, tag)
		if len(matches) == 0 {
			e.log.Warn("tag not found, skipping", "tag", tag)
			continue
		}
		e.log.Debug("matched tag", "tag", tag, "count", len(matches))

		if occurrence == OccurrenceAll || occurrence == "" || len(matches) < 2 {
			for _, el := range matches {
				el.SetText(value)
			}
			continue
		}

		pos, err := strconv.Atoi(occurrence)
		if err != nil {
			return "", fmt.Errorf("occurrence must be %q or a number, got %q", OccurrenceAll, occurrence)
		}
		if pos < 0 || pos >= len(matches) {
			return "", fmt.Errorf("occurrence %d out of range: tag %q has %d occurrence(s)", pos, tag, len(matches))
		}
		matches[pos].SetText(value)
	}

	out := filepath.Join(filepath.Dir(path), outputName+".xml")
	if err := doc.WriteToFile(out); err != nil {
		return "", fmt.Errorf("failed to write edited XML to %q: %w", out, err)
	}
	return out, nil
}

// SaveToFile writes the document, pretty-printed, to <name>.xml inside
// folder and returns the path of the written file. The input document is
// not modified.
func SaveToFile(doc *etree.Document, folder, name string) (string, error) {
	if doc == nil {
		return "", errors.New("document must not be nil")
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", folder, err)
	}

	out := filepath.Join(folder, name+".xml")
	c := doc.Copy()
	c.Indent(2)
	if err := c.WriteToFile(out); err != nil {
		return "", fmt.Errorf("failed to write XML to %q: %w", out, err)
	}
	return out, nil
}
