package xmlutil

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/getsoapkit/soapkit/pkg/logging"
)

// ErrTagNotFound is returned when no element in the document matches the
// requested tag.
var ErrTagNotFound = errors.New("tag not found")

// Navigator extracts field values from parsed XML documents by local tag
// name.
type Navigator struct {
	log *slog.Logger
}

// NewNavigator creates a Navigator. A nil logger disables logging.
func NewNavigator(log *slog.Logger) *Navigator {
	return &Navigator{log: logging.Or(log)}
}

// Text returns the text content of the index-th element (1-based, in
// document order) whose local name equals tag. Zero matches produce a
// warning and ErrTagNotFound; an index outside the match range is an
// error.
func (n *Navigator) Text(doc *etree.Document, tag string, index int) (string, error) {
	return n.TextPath(doc, []string{tag}, index)
}

// TextPath is Text for a multi-step tag path: each name in path matches
// descendants of the previous name's matches.
func (n *Navigator) TextPath(doc *etree.Document, path []string, index int) (string, error) {
	if len(path) == 0 {
		return "", errors.New("tag path must not be empty")
	}
	label := strings.Join(path, "/")

	matches := FindByLocalName(doc, path...)
	if len(matches) == 0 {
		n.log.Warn("no elements match tag, please confirm the tag", "tag", label)
		return "", fmt.Errorf("%w: %q", ErrTagNotFound, label)
	}
	if len(matches) > 1 {
		n.log.Debug("tag matched multiple elements, returning text at index",
			"tag", label, "count", len(matches), "index", index)
	}
	if index < 1 || index > len(matches) {
		return "", fmt.Errorf("index %d out of range: tag %q has %d occurrence(s)", index, label, len(matches))
	}
	return matches[index-1].Text(), nil
}
