// Package classify is the optional MIME collaborator. The pipeline never
// requires it; wiring it into the scanner fills each record's MIME
// category so category rules can use content hints beside extensions.
package classify

import (
	"github.com/gabriel-vasile/mimetype"

	"github.com/arthur-debert/scour/pkg/types"
)

// mimeClassifier detects MIME types from file content.
type mimeClassifier struct{}

// New returns a content-based types.Classifier
func New() types.Classifier {
	return mimeClassifier{}
}

// Classify reads just enough of the file at path to detect its MIME type.
func (mimeClassifier) Classify(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return mtype.String(), nil
}
