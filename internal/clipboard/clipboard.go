// Package clipboard moves exported drawings and document JSON through the
// system clipboard.
package clipboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
)

// DocumentType is the MIME target a document is offered under where the
// backend supports custom targets. Plain text is always offered as well.
const DocumentType = "application/x-drafter+json"

// WriteImage encodes img as PNG and publishes it.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return writePNG(buf.Bytes())
}

// WriteDocument publishes an encoded document.
func WriteDocument(doc []byte) error {
	if !json.Valid(doc) {
		return fmt.Errorf("document is not valid JSON")
	}
	return writeDocument(doc)
}

// ReadDocument returns the document currently on the clipboard.
func ReadDocument() ([]byte, error) {
	data, err := readDocument()
	if err != nil {
		return nil, err
	}
	data = bytes.TrimRight(data, "\x00")
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("clipboard does not contain a drawing")
	}
	return data, nil
}
