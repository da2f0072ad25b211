// Package capabilities extracts layer identifiers from a WMTS capabilities
// document.
package capabilities

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	wmtsNS = "http://www.opengis.net/wmts/1.0"
	owsNS  = "http://www.opengis.net/ows/1.1"
)

type layerFrame struct {
	depth    int
	captured bool
}

// LayerIdentifiers walks the document and returns the text of the first
// direct ows:Identifier child of every wmts:Layer element, in document
// order. Layers without an identifier are skipped. The walk is token-based
// so Layer elements are found at any depth.
func LayerIdentifiers(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var ids []string
	var layers []*layerFrame
	depth := 0
	sawElement := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing capabilities: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawElement = true
			depth++
			if t.Name.Space == wmtsNS && t.Name.Local == "Layer" {
				layers = append(layers, &layerFrame{depth: depth})
				continue
			}
			if t.Name.Space == owsNS && t.Name.Local == "Identifier" && len(layers) > 0 {
				layer := layers[len(layers)-1]
				// Only the first direct child of the innermost open
				// Layer counts; identifiers of nested Style or
				// TileMatrixSet elements sit one level deeper.
				if !layer.captured && depth == layer.depth+1 {
					var text struct {
						Value string `xml:",chardata"`
					}
					if err := dec.DecodeElement(&text, &t); err != nil {
						return nil, fmt.Errorf("parsing capabilities: %w", err)
					}
					layer.captured = true
					ids = append(ids, text.Value)
					// DecodeElement consumed the matching end element.
					depth--
					continue
				}
			}
		case xml.EndElement:
			if len(layers) > 0 && layers[len(layers)-1].depth == depth {
				layers = layers[:len(layers)-1]
			}
			depth--
		}
	}

	// The tokenizer passes bare character data through without complaint;
	// a document with no element at all is not XML.
	if !sawElement {
		return nil, errors.New("parsing capabilities: no XML root element")
	}

	return ids, nil
}

// FromFile parses the capabilities document at path.
func FromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LayerIdentifiers(f)
}
