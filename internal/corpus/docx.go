package corpus

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// docxToText returns the paragraphs of the main document part, one per line.
func docxToText(name string, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnreadableDocument, name, err)
	}

	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrUnreadableDocument, name, err)
		}
		defer rc.Close()

		text, err := wordprocessingText(rc)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrUnreadableDocument, name, err)
		}
		return text, nil
	}

	return "", fmt.Errorf("%w: %q: missing %s", ErrUnreadableDocument, name, docxBody)
}

// wordprocessingText walks WordprocessingML and keeps the content of text
// runs. Tabs and breaks become whitespace and every paragraph ends a line.
func wordprocessingText(r io.Reader) (string, error) {
	var (
		sb     strings.Builder
		inText bool
	)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
