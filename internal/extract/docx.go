package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// imageExts are the embedded media types copied out of a DOCX archive.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// docxPreview extracts paragraph text and embedded images from a DOCX file.
// Paragraphs are trimmed, empty ones skipped, and the rest joined with
// newlines. Images under word/media/ are copied through the sink into a
// <filename>_images folder; repeated extraction overwrites in place.
func docxPreview(filename string, data []byte, sink ImageSink) (string, []string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("open docx: %w", err)
	}

	paras, err := readParagraphs(zr)
	if err != nil {
		return "", nil, err
	}
	kept := make([]string, 0, len(paras))
	for _, p := range paras {
		if t := strings.TrimSpace(p); t != "" {
			kept = append(kept, t)
		}
	}
	text := strings.Join(kept, "\n")

	var images []string
	folder := filename + "_images"
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "word/media/") {
			continue
		}
		if !imageExts[strings.ToLower(path.Ext(f.Name))] {
			continue
		}
		img, err := readZipFile(f)
		if err != nil {
			return text, images, fmt.Errorf("read %s: %w", f.Name, err)
		}
		servable, err := sink.SaveImage(folder, path.Base(f.Name), img)
		if err != nil {
			return text, images, fmt.Errorf("save image %s: %w", path.Base(f.Name), err)
		}
		images = append(images, servable)
	}
	return text, images, nil
}

// docxParagraphs returns the raw paragraph texts of a DOCX file, untrimmed
// and unfiltered.
func docxParagraphs(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	return readParagraphs(zr)
}

// readParagraphs walks word/document.xml collecting the text runs (w:t) of
// each paragraph (w:p).
func readParagraphs(zr *zip.Reader) ([]string, error) {
	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var (
		paras []string
		cur   strings.Builder
		depth int
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				depth++
				if depth == 1 {
					cur.Reset()
				}
			case "t":
				var run struct {
					Text string `xml:",chardata"`
				}
				if err := dec.DecodeElement(&run, &el); err == nil {
					cur.WriteString(run.Text)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "p" && depth > 0 {
				depth--
				if depth == 0 {
					paras = append(paras, cur.String())
				}
			}
		}
	}
	return paras, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
