// Package extract converts a stored file's bytes into displayable text and,
// for DOCX, a list of extracted image references. Extraction never returns a
// Go error: every failure is captured in the Result so callers can render
// each outcome distinctly.
package extract

import (
	"strings"
)

// Outcome classifies an extraction attempt.
type Outcome int

const (
	// OutcomeOK means usable text and/or images were produced.
	OutcomeOK Outcome = iota
	// OutcomeUnsupported means the file extension has no extractor.
	OutcomeUnsupported
	// OutcomeEmpty means extraction succeeded but yielded no usable content.
	OutcomeEmpty
	// OutcomeFailed means the file could not be parsed; Reason carries the cause.
	OutcomeFailed
)

// Result is the outcome of one extraction attempt. Format is the lower-cased
// extension the file was handled as, letting callers tailor messages per
// format without inspecting Text.
type Result struct {
	Outcome Outcome
	Format  string
	Text    string
	Images  []string
	Reason  string
}

// ImageSink receives images found inside a document. SaveImage stores the
// image under the given folder and returns the path it is servable at.
type ImageSink interface {
	SaveImage(folder, name string, data []byte) (string, error)
}

// Ext returns the trailing dot-suffix of name, lower-cased. A name without a
// dot is treated as being its own extension, so extension-less files fall
// through to the unsupported path.
func Ext(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}

// Preview extracts display text and images for the view page.
//
// Post-processing for supported formats: the text is trimmed and runs of two
// or more consecutive blank lines collapse into exactly one blank line. A
// result with no text and no images is OutcomeEmpty.
func Preview(filename string, data []byte, images ImageSink) Result {
	format := Ext(filename)
	res := Result{Format: format}

	var text string
	switch format {
	case "txt":
		text = decodeText(data)
	case "pdf":
		pages, err := pdfPages(data, true)
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Reason = err.Error()
			return res
		}
		text = strings.Join(pages, "\n\n")
	case "docx":
		docText, imgs, err := docxPreview(filename, data, images)
		res.Images = imgs
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Reason = err.Error()
			return res
		}
		text = docText
	default:
		res.Outcome = OutcomeUnsupported
		return res
	}

	res.Text = collapseBlankLines(text)
	if res.Text == "" && len(res.Images) == 0 {
		res.Outcome = OutcomeEmpty
		return res
	}
	res.Outcome = OutcomeOK
	return res
}

// PlainText extracts text for download. Unlike Preview it performs no image
// extraction and no blank-line collapsing, and it reports unsupported types
// and blank results as distinct outcomes rather than placeholder text.
func PlainText(filename string, data []byte) Result {
	format := Ext(filename)
	res := Result{Format: format}

	switch format {
	case "txt":
		res.Text = decodeText(data)
	case "pdf":
		pages, err := pdfPages(data, false)
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Reason = err.Error()
			return res
		}
		res.Text = strings.TrimSpace(strings.Join(pages, "\n\n"))
	case "docx":
		paras, err := docxParagraphs(data)
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Reason = err.Error()
			return res
		}
		kept := paras[:0]
		for _, p := range paras {
			if strings.TrimSpace(p) != "" {
				kept = append(kept, p)
			}
		}
		res.Text = strings.Join(kept, "\n")
	default:
		res.Outcome = OutcomeUnsupported
		return res
	}

	if strings.TrimSpace(res.Text) == "" {
		res.Outcome = OutcomeEmpty
		return res
	}
	res.Outcome = OutcomeOK
	return res
}

// collapseBlankLines trims s and squeezes every run of blank (or
// whitespace-only) lines down to a single empty line.
func collapseBlankLines(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
