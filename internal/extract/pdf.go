package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfPages returns per-page plain text. With skipEmpty set, pages whose
// trimmed text is blank are dropped and the surviving texts are trimmed.
//
// ledongthuc/pdf panics on some malformed inputs, so the parse is wrapped in
// a recover to keep the no-error-escapes extraction contract.
func pdfPages(data []byte, skipEmpty bool) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	for i := 1; i <= rd.NumPage(); i++ {
		p := rd.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, perr := p.GetPlainText(nil)
		if perr != nil {
			if skipEmpty {
				// Unreadable page on the preview path, keep going with the rest.
				continue
			}
			// The download variant reports per-page failures instead of
			// silently truncating the output.
			return nil, fmt.Errorf("extract page %d: %w", i, perr)
		}
		if skipEmpty {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
		}
		pages = append(pages, text)
	}
	return pages, nil
}
