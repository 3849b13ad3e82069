// Package document turns uploaded resume files into plain text.
package document

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"
	MimeText = "text/plain"

	mimeOctetStream = "application/octet-stream"
)

var extensions = map[string]string{
	".pdf":  MimePDF,
	".docx": MimeDOCX,
	".doc":  MimeDOC,
	".txt":  MimeText,
	".text": MimeText,
}

var (
	reXMLTags   = regexp.MustCompile(`<[^>]+>`)
	reBlanks    = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines  = regexp.MustCompile(`\n\s*\n+`)
	reLineEdges = regexp.MustCompile(`(?m)^ +| +$`)
)

// Extract returns the plain text of a document. The declared mime type decides
// the parser; when it is empty or application/octet-stream the type is sniffed
// from content and then from the filename extension. Filename is used only for
// diagnostics and that last-resort guess.
func Extract(data []byte, mimeType, filename string) (text string, err error) {
	kind := resolveMime(data, mimeType, filename)

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Filename: filename, MimeType: kind, Reason: "parser crashed", Err: fmt.Errorf("%v", r)}
		}
	}()

	if len(data) == 0 {
		return "", &ExtractionError{Filename: filename, MimeType: kind, Reason: "empty document"}
	}

	switch kind {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	case MimeDOC:
		// Legacy binary .doc has no parser of its own; some producers write
		// OOXML with a .doc name, so try the DOCX path and fail explicitly.
		text, err = extractDOCX(data)
		if err != nil {
			return "", &ExtractionError{Filename: filename, MimeType: kind, Reason: "legacy .doc is not DOCX-compatible", Err: err}
		}
	case MimeText:
		text = decodeText(data)
	default:
		return "", &ExtractionError{Filename: filename, MimeType: kind, Reason: "unsupported mime type"}
	}
	if err != nil {
		return "", &ExtractionError{Filename: filename, MimeType: kind, Reason: "parse failed", Err: err}
	}

	text = NormalizeWhitespace(text)
	if text == "" {
		return "", &ExtractionError{Filename: filename, MimeType: kind, Reason: "no text content"}
	}

	return text, nil
}

// resolveMime strips parameters from the declared type and falls back to
// content sniffing and the filename extension.
func resolveMime(data []byte, declared, filename string) string {
	kind := baseMime(declared)
	if kind != "" && kind != mimeOctetStream {
		return kind
	}

	if len(data) > 0 {
		detected := mimetype.Detect(data)
		for m := detected; m != nil; m = m.Parent() {
			if supported(baseMime(m.String())) {
				return baseMime(m.String())
			}
		}
	}

	if byExt, ok := extensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return byExt
	}

	if kind == "" {
		return mimeOctetStream
	}
	return kind
}

func supported(kind string) bool {
	switch kind {
	case MimePDF, MimeDOCX, MimeDOC, MimeText:
		return true
	}
	return false
}

func baseMime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(s); err == nil {
		return strings.ToLower(parsed)
	}
	return strings.ToLower(s)
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text layer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("copy pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	return wordXMLToText(doc.Editable().GetContent()), nil
}

// wordXMLToText flattens WordprocessingML into lines, one per paragraph.
func wordXMLToText(xml string) string {
	r := strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:cr/>", "\n",
		"<w:tab/>", "\t",
	)
	xml = r.Replace(xml)
	return html.UnescapeString(reXMLTags.ReplaceAllString(xml, ""))
}

func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}

// NormalizeWhitespace collapses horizontal whitespace, keeps single line
// breaks between non-empty lines and trims the result.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reLineEdges.ReplaceAllString(s, "")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
