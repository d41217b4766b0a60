package entities

import (
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// UntitledDocument is used when no title can be derived from a URL.
const UntitledDocument = "Untitled Document"

type DocumentType string

const (
	DocumentTypeSheets DocumentType = "sheets"
	DocumentTypeDocs   DocumentType = "docs"
	DocumentTypeDrive  DocumentType = "drive"
)

// DocumentLink is a bookmarked external document. Links are immutable once
// created.
type DocumentLink struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	URL       string       `json:"url"`
	Type      DocumentType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// DocumentDraft is what the client sends to the store of record.
type DocumentDraft struct {
	Title string
	URL   string
	Type  DocumentType
}

// NewDocumentDraft derives the title (when empty) and the type from rawURL.
func NewDocumentDraft(rawURL, title string) DocumentDraft {
	rawURL = strings.TrimSpace(rawURL)
	title = strings.TrimSpace(title)
	if title == "" {
		title = DocumentTitleFor(rawURL)
	}
	return DocumentDraft{Title: title, URL: rawURL, Type: DocumentTypeFor(rawURL)}
}

// DocumentTypeFor classifies a link by substring: spreadsheets beat documents,
// anything else is a drive link.
func DocumentTypeFor(rawURL string) DocumentType {
	switch {
	case strings.Contains(rawURL, "spreadsheets"):
		return DocumentTypeSheets
	case strings.Contains(rawURL, "document"):
		return DocumentTypeDocs
	default:
		return DocumentTypeDrive
	}
}

// DocumentTitleFor derives a display title from an absolute URL. Google hosts
// may carry an explicit title query parameter; otherwise the last path
// segment is humanised.
func DocumentTitleFor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return UntitledDocument
	}

	if strings.Contains(u.Hostname(), "google.com") {
		if title := u.Query().Get("title"); title != "" {
			return title
		}
	}

	var last string
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			last = part
		}
	}
	if last == "" {
		return UntitledDocument
	}
	if unescaped, err := url.PathUnescape(last); err == nil {
		last = unescaped
	}

	words := strings.Split(strings.NewReplacer("-", " ", "_", " ").Replace(last), " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

func (d *DocumentDraft) Validate() error {
	if d.URL == "" {
		return ErrEmptyURL
	}
	return nil
}
