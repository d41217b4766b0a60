package entities

import "testing"

func TestDocumentTypeFor(t *testing.T) {
	tests := []struct {
		url  string
		want DocumentType
	}{
		{"https://docs.google.com/spreadsheets/d/xyz", DocumentTypeSheets},
		{"https://docs.google.com/document/d/xyz", DocumentTypeDocs},
		{"https://drive.google.com/drive/folders/abc", DocumentTypeDrive},
		{"https://example.com/files/report.pdf", DocumentTypeDrive},
		{"not a url", DocumentTypeDrive},
		{"https://x/spreadsheets/document", DocumentTypeSheets},
	}

	for _, tt := range tests {
		if got := DocumentTypeFor(tt.url); got != tt.want {
			t.Errorf("DocumentTypeFor(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestDocumentTitleFor(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://docs.google.com/document/d/xyz/edit?title=Quarterly%20Plan", "Quarterly Plan"},
		{"https://docs.google.com/spreadsheets/d/budget-sheet", "Budget Sheet"},
		{"https://example.com/files/team_roadmap-2024/", "Team Roadmap 2024"},
		{"https://example.com/?title=ignored", UntitledDocument},
		{"https://example.com", UntitledDocument},
		{"not a url", UntitledDocument},
		{"://broken", UntitledDocument},
	}

	for _, tt := range tests {
		if got := DocumentTitleFor(tt.url); got != tt.want {
			t.Errorf("DocumentTitleFor(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestNewDocumentDraft(t *testing.T) {
	d := NewDocumentDraft("  https://docs.google.com/document/d/meeting-notes  ", "")
	if d.Title != "Meeting Notes" || d.Type != DocumentTypeDocs {
		t.Errorf("unexpected draft %+v", d)
	}
	if d.URL != "https://docs.google.com/document/d/meeting-notes" {
		t.Errorf("url not trimmed: %q", d.URL)
	}

	d = NewDocumentDraft("https://docs.google.com/spreadsheets/d/x", "Budget")
	if d.Title != "Budget" || d.Type != DocumentTypeSheets {
		t.Errorf("supplied title should win: %+v", d)
	}

	empty := NewDocumentDraft("   ", "")
	if err := empty.Validate(); err != ErrEmptyURL {
		t.Errorf("error = %v, want ErrEmptyURL", err)
	}
}
