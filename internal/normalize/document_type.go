// Package normalize canonicalizes heterogeneous and legacy-shaped profile
// fragments before they reach the merge engine. All functions are pure and
// tolerate missing or malformed input; none of them ever panic or fail.
package normalize

import (
	"path/filepath"
	"strings"
)

// DocumentType is the canonical classification of an uploaded document.
type DocumentType string

// Canonical document types.
const (
	DocPDF     DocumentType = "pdf"
	DocDOCX    DocumentType = "docx"
	DocDOC     DocumentType = "doc"
	DocTXT     DocumentType = "txt"
	DocUnknown DocumentType = "unknown"
)

// DocumentDescriptor carries whatever identifying information the upload
// layer has for a document. Any subset of fields may be set.
type DocumentDescriptor struct {
	Filename       string
	MimeType       string
	StoredFileType string
}

// mimeTypes maps exact MIME strings to canonical document types.
var mimeTypes = map[string]DocumentType{
	"application/pdf": DocPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": DocDOCX,
	"application/msword": DocDOC,
	"text/plain":         DocTXT,
}

// extensions maps lowercased filename extensions to canonical document types.
var extensions = map[string]DocumentType{
	".pdf":  DocPDF,
	".docx": DocDOCX,
	".doc":  DocDOC,
	".txt":  DocTXT,
}

// legacyFragments maps substrings found in legacy stored-type values to
// canonical document types, checked in order because older rows stored
// whatever the browser reported, sometimes with extra decoration.
var legacyFragments = []struct {
	fragment string
	docType  DocumentType
}{
	{"openxmlformats", DocDOCX},
	{"wordprocessingml", DocDOCX},
	{"msword", DocDOC},
	{"pdf", DocPDF},
	{"plain", DocTXT},
	{"docx", DocDOCX},
	{"doc", DocDOC},
	{"txt", DocTXT},
}

// NormalizeDocumentType resolves a canonical document type from a descriptor.
// Resolution order: exact MIME type, then filename extension, then substring
// match against legacy stored-type values. Returns DocUnknown when nothing
// matches; never an error.
func NormalizeDocumentType(desc DocumentDescriptor) DocumentType {
	if mime := strings.ToLower(strings.TrimSpace(desc.MimeType)); mime != "" {
		if dt, ok := mimeTypes[mime]; ok {
			return dt
		}
	}

	if name := strings.TrimSpace(desc.Filename); name != "" {
		ext := strings.ToLower(filepath.Ext(name))
		if dt, ok := extensions[ext]; ok {
			return dt
		}
	}

	if stored := strings.ToLower(strings.TrimSpace(desc.StoredFileType)); stored != "" {
		for _, lf := range legacyFragments {
			if strings.Contains(stored, lf.fragment) {
				return lf.docType
			}
		}
	}

	return DocUnknown
}
