package models

import "time"

// AccessLevel is a per-document visibility classification. It is an
// attribute of the uploaded content, orthogonal to the authorization model.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "public"
	AccessDepartment AccessLevel = "department"
	AccessPrivate    AccessLevel = "private"
)

// Valid reports whether l is one of the known access levels.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessPublic, AccessDepartment, AccessPrivate:
		return true
	}
	return false
}

type Category struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Document struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	FileName      string      `json:"file_name"`
	FileSize      int64       `json:"file_size"`
	FileType      string      `json:"file_type"`
	AccessLevel   AccessLevel `json:"access_level"`
	CategoryID    int64       `json:"document_category_id"`
	DepartmentID  int64       `json:"department_id"`
	UploadedBy    int64       `json:"uploaded_by"`
	DownloadCount int64       `json:"download_count"`
	CreatedAt     time.Time   `json:"created_at"`
	Category      *Category   `json:"category,omitempty"`
	Department    *Department `json:"department,omitempty"`
	Uploader      *Identity   `json:"uploader,omitempty"`
}

// DocumentUpdate carries the editable metadata for PUT /documents/{id}.
type DocumentUpdate struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CategoryID  int64       `json:"document_category_id"`
	AccessLevel AccessLevel `json:"access_level"`
}
