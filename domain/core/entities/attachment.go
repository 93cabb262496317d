package entities

// PendingAttachment is a file queued for upload. It exists only for the
// duration of one submission: added on selection, dropped on upload failure
// or explicit removal, discarded after the record patch succeeds.
type PendingAttachment struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// UploadOutcome is the per-file result of an upload batch. Exactly one of
// URL or Err is meaningful; the Name always carries the original file name
// so the caller can report which file failed.
type UploadOutcome struct {
	Name        string `json:"name"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	URL         string `json:"url,omitempty"`
	Path        string `json:"path,omitempty"`
	Err         error  `json:"-"`
	ErrMessage  string `json:"error,omitempty"`
}

// Succeeded reports whether the file reached durable storage.
func (o UploadOutcome) Succeeded() bool {
	return o.Err == nil && o.URL != ""
}
