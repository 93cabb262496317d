package common

import (
	"encoding/json"
	"net/http"

	apperrors "reunion-backend/pkg/errors"
)

// ToastDismissMillis is the auto-dismiss hint sent with every toast.
const ToastDismissMillis = 5000

// Toast is the user-feedback payload attached to API responses. The web
// client renders it as a transient notification.
type Toast struct {
	Title         string `json:"title"`
	Message       string `json:"message"`
	Icon          string `json:"icon,omitempty"`
	DismissMillis int    `json:"dismiss_ms"`
}

// NewToast builds a toast with the standard auto-dismiss interval.
func NewToast(title, message, icon string) *Toast {
	return &Toast{
		Title:         title,
		Message:       message,
		Icon:          icon,
		DismissMillis: ToastDismissMillis,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Toast   *Toast      `json:"toast,omitempty"`
	Meta    *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MetaInfo contains metadata about the response
type MetaInfo struct {
	RequestID  string          `json:"request_id,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// PaginationInfo contains pagination details
type PaginationInfo struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Count   int  `json:"count"`
	HasMore bool `json:"has_more"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeResponse(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// RespondWithToast sends a JSON response carrying a toast notification.
func RespondWithToast(w http.ResponseWriter, status int, data interface{}, toast *Toast) {
	writeResponse(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
		Toast:   toast,
	})
}

// RespondPage sends a JSON response carrying pagination metadata.
func RespondPage(w http.ResponseWriter, status int, data interface{}, pagination *PaginationInfo) {
	writeResponse(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
		Meta:    &MetaInfo{Pagination: pagination},
	})
}

// RespondError sends an error response
func RespondError(w http.ResponseWriter, status int, code, message string) {
	writeResponse(w, status, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
		Toast:   NewToast("Something went wrong", message, "alert"),
	})
}

// RespondAppError maps an application error onto the wire envelope,
// keeping the backend-provided message visible to the user.
func RespondAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		RespondError(w, http.StatusInternalServerError, string(apperrors.ErrorTypeInternal), "internal error")
		return
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	writeResponse(w, status, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Toast: NewToast("Something went wrong", appErr.Message, "alert"),
	})
}

func writeResponse(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// ParseJSONBody parses JSON request body with size limit
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
