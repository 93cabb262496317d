package entities

import (
	"time"

	"reunion-backend/pkg/utils"
)

// Document is the schemaless record shape exchanged with the document
// store. Numeric values may arrive as int, int64 or float64 depending on
// the backend's JSON decoding, so reads go through the helpers below.
type Document = map[string]interface{}

func fieldString(doc Document, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func fieldInt(doc Document, key string) int {
	switch v := doc[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func fieldStrings(doc Document, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func fieldTime(doc Document, key string) time.Time {
	switch v := doc[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := utils.ParseRFC3339(v); err == nil {
			return t
		}
	}
	return time.Time{}
}
