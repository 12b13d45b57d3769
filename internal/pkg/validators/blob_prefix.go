package validators

import (
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BlobPrefixValidation validates a blob name prefix. An empty prefix is
// valid; otherwise it must be a relative slash-separated path ending in "/"
// that does not climb out of the store root.
func BlobPrefixValidation(fl validator.FieldLevel) bool {
	prefix := fl.Field().String()
	if prefix == "" {
		return true
	}
	if !strings.HasSuffix(prefix, "/") || strings.HasPrefix(prefix, "/") || strings.Contains(prefix, "\\") {
		return false
	}

	cleaned := path.Clean(prefix)
	return cleaned != "." && cleaned+"/" == prefix && !strings.HasPrefix(cleaned, "..")
}
