//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefixHolder struct {
	Prefix string `validate:"blobprefix"`
}

func TestBlobPrefixValidation(t *testing.T) {
	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("blobprefix", BlobPrefixValidation))

	tests := []struct {
		prefix string
		valid  bool
	}{
		{"", true},
		{"exports/", true},
		{"exports/2024/", true},
		{"exports", false},
		{"/exports/", false},
		{"../exports/", false},
		{"exports/../", false},
		{"exports//", false},
		{"./", false},
		{`exports\`, false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			err := validate.Struct(prefixHolder{Prefix: tt.prefix})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
