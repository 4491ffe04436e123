package msg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_FlattensNestedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yml")
	content := "city:\n  error:\n    not-found: \"City {0} not found\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, Init(path))

	assert.Equal(t, "City 42 not found", GetMessage("city.error.not-found", 42))
}

func TestInit_MissingFile(t *testing.T) {
	err := Init(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestGetMessage(t *testing.T) {
	Register("test.plain", "hello")
	Register("test.args", "{0} took {1} ({2})")
	Register("test.struct", "payload {0}")

	tests := []struct {
		name string
		key  string
		args []interface{}
		want string
	}{
		{name: "no args", key: "test.plain", want: "hello"},
		{name: "primitive and error args", key: "test.args", args: []interface{}{"preload", 1.5, errors.New("boom")}, want: "preload took 1.5 (boom)"},
		{name: "struct arg is json", key: "test.struct", args: []interface{}{struct {
			ID int `json:"id"`
		}{ID: 7}}, want: `payload {"id":7}`},
		{name: "unknown key", key: "test.absent", want: "Message not found: test.absent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetMessage(tt.key, tt.args...))
		})
	}
}
