package main

import (
	"bytes"
	"errors"
	"testing"

	"city-api/internal/bootstrap"
	"city-api/internal/domain/model"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-3", "abc", ""} {
		_, err := parseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printJSON(&out, model.CountResponse{Count: 3}))
	assert.JSONEq(t, `{"count":3}`, out.String())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range []string{"preload", "count", "list", "favorite", "reset", "weather"} {
		assert.True(t, names[name], name)
	}
	assert.NotNil(t, preloadCmd.Flags().Lookup("force"))
	assert.NotNil(t, resetCmd.Flags().Lookup("reload"))
	assert.NotNil(t, listCmd.Flags().Lookup("query"))
}

func TestContainerClosedWhenCommandFails(t *testing.T) {
	container = &bootstrap.Container{}
	t.Cleanup(func() { container = nil })

	failing := &cobra.Command{
		Use:           "failing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			return errors.New("store unavailable")
		},
	}
	failing.SetArgs([]string{})

	require.Error(t, failing.Execute())
	assert.Nil(t, container)
}

func TestParseIDAcceptsSurroundingSpaces(t *testing.T) {
	id, err := parseID(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}
