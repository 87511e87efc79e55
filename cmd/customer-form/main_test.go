package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpListsEnvironmentOverrides(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "CUSTOMERS_DB_FILE")
	require.Contains(t, out.String(), "CUSTOMERS_LOG_LEVEL")
}
