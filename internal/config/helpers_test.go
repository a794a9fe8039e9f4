package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("FARS_DATA_DIR") //nolint:errcheck // best-effort cleanup of .env side effects
	})
}
