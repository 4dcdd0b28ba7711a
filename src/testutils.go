package bell103

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CaptureOutput runs command and returns what it printed to stdout.
// Log output goes to stderr and is not captured.
func CaptureOutput(t *testing.T, command func()) string {
	t.Helper()

	var oldStdout = os.Stdout
	defer func() {
		os.Stdout = oldStdout
	}()

	var r, w, pipeErr = os.Pipe()
	require.NoError(t, pipeErr)

	os.Stdout = w

	// Drain as we go so a chatty command can't fill the pipe and block.
	var output = make(chan []byte)
	go func() {
		var outputBytes, _ = io.ReadAll(r)
		output <- outputBytes
	}()

	command()

	w.Close() //nolint:gosec

	os.Stdout = oldStdout

	return string(<-output)
}

func AssertOutputContains(t *testing.T, command func(), expectedOutputContains string) {
	t.Helper()

	assert.Contains(t, CaptureOutput(t, command), expectedOutputContains)
}
