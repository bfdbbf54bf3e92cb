package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorAlwaysReported(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Error(CRUMB, "no root for %q", "sftp")

	assert.Contains(t, buf.String(), `ERROR [CRUMB] no root for "sftp"`)
}
