package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"long hash":  {commit: "0123456789abcdef", want: "01234567"},
		"short hash": {commit: "abc", want: "abc"},
		"unknown":    {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}

func TestPrintPlainVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPlainVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, "autochangelog "+Version+"\n")
	assert.Contains(t, out, "go: "+runtime.Version()+"\n")
	assert.Contains(t, out, "platform: "+runtime.GOOS+"/"+runtime.GOARCH+"\n")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	assert.NoError(t, err)
	assert.Contains(t, stdout, "autochangelog")
	assert.Contains(t, stdout, Version)
}
