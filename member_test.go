package pyzipgrep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMember(t *testing.T) {
	tests := []struct {
		raw   string
		name  string
		ext   string
		isDir bool
	}{
		{raw: `docs\readme.txt`, name: "readme.txt", ext: ".txt"},
		{raw: "logs/app.log.gz", name: "app.log.gz", ext: ".gz"},
		{raw: "Makefile", name: "Makefile", ext: ""},
		{raw: "config/.env", name: ".env", ext: ""},
		{raw: ".config.yaml", name: ".config.yaml", ext: ".yaml"},
		{raw: "src/", name: "src", isDir: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			m := NormalizeMember(tt.raw)
			assert.NotContains(t, string(m), `\`)
			assert.Equal(t, tt.name, m.Name())
			assert.Equal(t, tt.ext, m.Ext())
			assert.Equal(t, tt.isDir, m.IsDir())
		})
	}
}
