package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-a", ":50051", "-alg", "argon2id"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", ":50051"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=srv.json", "-a", ":1"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=srv.json"},
		},
		{
			name:         "order is preserved",
			args:         []string{"-l", "debug", "-x", "1", "-a", ":2"},
			allowedFlags: []string{"-a", "-l"},
			want:         []string{"-l", "debug", "-a", ":2"},
		},
		{
			name:         "flag followed by another flag takes no value",
			args:         []string{"-v", "-a", ":3"},
			allowedFlags: []string{"-v", "-a"},
			want:         []string{"-v", "-a", ":3"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
		{
			name:         "empty input",
			args:         nil,
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-a", ":1", "-config", "b.json"}))
	assert.Equal(t, "c.json", ConfigPath([]string{"-config=c.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", ":1"}))
}

func TestJsonConfigFlags_ReadsProcessArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin", "-l", "debug", "-c", "server.json"}
	assert.Equal(t, "server.json", JsonConfigFlags())
}
