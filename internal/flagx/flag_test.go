package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "http://api", "-x", "1"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://api"},
		},
		{
			name:    "equals form",
			args:    []string{"-s=redis", "-x", "1"},
			allowed: []string{"-s"},
			want:    []string{"-s=redis"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-a"},
			want:    []string{},
		},
		{
			name:    "flag at end keeps no value",
			args:    []string{"-a"},
			allowed: []string{"-a"},
			want:    []string{"-a"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-a", "-t", "5"},
			allowed: []string{"-a", "-t"},
			want:    []string{"-a", "-t", "5"},
		},
		{
			name:    "order preserved",
			args:    []string{"-t", "5", "-c", "cfg.json", "-a", "x"},
			allowed: []string{"-a", "-c"},
			want:    []string{"-c", "cfg.json", "-a", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFrom(t *testing.T) {
	assert.Equal(t, "a.json", configFileFrom([]string{"-c", "a.json", "-a", "x"}))
	assert.Equal(t, "b.json", configFileFrom([]string{"-config=b.json"}))
	assert.Equal(t, "", configFileFrom([]string{"-a", "x"}))
}
