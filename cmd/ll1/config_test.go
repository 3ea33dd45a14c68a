package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerTraceFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestFlagConfig(t *testing.T) {
	tests := []struct {
		caption string
		args    []string
		key     string
		isSet   bool
		value   string
	}{
		{
			caption: "the adapter is always the Go logger",
			key:     "tracing.adapter",
			isSet:   true,
			value:   traceAdapterKey,
		},
		{
			caption: "the root level defaults to Error",
			key:     "trace.root",
			value:   "Error",
		},
		{
			caption: "the root level follows --trace",
			args:    []string{"--trace", "Debug"},
			key:     "trace.root",
			isSet:   true,
			value:   "Debug",
		},
		{
			caption: "a package level falls back to --trace",
			args:    []string{"--trace", "Info"},
			key:     "trace.ll1.parser",
			value:   "Info",
		},
		{
			caption: "a package level overrides --trace",
			args:    []string{"--trace", "Info", "--trace-grammar", "Debug"},
			key:     "trace.ll1.grammar",
			isSet:   true,
			value:   "Debug",
		},
		{
			caption: "the destination has no fallback",
			args:    []string{"--trace", "Info"},
			key:     "tracing.destination",
			value:   "",
		},
		{
			caption: "the destination follows --trace-destination",
			args:    []string{"--trace-destination", "Stdout"},
			key:     "tracing.destination",
			isSet:   true,
			value:   "Stdout",
		},
		{
			caption: "unknown keys are unset",
			args:    []string{"--trace", "Debug"},
			key:     "trace.ll1.unknown",
			value:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c := newFlagConfig(newTestFlagSet(t, tt.args...))
			assert.Equal(t, tt.isSet, c.IsSet(tt.key))
			assert.Equal(t, tt.value, c.GetString(tt.key))
		})
	}
}

func TestFlagConfig_Conversions(t *testing.T) {
	c := newFlagConfig(newTestFlagSet(t, "--trace", "true"))
	assert.True(t, c.GetBool("trace.root"))
	assert.Equal(t, 0, c.GetInt("trace.root"))
	assert.False(t, c.IsInteractive())
}
