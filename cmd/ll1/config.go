package main

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// traceAdapterKey names the tracing backend. gologadapter is registered under this name.
	traceAdapterKey = "go"

	// tracePrefix prefixes the configuration keys of trace levels, such as trace.ll1.parser.
	tracePrefix = "trace"
)

// tracedPackages lists the tracer keys and the flags that set their levels.
var tracedPackages = map[string]string{
	"ll1.spec":    "trace-spec",
	"ll1.grammar": "trace-grammar",
	"ll1.lexer":   "trace-lexer",
	"ll1.parser":  "trace-parser",
}

func registerTraceFlags(fs *pflag.FlagSet) {
	fs.String("trace", "Error", "trace level of all packages [Debug|Info|Error]")
	fs.String("trace-destination", "", "trace output (Stdout, Stderr, or a file URI; default Stderr)")
	for pkg, flag := range tracedPackages {
		fs.String(flag, "", "trace level of package "+pkg+" (default --trace)")
	}
}

// flagConfig exposes command-line flags as a schuko configuration, so that tracing is configured
// the same way whether values come from flags or from a configuration file.
type flagConfig struct {
	fs *pflag.FlagSet
}

var _ schuko.Configuration = &flagConfig{}

func newFlagConfig(fs *pflag.FlagSet) *flagConfig {
	return &flagConfig{
		fs: fs,
	}
}

func (c *flagConfig) InitDefaults() {
}

// flagName maps a configuration key to a flag name.
func (c *flagConfig) flagName(key string) (string, bool) {
	switch key {
	case "tracing", "tracing.adapter":
		return "", true
	case "tracing.destination":
		return "trace-destination", true
	case tracePrefix + ".root":
		return "trace", true
	}
	if pkg := strings.TrimPrefix(key, tracePrefix+"."); pkg != key {
		if flag, ok := tracedPackages[pkg]; ok {
			return flag, true
		}
	}
	return "", false
}

func (c *flagConfig) IsSet(key string) bool {
	name, ok := c.flagName(key)
	if !ok {
		return false
	}
	if name == "" {
		return true
	}
	f := c.fs.Lookup(name)
	return f != nil && f.Changed
}

func (c *flagConfig) GetString(key string) string {
	name, ok := c.flagName(key)
	if !ok {
		return ""
	}
	if name == "" {
		return traceAdapterKey
	}
	v, err := c.fs.GetString(name)
	if err != nil {
		return ""
	}
	if v == "" && name != "trace" && name != "trace-destination" {
		v, _ = c.fs.GetString("trace")
	}
	return v
}

func (c *flagConfig) GetInt(key string) int {
	n, err := strconv.Atoi(c.GetString(key))
	if err != nil {
		return 0
	}
	return n
}

func (c *flagConfig) GetBool(key string) bool {
	b, err := strconv.ParseBool(c.GetString(key))
	if err != nil {
		return false
	}
	return b
}

func (c *flagConfig) IsInteractive() bool {
	return false
}

// setupTracing installs trace2go as the tracer selector of every package. Tracers write through the
// Go standard logger.
func setupTracing(cmd *cobra.Command, args []string) error {
	tracing.RegisterTraceAdapter(traceAdapterKey, gologadapter.GetAdapter(), false)
	err := trace2go.ConfigureRoot(newFlagConfig(cmd.Flags()), tracePrefix, trace2go.ReplaceTracers(true))
	if err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
