package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeOutputFilePaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		caption    string
		path       string
		cgramPath  string
		reportPath string
	}{
		{
			caption:    "an empty path writes the report to the working directory",
			path:       "",
			cgramPath:  "",
			reportPath: filepath.Join(wd, "expr-report.json"),
		},
		{
			caption:    "a directory",
			path:       dir,
			cgramPath:  filepath.Join(dir, "expr.json"),
			reportPath: filepath.Join(dir, "expr-report.json"),
		},
		{
			caption:    "an existing file",
			path:       file,
			cgramPath:  file,
			reportPath: filepath.Join(dir, "expr-report.json"),
		},
		{
			caption:    "a non-existent file",
			path:       filepath.Join(dir, "new.json"),
			cgramPath:  filepath.Join(dir, "new.json"),
			reportPath: filepath.Join(dir, "expr-report.json"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			cgramPath, reportPath, err := makeOutputFilePaths("expr", tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.cgramPath, cgramPath)
			assert.Equal(t, tt.reportPath, reportPath)
		})
	}
}
