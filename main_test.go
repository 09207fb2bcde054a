package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags([]string{"notesite"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, defaultConfPath, opts.confPath)
	require.False(t, opts.confExplicit)
	require.Empty(t, opts.outDir)
	require.Zero(t, opts.workers)
	require.False(t, opts.verbose)
}

func TestParseFlags_All(t *testing.T) {
	opts, err := parseFlags([]string{"notesite", "-c", "site.yaml", "--out", "public", "-j", "4", "-v"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "site.yaml", opts.confPath)
	require.True(t, opts.confExplicit)
	require.Equal(t, "public", opts.outDir)
	require.Equal(t, 4, opts.workers)
	require.True(t, opts.verbose)
}

func TestParseFlags_Errors(t *testing.T) {
	for name, args := range map[string][]string{
		"negative workers": {"notesite", "-j", "-2"},
		"positional":       {"notesite", "extra"},
		"unknown flag":     {"notesite", "--serve"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseFlags(args, &bytes.Buffer{})
			require.Error(t, err)
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"notesite", "--help"}, &stderr)
	require.ErrorIs(t, err, flag.ErrHelp)
	require.Contains(t, stderr.String(), "--config")
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"notesite", "--version"}, &stdout, &bytes.Buffer{}))
	require.Equal(t, Version+"\n", stdout.String())
}

func TestRun_BuildsSiteWithOverrides(t *testing.T) {
	conf := newTestSite(t, "/")
	confPath := filepath.Join(filepath.Dir(conf.Template), "notesite.yaml")
	out := filepath.Join(t.TempDir(), "public")

	var stderr bytes.Buffer
	err := run(context.Background(), []string{"notesite", "-c", confPath, "-o", out, "-j", "1", "-v"}, &bytes.Buffer{}, &stderr)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(out, "blog", "hello.html"))
	require.Contains(t, stderr.String(), "Writing site")
	require.Contains(t, stderr.String(), "level=DEBUG")

	_, err = os.Stat(filepath.Join(filepath.Dir(confPath), "output", "blog", "hello.html"))
	require.True(t, os.IsNotExist(err))
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	err := run(context.Background(), []string{"notesite", "-c", filepath.Join(t.TempDir(), "nope.yaml")}, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrConfig)
}
