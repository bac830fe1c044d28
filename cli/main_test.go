package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/meisterluk/dupimages-go/internals"
	v1 "github.com/meisterluk/dupimages-go/v1"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutputs() (*bytes.Buffer, *bytes.Buffer, Output, Output) {
	var stdout, stderr bytes.Buffer
	return &stdout, &stderr, newPlainOutput(&stdout), newPlainOutput(&stderr)
}

func testImageFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/pics/a.jpg":        "same content",
		"/pics/sub/b.jpg":    "same content",
		"/pics/c.png":        "other content",
		"/pics/readme.txt":   "same content",
		"/pics/nested/x.gif": "gif",
		"/pics/y.gif":        "gif",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func testFindCommand(fs afero.Fs) *FindCommand {
	return &FindCommand{
		Root:          "/pics",
		Extensions:    internals.DefaultExtensions,
		HashAlgorithm: "md5",
		Workers:       2,
		NoAbbrev:      true,
		fs:            fs,
	}
}

func TestFindCommandText(t *testing.T) {
	stdout, _, w, log := testOutputs()
	cmd := testFindCommand(testImageFs(t))

	code, err := cmd.Run(context.Background(), w, log)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)

	text := stdout.String()
	assert.Contains(t, text, "Found 2 duplicates in 2 groups.")
	// 12 wasted bytes before 3 wasted bytes
	assert.Contains(t, text, "Group 1: 2 copies (12.00 B each)\n")
	assert.Contains(t, text, "  [original]  /pics/a.jpg\n  [duplicate] /pics/sub/b.jpg\n")
	assert.Contains(t, text, "  [original]  /pics/nested/x.gif\n  [duplicate] /pics/y.gif\n")
	assert.Contains(t, text, "Total wasted disk space: 15.00 B")
	assert.NotContains(t, text, "readme.txt")
}

func TestFindCommandJSON(t *testing.T) {
	stdout, _, w, log := testOutputs()
	cmd := testFindCommand(testImageFs(t))
	cmd.JSONOutput = true

	code, err := cmd.Run(context.Background(), w, log)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)

	var data internals.JSONReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &data))
	assert.Equal(t, 2, data.GroupCount)
	assert.Equal(t, uint64(15), data.WastedBytes)
	assert.Equal(t, "/pics/a.jpg", data.Groups[0].Keeper)
}

func TestFindCommandExtensions(t *testing.T) {
	stdout, _, w, log := testOutputs()
	cmd := testFindCommand(testImageFs(t))
	cmd.Extensions = []string{"jpg", "txt"}

	code, err := cmd.Run(context.Background(), w, log)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "Group 1: 3 copies (12.00 B each)")
	assert.Contains(t, stdout.String(), "/pics/readme.txt")
}

func TestFindCommandInvalidRoot(t *testing.T) {
	stdout, _, w, log := testOutputs()
	cmd := testFindCommand(testImageFs(t))
	cmd.Root = "/does/not/exist"

	code, err := cmd.Run(context.Background(), w, log)
	assert.Equal(t, exitInvalidInput, code)
	assert.ErrorIs(t, err, v1.ErrInvalidRoot)
	assert.Empty(t, stdout.String())
}

func TestFindCommandInterrupted(t *testing.T) {
	_, _, w, log := testOutputs()
	cmd := testFindCommand(testImageFs(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code, err := cmd.Run(ctx, w, log)
	assert.Equal(t, exitInterrupted, code)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindCommandConfigOutput(t *testing.T) {
	stdout, _, w, log := testOutputs()
	cmd := testFindCommand(testImageFs(t))
	cmd.ConfigOutput = true

	code, err := cmd.Run(context.Background(), w, log)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)

	var config map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &config))
	assert.Equal(t, "/pics", config["root"])
	assert.Equal(t, "md5", config["hash-algorithm"])
	assert.Equal(t, true, config["config"])
}

func TestHashCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.png", []byte("abc"), 0o644))
	require.NoError(t, fs.MkdirAll("/dir", 0o755))

	stdout, _, w, log := testOutputs()
	cmd := &HashCommand{Paths: []string{"/a.png"}, HashAlgorithm: "md5", fs: fs}
	code, err := cmd.Run(w, log)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72  /a.png\n", stdout.String())

	stdout, stderr, w, log := testOutputs()
	cmd = &HashCommand{Paths: []string{"/a.png", "/missing.png", "/dir"}, HashAlgorithm: "md5", JSONOutput: true, fs: fs}
	code, err = cmd.Run(w, log)
	assert.Error(t, err)
	assert.Equal(t, exitInvalidInput, code)
	assert.Contains(t, stderr.String(), "/missing.png")
	assert.Contains(t, stderr.String(), "/dir: not a regular file")

	var results []HashJSONResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, HashJSONResult{Path: "/a.png", Size: 3, Digest: "900150983cd24fb0d6963f7d28e17f72"}, results[0])
}

func TestHashAlgosCommand(t *testing.T) {
	stdout, _, w, log := testOutputs()
	code, err := (&HashAlgosCommand{}).Run(w, log)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "md5 *\n")
	assert.Contains(t, stdout.String(), "blake3\n")

	_, _, w, log = testOutputs()
	code, err = (&HashAlgosCommand{CheckSupport: "sha-256"}).Run(w, log)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)

	stdout, _, w, log = testOutputs()
	code, err = (&HashAlgosCommand{CheckSupport: "whirlpool", JSONOutput: true}).Run(w, log)
	require.NoError(t, err)
	assert.Equal(t, exitUnsupported, code)

	var data HashAlgosJSONResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &data))
	assert.False(t, data.CheckSucceeded)
	assert.Equal(t, "md5", data.Default)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, w, log := testOutputs()
	code, err := (&VersionCommand{JSONOutput: true}).Run(w, log)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)

	var data VersionJSONResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &data))
	assert.Equal(t, "1.0.0", data.Version)
	assert.Len(t, data.HashAlgos, len(internals.SupportedHashAlgorithms()))
	assert.Contains(t, data.Extensions, "webp")

	stdout, _, w, log = testOutputs()
	_, err = (&VersionCommand{}).Run(w, log)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "\tmd5 *  (128 bits)\n")
}

func TestLocateDownloads(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("HOME", "/home/tester")

	t.Setenv("XDG_DOWNLOAD_DIR", "/srv/downloads/")
	dir, err := locateDownloads()
	require.NoError(t, err)
	assert.Equal(t, "/srv/downloads", dir)

	t.Setenv("XDG_DOWNLOAD_DIR", "$HOME/Herunterladen")
	dir, err = locateDownloads()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/Herunterladen", dir)

	t.Setenv("XDG_DOWNLOAD_DIR", "")
	dir, err = locateDownloads()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/Downloads", dir)
	assert.Equal(t, "/home/tester", homeDirectory())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("info", &buf)
	require.NoError(t, err)
	logger.Debug("invisible")
	logger.Info("visible", "path", "/a.png")
	assert.NotContains(t, buf.String(), "invisible")
	assert.Contains(t, buf.String(), "path=/a.png")

	_, err = newLogger("loud", &buf)
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"png", "jpg", "gif"}, splitList([]string{"png,jpg", " gif ", ""}))
	assert.Empty(t, splitList(nil))
}

func TestErrorResponse(t *testing.T) {
	_, stderr, _, log := testOutputs()
	resp := &errorResponse{ErrorMessage: "boom", ExitCode: exitInvalidInput}
	assert.Equal(t, exitInvalidInput, resp.Print(log, true))
	assert.Equal(t, "{\"error\":\"boom\"}\n", stderr.String())

	_, stderr, _, log = testOutputs()
	resp.Print(log, false)
	assert.Equal(t, "dupimages: error: boom\n", stderr.String())
}
