package main

import (
	"bytes"
	"testing"
)

// execute runs the root command with args and env and captures its output.
// Flag variables are reset first because cobra keeps them between runs.
func execute(t *testing.T, env map[string]string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	configPath = ""
	buildOutput, buildUpload = "", false
	normalizePayload, normalizeSummary = false, false
	crawlOutput, crawlLocal, crawlNoCache = "", false, false
	crawlOutDir, crawlSummary = "", false
	tokenSubject = "cli"
	initOutput, initForce = "", false
	serveHost, servePort = "", 0

	// Keep a developer's .env from leaking into the commands under test.
	for _, key := range []string{"DATABASE_URL", "CRAWL_API_KEY", "CRAWL_API_BASE", "CRAWL_USE_BROWSER",
		"CRAWL_TOKEN_SECRET", "ARTIFACT_BUCKET", "ARTIFACT_DIR", "SEED_PATH"} {
		t.Setenv(key, "")
	}
	for key, value := range env {
		t.Setenv(key, value)
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}
