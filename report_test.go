package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hint = "\nRun this check after adding new keys to alert translators about missing strings.\n"

func runCheck(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunReport(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		args     []string
		wantCode int
		wantOut  string
	}{
		{
			name: "missing key",
			files: map[string]string{
				"en.json": `{"a": {"b": "Hello", "c": "World"}}`,
				"fr.json": `{"a": {"b": "Bonjour"}}`,
			},
			wantCode: 1,
			wantOut:  "Locale \"fr\" is missing 1 key(s):\n  - a.c\n" + hint,
		},
		{
			name: "up to date",
			files: map[string]string{
				"en.json": `{"a": {"b": "Hello", "c": "World"}}`,
				"fr.json": `{"a": {"b": "Hello", "c": "World"}}`,
			},
			wantCode: 0,
			wantOut:  "Locale \"fr\" is up-to-date.\n",
		},
		{
			name: "nothing to compare",
			files: map[string]string{
				"en.json":   `{"a": "b"}`,
				"README.md": "not a catalog",
			},
			wantCode: 0,
			wantOut:  "No additional locale catalogs to compare.\n",
		},
		{
			name: "reports every locale in file name order",
			files: map[string]string{
				"en.json": `{"a": "1", "b": {"c": "2", "d": "3"}}`,
				"fr.json": `{"a": "un"}`,
				"de.json": `{"a": "eins", "b": {"c": "zwei", "d": "drei"}}`,
			},
			wantCode: 1,
			wantOut: "Locale \"de\" is up-to-date.\n" +
				"Locale \"fr\" is missing 2 key(s):\n  - b.c\n  - b.d\n" + hint,
		},
		{
			name: "value differences are not reported",
			files: map[string]string{
				"en.json": `{"a": "Hello", "n": 1}`,
				"fr.json": `{"a": "Bonjour", "n": "one"}`,
			},
			wantCode: 0,
			wantOut:  "Locale \"fr\" is up-to-date.\n",
		},
		{
			name: "extra keys are not reported",
			files: map[string]string{
				"en.json": `{"a": "Hello"}`,
				"fr.json": `{"a": "Bonjour", "b": "extra"}`,
			},
			wantCode: 0,
			wantOut:  "Locale \"fr\" is up-to-date.\n",
		},
		{
			name: "show values",
			files: map[string]string{
				"en.json": `{"a": {"b": "Hello", "c": "World"}, "n": 2, "z": null, "l": [1, "x"]}`,
				"fr.json": `{"a": {"b": "Bonjour"}}`,
			},
			args:     []string{"--show-values"},
			wantCode: 1,
			wantOut:  "Locale \"fr\" is missing 4 key(s):\n  - a.c = World\n  - l = [1,\"x\"]\n  - n = 2\n  - z = null\n" + hint,
		},
		{
			name: "custom default locale",
			files: map[string]string{
				"de.json": `{"a": "eins", "b": "zwei"}`,
				"en.json": `{"a": "one"}`,
			},
			args:     []string{"--default-locale", "de"},
			wantCode: 1,
			wantOut:  "Locale \"en\" is missing 1 key(s):\n  - b\n" + hint,
		},
		{
			name: "yaml catalogs",
			files: map[string]string{
				"en.yaml":  "a:\n  b: Hello\n  c: World\n",
				"fr.yml":   "a:\n  b: Bonjour\n",
				"de.json":  `{"ignored": true}`,
				"it.yaml~": "backup",
			},
			args:     []string{"--catalog-format", "yaml"},
			wantCode: 1,
			wantOut:  "Locale \"fr\" is missing 1 key(s):\n  - a.c\n" + hint,
		},
		{
			name: "other extension of the default locale is not a candidate",
			files: map[string]string{
				"en.yaml": "a: Hello\nb: World\n",
				"en.yml":  "a: Hello\n",
				"fr.yaml": "a: Bonjour\nb: Monde\n",
			},
			args:     []string{"--catalog-format", "yaml"},
			wantCode: 0,
			wantOut:  "Locale \"fr\" is up-to-date.\n",
		},
		{
			name: "toml catalogs",
			files: map[string]string{
				"en.toml": "[a]\nb = \"Hello\"\nc = \"World\"\n",
				"fr.toml": "[a]\nb = \"Bonjour\"\nc = \"Monde\"\n",
			},
			args:     []string{"--catalog-format", "toml"},
			wantCode: 0,
			wantOut:  "Locale \"fr\" is up-to-date.\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeCatalogs(t, dir, tc.files)
			code, stdout, _ := runCheck(t, append([]string{"--catalog-dir", dir}, tc.args...)...)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantOut, stdout)
		})
	}
}

func TestRunMissingReference(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{"fr.json": `{"a": "b"}`})

	code, stdout, stderr := runCheck(t, "--catalog-dir", dir)
	assert.Equal(t, 1, code)
	assert.Equal(t, "! Default catalog "+filepath.Join(dir, "en.json")+" does not exist.\n", stdout)
	assert.Contains(t, stderr, "cannot load default catalog")
}

func TestRunMissingCatalogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")
	code, stdout, _ := runCheck(t, "--catalog-dir", dir)
	assert.Equal(t, 1, code)
	assert.Equal(t, "! Default catalog "+filepath.Join(dir, "en.json")+" does not exist.\n", stdout)
}

func TestRunMalformedReference(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{
		"en.json": `{"a": `,
		"fr.json": `{"a": "b"}`,
	})

	code, stdout, _ := runCheck(t, "--catalog-dir", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "! Default catalog "+filepath.Join(dir, "en.json")+" could not be loaded: ")
	assert.NotContains(t, stdout, `Locale "fr"`)
}

func TestRunMalformedCandidateIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{
		"en.json": `{"a": "Hello"}`,
		"es.json": `{"a": `,
		"fr.json": `{"a": "Bonjour"}`,
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "legacy.json"), 0755))

	code, stdout, stderr := runCheck(t, "--catalog-dir", dir)
	assert.Equal(t, 1, code)

	esPath := filepath.Join(dir, "es.json")
	assert.Contains(t, stdout, `Locale "es" could not be loaded: `)
	assert.Contains(t, stdout, esPath)
	assert.Contains(t, stdout, "Locale \"fr\" is up-to-date.\n")
	assert.NotContains(t, stdout, "legacy")
	assert.Contains(t, stderr, "cannot load catalog")
}

func TestRunSelfReferencingYAMLIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{
		"en.yaml": "a: Hello\n",
		"es.yaml": "a: &a\n  b: *a\n",
		"fr.yaml": "a: Bonjour\n",
	})

	code, stdout, stderr := runCheck(t, "--catalog-dir", dir, "--catalog-format", "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, `Locale "es" could not be loaded: `)
	assert.Contains(t, stdout, filepath.Join(dir, "es.yaml"))
	assert.Contains(t, stdout, "contains itself")
	assert.Contains(t, stdout, "Locale \"fr\" is up-to-date.\n")
	assert.Contains(t, stderr, "cannot load catalog")
}

func TestRunJSONOutput(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{
		"en.json": `{"a": {"b": "Hello", "c": "World"}}`,
		"fr.json": `{"a": {"b": "Bonjour"}}`,
		"de.json": `{"a": {"b": "Hallo", "c": "Welt"}}`,
	})

	code, stdout, _ := runCheck(t, "--catalog-dir", dir, "--output", "json")
	assert.Equal(t, 1, code)

	var r report
	require.NoError(t, json.Unmarshal([]byte(stdout), &r))
	assert.False(t, r.OK)
	assert.Equal(t, "en", r.Reference.Locale)
	assert.Equal(t, filepath.Join(dir, "en.json"), r.Reference.File)
	assert.True(t, r.Reference.Found)
	assert.Equal(t, 2, r.Reference.Keys)

	require.Len(t, r.Locales, 2)
	assert.Equal(t, "de", r.Locales[0].Locale)
	assert.Empty(t, r.Locales[0].Missing)
	assert.Equal(t, "fr", r.Locales[1].Locale)
	assert.Equal(t, "fr", r.Locales[1].Tag)
	assert.Equal(t, []missingKey{{Key: "a.c", Value: "World"}}, r.Locales[1].Missing)
}

func TestRunJSONOutputNothingToCompare(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{"en.json": `{}`})

	code, stdout, _ := runCheck(t, "--catalog-dir", dir, "--output", "json")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `"locales": []`)
	assert.Contains(t, stdout, `"ok": true`)
}

func TestRunNonBCP47FileName(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{
		"en.json":        `{"a": "b"}`,
		"legacy.v1.json": `{"a": "b"}`,
	})

	code, stdout, stderr := runCheck(t, "--catalog-dir", dir)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Locale \"legacy.v1\" is up-to-date.\n", stdout)
	assert.Contains(t, stderr, "not a BCP 47 language tag")
}

func TestRunVerbose(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{
		"en.json": `{"a": "b"}`,
		"fr.json": `{"a": "b"}`,
	})

	code, _, stderr := runCheck(t, "--catalog-dir", dir, "--verbose")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "loaded default catalog")
	assert.Contains(t, stderr, "loaded catalog")
}

func TestRunIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	writeCatalogs(t, dir, map[string]string{
		"en.json":    `{"z": "1", "a": {"y": "2", "x": "3"}, "m": "4"}`,
		"fr.json":    `{}`,
		"pt-BR.json": `{"m": "4"}`,
	})

	_, first, _ := runCheck(t, "--catalog-dir", dir)
	_, second, _ := runCheck(t, "--catalog-dir", dir)
	assert.Equal(t, first, second)
}
