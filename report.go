package main

import (
	"errors"
	"log/slog"
	"path/filepath"

	"golang.org/x/text/language"
)

// missingKey is a reference key absent from a locale, with its reference value.
type missingKey struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type localeReport struct {
	Locale  string       `json:"locale"`
	Tag     string       `json:"tag,omitempty"`
	File    string       `json:"file"`
	Missing []missingKey `json:"missing"`
	Error   string       `json:"error,omitempty"`
}

type referenceInfo struct {
	Locale string `json:"locale"`
	File   string `json:"file"`
	Found  bool   `json:"found"`
	Keys   int    `json:"keys"`
	Error  string `json:"error,omitempty"`
}

// report is the outcome of one comparison pass.
type report struct {
	Reference referenceInfo  `json:"reference"`
	Locales   []localeReport `json:"locales"`
	Error     string         `json:"error,omitempty"`
	OK        bool           `json:"ok"`
}

// buildReport loads the reference catalog and compares every other catalog
// in its directory against it. A candidate that fails to load is recorded
// and skipped; the remaining candidates are still compared.
func buildReport(cfg config, logger *slog.Logger) *report {
	r := &report{
		Reference: referenceInfo{Locale: cfg.DefaultLocale},
		Locales:   []localeReport{},
	}

	refRoot, refPath, err := loadCatalog(cfg.CatalogDir, cfg.DefaultLocale, cfg.format)
	r.Reference.File = refPath
	if err != nil {
		r.Reference.Found = !errors.Is(err, ErrCatalogNotFound)
		r.Reference.Error = err.Error()
		logger.Error("cannot load default catalog", "file", refPath, "error", err)
		return r
	}
	r.Reference.Found = true
	refKeys := flattenCatalog(refRoot)
	r.Reference.Keys = len(refKeys)
	logger.Debug("loaded default catalog", "file", refPath, "keys", len(refKeys))

	files, err := candidateFiles(filepath.Dir(refPath), cfg.format, refPath)
	if err != nil {
		r.Error = err.Error()
		logger.Error("cannot list catalogs", "dir", filepath.Dir(refPath), "error", err)
		return r
	}

	r.OK = true
	for _, path := range files {
		lr := compareCatalog(path, cfg.format, refKeys, logger)
		if lr.Error != "" || len(lr.Missing) > 0 {
			r.OK = false
		}
		r.Locales = append(r.Locales, lr)
	}
	return r
}

func compareCatalog(path string, f catalogFormat, refKeys map[string]any, logger *slog.Logger) localeReport {
	code := localeCode(path, f)
	lr := localeReport{Locale: code, File: path, Missing: []missingKey{}}
	if tag, err := language.Parse(code); err != nil {
		logger.Warn("catalog file name is not a BCP 47 language tag", "file", path, "error", err)
	} else {
		lr.Tag = tag.String()
	}

	root, err := loadCatalogFile(path, f)
	if err != nil {
		lr.Error = err.Error()
		logger.Error("cannot load catalog", "file", path, "error", err)
		return lr
	}
	keys := flattenCatalog(root)
	logger.Debug("loaded catalog", "file", path, "keys", len(keys))

	for _, k := range missingKeys(refKeys, keys) {
		lr.Missing = append(lr.Missing, missingKey{Key: k, Value: refKeys[k]})
	}
	return lr
}
