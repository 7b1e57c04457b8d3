package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// writeReport prints a report in text or JSON format.
func writeReport(w io.Writer, r *report, format string, showValues bool) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return writeText(w, r, showValues)
}

func writeText(w io.Writer, r *report, showValues bool) error {
	ref := r.Reference
	switch {
	case !ref.Found:
		_, err := fmt.Fprintf(w, "! Default catalog %s does not exist.\n", ref.File)
		return err
	case ref.Error != "":
		_, err := fmt.Fprintf(w, "! Default catalog %s could not be loaded: %s\n", ref.File, ref.Error)
		return err
	case r.Error != "":
		_, err := fmt.Fprintf(w, "! %s\n", r.Error)
		return err
	}

	if len(r.Locales) == 0 {
		_, err := fmt.Fprintln(w, "No additional locale catalogs to compare.")
		return err
	}

	for _, lr := range r.Locales {
		var err error
		switch {
		case lr.Error != "":
			_, err = fmt.Fprintln(w, color.YellowString("Locale %q could not be loaded: %s", lr.Locale, lr.Error))
		case len(lr.Missing) == 0:
			_, err = fmt.Fprintln(w, color.GreenString("Locale %q is up-to-date.", lr.Locale))
		default:
			_, err = fmt.Fprintln(w, color.RedString("Locale %q is missing %d key(s):", lr.Locale, len(lr.Missing)))
			for _, m := range lr.Missing {
				if err != nil {
					break
				}
				if showValues {
					_, err = fmt.Fprintf(w, "  - %s = %s\n", m.Key, formatValue(m.Value))
				} else {
					_, err = fmt.Fprintf(w, "  - %s\n", m.Key)
				}
			}
		}
		if err != nil {
			return err
		}
	}

	if !r.OK {
		_, err := fmt.Fprintln(w, "\nRun this check after adding new keys to alert translators about missing strings.")
		return err
	}
	return nil
}

// formatValue renders a leaf value on a single line.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case []any, map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}
