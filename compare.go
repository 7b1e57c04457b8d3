package main

// missingKeys returns the reference keys absent from the candidate, sorted.
// Only key presence matters; values are never compared.
func missingKeys(reference, candidate map[string]any) []string {
	var missing []string
	for _, k := range sortedKeys(reference) {
		if _, found := candidate[k]; !found {
			missing = append(missing, k)
		}
	}
	return missing
}
