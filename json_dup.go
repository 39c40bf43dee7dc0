package jsonadapt

// DetectDuplicateKeys parses data and reports every repeated object key, up
// to maxIssues (0 means no limit). The document must otherwise be valid JSON.
func DetectDuplicateKeys(data []byte, maxIssues int) (Issues, error) {
	var iss Issues
	_, err := ParseBytes(data, ParseOpt{
		OnDuplicateKey: Warn,
		OnWarning: func(it Issue) {
			if maxIssues <= 0 || len(iss) < maxIssues {
				iss = AppendIssues(iss, it)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return iss, nil
}
