package duckdb

// Empty strings and ungraded results are stored as SQL NULL.

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableBool(value *bool) any {
	if value == nil {
		return nil
	}
	return *value
}
