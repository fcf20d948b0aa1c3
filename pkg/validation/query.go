// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for user-provided
// text that flows into LLM prompts and log lines.
package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxQueryLength caps free-text queries. Long inputs inflate prompt cost and
// are almost always paste accidents.
const MaxQueryLength = 2000

// ValidateQuery checks a free-text supply-chain query.
//
// Valid queries:
//   - Non-empty after trimming whitespace
//   - At most MaxQueryLength characters
//   - No control characters other than newline and tab
//
// Returns an error if the query is invalid.
func ValidateQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if len(trimmed) > MaxQueryLength {
		return fmt.Errorf("query too long: %d characters (max %d)", len(trimmed), MaxQueryLength)
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return fmt.Errorf("query contains control characters")
		}
	}
	return nil
}

// SanitizeQuery normalizes and validates a query.
// Returns the trimmed query if valid, or an error if invalid.
//
// Use this at the HTTP boundary so handlers pass clean text downstream:
//
//	safeQuery, err := validation.SanitizeQuery(request.Query)
//	if err != nil {
//	    return err
//	}
func SanitizeQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if err := ValidateQuery(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}
