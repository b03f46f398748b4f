package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"employee-list/internal/apperror"
	"employee-list/internal/repository"
)

// ParseIDList decodes a JSON array of ids as sent by the admin UI, e.g. `[1,"2",3]`.
// An empty string is an empty list. Anything that is not a positive integer is rejected.
func ParseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []uint{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var values []interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, apperror.Wrap(apperror.CodeValidation, "id list must be a JSON array", err)
	}

	ids := make([]uint, 0, len(values))
	for _, v := range values {
		var text string
		switch typed := v.(type) {
		case json.Number:
			text = typed.String()
		case string:
			text = strings.TrimSpace(typed)
		default:
			return nil, apperror.New(apperror.CodeValidation, fmt.Sprintf("invalid id %v", v))
		}
		id, err := parseID(text)
		if err != nil {
			return nil, apperror.New(apperror.CodeValidation, fmt.Sprintf("invalid id %q", text))
		}
		ids = append(ids, id)
	}
	return repository.DedupIDs(ids), nil
}

// ParseSpacedIDList splits the self-service form's space-separated ids. Tokens that are
// not positive integers, such as the "undefined" placeholder option, are dropped.
func ParseSpacedIDList(raw string) []uint {
	fields := strings.Fields(raw)
	ids := make([]uint, 0, len(fields))
	for _, field := range fields {
		id, err := parseID(field)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return repository.DedupIDs(ids)
}

// ParseID reads a single id from a form or query value. An empty value is 0, which
// addresses a record that does not exist yet.
func ParseID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	id, err := parseID(raw)
	if err != nil {
		return 0, apperror.New(apperror.CodeValidation, fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}

func parseID(text string) (uint, error) {
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("id must be positive")
	}
	return uint(n), nil
}
