package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Field error messages returned to clients, keyed by field name.
const (
	MsgRequired   = "This field is required."
	MsgUnique     = "This field must be unique."
	MsgBlank      = "This field may not be blank."
	MsgDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgInvalid    = "Invalid request body."
)

// MsgInvalidPK formats the error for a reference to a nonexistent record.
func MsgInvalidPK(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// Errors maps field names to their error messages. It implements error so
// services can return it alongside infrastructure failures; handlers encode
// the map itself as the response body.
type Errors map[string][]string

// Add appends a message for a field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], " ")))
	}
	return strings.Join(parts, "; ")
}
