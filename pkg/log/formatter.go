package log

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formatter is a simple formatter for logrus.
// Warnings and errors are prefixed with their level, fields are appended as sorted key=value pairs.
type Formatter struct{}

// Format returns the log entry message with its fields and a trailing newline.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	if entry.Level <= logrus.WarnLevel {
		b.WriteString(entry.Level.String() + ": ")
	}
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		val := fmt.Sprint(entry.Data[key])
		if strings.ContainsAny(val, " \t\"=") || val == "" {
			val = fmt.Sprintf("%q", val)
		}
		b.WriteString(" " + key + "=" + val)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
