// Package output provides feature record output formatters.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/rnaseek/splicefeat/internal/feature"
)

// TabWriter writes feature records in tab-delimited format: one row
// per event, a fixed column per enabled feature. Values render via
// feature.Value.Format, so unavailable cells print "NA" and failed
// cells print "FAIL".
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line and fixes the column order for
// every subsequent row.
func (tw *TabWriter) WriteHeader(names []string) error {
	tw.columns = names
	_, err := tw.w.WriteString("#event_id\t" + strings.Join(names, "\t") + "\n")
	return err
}

// Write writes a single record as one row in header column order.
func (tw *TabWriter) Write(rec *feature.Record) error {
	values := make([]string, 0, len(tw.columns)+1)
	values = append(values, rec.EventID)
	for _, name := range tw.columns {
		v, ok := rec.Get(name)
		if !ok {
			v = feature.Unavailable()
		}
		values = append(values, v.Format())
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
