// core/gtf/attributes.go
package gtf

import "strings"

// Attributes is the tokenized form of the 9th GTF column: an ordered
// key/value mapping. Keys keep the order of first appearance; a key
// that occurs more than once keeps its position but takes the later
// value (last write wins).
type Attributes struct {
	keys []string
	m    map[string]string
}

// Get returns the value for key and whether the key is present.
func (a Attributes) Get(key string) (string, bool) {
	v, ok := a.m[key]
	return v, ok
}

// Value returns the value for key, or "" when the key is absent.
func (a Attributes) Value(key string) string { return a.m[key] }

// Keys returns the attribute keys in order of first appearance.
func (a Attributes) Keys() []string { return a.keys }

// Len returns the number of distinct keys.
func (a Attributes) Len() int { return len(a.keys) }

// ParseAttributes tokenizes a raw GTF attribute column such as
//
//	gene_id "ABC123"; gene_name "foo"; gene_biotype "protein_coding";
//
// Segments are split on ';', each segment on its first whitespace run,
// and double quotes are stripped from the value. A segment without a
// separable key and value is skipped; attribute parsing never fails a
// record.
func ParseAttributes(raw string) Attributes {
	attrs := Attributes{m: make(map[string]string)}
	for _, seg := range strings.Split(raw, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		i := strings.IndexAny(seg, " \t")
		if i < 0 {
			continue
		}
		key := seg[:i]
		val := strings.TrimSpace(seg[i+1:])
		val = strings.Trim(val, `"`)
		if _, seen := attrs.m[key]; !seen {
			attrs.keys = append(attrs.keys, key)
		}
		attrs.m[key] = val
	}
	return attrs
}
