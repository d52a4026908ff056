package sumo

import (
	"encoding/xml"
	"io"
)

// scanElements walks the token stream and hands every start element with the
// given local name to fn, at any nesting depth. The decoder runs in
// non-strict mode so unclosed tags in truncated simulation outputs do not
// abort the scan; on a syntax error the elements seen so far are kept and
// the error is returned for logging. The scan cannot resume past a syntax
// error, so any records after the first malformed element are lost; this is
// weaker than a recovering DOM parser, which can skip the bad region.
func scanElements(r io.Reader, name string, fn func(xml.StartElement)) error {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == name {
			fn(se)
		}
	}
}

// attr returns the first present attribute among names.
func attr(se xml.StartElement, names ...string) (string, bool) {
	for _, n := range names {
		for _, a := range se.Attr {
			if a.Name.Local == n {
				return a.Value, true
			}
		}
	}
	return "", false
}
