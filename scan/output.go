// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scan

import (
	"bufio"
	"fmt"
	"io"

	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// Finding is every occurrence of a single distinct URL, ready to be
// written out.
type Finding struct {
	URL         string
	Occurrences []Occurrence
}

// resultDocumentVersion is the "v" field of the output document. Bump it
// whenever the document's shape changes incompatibly.
const resultDocumentVersion = 2

// WriteResults writes findings to w as the extraction-results JSON
// document described by the output format: a top-level object carrying a
// version tag, a fixed document-type string, and the list of findings.
//
// The writer is hand-rolled rather than built on encoding/json so that the
// escaping rules match the original tool byte-for-byte: five characters get
// two-character escapes, other C0 control bytes get \u00XX, and everything
// else — including UTF-8 continuation bytes — passes through raw.
func WriteResults(w io.Writer, findings []Finding) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(`{"v": `); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(bw, "%d", resultDocumentVersion); err != nil {
		return err
	}

	if _, err := bw.WriteString(`, "type": "monitor-osm-domains extraction results", "findings": [`); err != nil {
		return err
	}

	for i, finding := range findings {
		if i > 0 {
			if err := bw.WriteByte(','); err != nil {
				return err
			}
		}

		if err := writeFinding(bw, finding); err != nil {
			return err
		}
	}

	if _, err := bw.WriteString("\n]}"); err != nil {
		return err
	}

	return bw.Flush()
}

func writeFinding(bw *bufio.Writer, finding Finding) error {
	if _, err := bw.WriteString("\n {\"url\": \""); err != nil {
		return err
	}

	writeEscapedString(bw, finding.URL)

	if _, err := bw.WriteString("\", \"occ\": ["); err != nil {
		return err
	}

	for j, occ := range finding.Occurrences {
		if j > 0 {
			if err := bw.WriteByte(','); err != nil {
				return err
			}
		}

		if err := writeOccurrence(bw, occ); err != nil {
			return err
		}
	}

	_, err := bw.WriteString("\n  ]}")

	return err
}

func writeOccurrence(bw *bufio.Writer, occ Occurrence) error {
	if _, err := bw.WriteString("\n  {\"t\": \""); err != nil {
		return err
	}

	if _, err := bw.WriteString(itemTypeChar(occ.Type)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(bw, "\", \"id\": %d, \"k\": \"", occ.ID); err != nil {
		return err
	}

	writeEscapedString(bw, occ.Key)

	_, err := fmt.Fprintf(bw, "\", \"x\": %f, \"y\": %f}", float64(occ.Lon), float64(occ.Lat))

	return err
}

// itemTypeChar renders an EntityType the way the rest of the OSM tooling
// ecosystem does: a single-letter code.
func itemTypeChar(t model.EntityType) string {
	switch t {
	case model.NODE:
		return "n"
	case model.WAY:
		return "w"
	case model.RELATION:
		return "r"
	default:
		return "?"
	}
}

// writeEscapedString writes s to bw with JSON string escaping: \b \n \t "
// \ get their two-character escapes, other bytes in 0x00-0x1F get \u00XX,
// and everything else — including the high-bit-set continuation bytes of
// multi-byte UTF-8 sequences — passes through unmodified.
func writeEscapedString(bw *bufio.Writer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '\b':
			bw.WriteString(`\b`)
		case '\n':
			bw.WriteString(`\n`)
		case '\t':
			bw.WriteString(`\t`)
		case '"':
			bw.WriteString(`\"`)
		case '\\':
			bw.WriteString(`\\`)
		default:
			if c <= 0x1f {
				fmt.Fprintf(bw, `\u%04x`, c)
			} else {
				bw.WriteByte(c)
			}
		}
	}
}
