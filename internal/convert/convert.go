// Package convert turns the raw XML dump tables into line-delimited JSON.
// Each <row> element becomes one JSON object per line; integer-looking
// attributes are coerced by field-name suffix, everything else stays a
// string. The relational passes downstream never touch XML.
package convert

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"searchive/internal/utils"
)

// Attributes whose names end in one of these are integers in the dump
// schema. Empty values coerce to 0.
var integerFieldSuffixes = []string{
	"Id",
	"Count",
	"Score",
	"Reputation",
	"Age",
	"Views",
}

// Run converts every .xml file under dataDir to a sibling .jsonl file. A
// file that fails to parse is logged and skipped; the remaining files are
// still converted.
func Run(dataDir string) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".xml") {
			return nil
		}

		jsonPath := strings.TrimSuffix(path, "xml") + "jsonl"
		log.Debug().Str("from", path).Str("to", jsonPath).Msg("converting table")

		if err := convertFile(path, jsonPath); err != nil {
			log.Error().Err(err).Str("file", path).Msg("xml parse failed, skipping table")
		}
		return nil
	})
}

func convertFile(xmlPath, jsonPath string) error {
	in, err := os.Open(xmlPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	defer out.Close()

	decoder := xml.NewDecoder(in)
	firstTag := ""
	depth := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				// document root, e.g. <posts>
				continue
			}
			// Row elements share one tag name; a differing tag means
			// we ran past the table body.
			if firstTag == "" {
				firstTag = t.Name.Local
			} else if t.Name.Local != firstTag {
				return nil
			}
			if err := writeRow(out, t.Attr); err != nil {
				return err
			}
			if err := decoder.Skip(); err != nil {
				return err
			}
			depth--
		case xml.EndElement:
			depth--
		}
	}
}

func writeRow(out io.Writer, attrs []xml.Attr) error {
	data := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		key, value := attr.Name.Local, attr.Value
		if isIntegerField(key) {
			data[key] = utils.StringToInt(value)
		} else {
			data[key] = value
		}
	}

	if tags, ok := data["Tags"].(string); ok {
		data["Tags"] = strings.Split(strings.Trim(tags, "><"), "><")
	}

	line, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := out.Write(line); err != nil {
		return err
	}
	_, err = out.Write([]byte{'\n'})
	return err
}

func isIntegerField(key string) bool {
	for _, suffix := range integerFieldSuffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}
