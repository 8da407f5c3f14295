package frame

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/clusterpanel/pkg/errors"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// document accepts both {"series": [...]} and a bare frame {"fields": [...]}.
type document struct {
	Series []Frame `json:"series" yaml:"series"`
	Name   string  `json:"name" yaml:"name"`
	Length int     `json:"length" yaml:"length"`
	Fields []Field `json:"fields" yaml:"fields"`
}

func (d document) data() Data {
	if d.Series != nil || d.Fields == nil {
		return Data{Series: d.Series}
	}
	return Data{Series: []Frame{{Name: d.Name, Length: d.Length, Fields: d.Fields}}}
}

// ReadJSON decodes panel data from r.
func ReadJSON(r io.Reader) (Data, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Data{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return doc.data(), nil
}

// ReadYAML decodes panel data from r.
func ReadYAML(r io.Reader) (Data, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return Data{}, nil
		}
		return Data{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	return doc.data(), nil
}

// ReadCSV reads a single series. The first record names the fields and every
// cell is kept as a string.
func ReadCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Data{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode csv")
	}
	if len(records) == 0 {
		return Data{}, nil
	}

	header := records[0]
	fields := make([]Field, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if err := errors.ValidateColumnName(name); err != nil {
			return Data{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "csv header column %d", i+1)
		}
		fields[i] = Field{Name: name, Type: "string", Values: []any{}}
	}
	for _, rec := range records[1:] {
		for i := range fields {
			if i < len(rec) {
				fields[i].Values = append(fields[i].Values, rec[i])
			}
		}
	}
	return Data{Series: []Frame{{Length: len(records) - 1, Fields: fields}}}, nil
}

// Read decodes r in the given format.
func Read(r io.Reader, format string) (Data, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return Data{}, errors.ValidateFormat(format, FormatJSON, FormatYAML, FormatCSV)
	}
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return FormatJSON
	}
}

// ReadFile decodes the file at path, choosing the format by extension.
func ReadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Data{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
	}
	if err != nil {
		return Data{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, FormatOf(path))
}

// Marshal encodes d as compact JSON. The encoding is stable for a given
// value and is used as the cache identity of an input.
func Marshal(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes d to w.
func WriteJSON(d Data, w io.Writer) error {
	if d.Series == nil {
		d.Series = []Frame{}
	}
	return json.NewEncoder(w).Encode(d)
}
