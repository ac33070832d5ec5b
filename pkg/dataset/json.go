package dataset

import (
	"encoding/json"
	"io"
	"os"

	"github.com/maflot/diceplot/pkg/errors"
)

// jsonTable is the on-disk JSON representation of a table.
//
//	{
//	  "columns": ["CellType", "Pathway", "PathologyVariable"],
//	  "rows": [["Neuron", "Apoptosis", "Amyloid"], ...]
//	}
type jsonTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ReadJSON reads a table from its JSON representation.
func ReadJSON(r io.Reader) (*Table, error) {
	var jt jsonTable
	if err := json.NewDecoder(r).Decode(&jt); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode dataset JSON")
	}

	t, err := New(jt.Columns)
	if err != nil {
		return nil, err
	}
	for i, row := range jt.Rows {
		if err := t.Append(row...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "row %d", i)
		}
	}
	return t, nil
}

// ImportJSON reads a table from a JSON file.
func ImportJSON(path string) (*Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "dataset not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON writes the table as JSON.
func WriteJSON(t *Table, w io.Writer) error {
	jt := jsonTable{Columns: t.Columns(), Rows: make([][]string, t.Len())}
	for i := 0; i < t.Len(); i++ {
		jt.Rows[i] = t.Row(i)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jt); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode dataset JSON")
	}
	return nil
}
