package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/maflot/diceplot/pkg/errors"
)

// ReadCSV reads a table from CSV data. The first record is the header row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "CSV input is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read CSV header")
	}

	t, err := New(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read CSV row %d", t.Len()+2)
		}
		if err := t.Append(record...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ImportCSV reads a table from a CSV file.
func ImportCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "dataset not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes the table as CSV with a header row.
func WriteCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write CSV header")
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write CSV row %d", i)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the table to a CSV file.
func ExportCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteCSV(t, f)
}
