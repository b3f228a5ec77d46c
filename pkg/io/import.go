package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
)

// ReadJSON decodes and validates a dataset from r. It does not close r.
func ReadJSON(r io.Reader) (*karyotype.Dataset, error) {
	var ds karyotype.Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}
	if err := karyotype.Validate(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// ImportJSON reads the dataset file at path.
func ImportJSON(path string) (*karyotype.Dataset, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	ds, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return ds, nil
}
