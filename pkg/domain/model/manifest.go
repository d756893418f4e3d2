package model

import (
	"bytes"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// ByteSize is a file size in bytes. The archive metadata endpoint emits
// sizes as either JSON numbers or quoted decimal strings depending on the
// item, so it unmarshals from both forms.
type ByteSize int64

func (s *ByteSize) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid file size", goerr.V("raw", string(data)))
	}
	*s = ByteSize(n)
	return nil
}

// FileEntry is one row of an item's file manifest
type FileEntry struct {
	Name string   `json:"name"`
	Size ByteSize `json:"size"`
}

// Manifest is the portion of the metadata response this tool consumes.
// The live endpoint returns many more fields; they are ignored.
type Manifest struct {
	Files []FileEntry `json:"files"`
}
