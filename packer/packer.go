package packer

import "github.com/vmihailenco/msgpack/v5"

// Detail is the extra, schema-free payload stored alongside a journal row.
// It travels as a msgpack blob so the journal table stays narrow.
type Detail struct {
	DurationNs int64  `msgpack:"duration_ns"`
	Error      string `msgpack:"error"`
	Panicked   bool   `msgpack:"panicked"`
}

// EncodeDetail packs d into its wire form.
func EncodeDetail(d *Detail) ([]byte, error) {
	return msgpack.Marshal(d)
}

// DecodeDetail unpacks a blob produced by EncodeDetail.
func DecodeDetail(raw []byte) (*Detail, error) {
	d := &Detail{}
	if err := msgpack.Unmarshal(raw, d); err != nil {
		return nil, err
	}
	return d, nil
}
