package importer

import "io"

type ImportServiceAPI interface {
	ImportJSON(ip string, records []RawRecord) (*ImportReport, error)
	ImportCSV(actor, ip string, r io.Reader) (*ImportReport, error)
	ImportXLSX(actor, ip string, r io.Reader) (*ImportReport, error)
}

var _ ImportServiceAPI = (*ImportService)(nil)
