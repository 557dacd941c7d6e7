// core/fastq/record.go
package fastq

// Record is one sequence entry. FASTQ records carry a non-nil Qual of the
// same length as Seq; FASTA records have a nil Qual.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
	Qual []byte
}

// HasQual reports whether the record came from (and serialises to) FASTQ.
func (r Record) HasQual() bool { return r.Qual != nil }
