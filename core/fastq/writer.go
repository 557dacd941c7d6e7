// core/fastq/writer.go
package fastq

import "io"

// Write serialises rec as a 4-line FASTQ entry when it has quality data,
// otherwise as a 2-line FASTA entry. Sequence and quality are written on a
// single line.
func Write(w io.Writer, rec Record) error {
	marker := byte('>')
	if rec.HasQual() {
		marker = '@'
	}
	buf := make([]byte, 0, len(rec.ID)+len(rec.Desc)+2*len(rec.Seq)+8)
	buf = append(buf, marker)
	buf = append(buf, rec.ID...)
	if rec.Desc != "" {
		buf = append(buf, ' ')
		buf = append(buf, rec.Desc...)
	}
	buf = append(buf, '\n')
	buf = append(buf, rec.Seq...)
	buf = append(buf, '\n')
	if rec.HasQual() {
		buf = append(buf, '+', '\n')
		buf = append(buf, rec.Qual...)
		buf = append(buf, '\n')
	}
	_, err := w.Write(buf)
	return err
}
