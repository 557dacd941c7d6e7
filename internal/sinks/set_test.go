package sinks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seqsample-core/fastq"
	"seqsample-core/sampler"
)

func TestPath(t *testing.T) {
	got := Path("out", "run", 3, sampler.RoleReverse)
	if want := filepath.Join("out", "run.sample_3.2.fq"); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}

func TestOpenCreatesEveryFileUpFront(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "b", 2, sampler.RoleForward, sampler.RoleReverse)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	want := []string{"b.sample_0.1.fq", "b.sample_0.2.fq", "b.sample_1.1.fq", "b.sample_1.2.fq"}
	var got []string
	ents, _ := os.ReadDir(dir)
	for _, e := range ents {
		got = append(got, e.Name())
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("files (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{filepath.Join(dir, "b.sample_0.1.fq"), filepath.Join(dir, "b.sample_1.1.fq")}, s.Paths(sampler.RoleForward)); d != "" {
		t.Fatalf("Paths (-want +got):\n%s", d)
	}
}

func TestWriteFlushesOnClose(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "b", 2, sampler.RoleSingle)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rec := fastq.Record{ID: "r1", Seq: []byte("AC"), Qual: []byte("II")}
	if err := s.Write(1, sampler.RoleSingle, rec); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	b0, _ := os.ReadFile(Path(dir, "b", 0, sampler.RoleSingle))
	b1, _ := os.ReadFile(Path(dir, "b", 1, sampler.RoleSingle))
	if len(b0) != 0 {
		t.Fatalf("slot 0 should be empty, got %q", b0)
	}
	if string(b1) != "@r1\nAC\n+\nII\n" {
		t.Fatalf("slot 1 = %q", b1)
	}
	if err := s.Write(1, sampler.RoleSingle, rec); err == nil {
		t.Fatalf("expected error writing to a closed sink")
	}
}

func TestWriteUnknownSlot(t *testing.T) {
	s, err := Open(t.TempDir(), "b", 1, sampler.RoleSingle)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if err := s.Write(1, sampler.RoleSingle, fastq.Record{ID: "x"}); err == nil {
		t.Fatalf("expected error for slot out of range")
	}
	if err := s.Write(0, sampler.RoleForward, fastq.Record{ID: "x"}); err == nil {
		t.Fatalf("expected error for role without sinks")
	}
}

func TestOpenFailureNamesPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir")
	_, err := Open(missing, "b", 2, sampler.RoleSingle)
	if err == nil {
		t.Fatalf("expected open error")
	}
	if !strings.Contains(err.Error(), Path(missing, "b", 0, sampler.RoleSingle)) {
		t.Fatalf("error should name the path: %v", err)
	}
}

func TestOpenFailureClosesOpenedSinks(t *testing.T) {
	dir := t.TempDir()
	// A directory where slot 1's file should go makes the second open fail.
	if err := os.Mkdir(Path(dir, "b", 1, sampler.RoleSingle), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Open(dir, "b", 2, sampler.RoleSingle); err == nil {
		t.Fatalf("expected open error")
	}
	// slot 0 was opened then released; it is left on disk, empty.
	fi, err := os.Stat(Path(dir, "b", 0, sampler.RoleSingle))
	if err != nil || fi.Size() != 0 {
		t.Fatalf("slot 0 file: %v size=%v", err, fi)
	}
}
