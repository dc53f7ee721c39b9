package main

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	upstreamxz "github.com/ulikunitz/xz"
)

func TestDecompress(t *testing.T) {
	data := []byte("hello from the xz command line tool")
	var compressed bytes.Buffer
	w, err := upstreamxz.NewWriter(&compressed)
	if err != nil {
		t.Fatalf("upstream NewWriter: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("upstream Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("upstream Close: %v", err)
	}

	var out bytes.Buffer
	if err := decompress(&compressed, &out); err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("got %q, want %q", out.Bytes(), data)
	}
}

func TestCLIVersion(t *testing.T) {
	binPath := filepath.Join(t.TempDir(), "xz")
	build := exec.Command("go", "build", "-o", binPath, "github.com/MaxWipfli/xz/cmd/xz")
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build binary: %v", err)
	}

	cmd := exec.Command(binPath, "-version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run version command: %v", err)
	}
	if !strings.Contains(string(output), "xz version") {
		t.Errorf("version output incorrect: %s", output)
	}
}
