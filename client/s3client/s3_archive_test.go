package s3client

import (
	"testing"
)

func TestNewArchivePutConfig_Golden(t *testing.T) {
	t.Parallel()

	cfg := NewArchivePutConfig(
		"bi-archive", "exports", "exec-1", "exp-html", "report.html",
		[]byte("<html/>"), "text/html",
	)

	if cfg.Operation != "put" {
		t.Fatalf("Operation=%q; want put", cfg.Operation)
	}
	if cfg.Bucket != "bi-archive" {
		t.Fatalf("Bucket=%q", cfg.Bucket)
	}
	if cfg.Key != "exports/exec-1/report.html" {
		t.Fatalf("Key=%q; want exports/exec-1/report.html", cfg.Key)
	}
	if cfg.ContentType != "text/html" {
		t.Fatalf("ContentType=%q", cfg.ContentType)
	}

	md, ok := cfg.ExtraOpts["metadata"].(map[string]string)
	if !ok {
		t.Fatalf("metadata missing: %v", cfg.ExtraOpts)
	}
	if md["execution-id"] != "exec-1" || md["export-id"] != "exp-html" {
		t.Fatalf("metadata=%v; want execution and export ids", md)
	}
}

func TestNewArchiveListConfig_Golden(t *testing.T) {
	t.Parallel()

	cfg := NewArchiveListConfig("bi-archive", "exports/")
	if cfg.Operation != "list" || cfg.Prefix != "exports/" {
		t.Fatalf("cfg=%+v; want list with prefix", cfg)
	}
}
