package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestParseCorpus parses the Java files under testdata, plus those under
// $JSYN_CORPUS when set, and expects them to parse cleanly.
func TestParseCorpus(t *testing.T) {
	dirs := []string{"testdata"}
	if extra := os.Getenv("JSYN_CORPUS"); extra != "" {
		if testing.Short() {
			t.Log("skipping $JSYN_CORPUS in short mode")
		} else {
			dirs = append(dirs, extra)
		}
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(path, ".java") {
				return nil
			}

			t.Run(path, func(t *testing.T) {
				content, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("failed to read file: %v", err)
				}
				src := string(content)
				p := ParseCompilationUnit(strings.NewReader(src), WithFile(path))
				root := checkTree(t, p, src)

				for _, e := range root.Errors() {
					t.Errorf("%s: %s", e.Span.Start, e.Error.Message)
				}
				if t.Failed() {
					t.Logf("Parse tree:\n%s", root)
				}
			})
			return nil
		})
		if err != nil {
			t.Fatalf("failed to walk %s: %v", dir, err)
		}
	}
}
