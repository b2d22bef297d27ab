//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package runlog_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joe/organize-files/internal/config"
	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/runlog"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestFileName(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	start := time.Date(2025, 3, 9, 14, 5, 7, 0, time.Local)

	g.Expect(runlog.FileName(start)).Should(Equal("file_organizer_20250309_140507.log"))
}

func TestOpen_CreatesDirectoryAndFile(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dir := filepath.Join(t.TempDir(), "logs", "nested")
	start := time.Date(2025, 3, 9, 14, 5, 7, 0, time.Local)

	logger, err := runlog.Open(dir, start)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(logger.Path()).Should(Equal(filepath.Join(dir, "file_organizer_20250309_140507.log")))

	logger.Emit(organizer.RunStarted{RunID: "r1", Request: organizer.Request{SourceRoot: "in", DestRoot: "out"}})
	g.Expect(logger.Close()).To(Succeed())

	data, err := os.ReadFile(logger.Path())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).Should(ContainSubstring(`"run_id":"r1"`))
}

func TestEmit_OneLinePerCopyAndError(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	var buf bytes.Buffer

	logger := runlog.New(&buf)
	copied := organizer.Outcome{Kind: organizer.Copied, SourceFile: "in/a_b.txt", DestFile: "out/a/a_b.txt", BytesCopied: 3}
	skipped := organizer.Outcome{Kind: organizer.Skipped, SourceFile: "in/n.txt", DestFile: "out/n.txt", Reason: organizer.SkipReasonExists}
	failed := organizer.Outcome{Kind: organizer.Failed, SourceFile: "in/x.txt", Err: errors.New("permission denied")}

	report := &organizer.Report{}
	report.Add(copied)
	report.Add(skipped)
	report.Add(failed)

	logger.Emit(organizer.RunStarted{
		RunID:   "run-42",
		Request: organizer.Request{SourceRoot: "in", DestRoot: "out", Pattern: "*.*", Delimiter: "_", Policy: config.Skip},
	})
	logger.Emit(organizer.ScanComplete{Matched: 3})
	logger.Emit(organizer.FileProcessed{Outcome: copied})
	logger.Emit(organizer.FileProcessed{Outcome: skipped})
	logger.Emit(organizer.FileFailed{Path: failed.SourceFile, Err: failed.Err})
	logger.Emit(organizer.FileProcessed{Outcome: failed})
	logger.Emit(organizer.RunComplete{Report: report})

	lines := decodeLines(t, buf.Bytes())
	g.Expect(lines).Should(HaveLen(6))

	for _, line := range lines {
		g.Expect(line).Should(HaveKeyWithValue("run_id", "run-42"))
		g.Expect(line).Should(HaveKey("time"))
		g.Expect(line).Should(HaveKey("level"))
	}

	g.Expect(lines[0]).Should(HaveKeyWithValue("message", "Starting file organization..."))
	g.Expect(lines[0]).Should(HaveKeyWithValue("conflict", "skip"))
	g.Expect(lines[2]).Should(HaveKeyWithValue("message", "Successfully copied in/a_b.txt to out/a/a_b.txt"))
	g.Expect(lines[3]).Should(HaveKeyWithValue("message", "Skipped: n.txt (already exists)"))
	g.Expect(lines[4]).Should(HaveKeyWithValue("level", "error"))
	g.Expect(lines[4]).Should(HaveKeyWithValue("message", "Error processing in/x.txt: permission denied"))
	g.Expect(lines[5]).Should(HaveKeyWithValue("message", "File organization process completed"))
	g.Expect(lines[5]).Should(HaveKeyWithValue("counts", HaveKeyWithValue("failed", BeNumerically("==", 1))))
}

func TestEmit_WarningGetsItsOwnLine(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	var buf bytes.Buffer

	logger := runlog.New(&buf)
	copied := organizer.Outcome{
		Kind:       organizer.Copied,
		SourceFile: "in/a.txt",
		DestFile:   "out/a.txt",
		Warning:    errors.New("failed to preserve modification time for out/a.txt"),
	}

	logger.Emit(organizer.FileProcessed{Outcome: copied})

	lines := decodeLines(t, buf.Bytes())
	g.Expect(lines).Should(HaveLen(2))
	g.Expect(lines[0]).Should(HaveKeyWithValue("level", "info"))
	g.Expect(lines[1]).Should(HaveKeyWithValue("level", "warn"))
	g.Expect(lines[1]).Should(HaveKeyWithValue("dest", "out/a.txt"))
	g.Expect(lines[1]).Should(HaveKeyWithValue("message", "Warning: failed to preserve modification time for out/a.txt"))
}

func TestEmit_RunFailedCarriesRunID(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	var buf bytes.Buffer

	runlog.New(&buf).Emit(organizer.RunFailed{RunID: "r9", Err: organizer.ErrNoMatch})

	lines := decodeLines(t, buf.Bytes())
	g.Expect(lines).Should(HaveLen(1))
	g.Expect(lines[0]).Should(HaveKeyWithValue("run_id", "r9"))
	g.Expect(lines[0]).Should(HaveKeyWithValue("level", "error"))
	g.Expect(lines[0]).Should(HaveKeyWithValue("error", organizer.ErrNoMatch.Error()))
}

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var lines []map[string]any

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var line map[string]any

		err := json.Unmarshal(scanner.Bytes(), &line)
		if err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}

		lines = append(lines, line)
	}

	return lines
}
