//nolint:varnamelen // Test files use idiomatic short variable names (t, fs, etc.)
package filesystem_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joe/organize-files/pkg/filesystem"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestExists(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("dst/notes.txt", []byte("x"), time.Now())

	exists, err := filesystem.Exists(fs, "dst/notes.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).Should(BeTrue())

	exists, err = filesystem.Exists(fs, "dst/missing.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).Should(BeFalse())
}

func TestExists_PropagatesStatFailures(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()
	denied := errors.New("permission denied")
	fs.FailOn(filesystem.OpStat, "dst/locked.txt", denied)

	exists, err := filesystem.Exists(fs, "dst/locked.txt")
	g.Expect(err).Should(MatchError(denied))
	g.Expect(exists).Should(BeFalse())
}

func TestMockFileSystem_Chtimes(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewMockFileSystem()
	oldTime := time.Now().Add(-2 * time.Hour)
	fs.AddFile("test.txt", []byte("test"), oldTime)

	newTime := time.Now().Add(-1 * time.Hour)

	err := fs.Chtimes("test.txt", newTime, newTime)
	if err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	info, err := fs.Stat("test.txt")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	if !info.ModTime().Equal(newTime) {
		t.Errorf("Expected modtime %v, got %v", newTime, info.ModTime())
	}
}

func TestMockFileSystem_CreateAndOpen(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewMockFileSystem()
	content := []byte("test content")

	file, err := fs.Create("test.txt")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = file.Write(content)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	_ = file.Close()

	file, err = fs.Open("test.txt")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if string(data) != string(content) {
		t.Errorf("Expected %q, got %q", content, data)
	}
}

func TestMockFileSystem_CreateRequiresParent(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()

	_, err := fs.Create("missing/dir/file.txt")
	g.Expect(err).Should(MatchError(os.ErrNotExist))
}

func TestMockFileSystem_FailOnWrite(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()
	diskFull := errors.New("no space left on device")
	fs.FailOn(filesystem.OpWrite, "full.bin", diskFull)

	file, err := fs.Create("full.bin")
	g.Expect(err).ShouldNot(HaveOccurred())

	_, err = file.Write([]byte("data"))
	g.Expect(err).Should(MatchError(diskFull))
}

func TestMockFileSystem_MkdirAll(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewMockFileSystem()

	err := fs.MkdirAll("a/b/c", 0o755)
	if err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	for _, path := range []string{"a", "a/b", "a/b/c"} {
		info, err := fs.Stat(path)
		if err != nil {
			t.Errorf("Stat(%s) failed: %v", path, err)
			continue
		}

		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", path)
		}
	}
}

func TestMockFileSystem_Remove(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("test.txt", []byte("test"), time.Now())

	err := fs.Remove("test.txt")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	_, err = fs.Stat("test.txt")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}

func TestMockFileSystem_Scan(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("root/file2.txt", []byte("content2"), time.Now())
	fs.AddFile("root/file1.txt", []byte("content1"), time.Now())
	fs.AddFile("root/subdir/file3.txt", []byte("content3"), time.Now())
	fs.AddFile("other/ignored.txt", []byte("x"), time.Now())

	var visited []string

	scanner := fs.Scan("root")
	for info, ok := scanner.Next(); ok; info, ok = scanner.Next() {
		visited = append(visited, info.RelativePath)
	}

	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(visited).Should(Equal([]string{"file1.txt", "file2.txt", "subdir", "subdir/file3.txt"}))
}

func TestMockFileSystem_ScanMissingRoot(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fs := filesystem.NewMockFileSystem()

	scanner := fs.Scan("nowhere")
	_, ok := scanner.Next()

	g.Expect(ok).Should(BeFalse())
	g.Expect(scanner.Err()).Should(MatchError(os.ErrNotExist))
}

func TestRealFileSystem_Scan(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	root := t.TempDir()

	for _, rel := range []string{"b.txt", "a/nested.txt", "a/deeper/c.log"} {
		full := filepath.Join(root, filepath.FromSlash(rel))
		g.Expect(os.MkdirAll(filepath.Dir(full), 0o755)).To(Succeed())
		g.Expect(os.WriteFile(full, []byte(rel), 0o644)).To(Succeed())
	}

	fs := filesystem.NewRealFileSystem()
	scanner := fs.Scan(root)

	regular := map[string]string{}
	dirs := []string{}

	for info, ok := scanner.Next(); ok; info, ok = scanner.Next() {
		if info.IsDir {
			dirs = append(dirs, info.RelativePath)
			continue
		}

		g.Expect(info.IsRegular).Should(BeTrue())
		regular[info.RelativePath] = info.Path
	}

	g.Expect(scanner.Err()).ShouldNot(HaveOccurred())
	g.Expect(dirs).Should(ConsistOf("a", "a/deeper"))
	g.Expect(regular).Should(HaveLen(3))
	g.Expect(regular).Should(HaveKeyWithValue("a/deeper/c.log", filepath.Join(root, "a", "deeper", "c.log")))
}

func TestRealFileSystem_ScanMissingRoot(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fs := filesystem.NewRealFileSystem()

	scanner := fs.Scan(filepath.Join(t.TempDir(), "missing"))
	_, ok := scanner.Next()

	g.Expect(ok).Should(BeFalse())
	g.Expect(scanner.Err()).Should(HaveOccurred())
}

func TestRealFileSystem_StatNotExistIsDetectable(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fs := filesystem.NewRealFileSystem()

	exists, err := filesystem.Exists(fs, filepath.Join(t.TempDir(), "nope.txt"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(exists).Should(BeFalse())
}

func TestSameFile(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dir := t.TempDir()
	fs := filesystem.NewRealFileSystem()

	g.Expect(os.MkdirAll(filepath.Join(dir, "sub"), 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "b.txt"), []byte("a"), 0o644)).To(Succeed())

	same, err := filesystem.SameFile(fs, filepath.Join(dir, "a.txt"), dir+"/sub/../a.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(same).Should(BeTrue())

	same, err = filesystem.SameFile(fs, filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(same).Should(BeFalse())

	same, err = filesystem.SameFile(fs, filepath.Join(dir, "a.txt"), filepath.Join(dir, "missing.txt"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(same).Should(BeFalse())
}

func TestOpenPair_ResolvesRelativeLocalPaths(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	_, _, sourcePath, destPath, closer, err := filesystem.OpenPair(
		filesystem.Location{Path: "in"},
		filesystem.Location{Path: "out/../out"},
	)
	g.Expect(err).ShouldNot(HaveOccurred())

	defer closer()

	wd, err := os.Getwd()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(sourcePath).Should(Equal(filepath.Join(wd, "in")))
	g.Expect(destPath).Should(Equal(filepath.Join(wd, "out")))
}

func TestOpenPair_LocalLocationsShareFileSystem(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	sourceFS, destFS, sourcePath, destPath, closer, err := filesystem.OpenPair(
		filesystem.Location{Path: "/data/in"},
		filesystem.Location{Path: "/data/out"},
	)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(closer).ShouldNot(BeNil())

	defer closer()

	g.Expect(destFS).Should(BeIdenticalTo(sourceFS))
	g.Expect(sourcePath).Should(Equal("/data/in"))
	g.Expect(destPath).Should(Equal("/data/out"))
}
