//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package organizer_test

import (
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joe/organize-files/internal/organizer"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		source    string
		delimiter string
		want      string
	}{
		{"two folder levels", "/in/alpha_beta_report.txt", "_", "/out/alpha/beta/alpha_beta_report.txt"},
		{"no delimiter", "/in/notes.txt", "_", "/out/notes.txt"},
		{"nested source keeps only the name", "/in/deep/er/x_y.txt", "_", "/out/x/x_y.txt"},
		{"delimiter in extension is ignored", "/in/notes.v_1", "_", "/out/notes.v_1"},
		{"multi dot name", "/in/a_b.tar.gz", "_", "/out/a/a_b.tar.gz"},
		{"multi character delimiter", "/in/2024--q1--summary.pdf", "--", "/out/2024/q1/2024--q1--summary.pdf"},
		{"adjacent delimiters add no level", "/in/a__b.txt", "_", "/out/a/a__b.txt"},
		{"leading delimiter", "/in/_x.txt", "_", "/out/_x.txt"},
		{"dot file", "/in/.bashrc", "_", "/out/.bashrc"},
		{"dot segment adds no level", "/in/._x.txt", "_", "/out/._x.txt"},
		{"trailing dot has no extension", "/in/a_b.", "_", "/out/a/a_b."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)

			planned, err := organizer.NewPlanner(path.Join).Plan(tt.source, "/out", tt.delimiter)
			g.Expect(err).ShouldNot(HaveOccurred())
			g.Expect(planned.DestFile).Should(Equal(tt.want))
			g.Expect(planned.DestFolder).Should(Equal(path.Dir(tt.want)))
			g.Expect(planned.SourceFile).Should(Equal(tt.source))
		})
	}
}

func TestPlan_LocalPaths(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	root := t.TempDir()

	dest, err := organizer.Plan(filepath.Join(root, "in", "alpha_beta_report.txt"), filepath.Join(root, "out"), "_")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(dest).Should(Equal(filepath.Join(root, "out", "alpha", "beta", "alpha_beta_report.txt")))
}

func TestPlan_FolderDepthEqualsDelimiterCount(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}

	for k := 1; k < len(words); k++ {
		name := strings.Join(words[:k+1], "_") + ".txt"

		planned, err := organizer.NewPlanner(path.Join).Plan("/in/"+name, "/out", "_")
		g.Expect(err).ShouldNot(HaveOccurred())

		rel := strings.TrimPrefix(planned.DestFolder, "/out/")
		g.Expect(strings.Split(rel, "/")).Should(Equal(words[:k]), "name %s", name)
		g.Expect(path.Base(planned.DestFile)).Should(Equal(name))
	}
}

func TestPlan_RejectsParentSegments(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	_, err := organizer.NewPlanner(path.Join).Plan("/in/.._.._etc_passwd.txt", "/out", "_")
	g.Expect(err).Should(MatchError(organizer.ErrUnsafeSegment))
}

func TestSplitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		stem string
		ext  string
	}{
		{"report.txt", "report", ".txt"},
		{"report.tar.gz", "report.tar", ".gz"},
		{"README", "README", ""},
		{".bashrc", ".bashrc", ""},
		{"notes.", "notes.", ""},
		{"..", "..", ""},
		{"a.b", "a", ".b"},
	}

	for _, tt := range tests {
		stem, ext := organizer.SplitName(tt.name)
		if stem != tt.stem || ext != tt.ext {
			t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)", tt.name, stem, ext, tt.stem, tt.ext)
		}
	}
}
