//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joe/organize-files/internal/config"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestConflictPolicyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy   config.ConflictPolicy
		expected string
	}{
		{config.Ask, "ask"},
		{config.Skip, "skip"},
		{config.Rename, "rename"},
		{config.Overwrite, "overwrite"},
		{config.ConflictPolicy(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.policy.String(); got != tt.expected {
			t.Errorf("ConflictPolicy(%d).String() = %q, want %q", tt.policy, got, tt.expected)
		}
	}
}

func TestConflictPolicyUnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected config.ConflictPolicy
		wantErr  bool
	}{
		{"ask", config.Ask, false},
		{"Skip", config.Skip, false},
		{" rename ", config.Rename, false},
		{"OVERWRITE", config.Overwrite, false},
		{"replace", config.Ask, true},
		{"", config.Ask, true},
	}

	for _, tt := range tests {
		var policy config.ConflictPolicy

		err := policy.UnmarshalText([]byte(tt.input))
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}

		if !tt.wantErr && policy != tt.expected {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.input, policy, tt.expected)
		}
	}
}

func TestConfigDescriptionAndVersion(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	cfg := config.Config{}

	g.Expect(cfg.Description()).ShouldNot(BeEmpty())
	g.Expect(cfg.Version()).Should(HavePrefix("organize-files "))
}

func TestDefaultsFilePath(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	path, explicit := config.DefaultsFilePath("/etc/flag.toml", "/etc/env.toml")
	g.Expect(path).Should(Equal("/etc/flag.toml"))
	g.Expect(explicit).Should(BeTrue())

	path, explicit = config.DefaultsFilePath("", "/etc/env.toml")
	g.Expect(path).Should(Equal("/etc/env.toml"))
	g.Expect(explicit).Should(BeTrue())

	path, explicit = config.DefaultsFilePath("", "")
	g.Expect(explicit).Should(BeFalse())

	if path != "" {
		g.Expect(path).Should(HaveSuffix(filepath.Join("organize-files", "config.toml")))
	}
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	path := writeFile(t, "delimiter = \"-\"\nworkers = 4\n")

	_, err := config.LoadFile(path)
	g.Expect(err).Should(HaveOccurred())
}

func TestLoadFile_RejectsBadPolicy(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	path := writeFile(t, "conflict = \"sometimes\"\n")

	_, err := config.LoadFile(path)
	g.Expect(err).Should(MatchError(ContainSubstring("failed to parse config file")))
}

func TestPostProcessConfig_BuiltInDefaults(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	source := t.TempDir()

	cfg, err := config.PostProcessConfig(&config.Config{
		SourcePath: source,
		DestPath:   filepath.Join(t.TempDir(), "not-yet-created"),
		ConfigFile: writeFile(t, ""),
	})

	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(cfg.Pattern).Should(Equal("*.*"))
	g.Expect(cfg.Delimiter).Should(Equal("_"))
	g.Expect(cfg.Policy).Should(Equal(config.Ask))
	g.Expect(cfg.LogDir).Should(Equal("logs"))
	g.Expect(cfg.InteractiveMode).Should(BeFalse())
}

func TestPostProcessConfig_FlagsBeatFileBeatDefaults(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	source := t.TempDir()
	dest := t.TempDir()
	file := writeFile(t, `
source = "`+filepath.ToSlash(source)+`"
dest = "`+filepath.ToSlash(dest)+`"
pattern = "*.pdf"
delimiter = "-"
conflict = "skip"
`)

	cfg, err := config.PostProcessConfig(&config.Config{
		Delimiter:  "+",
		ConfigFile: file,
	})

	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(cfg.Delimiter).Should(Equal("+"))
	g.Expect(cfg.Pattern).Should(Equal("*.pdf"))
	g.Expect(cfg.Policy).Should(Equal(config.Skip))
	g.Expect(cfg.LogDir).Should(Equal("logs"))
	g.Expect(filepath.FromSlash(cfg.SourcePath)).Should(Equal(source))
	g.Expect(cfg.InteractiveMode).Should(BeFalse())
}

func TestPostProcessConfig_NoPathsMeansInteractive(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	cfg, err := config.PostProcessConfig(&config.Config{ConfigFile: writeFile(t, "")})
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(cfg.InteractiveMode).Should(BeTrue())
}

func TestPostProcessConfig_Errors(t *testing.T) {
	t.Parallel()

	source := t.TempDir()
	plainFile := writeFile(t, "not a dir")

	tests := []struct {
		name string
		cfg  config.Config
		err  error
	}{
		{
			name: "missing destination",
			cfg:  config.Config{SourcePath: source},
			err:  config.ErrMissingDest,
		},
		{
			name: "missing source",
			cfg:  config.Config{DestPath: source},
			err:  config.ErrMissingSource,
		},
		{
			name: "bad policy flag",
			cfg:  config.Config{SourcePath: source, DestPath: source, Conflict: "maybe"},
			err:  config.ErrInvalidPolicy,
		},
		{
			name: "bad pattern",
			cfg:  config.Config{SourcePath: source, DestPath: source, Pattern: "[unclosed"},
			err:  config.ErrInvalidPattern,
		},
		{
			name: "destination is a file",
			cfg:  config.Config{SourcePath: source, DestPath: plainFile},
			err:  config.ErrNotADirectory,
		},
		{
			name: "source does not exist",
			cfg:  config.Config{SourcePath: filepath.Join(source, "nope"), DestPath: source},
			err:  os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)
			cfg := tt.cfg
			cfg.ConfigFile = writeFile(t, "")

			_, err := config.PostProcessConfig(&cfg)
			g.Expect(err).Should(MatchError(tt.err))
		})
	}
}

func TestPostProcessConfig_ExplicitMissingFileFails(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	_, err := config.PostProcessConfig(&config.Config{
		ConfigFile: filepath.Join(t.TempDir(), "missing.toml"),
	})
	g.Expect(err).Should(MatchError(os.ErrNotExist))
}

func TestValidatePaths_AcceptsSFTPWithoutConnecting(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	cfg := &config.Config{
		SourcePath: "sftp://joe@nas.local/photos",
		DestPath:   "sftp://joe@nas.local:2222//srv/sorted",
	}

	g.Expect(cfg.ValidatePaths()).To(Succeed())

	cfg.SourcePath = "sftp://nas.local/photos"
	g.Expect(cfg.ValidatePaths()).ShouldNot(Succeed())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}
