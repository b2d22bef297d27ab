package tui_test

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joe/organize-files/internal/config"
	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/tui"
	"github.com/joe/organize-files/internal/tui/shared"
	"github.com/joe/organize-files/pkg/filesystem"
)

var _ = Describe("AppModel", func() {
	var (
		cfg *config.Config
		src *filesystem.MockFileSystem
		dst *filesystem.MockFileSystem
		req organizer.Request
	)

	BeforeEach(func() {
		cfg = &config.Config{LogDir: "logs", Policy: config.Ask, Pattern: "*.*", Delimiter: "_"}
		src = filesystem.NewMockFileSystem()
		dst = filesystem.NewMockFileSystem()
		req = organizer.Request{
			SourceRoot: "src",
			DestRoot:   "dst",
			Pattern:    "*.*",
			Delimiter:  "_",
			Policy:     config.Ask,
		}
	})

	mockRun := func() tui.RunFunc {
		return func(
			ctx context.Context,
			req organizer.Request,
			emitter organizer.EventEmitter,
			decider organizer.Decider,
		) (*organizer.Report, error) {
			org := organizer.NewOrganizer(src, dst)
			org.Decider = decider
			org.SetEventEmitter(emitter)

			return org.Run(ctx, req)
		}
	}

	Describe("Terms of use", func() {
		It("starts on the terms screen", func() {
			app := tui.NewAppModel(cfg, mockRun())
			Expect(app.Phase()).To(Equal(tui.PhaseTerms))
			Expect(app.View()).To(ContainSubstring("DISCLAIMER AND LIMITED LIABILITY"))
		})

		It("skips the terms screen when they were accepted up front", func() {
			cfg.AcceptTerms = true
			app := tui.NewAppModel(cfg, mockRun())
			Expect(app.Phase()).To(Equal(tui.PhaseInput))
		})

		It("moves to the form when the terms are accepted", func() {
			d := newDriver(tui.NewAppModel(cfg, mockRun()))
			d.key("y")

			Expect(d.until(func() bool { return d.app.Phase() == tui.PhaseInput })).To(BeTrue())
		})

		It("quits when the terms are declined", func() {
			d := newDriver(tui.NewAppModel(cfg, mockRun()))
			d.key("n")

			Expect(d.until(func() bool { return d.quit })).To(BeTrue())
			Expect(d.app.Declined()).To(BeTrue())
		})
	})

	Describe("Running", func() {
		It("organizes files and shows the summary", func() {
			src.AddFile("src/alpha_beta_report.txt", []byte("report"), time.Now())
			src.AddFile("src/notes.txt", []byte("notes"), time.Now())
			cfg.AcceptTerms = true

			d := newDriver(tui.NewAppModel(cfg, mockRun()))
			d.send(shared.StartRunMsg{Request: req})

			Expect(d.until(func() bool { return d.app.Phase() == tui.PhaseSummary })).To(BeTrue())
			Expect(d.app.Failed()).To(BeFalse())
			Expect(dst.Exists("dst/alpha/beta/alpha_beta_report.txt")).To(BeTrue())
			Expect(dst.Exists("dst/notes.txt")).To(BeTrue())

			activity := d.app.RunScreen().Activity()
			Expect(activity[0]).To(Equal(organizer.MsgStarting))
			Expect(activity).To(ContainElement(ContainSubstring("Copied: notes.txt -> dst/notes.txt")))
			Expect(d.app.View()).To(ContainSubstring("Copied: 2"))
		})

		It("reports when nothing matches", func() {
			src.AddDir("src")
			cfg.AcceptTerms = true

			d := newDriver(tui.NewAppModel(cfg, mockRun()))
			d.send(shared.StartRunMsg{Request: req})

			Expect(d.until(func() bool { return d.app.Phase() == tui.PhaseSummary })).To(BeTrue())
			Expect(d.app.Failed()).To(BeTrue())
			Expect(d.app.View()).To(ContainSubstring("No files found matching the pattern."))
			Expect(dst.ListFiles()).To(BeEmpty())
		})

		It("asks about existing files and applies the answer", func() {
			src.AddFile("src/a_notes.txt", []byte("new"), time.Now())
			dst.AddFile("dst/a/a_notes.txt", []byte("old"), time.Now())
			cfg.AcceptTerms = true

			d := newDriver(tui.NewAppModel(cfg, mockRun()))
			d.send(shared.StartRunMsg{Request: req})

			Expect(d.until(func() bool { return d.app.RunScreen().Prompting() != "" })).To(BeTrue())
			Expect(d.app.RunScreen().Prompting()).To(Equal("dst/a/a_notes.txt"))
			Expect(d.app.View()).To(ContainSubstring("File already exists"))

			d.key("y")

			Expect(d.until(func() bool { return d.app.Phase() == tui.PhaseSummary })).To(BeTrue())

			data, _, err := dst.GetFile("dst/a/a_notes.txt")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("new"))
		})

		It("keeps both files when the prompt is dismissed", func() {
			src.AddFile("src/a_notes.txt", []byte("new"), time.Now())
			dst.AddFile("dst/a/a_notes.txt", []byte("old"), time.Now())
			cfg.AcceptTerms = true

			d := newDriver(tui.NewAppModel(cfg, mockRun()))
			d.send(shared.StartRunMsg{Request: req})

			Expect(d.until(func() bool { return d.app.RunScreen().Prompting() != "" })).To(BeTrue())
			d.send(tea.KeyMsg{Type: tea.KeyEsc})

			Expect(d.until(func() bool { return d.app.Phase() == tui.PhaseSummary })).To(BeTrue())
			Expect(dst.Exists("dst/a/a_notes_1.txt")).To(BeTrue())

			data, _, err := dst.GetFile("dst/a/a_notes.txt")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("old"))
		})

		It("stops the run and quits on ctrl+c", func() {
			src.AddFile("src/a_notes.txt", []byte("new"), time.Now())
			dst.AddFile("dst/a/a_notes.txt", []byte("old"), time.Now())
			cfg.AcceptTerms = true

			d := newDriver(tui.NewAppModel(cfg, mockRun()))
			d.send(shared.StartRunMsg{Request: req})

			Expect(d.until(func() bool { return d.app.RunScreen().Prompting() != "" })).To(BeTrue())
			d.send(tea.KeyMsg{Type: tea.KeyCtrlC})

			Expect(d.until(func() bool { return d.quit })).To(BeTrue())
			Expect(d.app.Phase()).To(Equal(tui.PhaseSummary))
		})

		It("shows run errors on the summary", func() {
			cfg.AcceptTerms = true
			failing := func(context.Context, organizer.Request, organizer.EventEmitter, organizer.Decider) (*organizer.Report, error) {
				return nil, errors.New("connection refused")
			}

			d := newDriver(tui.NewAppModel(cfg, failing))
			d.send(shared.StartRunMsg{Request: req})

			Expect(d.until(func() bool { return d.app.Phase() == tui.PhaseSummary })).To(BeTrue())
			Expect(d.app.Failed()).To(BeTrue())
			Expect(d.app.View()).To(ContainSubstring("connection refused"))
		})

		It("returns to the form for another run", func() {
			src.AddFile("src/notes.txt", []byte("notes"), time.Now())
			cfg.AcceptTerms = true

			d := newDriver(tui.NewAppModel(cfg, mockRun()))
			d.send(shared.StartRunMsg{Request: req})
			Expect(d.until(func() bool { return d.app.Phase() == tui.PhaseSummary })).To(BeTrue())

			d.key("n")

			Expect(d.until(func() bool { return d.app.Phase() == tui.PhaseInput })).To(BeTrue())
		})
	})

	Describe("Phase names", func() {
		It("maps phases to timeline keys", func() {
			Expect(tui.PhaseTerms.String()).To(Equal(shared.PhaseKeyTerms))
			Expect(tui.PhaseInput.String()).To(Equal(shared.PhaseKeyInput))
			Expect(tui.PhaseRun.String()).To(Equal(shared.PhaseKeyOrganize))
			Expect(tui.PhaseSummary.String()).To(Equal(shared.PhaseKeyDone))
		})
	})
})

// driver plays the role of the bubble tea runtime: it runs commands on
// goroutines and feeds their messages back into the model one at a time.
type driver struct {
	app  *tui.AppModel
	msgs chan tea.Msg
	quit bool
}

func newDriver(app *tui.AppModel) *driver {
	d := &driver{app: app, msgs: make(chan tea.Msg, 256)}
	d.dispatch(app.Init())

	return d
}

func (d *driver) dispatch(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	go func() {
		d.msgs <- cmd()
	}()
}

func (d *driver) key(k string) {
	d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func (d *driver) send(msg tea.Msg) {
	_, cmd := d.app.Update(msg)
	d.dispatch(cmd)
}

// until processes messages until done returns true or two seconds pass.
func (d *driver) until(done func() bool) bool {
	deadline := time.After(2 * time.Second)

	for !done() {
		select {
		case msg := <-d.msgs:
			switch m := msg.(type) {
			case nil:
			case tea.BatchMsg:
				for _, cmd := range m {
					d.dispatch(cmd)
				}
			case tea.QuitMsg:
				d.quit = true
			default:
				d.send(m)
			}
		case <-deadline:
			return false
		}
	}

	return true
}
