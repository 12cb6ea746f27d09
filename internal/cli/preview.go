package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	werrors "github.com/matzehuels/wrapped/pkg/errors"
	"github.com/matzehuels/wrapped/pkg/pipeline"
	"github.com/matzehuels/wrapped/pkg/render/canvas"
	"github.com/matzehuels/wrapped/pkg/render/layout"
	"github.com/matzehuels/wrapped/pkg/render/sink"
)

// Preview styles
var (
	previewFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(1, 3)
	previewBlockTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewValueStyle      = lipgloss.NewStyle().Foreground(colorGray).PaddingLeft(4)
	previewHelpStyle       = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle      = lipgloss.NewStyle().Foreground(colorRed)
)

// previewOptions holds the flags of the preview command.
type previewOptions struct {
	year    int
	output  string
	refresh bool
	noCache bool
}

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOptions{year: pipeline.DefaultYear, output: "."}

	cmd := &cobra.Command{
		Use:   "preview <username>",
		Short: "Browse the pages interactively in the terminal",
		Long: `Generate the pages for <username> and browse them in the terminal.

Keys:
  ←/→, h/l   previous / next page (wraps around)
  tab        toggle the slide view (one section at a time)
  s          save the current page as PNG
  u          look up another user
  r          fetch the current user again
  q          quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyIntConfig(cmd, "year", &opts.year, c.cfg.Year)
			applyStringConfig(cmd, "output", &opts.output, c.cfg.Output)
			return c.runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.year, "year", "y", opts.year, "completion year to summarize")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "directory for saved pages")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, user string, opts previewOptions) error {
	ctx := withLogger(cmd.Context(), c.Logger)

	runner, closeCache, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	res, err := fetch(ctx, runner, pipeline.Options{User: user, Year: opts.year, Refresh: opts.refresh})
	if err != nil {
		return err
	}

	// Log lines would tear the alternate screen.
	runner.Logger = newLogger(io.Discard, LogInfo)

	m := newPreviewModel(ctx, runner, res, opts.output)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// previewModel - Interactive page browser
// =============================================================================

// previewModel is the bubbletea model for browsing a result.
// It owns the only mutable state of the preview: the current result and the
// page and slide cursors. A failed lookup leaves all of it untouched.
type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	outDir string

	res    *pipeline.Result
	slides []layout.Page // one block per slide
	owners []int         // page index of each slide

	page      int
	slide     int
	slideView bool

	loading bool
	editing bool
	input   string
	status  string
	err     string
}

// generatedMsg carries the outcome of a background lookup.
type generatedMsg struct {
	res *pipeline.Result
	err error
}

// savedMsg carries the outcome of a page export.
type savedMsg struct {
	path string
	err  error
}

func newPreviewModel(ctx context.Context, runner *pipeline.Runner, res *pipeline.Result, outDir string) previewModel {
	m := previewModel{ctx: ctx, runner: runner, outDir: outDir}
	m.setResult(res)
	return m
}

// setResult replaces the result and resets both cursors.
func (m *previewModel) setResult(res *pipeline.Result) {
	m.res = res
	m.page, m.slide = 0, 0
	m.slides, m.owners = nil, nil
	for i, p := range res.Pages {
		for _, b := range p {
			m.slides = append(m.slides, layout.Page{b})
			m.owners = append(m.owners, i)
		}
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			if m.slideView {
				m.slide = pipeline.Next(m.slides, m.slide)
			} else {
				m.page = pipeline.Next(m.res.Pages, m.page)
			}
		case "left", "h", "p":
			if m.slideView {
				m.slide = pipeline.Prev(m.slides, m.slide)
			} else {
				m.page = pipeline.Prev(m.res.Pages, m.page)
			}
		case "tab":
			m.slideView = !m.slideView
		case "s":
			return m, m.save()
		case "u":
			m.editing, m.input = true, ""
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.generate(m.res.User, true)
			}
		}
	case generatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = werrors.UserMessage(msg.err)
			return m, nil
		}
		m.setResult(msg.res)
		m.err = ""
		m.status = fmt.Sprintf("Loaded @%s", msg.res.User)
	case savedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.status = "Saved " + msg.path
	}
	return m, nil
}

// updateInput handles keys while a username is being typed.
func (m previewModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyEnter:
		m.editing = false
		if m.loading {
			return m, nil
		}
		if user := werrors.NormalizeUsername(m.input); user != "" {
			m.loading = true
			return m, m.generate(user, false)
		}
		m.err = werrors.EmptyUsernameMessage
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

// generate runs the pipeline for user off the UI goroutine.
func (m previewModel) generate(user string, refresh bool) tea.Cmd {
	ctx, runner, year := m.ctx, m.runner, m.res.Year
	return func() tea.Msg {
		res, err := runner.Generate(ctx, pipeline.Options{User: user, Year: year, Refresh: refresh})
		return generatedMsg{res: res, err: err}
	}
}

// save exports the page currently on screen. In the slide view that is the
// page holding the current slide.
func (m previewModel) save() tea.Cmd {
	res, runner, dir, page := m.res, m.runner, m.outDir, m.currentPage()
	return func() tea.Msg {
		data, err := runner.RenderPNG(res, page)
		if err != nil {
			return savedMsg{err: err}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return savedMsg{err: err}
		}
		path := filepath.Join(dir, sink.PageFilename(res.Year, page+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{path: path}
	}
}

func (m previewModel) currentPage() int {
	if m.slideView && m.slide < len(m.owners) {
		return m.owners[m.slide]
	}
	return m.page
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(canvas.Heading(m.res.Year)))
	b.WriteString("  ")
	b.WriteString(StyleHighlight.Render("@" + m.res.User))
	b.WriteString("\n")

	var blocks layout.Page
	if m.slideView {
		b.WriteString(StyleDim.Render(fmt.Sprintf("Slide %d / %d", m.slide+1, len(m.slides))))
		if m.slide < len(m.slides) {
			blocks = m.slides[m.slide]
		}
	} else {
		b.WriteString(StyleDim.Render(canvas.Indicator(m.page, m.res.PageCount())))
		blocks = m.res.Pages[m.page]
	}
	b.WriteString("\n")

	var body strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString(previewBlockTitleStyle.Render(strings.Join(blk.TitleLines, "\n")))
		body.WriteString("\n")
		body.WriteString(previewValueStyle.Render(strings.Join(blk.ValueLines, "\n")))
	}
	b.WriteString(previewFrameStyle.Render(body.String()))
	b.WriteString("\n")

	switch {
	case m.editing:
		b.WriteString(StyleValue.Render("Username: " + m.input + "█"))
	case m.loading:
		b.WriteString(StyleDim.Render("Loading..."))
	case m.err != "":
		b.WriteString(previewErrorStyle.Render(m.err))
	case m.status != "":
		b.WriteString(StyleSuccess.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("←/→ page  tab slides  s save  u user  r refresh  q quit"))

	return b.String()
}
