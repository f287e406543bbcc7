// Package tui implements the full-window chain viewer.
package tui

import (
	"fmt"
	"strings"

	"github.com/aticu/emdiro/internal/chain"
	"github.com/aticu/emdiro/internal/keycodes"
	"github.com/aticu/emdiro/internal/tui/components"
	"github.com/aticu/emdiro/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

type chainLoadedMsg struct {
	chain *chain.Chain
}

type chainErrorMsg struct {
	err error
}

// --- Chain view model ---

type chainViewModel struct {
	path string
	keys *keycodes.Table

	chain *chain.Chain

	width  int
	height int

	loading bool
	spinner spinner.Model
	err     error

	cursor   int
	detail   bool
	quitting bool
}

// RunChainView starts the full-window viewer for the chain stored at path.
func RunChainView(path string, keys *keycodes.Table) error {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := chainViewModel{
		path:    path,
		keys:    keys,
		loading: true,
		spinner: s,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run chain view: %w", err)
	}

	final := result.(chainViewModel)
	if final.err != nil && final.quitting {
		return final.err
	}
	return nil
}

func (m chainViewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadChain())
}

func (m chainViewModel) loadChain() tea.Cmd {
	return func() tea.Msg {
		c, err := chain.Load(m.path)
		if err != nil {
			return chainErrorMsg{err: err}
		}
		return chainLoadedMsg{chain: c}
	}
}

func (m chainViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case chainLoadedMsg:
		m.loading = false
		m.chain = msg.chain
		m.err = nil
		return m, nil

	case chainErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m chainViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.detail {
			m.detail = false
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if !m.detail && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if !m.detail && m.chain != nil && m.cursor < m.chain.Len()-1 {
			m.cursor++
		}

	case "enter":
		if m.chain != nil && m.chain.Len() > 0 {
			m.detail = true
		}
	}

	return m, nil
}

func (m chainViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	breadcrumb := "show"
	if m.detail {
		breadcrumb = fmt.Sprintf("show > action %d", m.cursor+1)
	}
	header := components.Header(m.width, breadcrumb, m.path)

	var footerBindings []components.KeyBinding
	if m.detail {
		footerBindings = []components.KeyBinding{
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	} else {
		footerBindings = []components.KeyBinding{
			{Key: "j/k", Desc: "move"},
			{Key: "enter", Desc: "details"},
			{Key: "q", Desc: "quit"},
		}
	}
	footer := components.Footer(m.width, footerBindings)

	status := ""
	if !m.loading && m.err == nil && m.chain != nil && !m.detail {
		status = components.StatusBar(m.width, fmt.Sprintf("%d actions", m.chain.Len()), false)
	}

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := 0
	if status != "" {
		statusH = lipgloss.Height(status)
	}
	contentH := m.height - headerH - footerH - statusH
	if contentH < 1 {
		contentH = 1
	}

	content := m.renderContent(contentH)

	sections := []string{header, content}
	if status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m chainViewModel) renderContent(height int) string {
	if m.loading {
		loadingText := m.spinner.View() + "  Loading chain..."
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(loadingText),
		)
	}

	if m.err != nil {
		errText := styles.ErrorText.Render("Error: "+m.err.Error()) + "\n\n" +
			styles.MutedText.Render("Press q to quit.")
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			errText,
		)
	}

	if m.chain == nil || m.chain.Len() == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("The chain contains no actions."),
		)
	}

	if m.detail {
		return m.renderDetail(height)
	}
	return m.renderList(height)
}

func (m chainViewModel) renderList(height int) string {
	lines := make([]string, 0, m.chain.Len())
	for i, action := range m.chain.Commands {
		line := fmt.Sprintf("%3d  %s", i+1, summarize(action, m.keys))
		if i == m.cursor {
			line = styles.ListSelected.Render(line)
		} else {
			line = styles.ListItem.Render(line)
		}
		lines = append(lines, line)
	}

	list := strings.Join(lines, "\n")
	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		list,
	)
}

func (m chainViewModel) renderDetail(height int) string {
	action := m.chain.Commands[m.cursor]

	cardWidth := m.width - 8
	if cardWidth > 72 {
		cardWidth = 72
	}
	if cardWidth < 30 {
		cardWidth = 30
	}

	labelWidth := 12
	valueWidth := cardWidth - labelWidth - 8 // padding + border

	renderField := func(label, value string) string {
		l := styles.Label.Width(labelWidth).Render(label)
		v := styles.Value.Width(valueWidth).Render(value)
		return l + v
	}

	titleLine := styles.Title.Render(fmt.Sprintf("Action %d", m.cursor+1)) + "  " +
		styles.AccentText.Render(string(action.Kind()))

	fields := detailFields(action, m.keys)
	rows := make([]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, renderField(field[0], field[1]))
	}

	card := styles.Card.Width(cardWidth).Render(
		styles.Subtitle.Render("Details") + "\n\n" + strings.Join(rows, "\n"),
	)

	detail := lipgloss.JoinVertical(lipgloss.Left, titleLine, "", card)
	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		detail,
	)
}

// summarize produces the one-line list entry for an action.
func summarize(action chain.Action, keys *keycodes.Table) string {
	switch a := action.(type) {
	case *chain.WaitForImage:
		if a.Click {
			return fmt.Sprintf("wait for image at %s and click", a.Location)
		}
		return fmt.Sprintf("wait for image at %s", a.Location)
	case *chain.Sleep:
		return fmt.Sprintf("sleep for %s", a.Duration)
	case *chain.Shell:
		return fmt.Sprintf("shell command: %s", a.Command)
	case *chain.PressKeys:
		return "press keys: " + strings.Join(keyNames(a.Keys, keys), "+")
	case *chain.Type:
		return fmt.Sprintf("type text: %q", a.Text)
	case *chain.Click:
		return fmt.Sprintf("click at %s", a.Position)
	case *chain.MouseMove:
		return fmt.Sprintf("move mouse to %s", a.Position)
	default:
		return string(action.Kind())
	}
}

// detailFields lists the label/value pairs shown on the detail card.
func detailFields(action chain.Action, keys *keycodes.Table) [][2]string {
	switch a := action.(type) {
	case *chain.WaitForImage:
		bounds := a.Image.Bounds()
		return [][2]string{
			{"Location", a.Location.String()},
			{"Image", fmt.Sprintf("%dx%d px", bounds.Dx(), bounds.Dy())},
			{"Click", fmt.Sprintf("%t", a.Click)},
		}
	case *chain.Sleep:
		return [][2]string{{"Duration", a.Duration.String()}}
	case *chain.Shell:
		return [][2]string{{"Command", a.Command}}
	case *chain.PressKeys:
		return [][2]string{
			{"Keys", strings.Join(keyNames(a.Keys, keys), ", ")},
			{"Count", fmt.Sprintf("%d", len(a.Keys))},
		}
	case *chain.Type:
		return [][2]string{{"Text", a.Text}}
	case *chain.Click:
		return [][2]string{{"Position", a.Position.String()}}
	case *chain.MouseMove:
		return [][2]string{{"Position", a.Position.String()}}
	default:
		return nil
	}
}

func keyNames(codes []uint32, keys *keycodes.Table) []string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		name, ok := keys.ReverseLookup(code)
		if !ok {
			name = fmt.Sprintf("<%d>", code)
		}
		names = append(names, name)
	}
	return names
}
