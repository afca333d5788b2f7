package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"asmetrics/internal/fasta"
	"asmetrics/internal/metrics"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxContigRows caps the contig panel so huge assemblies stay scannable.
const maxContigRows = 50

// Colors for modern design
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	surfaceColor   = lipgloss.Color("#1F2937") // Dark gray
	textColor      = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor     = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor    = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	valueStyle = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	n50Style   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)

type contigInfo struct {
	Name   string
	Length int
}

// datasetEntry is one dataset directory with its metrics and the parsed
// contig records backing them.
type datasetEntry struct {
	Metrics metrics.DatasetMetrics
	Contigs []contigInfo
}

type listItem struct {
	entry datasetEntry
}

func (i listItem) FilterValue() string { return i.entry.Metrics.Dataset }

func (i listItem) Title() string { return i.entry.Metrics.Dataset }

func (i listItem) Description() string {
	m := i.entry.Metrics
	return fmt.Sprintf("Contigs: %d    Bases: %d    N50: %d", m.NumContigs, m.TotalContigBases, m.N50)
}

type mode int

const (
	modeSummary mode = iota
	modeContigs
)

func (m mode) String() string {
	switch m {
	case modeSummary:
		return "Summary"
	case modeContigs:
		return "Contigs"
	default:
		return "Unknown"
	}
}

type model struct {
	list          list.Model
	entries       []datasetEntry
	currentMode   mode
	showHelp      bool
	width         int
	height        int
	totalEntries  int
	selectedIndex int
}

func initialModel(entries []datasetEntry) model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = listItem{entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Assembly Datasets"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:         l,
		entries:      entries,
		currentMode:  modeSummary,
		totalEntries: len(entries),
	}
}

// loadDatasets discovers dataset directories under base and computes their
// metrics, additionally parsing each contig.fasta for per-contig rows.
func loadDatasets(base string) ([]datasetEntry, error) {
	dirs, err := metrics.FindDatasets(base)
	if err != nil {
		return nil, err
	}
	var entries []datasetEntry
	for _, d := range dirs {
		m, err := metrics.ComputeForDataset(d)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(filepath.Join(d, metrics.ContigFile))
		if err != nil {
			return nil, err
		}
		recs := fasta.ParseFasta(f)
		f.Close()

		contigs := make([]contigInfo, 0, len(recs))
		for _, r := range recs {
			if len(r.Sequence) == 0 {
				continue
			}
			contigs = append(contigs, contigInfo{Name: r.Header, Length: len(r.Sequence)})
		}
		sort.Slice(contigs, func(i, j int) bool { return contigs[i].Length > contigs[j].Length })
		if len(contigs) > maxContigRows {
			contigs = contigs[:maxContigRows]
		}
		entries = append(entries, datasetEntry{Metrics: m, Contigs: contigs})
	}
	return entries, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) cycleMode() model {
	switch m.currentMode {
	case modeSummary:
		m.currentMode = modeContigs
	default:
		m.currentMode = modeSummary
	}
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		listWidth := msg.Width / 3
		listHeight := msg.Height - 4 // borders and status bar
		m.list.SetWidth(listWidth)
		m.list.SetHeight(listHeight)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "h":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			return m.cycleMode(), nil

		case "1":
			m.currentMode = modeSummary
			return m, nil

		case "2":
			m.currentMode = modeContigs
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpModal()
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftPanel(),
		m.renderRightPanel(),
	)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatusBar(),
	)
}

func (m model) renderLeftPanel() string {
	listWidth := m.width / 3
	return containerStyle.
		Width(listWidth - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3

	if len(m.entries) == 0 {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No datasets available")
	}

	selectedItem := m.list.SelectedItem()
	if selectedItem == nil {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No dataset selected")
	}
	entry := selectedItem.(listItem).entry

	header := titleStyle.Render(entry.Metrics.Dataset)
	var content string
	switch m.currentMode {
	case modeSummary:
		content = strings.Join(m.summaryLines(entry), "\n")
	case modeContigs:
		content = strings.Join(m.contigLines(entry), "\n")
	}

	panel := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		content,
	)
	return containerStyle.
		Width(rightWidth - 2).
		Height(m.height - 4).
		Render(panel)
}

// summaryLines renders the metrics fields for the detail panel.
func (m model) summaryLines(e datasetEntry) []string {
	mt := e.Metrics
	return []string{
		labelStyle.Render("Contigs:          ") + valueStyle.Render(fmt.Sprintf("%d", mt.NumContigs)),
		labelStyle.Render("Total bases:      ") + valueStyle.Render(fmt.Sprintf("%d", mt.TotalContigBases)),
		labelStyle.Render("N50:              ") + n50Style.Render(fmt.Sprintf("%d", mt.N50)),
	}
}

// contigLines renders the per-contig table, longest first.
func (m model) contigLines(e datasetEntry) []string {
	if len(e.Contigs) == 0 {
		return []string{labelStyle.Render("No contigs")}
	}
	lines := make([]string, 0, len(e.Contigs)+1)
	lines = append(lines, labelStyle.Render(fmt.Sprintf("%-40s %10s", "contig", "length")))
	for _, c := range e.Contigs {
		name := c.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		lines = append(lines, fmt.Sprintf("%-40s %s", name, valueStyle.Render(fmt.Sprintf("%10d", c.Length))))
	}
	return lines
}

func (m model) renderStatusBar() string {
	leftInfo := fmt.Sprintf("%d/%d datasets", m.selectedIndex+1, m.totalEntries)
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode.String())
	rightInfo := "Press 'h' for help, 'q' to quit"

	totalUsed := len(leftInfo) + len(centerInfo) + len(rightInfo)
	spacing := m.width - totalUsed - 6

	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		rightSpacing := spacing - leftSpacing
		statusContent = leftInfo +
			strings.Repeat(" ", leftSpacing) +
			centerInfo +
			strings.Repeat(" ", rightSpacing) +
			rightInfo
	} else {
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}

	return statusBarStyle.
		Width(m.width).
		Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `Assembly Metrics Browser - Help

Navigation:
  up/down, j/k  Navigate datasets
  /             Filter datasets

View Modes:
  1             Metrics summary
  2             Longest contigs
  tab           Cycle modes

General:
  h             Toggle this help
  q, Ctrl+C     Quit

Current Mode: ` + m.currentMode.String() + `
Total Datasets: ` + fmt.Sprintf("%d", m.totalEntries) + `
`

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Align(lipgloss.Center)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(helpContent),
	)
}

func main() {
	dir := flag.String("dir", ".", "base directory containing data* dataset directories")
	flag.Parse()

	entries, err := loadDatasets(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No datasets found (expected directories like data1, data2 with contig.fasta).")
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(entries), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
