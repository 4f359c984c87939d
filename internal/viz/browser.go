package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravmap/internal/survey"
)

const (
	viewHeatmap = iota
	viewContour
	viewProfile
	numViews
)

var viewNames = [numViews]string{"heatmap", "contours", "profile"}

// Browser is a bubbletea model that pages through the layers of a report. Tab
// cycles the heatmap, contour and centre-profile views.
type Browser struct {
	report        *survey.Report
	cmap          Colormap
	sheet, layer  int
	view          int
	width, height int
}

func NewBrowser(report *survey.Report, cm Colormap) Browser {
	return Browser{report: report, cmap: cm, width: 100, height: 40}
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "right", "l":
			if b.layer < len(b.current().Layers)-1 {
				b.layer++
			}
		case "left", "h":
			if b.layer > 0 {
				b.layer--
			}
		case "down", "j":
			if b.sheet < len(b.report.Sheets)-1 {
				b.sheet++
				b.layer = max(min(b.layer, len(b.current().Layers)-1), 0)
			}
		case "up", "k":
			if b.sheet > 0 {
				b.sheet--
				b.layer = max(min(b.layer, len(b.current().Layers)-1), 0)
			}
		case "tab":
			b.view = (b.view + 1) % numViews
		}
	}
	return b, nil
}

func (b Browser) current() survey.Sheet {
	return b.report.Sheets[b.sheet]
}

// Selected returns the sheet and layer indices on screen.
func (b Browser) Selected() (sheet, layer int) {
	return b.sheet, b.layer
}

func (b Browser) View() string {
	if b.report == nil || len(b.report.Sheets) == 0 {
		return ErrorStyle.Render("no layers") + "\n"
	}
	s := b.current()
	if len(s.Layers) == 0 {
		return ErrorStyle.Render(fmt.Sprintf("no layers at spacing %g", s.Spacing)) + "\n"
	}
	l := s.Layers[b.layer]

	a := b.report.Plan.Anomaly
	header := HeaderStyle.Render(fmt.Sprintf("Single Point Mass Anomaly (m=%.1e kg, xm=%v)", a.Mass, a.Location))
	status := strings.Join([]string{
		Metric("spacing", fmt.Sprintf("%d/%d", b.sheet+1, len(b.report.Sheets))),
		Metric("height", fmt.Sprintf("%d/%d", b.layer+1, len(s.Layers))),
		Metric("view", viewNames[b.view]),
		Metric("gz peak", fmt.Sprintf("%.3e", l.Metrics["gz_peak"])),
	}, "   ")

	// Each heatmap column takes two characters, with two panels and borders.
	maxCols := max((b.width-12)/4, 4)

	var body string
	switch b.view {
	case viewHeatmap:
		body = RenderLayer(l, s, b.cmap, maxCols)
	case viewContour:
		body = RenderContours(l, s, 8, max((b.width-12)/2, 8), max(b.height-12, 6))
	case viewProfile:
		body = RenderProfiles(l, max(b.width-16, 20))
	}

	hints := KeyHint.Render("←/→ height  ↑/↓ spacing  tab view  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, status, Separator(min(b.width, 80)), body, hints) + "\n"
}

// RunBrowser starts the interactive browser on the alternate screen.
func RunBrowser(report *survey.Report, cm Colormap) error {
	p := tea.NewProgram(NewBrowser(report, cm), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
