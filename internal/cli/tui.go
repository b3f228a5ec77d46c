package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/surface"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BrowseModel - Interactive karyotype browsing
// =============================================================================

// browser is the state shared by copies of BrowseModel. Bubbletea passes
// models by value; the view and its surface must not be copied.
type browser struct {
	name     string
	doc      *surface.Tree
	view     *karyotype.View
	rects    []surface.Element
	cursor   int
	selected string
	err      error
}

// BrowseModel is the bubbletea model for stepping through hit clusters.
// Keys switch modes, arrows move the pointer over hit rectangles, and the
// tooltip text follows it.
type BrowseModel struct {
	b      *browser
	Height int
	Offset int
}

// NewBrowseModel wraps a view drawn on doc. Pointer-downs on hit rectangles
// are reported through the view's select handler, which the caller wires to
// [BrowseModel.Select].
func NewBrowseModel(name string, doc *surface.Tree, v *karyotype.View) BrowseModel {
	m := BrowseModel{
		b:      &browser{name: name, doc: doc, view: v},
		Height: 15,
	}
	m.refresh()
	return m
}

// Select records a selected descriptor.
func (m BrowseModel) Select(desc string) { m.b.selected = desc }

// Selected returns the descriptor of the last pointer-down, if any.
func (m BrowseModel) Selected() string { return m.b.selected }

// Mode returns the effective mode of the browsed view.
func (m BrowseModel) Mode() karyotype.Mode { return m.b.view.CurrentMode() }

// Cursor returns the index of the hovered hit rectangle.
func (m BrowseModel) Cursor() int { return m.b.cursor }

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.switchMode(karyotype.ModeAll)
		case "n":
			m.switchMode(karyotype.ModeNrph)
		case "g":
			m.switchMode(karyotype.ModeGiesma)
		case "up", "k", "left", "h":
			m.move(-1)
		case "down", "j", "right", "l":
			m.move(1)
		case "enter", " ":
			m.dispatch(surface.PointerDown)
		case "esc":
			m.dispatch(surface.PointerLeave)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m *BrowseModel) switchMode(mode karyotype.Mode) {
	if _, err := m.b.view.SwitchVisualization(mode); err != nil {
		m.b.err = err
		return
	}
	m.b.err = nil
	m.refresh()
}

// refresh rebinds to the live rendering's hit rectangles and hovers the
// first one.
func (m *BrowseModel) refresh() {
	m.b.rects = m.b.view.HitRects()
	m.b.cursor = 0
	m.Offset = 0
	m.dispatch(surface.PointerMove)
}

func (m *BrowseModel) move(delta int) {
	if len(m.b.rects) == 0 {
		return
	}
	m.b.cursor = (m.b.cursor + delta + len(m.b.rects)) % len(m.b.rects)
	m.dispatch(surface.PointerMove)
}

// dispatch sends a pointer event to the hovered rectangle as if the pointer
// sat on its top-left corner.
func (m *BrowseModel) dispatch(t surface.EventType) {
	if len(m.b.rects) == 0 {
		return
	}
	rect := m.b.rects[m.b.cursor]
	m.b.doc.Dispatch(surface.Event{
		Type:    t,
		Target:  rect,
		ClientX: attrFloat(rect, "x"),
		ClientY: attrFloat(rect, "y"),
	})
}

func (m BrowseModel) View() string {
	var b strings.Builder
	v := m.b.view
	state := v.State()

	b.WriteString(StyleTitle.Render(m.b.name))
	b.WriteString("  ")
	for _, mode := range karyotype.Modes {
		label := "[" + mode.Label() + "]"
		if mode == state.Requested {
			b.WriteString(listSelectedStyle.Render(label))
		} else {
			b.WriteString(listDimStyle.Render(label))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("a/n/g mode  ↑/↓ move  ⏎ select  esc hide  q quit"))
	b.WriteString("\n")
	if state.FellBack() {
		b.WriteString(StyleWarning.Render("No staining data; showing " + state.Mode.Label()))
		b.WriteString("\n")
	}
	if m.b.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.b.err.Error() + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.contigRows(v, state.Mode))
	b.WriteString("\n")

	if state.Mode != karyotype.ModeGiesma {
		for _, bk := range state.Legend.Buckets {
			b.WriteString(swatch(bk.Color) + " " + listDimStyle.Render(bk.Label) + "  ")
		}
		b.WriteString("\n")
	}

	tip := v.Tooltip()
	switch {
	case len(m.b.rects) == 0:
		b.WriteString(listDimStyle.Render("no hit clusters"))
	case tip.Visible:
		b.WriteString(iconArrow + " " + listNormalStyle.Render(tip.Text))
	default:
		b.WriteString(listDimStyle.Render("tooltip hidden"))
	}
	b.WriteString("\n")
	if m.b.selected != "" {
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " selected " + StyleHighlight.Render(m.b.selected) + "\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.b.cursor+1, len(m.b.rects)), len(m.b.rects))))

	return b.String()
}

// contigRows draws one line per contig: a cell per hit rectangle in its fill
// and, in staining mode, the bands.
func (m BrowseModel) contigRows(v *karyotype.View, mode karyotype.Mode) string {
	byContig := make(map[string][]int)
	for i, r := range m.b.rects {
		name, _ := r.Attribute(karyotype.AttrContig)
		byContig[name] = append(byContig[name], i)
	}

	contigs := v.Dataset().Contigs
	current := 0
	if len(m.b.rects) > 0 {
		name, _ := m.b.rects[m.b.cursor].Attribute(karyotype.AttrContig)
		for i, c := range contigs {
			if c.Name == name {
				current = i
			}
		}
	}
	offset := m.Offset
	if current < offset {
		offset = current
	}
	if current >= offset+m.Height {
		offset = current - m.Height + 1
	}
	end := min(offset+m.Height, len(contigs))

	nameStyle := lipgloss.NewStyle().Width(10)
	var b strings.Builder
	for ci := offset; ci < end; ci++ {
		c := contigs[ci]
		style := listNormalStyle
		if ci == current {
			style = listSelectedStyle
		}
		b.WriteString(nameStyle.Render(style.Render(c.Name)))
		for _, i := range byContig[c.Name] {
			fill, _ := m.b.rects[i].Attribute("fill")
			cell := lipgloss.NewStyle().Background(termColor(fill))
			if i == m.b.cursor {
				b.WriteString(cell.Foreground(lipgloss.Color("0")).Bold(true).Render("◆"))
			} else {
				b.WriteString(cell.Render(" "))
			}
		}
		if mode == karyotype.ModeGiesma {
			b.WriteString(" ")
			for _, band := range c.GiesmaBands {
				b.WriteString(lipgloss.NewStyle().Background(termColor(karyotype.StainColor(band.ColorCode))).Render(" "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func attrFloat(el surface.Element, name string) float64 {
	s, _ := el.Attribute(name)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
