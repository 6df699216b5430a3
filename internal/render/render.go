// Package render paints the abundance heatmap, isotope cards and element info
// panel for a terminal, and emits the equivalent CSS declarations.
package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nuclidex/internal/core"
	"nuclidex/pkg/domain"
)

const (
	cellWidth  = 5
	cellHeight = 2
)

var (
	darkText  = lipgloss.Color("#000000")
	lightText = lipgloss.Color("#ffffff")
	muted     = lipgloss.Color("#64748b")
	accent    = lipgloss.Color("#06b6d4")
)

// Renderer paints styled output for one writer's color profile.
type Renderer struct {
	r *lipgloss.Renderer
}

// New returns a renderer that detects the color profile of w.
func New(w io.Writer) *Renderer {
	return &Renderer{r: lipgloss.NewRenderer(w)}
}

func (r *Renderer) paint(s domain.StyleDescriptor) lipgloss.Style {
	st := r.r.NewStyle().Background(lipgloss.Color(s.FillHex))
	if s.Text == domain.TextDark {
		st = st.Foreground(darkText)
	} else {
		st = st.Foreground(lightText)
	}
	if s.Glow > 0 {
		st = st.Bold(true)
	}
	if s.Absent {
		st = st.Faint(true)
	}
	return st
}

// Table lays out element cells on their (column, row) grid positions.
// Cells without a grid position are listed below the table.
func (r *Renderer) Table(cells []core.ElementCell) string {
	maxCol, maxRow := 0, 0
	grid := map[[2]int]core.ElementCell{}
	var unplaced []core.ElementCell
	for _, c := range cells {
		col, row := c.Element.Column, c.Element.Row
		if col <= 0 || row <= 0 {
			unplaced = append(unplaced, c)
			continue
		}
		if _, taken := grid[[2]int{col, row}]; taken {
			unplaced = append(unplaced, c)
			continue
		}
		grid[[2]int{col, row}] = c
		maxCol = max(maxCol, col)
		maxRow = max(maxRow, row)
	}
	blank := r.r.NewStyle().Width(cellWidth).Height(cellHeight).Render("")
	rows := make([]string, 0, maxRow+1)
	for row := 1; row <= maxRow; row++ {
		line := make([]string, 0, maxCol)
		for col := 1; col <= maxCol; col++ {
			c, ok := grid[[2]int{col, row}]
			if !ok {
				line = append(line, blank)
				continue
			}
			line = append(line, r.cell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	if len(unplaced) > 0 {
		syms := make([]string, 0, len(unplaced))
		for _, c := range unplaced {
			syms = append(syms, r.cell(c))
		}
		rows = append(rows, "", r.r.NewStyle().Foreground(muted).Render("unplaced:"), lipgloss.JoinHorizontal(lipgloss.Top, syms...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r *Renderer) cell(c core.ElementCell) string {
	body := strconv.Itoa(c.Element.Number) + "\n" + c.Element.Symbol
	return r.paint(c.Style).Width(cellWidth).Height(cellHeight).Render(body)
}

// IsotopeCards lists an element's isotopes with abundance and stability.
func (r *Renderer) IsotopeCards(el domain.ElementRecord, cards []core.IsotopeCard) string {
	title := r.r.NewStyle().Bold(true).Foreground(accent).Render(fmt.Sprintf("%s (%s, Z=%d) isotopes", el.Name, el.Symbol, el.Number))
	if len(cards) == 0 {
		return title + "\n" + r.r.NewStyle().Foreground(muted).Render("no isotope data")
	}
	headers := []string{"Nuclide", "Abundance", "Half-life", "Decay constant"}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{c.Isotope.Nuclide, formatFraction(c.Isotope.Abundance), c.Stability.HalfLife, c.Stability.DecayConstant})
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, v := range row {
			widths[i] = max(widths[i], lipgloss.Width(v))
		}
	}
	head := r.r.NewStyle().Bold(true).Padding(0, 1)
	body := r.r.NewStyle().Padding(0, 1)
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	for i, h := range headers {
		sb.WriteString(head.Width(widths[i] + 2).Render(h))
	}
	sb.WriteString("\n")
	for ri, row := range rows {
		for i, v := range row {
			st := body
			if i == 0 {
				st = r.paint(cards[ri].Style).Padding(0, 1)
			}
			sb.WriteString(st.Width(widths[i] + 2).Render(v))
		}
		if ri < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// InfoPanel renders the element summary box.
func (r *Renderer) InfoPanel(info core.ElementInfo, style domain.StyleDescriptor) string {
	label := r.r.NewStyle().Foreground(muted).Width(11)
	lines := []string{
		r.r.NewStyle().Bold(true).Render(info.Name),
		label.Render("Symbol") + info.Symbol,
		label.Render("Number") + strconv.Itoa(info.Number),
		label.Render("Abundance") + info.AbundanceText + " mg/kg",
	}
	if info.Present {
		lines = append(lines, label.Render("Intensity")+strconv.FormatFloat(float64(info.Intensity), 'f', 3, 64))
	} else {
		lines = append(lines, label.Render("Intensity")+"absent")
	}
	lines = append(lines, label.Render("Fill")+r.paint(style).Render(" "+style.FillHex+" "))
	box := r.r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

func formatFraction(f float64) string {
	if f <= 0 {
		return domain.NotApplicable
	}
	return strconv.FormatFloat(f*100, 'g', 6, 64) + "%"
}

// CSSDeclarations returns the declarations a browser cell would carry for s.
func CSSDeclarations(s domain.StyleDescriptor) map[string]string {
	fill := s.Fill.CSS()
	shadow := "none"
	if s.Shadow > 0 {
		shadow = "0 0 " + px(s.Shadow) + " " + fill
	}
	text := "#fff"
	if s.Text == domain.TextDark {
		text = "#000"
	}
	return map[string]string{
		"background-color": fill,
		"box-shadow":       shadow,
		"border-color":     "rgba(255, 255, 255, " + round3(s.BorderAlpha) + ")",
		"color":            text,
	}
}

// CSS joins CSSDeclarations into an inline style attribute value.
func CSS(s domain.StyleDescriptor) string {
	decls := CSSDeclarations(s)
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+decls[k])
	}
	return strings.Join(parts, "; ")
}

func px(v float64) string { return round3(v) + "px" }

func round3(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
