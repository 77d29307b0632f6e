// Package lipgloss renders analysis reports for the terminal.
package lipgloss

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/contrasta"
	"github.com/mattn/go-runewidth"
)

// DefaultBarWidth is the width in cells of the longest frequency bar.
const DefaultBarWidth = 30

// cloudPreview is the number of cloud words listed.
const cloudPreview = 15

var (
	colorHeading = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorBar     = lipgloss.AdaptiveColor{Light: "#4C72B0", Dark: "#6C92D0"}
	colorRed     = lipgloss.Color("#D62828")
	colorGreen   = lipgloss.Color("#2A9D3F")
)

// Renderer writes a Report as styled text.
// Colors are dropped automatically when the writer is not a terminal.
type Renderer struct {
	BarWidth int
}

// NewRenderer creates a Renderer with the default bar width.
func NewRenderer() *Renderer {
	return &Renderer{BarWidth: DefaultBarWidth}
}

// styles holds the styles bound to one output.
type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	bar     lipgloss.Style
	verdict lipgloss.Style
}

func newStyles(w io.Writer, color string) styles {
	re := lipgloss.NewRenderer(w)
	verdictColor := colorGreen
	if color == contrasta.LabelFabricated.Color() {
		verdictColor = colorRed
	}
	return styles{
		heading: re.NewStyle().Bold(true).Foreground(colorHeading),
		label:   re.NewStyle().Bold(true),
		dim:     re.NewStyle().Foreground(colorDim),
		bar:     re.NewStyle().Foreground(colorBar),
		verdict: re.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(verdictColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(verdictColor).
			Padding(0, 4).
			Align(lipgloss.Center),
	}
}

// Render writes r to w.
func (rd *Renderer) Render(w io.Writer, r *contrasta.Report) error {
	s := newStyles(w, r.Color)

	var b strings.Builder
	b.WriteString(s.heading.Render("Información del Artículo") + "\n")
	fmt.Fprintf(&b, "  %s %s\n", s.label.Render("Título:"), r.Title)
	fmt.Fprintf(&b, "  %s  %s\n", s.label.Render("Autor:"), r.Author)
	fmt.Fprintf(&b, "  %s    %s\n", s.label.Render("URL:"), r.URL)
	b.WriteString("\n")

	b.WriteString(s.heading.Render("Resultado del Análisis") + "\n")
	b.WriteString(s.verdict.Render(r.Verdict.String()) + "\n")
	b.WriteString("\n")

	if len(r.Cloud) > 0 {
		b.WriteString(s.heading.Render("Nube de Palabras") + "\n")
		words := make([]string, 0, cloudPreview)
		for i, c := range r.Cloud {
			if i == cloudPreview {
				break
			}
			words = append(words, c.Word)
		}
		b.WriteString("  " + strings.Join(words, " · ") + "\n\n")
	}

	if len(r.Frequencies) > 0 {
		b.WriteString(s.heading.Render(fmt.Sprintf("Top %d Palabras", contrasta.TopWordsLimit)) + "\n")
		b.WriteString(rd.frequencyTable(s, r.Frequencies))
		b.WriteString("\n")
	}

	if r.ID != "" {
		meta := "informe " + r.ID
		if r.ModelVersion != "" {
			meta += " · modelo " + r.ModelVersion
		}
		b.WriteString(s.dim.Render(meta) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// frequencyTable renders one aligned row per word with a bar proportional
// to its count. Column widths use display width so accented and wide
// characters line up.
func (rd *Renderer) frequencyTable(s styles, freqs []contrasta.WordCount) string {
	barWidth := rd.BarWidth
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}

	wordWidth := 0
	for _, f := range freqs {
		wordWidth = max(wordWidth, runewidth.StringWidth(f.Word))
	}
	top := freqs[0].Count

	var b strings.Builder
	for _, f := range freqs {
		n := max(1, f.Count*barWidth/top)
		fmt.Fprintf(&b, "  %s %s %d\n",
			runewidth.FillRight(f.Word, wordWidth),
			s.bar.Render(strings.Repeat("█", n)),
			f.Count,
		)
	}
	return b.String()
}
