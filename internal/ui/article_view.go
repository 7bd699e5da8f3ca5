package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asheshgoplani/article-deck/internal/article"
)

// fixedColumnWidth caps the text column for the "grid-fixed" width.
const fixedColumnWidth = 72

// articleMargin is the blank space left and right of a wide column.
const articleMargin = 2

// fontFace is how a font family looks in a terminal, which has one font.
type fontFace struct {
	bold              bool
	italic            bool
	faint             bool
	underlineHeadings bool
	upperHeadings     bool
}

func fontFaceFor(family string) fontFace {
	switch family {
	case "ubuntu":
		return fontFace{bold: true}
	case "cormorant-garamond":
		return fontFace{italic: true}
	case "days-one":
		return fontFace{upperHeadings: true}
	case "merriweather":
		return fontFace{faint: true, underlineHeadings: true}
	}
	return fontFace{}
}

// paragraphGap maps a font size to blank lines between paragraphs.
func paragraphGap(size string) int {
	switch size {
	case "25":
		return 2
	case "38":
		return 3
	}
	return 1
}

// letterSpace puts a space between the runes of s ("T I T L E").
func letterSpace(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ArticleView shows the article styled by the applied settings and scrolls it.
type ArticleView struct {
	doc      article.Document
	settings article.Settings
	vp       viewport.Model
	width    int
	height   int
}

// NewArticleView creates a view showing doc with the default settings.
func NewArticleView(doc article.Document) *ArticleView {
	a := &ArticleView{
		doc:      doc,
		settings: article.DefaultSettings,
		vp:       viewport.New(0, 0),
	}
	return a
}

// SetSize resizes the view and re-flows the text.
func (a *ArticleView) SetSize(width, height int) {
	if width == a.width && height == a.height {
		return
	}
	a.width = width
	a.height = height
	a.vp.Width = width
	a.vp.Height = height
	a.refresh()
}

// Apply restyles the article with s.
func (a *ArticleView) Apply(s article.Settings) {
	a.settings = s
	a.refresh()
}

// Settings returns the settings the article is currently shown with.
func (a *ArticleView) Settings() article.Settings {
	return a.settings
}

// SetDocument replaces the article text.
func (a *ArticleView) SetDocument(doc article.Document) {
	a.doc = doc
	a.vp.GotoTop()
	a.refresh()
}

// ColumnWidth is the width the text wraps at.
func (a *ArticleView) ColumnWidth() int {
	w := a.width - 2*articleMargin
	if a.settings.ContentWidth.Value == "grid-fixed" && w > fixedColumnWidth {
		w = fixedColumnWidth
	}
	if w < 10 {
		w = 10
	}
	return w
}

func (a *ArticleView) refresh() {
	bg := lipgloss.Color(article.ColorHex(a.settings.BackgroundColor.Value))
	a.vp.Style = lipgloss.NewStyle().Background(bg)
	if a.width <= 0 {
		return
	}
	offset := a.vp.YOffset
	a.vp.SetContent(a.render())
	a.vp.SetYOffset(offset)
}

func (a *ArticleView) render() string {
	s := a.settings
	fg := lipgloss.Color(article.ColorHex(s.FontColor.Value))
	bg := lipgloss.Color(article.ColorHex(s.BackgroundColor.Value))
	face := fontFaceFor(s.FontFamily.Value)
	col := a.ColumnWidth()

	base := lipgloss.NewStyle().Foreground(fg).Background(bg).Width(col)
	body := base.Bold(face.bold).Italic(face.italic).Faint(face.faint)
	heading := base.Bold(true).Italic(face.italic).Underline(face.underlineHeadings)

	title := a.doc.Title
	if face.upperHeadings {
		title = strings.ToUpper(title)
	}
	if s.FontSize.Value == "38" {
		title = letterSpace(title)
	}

	blank := lipgloss.NewStyle().Background(bg).Width(a.width).Render("")
	place := func(block string) string {
		return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, block,
			lipgloss.WithWhitespaceBackground(bg))
	}

	gap := paragraphGap(s.FontSize.Value)
	parts := []string{blank, place(heading.Render(title))}
	for _, para := range a.doc.Paragraphs {
		for i := 0; i < gap; i++ {
			parts = append(parts, blank)
		}
		parts = append(parts, place(body.Render(para)))
	}
	parts = append(parts, blank)
	return strings.Join(parts, "\n")
}

// Update forwards scrolling keys and mouse wheel events to the viewport.
func (a *ArticleView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.vp, cmd = a.vp.Update(msg)
	return cmd
}

// ScrollPercent reports how far the article is scrolled, 0 to 1.
func (a *ArticleView) ScrollPercent() float64 {
	return a.vp.ScrollPercent()
}

// View renders the visible part of the article.
func (a *ArticleView) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	return a.vp.View()
}
