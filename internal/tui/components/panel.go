package components

import (
	"strings"

	"reliefctl/internal/tui/design"
	"reliefctl/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// PanelType defines the visual style of a panel
type PanelType int

const (
	PanelTypeDefault PanelType = iota
	PanelTypeSuccess
	PanelTypeError
	PanelTypeWarning
)

// Panel is a bordered box holding one tab's content. Content taller than the
// panel is cut, keeping the footer visible.
type Panel struct {
	Title   string
	Content string
	Footer  string
	Width   int
	Height  int
	Focused bool
	Type    PanelType
}

// NewPanel creates a new panel with default settings
func NewPanel(title string) *Panel {
	return &Panel{
		Title:  title,
		Width:  design.MinPanelWidth,
		Height: design.MinPanelHeight,
		Type:   PanelTypeDefault,
	}
}

// WithContent sets the panel content
func (p *Panel) WithContent(content string) *Panel {
	p.Content = content
	return p
}

// WithFooter sets a hint line pinned to the bottom of the panel
func (p *Panel) WithFooter(footer string) *Panel {
	p.Footer = footer
	return p
}

// WithDimensions sets the panel dimensions
func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width = width
	p.Height = height
	return p
}

// WithType sets the panel type for styling
func (p *Panel) WithType(panelType PanelType) *Panel {
	p.Type = panelType
	return p
}

// SetFocused updates the focus state
func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

// Render returns the styled panel
func (p *Panel) Render() string {
	if p.Width < design.MinPanelWidth {
		p.Width = design.MinPanelWidth
	}
	if p.Height < design.MinPanelHeight {
		p.Height = design.MinPanelHeight
	}

	style := p.getStyle()
	innerWidth := p.Width - style.GetHorizontalFrameSize()
	innerHeight := p.Height - style.GetVerticalFrameSize()
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	var lines []string
	if p.Title != "" {
		lines = append(lines, p.renderTitle(innerWidth), "")
	}

	var footer []string
	if p.Footer != "" {
		footer = []string{"", design.DimStyle.Render(utils.TruncateString(p.Footer, innerWidth))}
	}

	if p.Content != "" {
		available := innerHeight - len(lines) - len(footer)
		contentLines := strings.Split(p.Content, "\n")
		if available > 0 && len(contentLines) > available {
			contentLines = append(contentLines[:available-1], "...")
		}
		if available <= 0 {
			contentLines = nil
		}
		for _, line := range contentLines {
			if lipgloss.Width(line) > innerWidth {
				line = utils.TruncateString(line, innerWidth)
			}
			lines = append(lines, line)
		}
	}

	for len(lines)+len(footer) < innerHeight {
		lines = append(lines, "")
	}
	lines = append(lines, footer...)
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	return style.
		Width(p.Width - style.GetHorizontalBorderSize()).
		Height(innerHeight).
		Render(strings.Join(lines, "\n"))
}

func (p *Panel) getStyle() lipgloss.Style {
	baseStyle := design.PanelStyle
	if p.Focused {
		baseStyle = design.PanelFocusedStyle
	}

	switch p.Type {
	case PanelTypeSuccess:
		return baseStyle.BorderForeground(design.ColorSuccess)
	case PanelTypeError:
		return baseStyle.BorderForeground(design.ColorError)
	case PanelTypeWarning:
		return baseStyle.BorderForeground(design.ColorWarning)
	default:
		return baseStyle
	}
}

func (p *Panel) renderTitle(width int) string {
	if p.Title == "" {
		return ""
	}
	titleStyle := design.TitleStyle.UnsetMarginBottom()
	if p.Focused {
		titleStyle = titleStyle.Foreground(design.ColorPrimary)
	}
	title := titleStyle.Render(p.Title)
	if lipgloss.Width(title) > width {
		title = utils.TruncateString(title, width)
	}
	return title
}
