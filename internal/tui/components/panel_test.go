package components

import (
	"strings"
	"testing"

	"reliefctl/internal/tui/design"
	"reliefctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPanel_Render_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		title   string
		content string
	}{
		{
			name:    "zero dimensions",
			width:   0,
			height:  0,
			title:   "Inventory",
			content: "WATER",
		},
		{
			name:    "negative dimensions",
			width:   -10,
			height:  -5,
			title:   "Inventory",
			content: "WATER",
		},
		{
			name:    "empty content",
			width:   40,
			height:  10,
			title:   "Inventory",
			content: "",
		},
		{
			name:    "very long content",
			width:   20,
			height:  8,
			title:   "Reports",
			content: strings.Repeat("The river burst its banks overnight. ", 10),
		},
		{
			name:    "multiline content exceeding height",
			width:   30,
			height:  8,
			title:   "Aid Centres",
			content: "Line 1\nLine 2\nLine 3\nLine 4\nLine 5\nLine 6\nLine 7\nLine 8\nLine 9\nLine 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := NewPanel(tt.title).
				WithContent(tt.content).
				WithDimensions(tt.width, tt.height)

			output := panel.Render()

			assert.NotEmpty(t, output)
			assert.True(t, panel.Width >= design.MinPanelWidth, "Panel width should be at least MinPanelWidth")
			assert.True(t, panel.Height >= design.MinPanelHeight, "Panel height should be at least MinPanelHeight")
			assert.LessOrEqual(t, lipgloss.Height(output), panel.Height)
			for _, line := range strings.Split(output, "\n") {
				assert.LessOrEqual(t, ansi.StringWidth(line), panel.Width)
			}
		})
	}
}

func TestPanel_FooterStaysVisible(t *testing.T) {
	content := strings.Repeat("row\n", 30)
	output := ansi.Strip(NewPanel("Reports").
		WithContent(content).
		WithFooter("d delete • r reload").
		WithDimensions(40, 12).
		Render())

	assert.Contains(t, output, "d delete • r reload")
	assert.Contains(t, output, "...")
}

func TestPanel_Types(t *testing.T) {
	for _, pt := range []PanelType{PanelTypeDefault, PanelTypeSuccess, PanelTypeError, PanelTypeWarning} {
		output := NewPanel("Panel").WithType(pt).WithDimensions(40, 10).WithContent("content").Render()
		assert.Contains(t, ansi.Strip(output), "content")
	}
}

func TestStatusBar_MessageReplacesLeftText(t *testing.T) {
	bar := NewStatusBar(60).
		WithLeftText("Ada • Government Dashboard").
		WithRightText("? help")

	plain := ansi.Strip(bar.Render())
	assert.Contains(t, plain, "Ada • Government Dashboard")
	assert.Contains(t, plain, "? help")

	plain = ansi.Strip(bar.WithMessage("Failed to load inventory", model.StatusBarError).Render())
	assert.Contains(t, plain, "Failed to load inventory")
	assert.NotContains(t, plain, "Government Dashboard")
}

func TestFormatSessionInfo(t *testing.T) {
	assert.Equal(t, "Public Dashboard", FormatSessionInfo("", model.DashboardPublic))
	assert.Equal(t, "Ada • Government Dashboard", FormatSessionInfo("Ada", model.DashboardGovernment))
}
