package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/calyptra/framevisx/internal/overlay"
	"github.com/calyptra/framevisx/internal/production"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <scene.yaml>",
	Short: "Render a scene's visibility timeline",
	Long: `Resolve, for every primitive in the scene, the frames it is visible in,
and render the result as a frames-by-primitives grid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, stack, ov, err := loadOverlay(args[0])
		if err != nil {
			return err
		}

		view := ov.Snapshot(stack.ValidFrameIndices())
		exporter := &production.DefaultExporter{}

		if jsonOutput {
			out, err := exporter.ExportJSON(view)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), renderStyledTimeline(view))
		return nil
	},
}

// renderStyledTimeline is the color variant of the plain-text exporter grid.
func renderStyledTimeline(view overlay.OverlayView) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s", "frame")))
	for _, f := range view.Frames {
		b.WriteString(headerStyle.Render(fmt.Sprintf(" %3d", f)))
	}
	b.WriteByte('\n')

	for _, pv := range view.Primitives {
		label := pv.ID
		if len(label) > 11 {
			label = label[:11]
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", label)))
		for _, vis := range pv.Visible {
			if vis {
				b.WriteString(onStyle.Render("   #"))
			} else {
				b.WriteString(offStyle.Render("   ."))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
