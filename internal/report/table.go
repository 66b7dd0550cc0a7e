package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/tui-raycast/internal/core"
	"github.com/vovakirdan/tui-raycast/internal/raycast"
)

// Options controls table and summary output.
type Options struct {
	MaxRays   int // Rows shown, evenly sampled; 0 = all
	Precision int // Decimal places for distances, clamped to [0, maxPrecision]
	Width     int // Table width in cells; 0 = natural width
}

const maxPrecision = 12

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	emptyStyle  = cellStyle.Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Table renders the frame's hit lists as a bordered table: one row per ray
// with its angle, hit count and hits as "tile@distance" followed by the
// crossed grid line axis.
func Table(f Frame, opts Options) string {
	rows := sampleRows(len(f.Hits), opts.MaxRays)

	data := make([][]string, 0, len(rows))
	empty := make(map[int]bool)
	for r, i := range rows {
		hits := f.Hits[i]
		if len(hits) == 0 {
			empty[r] = true
		}
		data = append(data, []string{
			strconv.Itoa(i),
			formatFloat(core.Degrees(f.Angles[i]), 2),
			strconv.Itoa(len(hits)),
			formatHits(hits, opts.Precision),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("RAY", "ANGLE°", "N", "HITS").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 3 && empty[row]:
				return emptyStyle
			case col < 3:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		Rows(data...)

	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}

	var sb strings.Builder
	sb.WriteString(Header(f, opts))
	sb.WriteString("\n")
	sb.WriteString(t.Render())
	if len(rows) < len(f.Hits) {
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render(fmt.Sprintf("showing %d of %d rays", len(rows), len(f.Hits))))
	}
	return sb.String()
}

// Header renders a one-line description of the caster that produced f. The
// facing angle is shown wrapped into [0, 360).
func Header(f Frame, opts Options) string {
	return fmt.Sprintf("%s %s  %s (%s, %s)  %s %s°  %s %s°  %s %s  %s %d",
		titleStyle.Render("level"), f.LevelID,
		labelStyle.Render("pos"), formatFloat(f.X, opts.Precision), formatFloat(f.Y, opts.Precision),
		labelStyle.Render("angle"), formatFloat(core.Degrees(core.NormalizeAngle(f.Angle)), 2),
		labelStyle.Render("fov"), formatFloat(f.FOV, 2),
		labelStyle.Render("range"), formatFloat(f.MaxDistance, opts.Precision),
		labelStyle.Render("rays"), len(f.Hits),
	)
}

// SummaryText renders a Summary as aligned label/value lines.
func SummaryText(f Frame, s Summary, opts Options) string {
	lines := []string{
		Header(f, opts),
		line("rays with hits", fmt.Sprintf("%d / %d", s.RaysWithHits, s.Rays)),
		line("total hits", strconv.Itoa(s.TotalHits)),
		line("horizontal-line hits", strconv.Itoa(s.YSideHits)),
		line("nearest", formatDistance(s.Nearest, opts.Precision)),
		line("farthest", formatDistance(s.Farthest, opts.Precision)),
	}

	if len(s.Tiles) > 0 {
		parts := make([]string, len(s.Tiles))
		for i, tc := range s.Tiles {
			parts[i] = fmt.Sprintf("%d×%d", tc.TileID, tc.Hits)
		}
		lines = append(lines, line("tiles", strings.Join(parts, " ")))
	}

	return strings.Join(lines, "\n")
}

func line(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-22s", label)) + value
}

// formatHits renders hits as "5@3.500x 2@11.500y"; x or y names the axis
// whose grid line the ray crossed into the tile.
func formatHits(hits []raycast.RayHit, precision int) string {
	if len(hits) == 0 {
		return "-"
	}
	parts := make([]string, len(hits))
	for i, h := range hits {
		axis := "x"
		if h.IsYSide {
			axis = "y"
		}
		parts[i] = fmt.Sprintf("%d@%s%s", h.TileID, formatFloat(h.Distance, precision), axis)
	}
	return strings.Join(parts, " ")
}

func formatDistance(d float64, precision int) string {
	if math.IsNaN(d) {
		return "-"
	}
	return formatFloat(d, precision)
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', core.Clamp(precision, 0, maxPrecision), 64)
}
