package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ssargent/dmidb/pkg/api"
	"github.com/ssargent/dmidb/pkg/export"
	"golang.org/x/term"
)

// textStyles colors the text renderings. Without color every style is a
// no-op, so redirected output stays plain.
type textStyles struct {
	color  bool
	title  lipgloss.Style
	header lipgloss.Style
	key    lipgloss.Style
	faint  lipgloss.Style
}

func newTextStyles(color bool) textStyles {
	return textStyles{
		color:  color,
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		header: lipgloss.NewStyle().Bold(true),
		key:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		faint:  lipgloss.NewStyle().Faint(true),
	}
}

func (s textStyles) paint(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeOutput encodes v in format, or calls text for the human-readable
// rendering.
func writeOutput(w io.Writer, format export.Format, v any, text func(*strings.Builder, textStyles)) error {
	if format != formatText {
		return export.Encode(w, format, v)
	}
	var b strings.Builder
	text(&b, newTextStyles(isTerminal(w)))
	_, err := io.WriteString(w, b.String())
	return err
}

func renderReport(b *strings.Builder, r *export.Report, st textStyles) {
	if r.Version != "" {
		fmt.Fprintf(b, "SMBIOS %s present.\n", r.Version)
	}
	fmt.Fprintf(b, "%d structures.\n", len(r.Structures))
	if r.Diagnostic != "" {
		fmt.Fprintf(b, "%s %s\n", st.paint(st.faint, "Diagnostic:"), r.Diagnostic)
	}

	for _, s := range r.Structures {
		b.WriteString("\n")
		b.WriteString(st.paint(st.header, fmt.Sprintf("Handle %s, DMI type %d, %d bytes", s.Handle, s.Type, s.Length)))
		b.WriteString("\n")
		b.WriteString(st.paint(st.title, s.Name))
		b.WriteString("\n")
		for _, f := range s.Fields {
			fmt.Fprintf(b, "\t%s: %s\n", st.paint(st.key, f.Name), formatValue(f.Value))
		}
		if len(s.Strings) > 0 {
			fmt.Fprintf(b, "\t%s\n", st.paint(st.key, "Strings:"))
			for _, v := range s.Strings {
				fmt.Fprintf(b, "\t\t%s\n", v)
			}
		}
	}
}

func renderInventory(b *strings.Builder, inv *export.Inventory, st textStyles) {
	line := func(key, format string, args ...any) {
		fmt.Fprintf(b, "%s %s\n", st.paint(st.key, key+":"), fmt.Sprintf(format, args...))
	}

	if inv.Version != "" {
		line("SMBIOS", "%s", inv.Version)
	}
	if bios := inv.BIOS; bios != nil {
		line("BIOS", "%s %s (%s)", bios.Vendor, bios.Version, bios.ReleaseDate)
	}
	if sys := inv.System; sys != nil {
		line("System", "%s %s, serial %s", sys.Manufacturer, sys.ProductName, orNone(sys.SerialNumber))
		if sys.UUID != "" {
			line("UUID", "%s", sys.UUID)
		}
	}
	for _, board := range inv.Baseboards {
		line("Baseboard "+board.Handle, "%s %s, serial %s", board.Manufacturer, board.Product, orNone(board.SerialNumber))
	}
	for _, c := range inv.Chassis {
		lock := "unlocked"
		if c.Locked {
			lock = "locked"
		}
		line("Chassis "+c.Handle, "%s type %d, %s", c.Manufacturer, c.Type, lock)
	}
	for _, p := range inv.Processors {
		line("Processor "+p.Handle, "%s %s, %d cores / %d threads, %d MHz", p.Socket, p.Version, p.Cores, p.Threads, p.CurrentSpeedMHz)
		for _, c := range p.Caches {
			fmt.Fprintf(b, "\tL%d %s %s\n", c.Level, c.Designation, humanBytes(c.SizeBytes))
		}
	}
	for _, a := range inv.MemoryArrays {
		line("Memory array "+a.Handle, "%d slots, %s maximum", a.Slots, humanBytes(a.MaximumCapacityBytes))
		for _, d := range a.Devices {
			fmt.Fprintf(b, "\t%s %s %s\n", d.Handle, d.Locator, humanBytes(d.SizeBytes))
		}
	}
	if len(inv.UnassignedDevices) > 0 {
		fmt.Fprintf(b, "%s\n", st.paint(st.key, "Unassigned memory devices:"))
		for _, d := range inv.UnassignedDevices {
			fmt.Fprintf(b, "\t%s %s %s\n", d.Handle, d.Locator, humanBytes(d.SizeBytes))
		}
	}
	line("Total memory", "%s", humanBytes(inv.TotalMemoryBytes))
}

func renderEntries(b *strings.Builder, entries []api.SnapshotEntry, st textStyles) {
	if len(entries) == 0 {
		b.WriteString("No snapshots archived.\n")
		return
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "CAPTURED", "SOURCE", "SIZE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && st.color {
				return cell.Inherit(st.header)
			}
			return cell
		})
	for _, e := range entries {
		t.Row(e.ID, e.CapturedAt.Format("2006-01-02 15:04:05 MST"), e.Source, humanBytes(uint64(e.Size)))
	}
	b.WriteString(t.String())
	b.WriteString("\n")
}

func renderSummary(b *strings.Builder, s api.SnapshotSummary, st textStyles) {
	line := func(key string, value any) {
		fmt.Fprintf(b, "%s %v\n", st.paint(st.key, key+":"), value)
	}

	line("ID", s.ID)
	line("Captured", s.CapturedAt.Format("2006-01-02 15:04:05 MST"))
	line("Source", s.Source)
	if s.Version != "" {
		line("SMBIOS", s.Version)
	}
	line("Size", humanBytes(uint64(s.Size)))
	line("Structures", s.Structures)
	if len(s.Duplicates) > 0 {
		line("Duplicate handles", strings.Join(s.Duplicates, ", "))
	}
	if s.Diagnostic != "" {
		line("Diagnostic", s.Diagnostic)
	}

	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "\t%-40s %d\n", name, s.Types[name])
	}
}

func formatValue(v any) string {
	switch value := v.(type) {
	case string:
		return orNone(value)
	case nil:
		return "Not Specified"
	default:
		return fmt.Sprint(value)
	}
}

func orNone(s string) string {
	if s == "" {
		return "Not Specified"
	}
	return s
}

// humanBytes renders n in the largest binary unit that divides it evenly.
func humanBytes(n uint64) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}
	i := 0
	for n >= 1024 && n%1024 == 0 && i < len(units)-1 {
		n /= 1024
		i++
	}
	return fmt.Sprintf("%d %s", n, units[i])
}
