package main

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gogpu/naga/ir"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
	"github.com/wippyai/gpu-layout/schema"
	"github.com/wippyai/gpu-layout/wgslcheck"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	numberStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right).
			Foreground(lipgloss.Color("#87CEEB"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	mismatchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

var headers = []string{"PATH", "TYPE", "OFFSET", "SIZE", "ALIGN"}

// rows lists the flattened layout of d, keeping paths that contain filter.
func rows(name string, d descriptor.Descriptor, filter string) [][]string {
	var out [][]string
	for _, f := range descriptor.Flatten(d) {
		path := name
		switch {
		case f.Path == "":
		case strings.HasPrefix(f.Path, "["):
			path += f.Path
		default:
			path += "." + f.Path
		}
		if filter != "" && !strings.Contains(path, filter) {
			continue
		}
		out = append(out, []string{
			path,
			f.Type,
			strconv.FormatUint(uint64(f.Offset), 10),
			strconv.FormatUint(uint64(f.Size), 10),
			strconv.FormatUint(uint64(f.Align), 10),
		})
	}
	return out
}

func renderTable(name string, d descriptor.Descriptor, filter string, color bool) string {
	t := table.New().
		Headers(headers...).
		Rows(rows(name, d, filter)...)

	if !color {
		return t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
			String()
	}
	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// verify reports whether t matches the struct of the same name in module.
func verify(module *ir.Module, t schema.Type) (string, bool) {
	r, err := wgslcheck.CheckModule(module, t.Name, t.Struct)
	var e *errors.Error
	switch {
	case err == nil:
	case stderrors.As(err, &e) && e.Kind == errors.KindNotFound:
		return fmt.Sprintf("%s: not declared in shader", t.Name), true
	default:
		return mismatchStyle.Render(fmt.Sprintf("%s: %v", t.Name, err)), false
	}

	if r.OK() {
		return okStyle.Render(fmt.Sprintf("%s: matches shader (%d bytes)", t.Name, r.ShaderSpan)), true
	}
	var b strings.Builder
	b.WriteString(mismatchStyle.Render(fmt.Sprintf("%s: %d mismatches", t.Name, len(r.Mismatches))))
	for _, m := range r.Mismatches {
		b.WriteString("\n  ")
		b.WriteString(m.String())
	}
	return b.String(), false
}
