// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"grimm.is/vardoc/internal/errors"
)

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// diffPrinter writes check-mode diffs to out, highlighting added, removed
// and hunk lines when color is enabled.
type diffPrinter struct {
	out   io.Writer
	color bool

	header lipgloss.Style
	hunk   lipgloss.Style
	added  lipgloss.Style
	remove lipgloss.Style
}

func newDiffPrinter(out io.Writer, mode string) (*diffPrinter, error) {
	p := &diffPrinter{out: out}

	switch mode {
	case colorNever:
	case colorAlways:
		p.color = true
	case colorAuto, "":
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			p.color = true
		}
	default:
		return nil, errors.Errorf(errors.KindValidation, "invalid color mode %q (want auto, always or never)", mode)
	}
	if !p.color {
		return p, nil
	}

	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.ANSI256)
	p.header = r.NewStyle().Bold(true)
	p.hunk = r.NewStyle().Foreground(lipgloss.Color("6"))
	p.added = r.NewStyle().Foreground(lipgloss.Color("2"))
	p.remove = r.NewStyle().Foreground(lipgloss.Color("1"))
	return p, nil
}

// Print writes one unified diff.
func (p *diffPrinter) Print(diff string) {
	if !p.color {
		fmt.Fprint(p.out, diff)
		return
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = p.header.Render(text)
		case strings.HasPrefix(text, "@@"):
			text = p.hunk.Render(text)
		case strings.HasPrefix(text, "+"):
			text = p.added.Render(text)
		case strings.HasPrefix(text, "-"):
			text = p.remove.Render(text)
		}
		fmt.Fprintln(p.out, text)
	}
}
