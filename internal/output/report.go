package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/raphi011/prehook/internal/hook"
)

const indent = "    "

// Report prints the outcome of a hook run. Passing output is hidden for
// quiet checks; skipped checks and timings are only shown when verbose.
func (p *Printer) Report(r *hook.Report, verbose bool) {
	p.Print(FormatReport(r, verbose))
}

// FormatReport renders a hook report, one block per check followed by a
// summary line.
func FormatReport(r *hook.Report, verbose bool) string {
	var b strings.Builder

	for _, o := range r.Outcomes {
		state := o.State()
		if state == hook.StateSkipped && !verbose {
			continue
		}

		b.WriteString(headline(o, state, verbose))
		b.WriteString("\n")

		switch state {
		case hook.StateError:
			writeIndented(&b, o.Err.Error(), errorStyle.Render)
		case hook.StateFail, hook.StateWarn:
			writeIndented(&b, o.Result.Message, nil)
		case hook.StatePass:
			if !o.Quiet {
				writeIndented(&b, o.Result.Message, nil)
			}
		}
	}

	b.WriteString(summary(r, verbose))
	b.WriteString("\n")
	return b.String()
}

// headline renders the status line of one outcome.
func headline(o hook.Outcome, state hook.State, verbose bool) string {
	var line string
	switch state {
	case hook.StatePass:
		line = successStyle.Render("✓") + " " + o.Name
	case hook.StateWarn:
		line = warningStyle.Render("⚠") + " " + o.Name + warningStyle.Render(" (warning)")
	case hook.StateFail:
		line = errorStyle.Render("✗") + " " + boldStyle.Render(o.Name)
	case hook.StateError:
		line = errorStyle.Render("✗") + " " + boldStyle.Render(o.Name) + errorStyle.Render(" (error)")
	case hook.StateSkipped:
		return mutedStyle.Render(fmt.Sprintf("- %s (%s)", o.Name, o.SkipReason))
	}

	if verbose {
		var details []string
		if o.Description != "" && o.Description != o.Name {
			details = append(details, o.Description)
		}
		details = append(details, pluralize(o.Files, "file"))
		if o.Duration > 0 {
			details = append(details, o.Duration.Round(time.Millisecond).String())
		}
		line += " " + infoStyle.Render("("+strings.Join(details, ", ")+")")
	}
	return line
}

// writeIndented writes msg with every line indented. Blank messages are skipped.
func writeIndented(b *strings.Builder, msg string, style func(...string) string) {
	msg = strings.TrimRight(msg, "\n")
	if strings.TrimSpace(msg) == "" {
		return
	}
	for line := range strings.SplitSeq(msg, "\n") {
		if style != nil {
			line = style(line)
		}
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// summary renders the closing line, e.g. "pre-commit: 2 passed, 1 failed".
func summary(r *hook.Report, verbose bool) string {
	if len(r.Outcomes) == 0 {
		return mutedStyle.Render(fmt.Sprintf("%s: no checks configured", r.HookType))
	}

	var parts []string
	add := func(state hook.State, label string, style func(...string) string) {
		if n := r.Count(state); n > 0 {
			parts = append(parts, style(fmt.Sprintf("%d %s", n, label)))
		}
	}
	add(hook.StatePass, "passed", successStyle.Render)
	add(hook.StateWarn, "warned", warningStyle.Render)
	add(hook.StateFail, "failed", errorStyle.Render)
	add(hook.StateError, "errored", errorStyle.Render)
	if verbose {
		add(hook.StateSkipped, "skipped", mutedStyle.Render)
	}
	if len(parts) == 0 {
		return mutedStyle.Render(fmt.Sprintf("%s: all checks skipped", r.HookType))
	}

	return fmt.Sprintf("%s: %s", r.HookType, strings.Join(parts, ", "))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
