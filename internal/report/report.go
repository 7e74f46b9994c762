// Package report renders simulation results as plain text blocks.
package report

import (
	"io"

	"github.com/calvinwijaya/blackjack-sim/internal/game"
	"github.com/calvinwijaya/blackjack-sim/internal/sim"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Writer prints report blocks with locale-aware digit grouping.
type Writer struct {
	w io.Writer
	p *message.Printer
}

// NewWriter returns a Writer that groups digits for tag.
func NewWriter(w io.Writer, tag language.Tag) *Writer {
	return &Writer{w: w, p: message.NewPrinter(tag)}
}

// Block writes one header line followed by one metric per line and a
// trailing blank line.
func (rw *Writer) Block(header string, s game.Stats) error {
	lines := []struct {
		format string
		args   []any
	}{
		{"%s\n", []any{header}},
		{"   wins:        %d hex %x\n", []any{s.Wins, s.Wins}},
		{"   draws:       %d hex %x\n", []any{s.Draws, s.Draws}},
		{"   losses:      %d hex %x\n", []any{s.Losses, s.Losses}},
		{"   win %%:       %.4f\n", []any{s.WinRatio() * 100}},
		{"   blackjacks:  %d\n", []any{s.Blackjacks}},
		{"   busts:       %d\n", []any{s.Busts}},
		{"   doubles:     %d\n", []any{s.DoubleDowns}},
		{"   staked:      %d\n", []any{s.Staked}},
		{"   returned:    %d\n", []any{s.Returned}},
		{"   profit:      %d\n", []any{s.Profit()}},
		{"   return %%:    %.4f\n", []any{s.ReturnRatio() * 100}},
		{"   reshuffles:  %d\n", []any{s.Reshuffles}},
		{"\n", nil},
	}
	for _, l := range lines {
		if _, err := rw.p.Fprintf(rw.w, l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}

// Run writes the block for a finished run.
func (rw *Writer) Run(r *sim.Run) error {
	return rw.Block(r.Scenario.Label(), r.Stats)
}

// Runs writes one block per run, in order.
func (rw *Writer) Runs(runs []*sim.Run) error {
	for _, r := range runs {
		if err := rw.Run(r); err != nil {
			return err
		}
	}
	return nil
}
