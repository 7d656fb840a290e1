package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

const (
	Banner  = "Emotion chat (type 'exit' to quit)"
	Prompt  = "> "
	Apology = "I apologize, but I encountered an error. Could you please rephrase that?"
)

// Turner handles one line of user input.
type Turner interface {
	HandleTurn(ctx context.Context, text string) (domain.TurnResult, error)
}

// Printer renders turn results. Colors are dropped when out is not a
// terminal.
type Printer struct {
	out    io.Writer
	styles map[string]lipgloss.Style
	label  lipgloss.Style
	dim    lipgloss.Style
}

func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	base := r.NewStyle().Bold(true)
	return &Printer{
		out: out,
		styles: map[string]lipgloss.Style{
			"positive": base.Foreground(lipgloss.Color("42")),
			"negative": base.Foreground(lipgloss.Color("203")),
			"threat":   base.Foreground(lipgloss.Color("208")),
			"question": base.Foreground(lipgloss.Color("179")),
		},
		label: base,
		dim:   r.NewStyle().Faint(true),
	}
}

func (p *Printer) Turn(res domain.TurnResult) {
	style, ok := p.styles[res.Category]
	if !ok {
		style = p.label
	}
	fmt.Fprintf(p.out, "%s %s\n", style.Render("["+res.Emotion+"]"), res.Reply)
}

func (p *Printer) Line(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *Printer) Prompt() {
	fmt.Fprint(p.out, p.dim.Render(Prompt))
}

// Run reads one line at a time from in until EOF, "exit" or ctx is done.
// A failed turn prints Apology and the loop continues.
func Run(ctx context.Context, in io.Reader, out io.Writer, turner Turner, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := NewPrinter(out)
	p.Line(Banner)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		p.Prompt()
		var line string
		select {
		case <-ctx.Done():
			p.Line("")
			logger.Info("chat loop interrupted")
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			p.Line("")
			return nil
		case line = <-lines:
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			logger.Info("user requested exit")
			return nil
		}

		res, err := turner.HandleTurn(ctx, line)
		if err != nil {
			logger.Error("turn failed", "error", err)
			p.Line(Apology)
			continue
		}
		p.Turn(res)
	}
}

// Once handles a single message and prints its result.
func Once(ctx context.Context, text string, out io.Writer, turner Turner) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	res, err := turner.HandleTurn(ctx, text)
	if err != nil {
		return err
	}
	NewPrinter(out).Turn(res)
	return nil
}
