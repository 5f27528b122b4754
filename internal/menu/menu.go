// Package menu is an interactive terminal front end over the analysis
// operations. It keeps one local session for the lifetime of the loop.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/export"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/session"
)

// Options configures a Menu.
type Options struct {
	DefaultAlpha float64
	SampleRows   int
	// Exporter is optional; without it the export entry reports an error.
	Exporter *export.Exporter
}

// Menu reads choices from in and writes results to out.
type Menu struct {
	in   *bufio.Scanner
	out  io.Writer
	sess *session.Session
	opt  Options
}

type item struct {
	key   string
	label string
	run   func(*Menu) error
}

var items = []item{
	{"1", "Load file", (*Menu).load},
	{"2", "Show columns", (*Menu).columns},
	{"3", "Central tendency", (*Menu).central},
	{"4", "Dispersion", (*Menu).dispersion},
	{"5", "Binomial distribution", (*Menu).binomial},
	{"6", "Poisson distribution", (*Menu).poisson},
	{"7", "Normal probability interval", (*Menu).normal},
	{"8", "Confidence interval", (*Menu).confidenceInterval},
	{"9", "One-sample t-test", (*Menu).tTest},
	{"10", "ANOVA", (*Menu).anova},
	{"11", "Correlation", (*Menu).correlation},
	{"12", "Linear regression", (*Menu).regression},
	{"13", "Summary report", (*Menu).summary},
	{"14", "Export", (*Menu).export},
}

// New returns a Menu bound to sess.
func New(in io.Reader, out io.Writer, sess *session.Session, opt Options) *Menu {
	if opt.DefaultAlpha <= 0 || opt.DefaultAlpha >= 1 {
		opt.DefaultAlpha = 0.05
	}
	return &Menu{in: bufio.NewScanner(in), out: out, sess: sess, opt: opt}
}

// Run loops until the user exits, the input ends or ctx is cancelled.
// Failed actions are reported and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()
		choice, err := m.ask("Choose an option")
		if err != nil {
			return quit(err)
		}
		if choice == "0" || strings.EqualFold(choice, "q") {
			fmt.Fprintln(m.out, "Bye.")
			return nil
		}
		it, ok := lookup(choice)
		if !ok {
			fmt.Fprintf(m.out, "✗ Error: unknown option %q\n", choice)
			continue
		}
		if err := it.run(m); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintf(m.out, "✗ Error: %v\n", err)
		}
	}
}

func quit(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func lookup(key string) (item, bool) {
	for _, it := range items {
		if it.key == key {
			return it, true
		}
	}
	return item{}, false
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "=== Fabrica Alfa: production statistics ===")
	if t, err := m.sess.Dataset(); err == nil {
		fmt.Fprintf(m.out, "Dataset: %s (%d rows, %d columns)\n", t.Name, t.Rows, len(t.Columns))
	} else {
		fmt.Fprintln(m.out, "Dataset: none loaded")
	}
	for _, it := range items {
		fmt.Fprintf(m.out, "%3s. %s\n", it.key, it.label)
	}
	fmt.Fprintf(m.out, "%3s. %s\n", "0", "Exit")
}

// ask prompts and returns the trimmed answer, or io.EOF when input ends.
func (m *Menu) ask(label string) (string, error) {
	fmt.Fprintf(m.out, "%s: ", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) askRequired(label string) (string, error) {
	s, err := m.ask(label)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return s, nil
}

func (m *Menu) askFloat(label string) (float64, error) {
	s, err := m.askRequired(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", strings.ToLower(label), s)
	}
	return f, nil
}

// askFloatDefault returns def for an empty answer.
func (m *Menu) askFloatDefault(label string, def float64) (float64, error) {
	s, err := m.ask(fmt.Sprintf("%s [%g]", label, def))
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", strings.ToLower(label), s)
	}
	return f, nil
}

func (m *Menu) askInt(label string) (int, error) {
	s, err := m.askRequired(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", strings.ToLower(label), s)
	}
	return n, nil
}
