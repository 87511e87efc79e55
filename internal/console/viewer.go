package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/umalmyha/customers-intake/internal/controller"
	"github.com/umalmyha/customers-intake/internal/model"
)

const (
	viewerTitle = "Customer Records"
	placeholder = "No data found in database."
)

const viewerHelp = "commands: sort <column>, refresh, quit"

// cell text must stay on one line and inside one column
var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Viewer is a line-oriented front-end for ViewerController
type Viewer struct {
	ctrl     *controller.ViewerController
	in       *lineReader
	out      io.Writer
	notifier *Notifier
}

func NewViewer(ctrl *controller.ViewerController, in io.Reader, out io.Writer) *Viewer {
	return &Viewer{
		ctrl:     ctrl,
		in:       newLineReader(in),
		out:      out,
		notifier: NewNotifier(out),
	}
}

// Run loads records once and then serves commands until user quits, input ends or ctx is done
func (v *Viewer) Run(ctx context.Context) error {
	defer v.in.close()
	if ctx.Err() != nil {
		return nil
	}

	v.ctrl.Refresh(ctx)
	if err := v.render(); err != nil {
		return err
	}

	for {
		fmt.Fprint(v.out, "> ")
		line, err := v.in.readLine(ctx)
		if errors.Is(err, errLineTooLong) {
			v.notifier.Error(titleInputError, err.Error())
			continue
		}
		if err != nil {
			if isFinished(err) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "sort":
			if err := v.ctrl.SortBy(strings.TrimSpace(arg)); err != nil {
				fmt.Fprintln(v.out, err)
				continue
			}
		case "refresh":
			v.ctrl.Refresh(ctx)
		case "quit", "q":
			return nil
		default:
			fmt.Fprintln(v.out, viewerHelp)
			continue
		}

		if err := v.render(); err != nil {
			return err
		}
	}
}

func (v *Viewer) render() error {
	fmt.Fprintf(v.out, "\n%s\n\n", viewerTitle)

	grid, ok := v.ctrl.View()
	if !ok {
		fmt.Fprintln(v.out, placeholder)
		return nil
	}

	if err := writeTable(v.out, grid.Columns, grid.Rows); err != nil {
		return err
	}
	fmt.Fprintf(v.out, "\n%s\n", viewerHelp)
	return nil
}

// Dump prints every row of tbl on its own line
func Dump(out io.Writer, tbl model.Table) error {
	for _, row := range tbl.Rows {
		values := make([]string, len(row))
		for i, val := range row {
			values[i] = controller.DisplayValue(val)
		}
		if _, err := fmt.Fprintf(out, "(%s)\n", strings.Join(values, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(out io.Writer, columns []string, rows [][]string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))

	sep := make([]string, len(columns))
	for i, c := range columns {
		sep[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellReplacer.Replace(cell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
