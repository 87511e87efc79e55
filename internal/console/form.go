package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/umalmyha/customers-intake/internal/controller"
	"github.com/umalmyha/customers-intake/internal/model"
)

const formTitle = "Customer Information"

// Form is a line-oriented front-end for FormController.
// Empty answer keeps current value, so input survives failed submits
type Form struct {
	ctrl     *controller.FormController
	in       *lineReader
	out      io.Writer
	notifier *Notifier
}

func NewForm(ctrl *controller.FormController, in io.Reader, out io.Writer) *Form {
	return &Form{
		ctrl:     ctrl,
		in:       newLineReader(in),
		out:      out,
		notifier: NewNotifier(out),
	}
}

// Run prompts until user quits, input ends or ctx is done
func (f *Form) Run(ctx context.Context) error {
	defer f.in.close()
	fmt.Fprintf(f.out, "%s\n%s\n", formTitle, strings.Repeat("=", len(formTitle)))

	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := f.fill(ctx); err != nil {
			if isFinished(err) {
				return nil
			}
			return err
		}

		action, err := f.promptAction(ctx)
		if err != nil {
			if isFinished(err) {
				return nil
			}
			return err
		}

		// cancelled context must never reach the store
		if ctx.Err() != nil {
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(action)) {
		case "":
			if _, ok := f.ctrl.Submit(ctx); !ok {
				f.ctrl.MoveFocus(controller.FieldName)
			}
		case "c":
			f.ctrl.Clear()
		case "q":
			return nil
		default:
			fmt.Fprintf(f.out, "unknown action %q\n", action)
			f.ctrl.MoveFocus(controller.FieldName)
		}
	}
}

// fill prompts every field from the focused one to the last
func (f *Form) fill(ctx context.Context) error {
	fields := controller.Fields()
	for i := int(f.ctrl.Focus()); i < len(fields); i++ {
		field := fields[i]

		var (
			value string
			err   error
		)
		switch field {
		case controller.FieldAddress:
			value, err = f.promptMultiline(ctx, field)
		case controller.FieldPreferredContact:
			value, err = f.promptContact(ctx)
		default:
			value, err = f.promptLine(ctx, field)
		}
		if errors.Is(err, errLineTooLong) {
			value, err = f.ctrl.Values().Get(field), nil
		}
		if err != nil {
			return err
		}
		f.ctrl.Set(field, value)
	}
	return nil
}

func (f *Form) promptAction(ctx context.Context) (string, error) {
	for {
		fmt.Fprint(f.out, "[Enter] Submit, [c] Clear Form, [q] Quit: ")
		action, err := f.read(ctx)
		if !errors.Is(err, errLineTooLong) {
			return action, err
		}
	}
}

// read returns next line, over-long line is reported to user and returned as errLineTooLong
func (f *Form) read(ctx context.Context) (string, error) {
	line, err := f.in.readLine(ctx)
	if errors.Is(err, errLineTooLong) {
		f.notifier.Error(titleInputError, err.Error())
	}
	return line, err
}

func (f *Form) promptLine(ctx context.Context, field controller.Field) (string, error) {
	current := f.ctrl.Values().Get(field)
	fmt.Fprintf(f.out, "%s%s: ", field, currentHint(current))

	line, err := f.read(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}

func (f *Form) promptMultiline(ctx context.Context, field controller.Field) (string, error) {
	current := f.ctrl.Values().Get(field)
	fmt.Fprintf(f.out, "%s%s (finish with an empty line):\n", field, currentHint(current))

	lines := make([]string, 0)
	for {
		line, err := f.read(ctx)
		if errors.Is(err, errLineTooLong) {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(lines) > 0 {
				break
			}
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return current, nil
	}
	return strings.Join(lines, "\n"), nil
}

func (f *Form) promptContact(ctx context.Context) (string, error) {
	current := f.ctrl.Values().PreferredContact
	choices := model.ContactMethods()

	names := make([]string, len(choices))
	for i, m := range choices {
		names[i] = string(m)
	}
	fmt.Fprintf(f.out, "%s [%s] (%s): ", controller.FieldPreferredContact, strings.Join(names, "/"), current)

	line, err := f.read(ctx)
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return string(current), nil
	}
	for _, m := range choices {
		if strings.EqualFold(line, string(m)) {
			return string(m), nil
		}
	}
	return line, nil
}

func currentHint(current string) string {
	if current == "" {
		return ""
	}
	return fmt.Sprintf(" [%s]", strings.ReplaceAll(current, "\n", ", "))
}
