package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/customers-intake/internal/controller"
	cerrors "github.com/umalmyha/customers-intake/internal/errors"
	"github.com/umalmyha/customers-intake/internal/model"
	rpsMocks "github.com/umalmyha/customers-intake/internal/repository/mocks"
	"github.com/umalmyha/customers-intake/internal/service"
	"github.com/umalmyha/customers-intake/internal/validation"
)

func newTestService(t *testing.T, rpsMock *rpsMocks.CustomerRepository) service.CustomerService {
	t.Helper()
	v, err := validation.New()
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return service.NewCustomerService(rpsMock, v, logger)
}

func TestFormSubmitsMultilineAddress(t *testing.T) {
	rpsMock := rpsMocks.NewCustomerRepository(t)
	rpsMock.On("Create", mock.Anything, mock.MatchedBy(func(c model.NewCustomer) bool {
		return c.Name == "Jane Doe" && c.Address == "1 Main St\nApt 2" && c.PreferredContact == model.ContactPhone
	})).Return(int64(5), nil).Once()

	var out bytes.Buffer
	ctrl := controller.NewFormController(newTestService(t, rpsMock), NewNotifier(&out))

	in := strings.Join([]string{
		"Jane Doe",
		"1990-05-20",
		"jane@example.com",
		"(555) 111-2222",
		"1 Main St",
		"Apt 2",
		"",
		"phone",
		"",
	}, "\n") + "\n"

	require.NoError(t, NewForm(ctrl, strings.NewReader(in), &out).Run(context.Background()))
	require.Contains(t, out.String(), "[Success]\nCustomer saved with ID #5.")
	require.Equal(t, model.ContactEmail, ctrl.Values().PreferredContact, "form must be reset after success")
}

func TestFormRetryKeepsEnteredValues(t *testing.T) {
	rpsMock := rpsMocks.NewCustomerRepository(t)
	rpsMock.On("Create", mock.Anything, mock.MatchedBy(func(c model.NewCustomer) bool {
		return c.Name == "Jane Doe" && c.Phone == "5551112222" && c.Address == "1 Main St"
	})).Return(int64(9), nil).Once()

	var out bytes.Buffer
	ctrl := controller.NewFormController(newTestService(t, rpsMock), NewNotifier(&out))

	in := strings.Join([]string{
		// first attempt, phone too short
		"Jane Doe", "1990-05-20", "jane@example.com", "555-1234", "1 Main St", "", "", "",
		// second attempt, only phone is retyped
		"", "", "", "5551112222", "", "", "",
	}, "\n") + "\n"

	require.NoError(t, NewForm(ctrl, strings.NewReader(in), &out).Run(context.Background()))
	require.Contains(t, out.String(), "[Validation Error] !\nPhone should include at least 10 digits.")
	require.Contains(t, out.String(), "Name [Jane Doe]: ")
	require.Contains(t, out.String(), "Customer saved with ID #9.")
}

func TestFormClearAndQuit(t *testing.T) {
	var out bytes.Buffer
	ctrl := controller.NewFormController(newTestService(t, rpsMocks.NewCustomerRepository(t)), NewNotifier(&out))

	// name, five kept fields, clear, then six kept fields and quit
	in := "Jane\n" + strings.Repeat("\n", 5) + "c\n" + strings.Repeat("\n", 6) + "q\n"
	require.NoError(t, NewForm(ctrl, strings.NewReader(in), &out).Run(context.Background()))
	require.Equal(t, controller.FormValues{PreferredContact: model.ContactEmail}, ctrl.Values())
	require.Equal(t, 2, strings.Count(out.String(), "Name: "), "name must be asked again without old value after clear")
}

func TestViewerCommands(t *testing.T) {
	tbl := model.Table{
		Columns: []string{"id", "name"},
		Rows: [][]any{
			{int64(1), "Carol"},
			{int64(2), "Alice"},
		},
	}

	rpsMock := rpsMocks.NewCustomerRepository(t)
	rpsMock.On("FindAll", mock.Anything).Return(tbl, nil).Twice()

	var out bytes.Buffer
	ctrl := controller.NewViewerController(newTestService(t, rpsMock), NewNotifier(&out))

	in := "sort name\nsort nope\nrefresh\nquit\n"
	require.NoError(t, NewViewer(ctrl, strings.NewReader(in), &out).Run(context.Background()))

	s := out.String()
	require.Contains(t, s, "Customer Records")
	require.Contains(t, s, "unknown column \"nope\"")

	sorted := strings.Index(s, "2   Alice")
	require.Positive(t, sorted, "sorted table must be printed:\n%s", s)
	require.Less(t, sorted, strings.LastIndex(s, "1   Carol"))

	grid, ok := ctrl.View()
	require.True(t, ok)
	require.Equal(t, "1", grid.Rows[0][0], "refresh must restore storage order")
}

func TestViewerPlaceholder(t *testing.T) {
	rpsMock := rpsMocks.NewCustomerRepository(t)
	rpsMock.On("FindAll", mock.Anything).
		Return(model.Table{}, cerrors.NewStorageErr(errors.New("unable to open database file"))).Once()

	var out bytes.Buffer
	ctrl := controller.NewViewerController(newTestService(t, rpsMock), NewNotifier(&out))

	require.NoError(t, NewViewer(ctrl, strings.NewReader(""), &out).Run(context.Background()))
	require.Contains(t, out.String(), "Error reading database:\nunable to open database file")
	require.Contains(t, out.String(), "No data found in database.")
}

func TestDump(t *testing.T) {
	tbl := model.Table{
		Columns: []string{"id", "name", "phone"},
		Rows: [][]any{
			{int64(1), "Jane Doe", "5551112222"},
			{int64(2), []byte("John Roe"), "5553334444"},
		},
	}

	var out bytes.Buffer
	require.NoError(t, Dump(&out, tbl))
	require.Equal(t, "(1, Jane Doe, 5551112222)\n(2, John Roe, 5553334444)\n", out.String())
}

// blockingReader serves its input and then cancels ctx and blocks like an idle terminal
type blockingReader struct {
	in      *strings.Reader
	cancel  context.CancelFunc
	release chan struct{}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	if r.in.Len() > 0 {
		return r.in.Read(p)
	}
	r.cancel()
	<-r.release
	return 0, io.EOF
}

func TestFormStopsWhenContextCancelled(t *testing.T) {
	t.Log("already cancelled context, nothing is read or saved")
	{
		var out bytes.Buffer
		ctrl := controller.NewFormController(newTestService(t, rpsMocks.NewCustomerRepository(t)), NewNotifier(&out))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		in := "Jane Doe\n1990-05-20\njane@example.com\n5551112222\n1 Main St\n\n\n\n"
		require.NoError(t, NewForm(ctrl, strings.NewReader(in), &out).Run(ctx))
		require.NotContains(t, out.String(), "Database Error")
		require.Empty(t, ctrl.Values().Name)
	}

	t.Log("context cancelled while waiting for action, blocked read returns")
	{
		var out bytes.Buffer
		ctrl := controller.NewFormController(newTestService(t, rpsMocks.NewCustomerRepository(t)), NewNotifier(&out))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		r := &blockingReader{
			in:      strings.NewReader("Jane Doe\n1990-05-20\njane@example.com\n5551112222\n1 Main St\n\n\n"),
			cancel:  cancel,
			release: make(chan struct{}),
		}
		t.Cleanup(func() { close(r.release) })

		require.NoError(t, NewForm(ctrl, r, &out).Run(ctx))
		require.NotContains(t, out.String(), "Database Error")
		require.NotContains(t, out.String(), "Success")
		require.Equal(t, "Jane Doe", ctrl.Values().Name)
	}
}

func TestViewerStopsWhenContextCancelled(t *testing.T) {
	var out bytes.Buffer
	ctrl := controller.NewViewerController(newTestService(t, rpsMocks.NewCustomerRepository(t)), NewNotifier(&out))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewViewer(ctrl, strings.NewReader("refresh\n"), &out).Run(ctx))
	require.NotContains(t, out.String(), "Database Error")
}

func TestFormLongLines(t *testing.T) {
	t.Log("name longer than 64 KiB is accepted")
	{
		longName := strings.Repeat("x", 70*1024)

		rpsMock := rpsMocks.NewCustomerRepository(t)
		rpsMock.On("Create", mock.Anything, mock.MatchedBy(func(c model.NewCustomer) bool {
			return len(c.Name) == len(longName)
		})).Return(int64(1), nil).Once()

		var out bytes.Buffer
		ctrl := controller.NewFormController(newTestService(t, rpsMock), NewNotifier(&out))

		in := longName + "\n1990-05-20\njane@example.com\n5551112222\n1 Main St\n\n\n\n"
		require.NoError(t, NewForm(ctrl, strings.NewReader(in), &out).Run(context.Background()))
		require.Contains(t, out.String(), "Customer saved with ID #1.")
	}

	t.Log("line over the limit is reported and form keeps running")
	{
		var out bytes.Buffer
		ctrl := controller.NewFormController(newTestService(t, rpsMocks.NewCustomerRepository(t)), NewNotifier(&out))

		in := strings.Repeat("x", maxLineBytes+1) + "\n1990-05-20\njane@example.com\n5551112222\n1 Main St\n\n\nq\n"
		require.NoError(t, NewForm(ctrl, strings.NewReader(in), &out).Run(context.Background()))
		require.Contains(t, out.String(), "[Input Error] !")
		require.Empty(t, ctrl.Values().Name, "current value must be kept")
		require.Equal(t, "1990-05-20", ctrl.Values().Birthday)
		require.Equal(t, "1 Main St", ctrl.Values().Address)
	}
}

func TestWriteTableFlattensControlCharacters(t *testing.T) {
	var out bytes.Buffer
	rows := [][]string{{"1", "Jane\tDoe"}, {"2", "1 Main St\nApt 2"}}

	require.NoError(t, writeTable(&out, []string{"id", "name"}, rows))
	require.Equal(t, "id  name\n--  ----\n1   Jane Doe\n2   1 Main St Apt 2\n", out.String())
}
