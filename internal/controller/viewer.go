package controller

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/umalmyha/customers-intake/internal/service"
)

const createdAtLayout = "2006-01-02 15:04:05"

// Grid is what the viewer displays: header plus rows of display strings
type Grid struct {
	Columns []string
	Rows    [][]string
}

// ViewerController lists stored records and sorts them by header
type ViewerController struct {
	customerSvc service.CustomerService
	notifier    Notifier
	grid        Grid
	descending  map[string]bool
}

func NewViewerController(customerSvc service.CustomerService, notifier Notifier) *ViewerController {
	return &ViewerController{
		customerSvc: customerSvc,
		notifier:    notifier,
		descending:  make(map[string]bool),
	}
}

// Refresh re-reads every record in storage order and forgets any sort state
func (c *ViewerController) Refresh(ctx context.Context) {
	c.grid = Grid{}
	c.descending = make(map[string]bool)

	tbl, err := c.customerSvc.FindAll(ctx)
	if err != nil {
		c.notifier.Error(titleDatabaseError, fmt.Sprintf("Error reading database:\n%s", err))
		return
	}
	if tbl.Empty() {
		return
	}

	rows := make([][]string, 0, len(tbl.Rows))
	for _, r := range tbl.Rows {
		row := make([]string, len(r))
		for i, v := range r {
			row[i] = DisplayValue(v)
		}
		rows = append(rows, row)
	}
	c.grid = Grid{Columns: tbl.Columns, Rows: rows}
}

// View returns current grid, false means placeholder must be shown instead
func (c *ViewerController) View() (Grid, bool) {
	if len(c.grid.Columns) == 0 {
		return Grid{}, false
	}
	return c.grid, true
}

// SortBy sorts displayed rows by the string value of column.
// First click sorts ascending, each next click on the same header flips direction.
// Unknown column leaves order unchanged
func (c *ViewerController) SortBy(column string) error {
	idx := slices.Index(c.grid.Columns, column)
	if idx < 0 {
		return fmt.Errorf("unknown column %q", column)
	}

	desc := c.descending[column]
	slices.SortStableFunc(c.grid.Rows, func(a, b []string) int {
		if desc {
			return strings.Compare(b[idx], a[idx])
		}
		return strings.Compare(a[idx], b[idx])
	})
	c.descending[column] = !desc
	return nil
}

// DisplayValue renders driver value the way grid shows it
func DisplayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(createdAtLayout)
	default:
		return fmt.Sprint(t)
	}
}
