package store

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// SheetsStore persists orders in a Google Spreadsheet: one Orders tab,
// a Cookie Details tab with child rows, a Spin Rewards log and one tab
// per saved invoice.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsStore connects to the Sheets API with a service-account
// credentials file (path from config).
func NewSheetsStore(spreadsheetID, credentialsFile string) (*SheetsStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("google sheet ID is not configured")
	}

	svc, err := sheets.NewService(context.Background(),
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &SheetsStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// SaveOrder appends the order row and its child item rows
func (s *SheetsStore) SaveOrder(rec *OrderRecord, items []ItemRecord) error {
	if err := s.appendRows(SheetOrders, orderHeaders, [][]interface{}{rec.toRow()}); err != nil {
		return fmt.Errorf("failed to write order row: %w", err)
	}

	rows := make([][]interface{}, 0, len(items))
	for i := range items {
		rows = append(rows, items[i].toRow())
	}
	if err := s.appendRows(SheetCookieRows, itemHeaders, rows); err != nil {
		return fmt.Errorf("failed to write item rows: %w", err)
	}
	return nil
}

// GetOrder finds one order row and its child rows by order ID
func (s *SheetsStore) GetOrder(orderID string) (*OrderRecord, []ItemRecord, error) {
	rows, err := s.readOrders()
	if err != nil {
		return nil, nil, err
	}

	var found *OrderRecord
	for _, row := range rows {
		if row.rec.OrderID == orderID {
			found = row.rec
			break
		}
	}
	if found == nil {
		return nil, nil, ErrOrderNotFound
	}

	itemRows, err := s.readItems()
	if err != nil {
		return nil, nil, err
	}
	var orderItems []ItemRecord
	for _, row := range itemRows {
		if row.item.OrderID == orderID {
			orderItems = append(orderItems, row.item)
		}
	}
	return found, orderItems, nil
}

// ListOrders returns every order with its items, newest first. A
// non-empty sales tag filters on the Sales column.
func (s *SheetsStore) ListOrders(sales string) ([]OrderWithItems, error) {
	rows, err := s.readOrders()
	if err != nil {
		return nil, err
	}
	itemRows, err := s.readItems()
	if err != nil {
		return nil, err
	}

	itemsByOrder := make(map[string][]ItemRecord)
	for _, row := range itemRows {
		itemsByOrder[row.item.OrderID] = append(itemsByOrder[row.item.OrderID], row.item)
	}

	var out []OrderWithItems
	for _, row := range rows {
		if sales != "" && row.rec.Sales != sales {
			continue
		}
		out = append(out, OrderWithItems{Order: *row.rec, Items: itemsByOrder[row.rec.OrderID]})
	}
	SortNewestFirst(out)
	return out, nil
}

// UpdateOrder overwrites the order row in place and replaces all of its
// child item rows. The caller is responsible for carrying over the spin
// fields it wants preserved.
func (s *SheetsStore) UpdateOrder(orderID string, rec *OrderRecord, items []ItemRecord) error {
	rowNum, err := s.findOrderRow(orderID)
	if err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{rec.toRow()}}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("%s!A%d", SheetOrders, rowNum), vr).
		ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		return fmt.Errorf("failed to update order row: %w", err)
	}

	if err := s.deleteItemRows(orderID); err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(items))
	for i := range items {
		rows = append(rows, items[i].toRow())
	}
	if err := s.appendRows(SheetCookieRows, itemHeaders, rows); err != nil {
		return fmt.Errorf("failed to write item rows: %w", err)
	}
	return nil
}

// UpdateSpinStatus patches only the Spins Used and Spin Completed cells
func (s *SheetsStore) UpdateSpinStatus(orderID string, spinsUsed int, spinCompleted string) error {
	rowNum, err := s.findOrderRow(orderID)
	if err != nil {
		return err
	}

	// Spins Used and Spin Completed are the last two columns (L:M)
	rangeRef := fmt.Sprintf("%s!%s%d:%s%d",
		SheetOrders, columnLetter(11), rowNum, columnLetter(12), rowNum)
	vr := &sheets.ValueRange{Values: [][]interface{}{{spinsUsed, spinCompleted}}}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, rangeRef, vr).
		ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		return fmt.Errorf("failed to update spin status: %w", err)
	}
	return nil
}

// AppendSpinReward logs one winning spin
func (s *SheetsStore) AppendSpinReward(rec *SpinRewardRecord) error {
	if err := s.appendRows(SheetSpinRewards, rewardHeaders, [][]interface{}{rec.toRow()}); err != nil {
		return fmt.Errorf("failed to write spin reward: %w", err)
	}
	return nil
}

// SaveInvoice replaces the order's invoice tab with a fresh grid
func (s *SheetsStore) SaveInvoice(orderID string, grid [][]string) error {
	title := sanitizeSheetTitle(orderID)

	if sheetID, ok, err := s.findSheetID(title); err != nil {
		return err
	} else if ok {
		if err := s.batchUpdate(&sheets.Request{
			DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheetID},
		}); err != nil {
			return fmt.Errorf("failed to replace invoice tab: %w", err)
		}
	}

	if err := s.batchUpdate(&sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: title},
		},
	}); err != nil {
		return fmt.Errorf("failed to create invoice tab: %w", err)
	}

	values := make([][]interface{}, 0, len(grid))
	for _, row := range grid {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("%s!A1", title), &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		return fmt.Errorf("failed to write invoice: %w", err)
	}
	return nil
}

// ListTodos reads the staff checklist from the Todos tab, sorted by its
// Order column. Task IDs stay bound to the source rows so done marks
// keep pointing at the right task after sorting.
func (s *SheetsStore) ListTodos() ([]TodoTask, error) {
	if _, ok, err := s.findSheetID(SheetTodos); err != nil {
		return nil, err
	} else if !ok {
		return nil, nil
	}
	rows, err := s.readRows(SheetTodos)
	if err != nil {
		return nil, err
	}
	return todoTasksFrom(rows), nil
}

// ListDoneTodos returns the task IDs marked done on the given day
func (s *SheetsStore) ListDoneTodos(date string) ([]int, error) {
	if _, ok, err := s.findSheetID(SheetTodoStatus); err != nil {
		return nil, err
	} else if !ok {
		return nil, nil
	}
	rows, err := s.readRows(SheetTodoStatus)
	if err != nil {
		return nil, err
	}

	var done []int
	for _, row := range todoStatusRowsFrom(rows) {
		if row.date == date && row.done {
			done = append(done, row.index)
		}
	}
	return done, nil
}

// SetTodoDone marks a task done or not-done for the day. A done mark is
// one TodoStatus row; unchecking deletes it. Both directions are
// idempotent.
func (s *SheetsStore) SetTodoDone(date string, index int, done bool) error {
	if err := s.ensureSheet(SheetTodoStatus, todoStatusHeaders); err != nil {
		return err
	}
	rows, err := s.readRows(SheetTodoStatus)
	if err != nil {
		return err
	}

	rowNum := 0
	for _, row := range todoStatusRowsFrom(rows) {
		if row.date == date && row.index == index {
			rowNum = row.num
			break
		}
	}

	if done {
		if rowNum != 0 {
			return nil
		}
		if err := s.appendRows(SheetTodoStatus, todoStatusHeaders,
			[][]interface{}{{date, index, "1"}}); err != nil {
			return fmt.Errorf("failed to write todo status: %w", err)
		}
		return nil
	}

	if rowNum == 0 {
		return nil
	}
	sheetID, ok, err := s.findSheetID(SheetTodoStatus)
	if err != nil || !ok {
		return err
	}
	rowIndex := int64(rowNum - 1) // DeleteDimension is zero-based
	if err := s.batchUpdate(&sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: rowIndex,
				EndIndex:   rowIndex + 1,
			},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete todo status: %w", err)
	}
	return nil
}

// --- internals ---------------------------------------------------------

// sheetRow is one data row zipped with the header, tagged with its
// 1-based physical row number (the header is row 1). The number travels
// with the row so that skipping blank rows during parsing never shifts
// the indices used for in-place updates and deletes.
type sheetRow struct {
	num   int
	cells map[string]string
}

// zipRows pairs each data row with the header row into cell maps,
// keeping physical row numbers. A tab with only a header reads as empty.
func zipRows(values [][]interface{}) []sheetRow {
	if len(values) < 2 {
		return nil
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = fmt.Sprint(h)
	}

	rows := make([]sheetRow, 0, len(values)-1)
	for i, raw := range values[1:] {
		cells := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(raw) {
				cells[h] = fmt.Sprint(raw[j])
			}
		}
		rows = append(rows, sheetRow{num: i + 2, cells: cells})
	}
	return rows
}

func (s *SheetsStore) readRows(sheetName string) ([]sheetRow, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheetName).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	return zipRows(resp.Values), nil
}

// orderRow is a parsed Orders row plus its physical row number
type orderRow struct {
	rec *OrderRecord
	num int
}

// itemRow is a parsed Cookie Details row plus its physical row number
type itemRow struct {
	item ItemRecord
	num  int
}

// orderRowsFrom parses Orders rows, dropping blank ones. Row numbers
// stay physical, so a dropped row leaves a gap instead of shifting the
// rows after it.
func orderRowsFrom(rows []sheetRow) []orderRow {
	parsed := make([]orderRow, 0, len(rows))
	for _, row := range rows {
		rec := orderRecordFromCells(row.cells)
		if rec.OrderID == "" {
			continue
		}
		parsed = append(parsed, orderRow{rec: rec, num: row.num})
	}
	return parsed
}

func itemRowsFrom(rows []sheetRow) []itemRow {
	parsed := make([]itemRow, 0, len(rows))
	for _, row := range rows {
		item := itemRecordFromCells(row.cells)
		if item.OrderID == "" {
			continue
		}
		parsed = append(parsed, itemRow{item: item, num: row.num})
	}
	return parsed
}

// todoStatusRow is a parsed TodoStatus row plus its physical row number
type todoStatusRow struct {
	date  string
	index int
	done  bool
	num   int
}

// todoTasksFrom parses Todos rows into tasks. A task's ID is its source
// row position, independent of the Order column used for sorting, so
// reordering the checklist never remaps existing done marks.
func todoTasksFrom(rows []sheetRow) []TodoTask {
	type sortableTask struct {
		task  TodoTask
		order int
	}
	parsed := make([]sortableTask, 0, len(rows))
	for _, row := range rows {
		label := strings.TrimSpace(row.cells[todoHeaders[0]])
		if label == "" {
			continue
		}
		order, err := strconv.Atoi(strings.TrimSpace(row.cells[todoHeaders[1]]))
		if err != nil {
			order = 1 << 30 // unordered tasks sink below ordered ones
		}
		parsed = append(parsed, sortableTask{
			task:  TodoTask{ID: row.num - 2, Label: label},
			order: order,
		})
	}
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].order < parsed[j].order
	})

	tasks := make([]TodoTask, 0, len(parsed))
	for _, p := range parsed {
		tasks = append(tasks, p.task)
	}
	return tasks
}

func todoStatusRowsFrom(rows []sheetRow) []todoStatusRow {
	parsed := make([]todoStatusRow, 0, len(rows))
	for _, row := range rows {
		index, err := strconv.Atoi(strings.TrimSpace(row.cells[todoStatusHeaders[1]]))
		if err != nil {
			continue
		}
		parsed = append(parsed, todoStatusRow{
			date:  strings.TrimSpace(row.cells[todoStatusHeaders[0]]),
			index: index,
			done:  row.cells[todoStatusHeaders[2]] == "1",
			num:   row.num,
		})
	}
	return parsed
}

func (s *SheetsStore) readOrders() ([]orderRow, error) {
	rows, err := s.readRows(SheetOrders)
	if err != nil {
		return nil, err
	}
	return orderRowsFrom(rows), nil
}

func (s *SheetsStore) readItems() ([]itemRow, error) {
	rows, err := s.readRows(SheetCookieRows)
	if err != nil {
		return nil, err
	}
	return itemRowsFrom(rows), nil
}

// findOrderRow returns the physical sheet row of the order
func (s *SheetsStore) findOrderRow(orderID string) (int, error) {
	rows, err := s.readOrders()
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if row.rec.OrderID == orderID {
			return row.num, nil
		}
	}
	return 0, ErrOrderNotFound
}

// appendRows writes rows to a tab, creating the tab and its header row
// on first use.
func (s *SheetsStore) appendRows(sheetName string, headers []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.ensureSheet(sheetName, headers); err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: rows}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").Do()
	if err != nil {
		return fmt.Errorf("failed to append to sheet %q: %w", sheetName, err)
	}
	return nil
}

func (s *SheetsStore) ensureSheet(sheetName string, headers []string) error {
	_, ok, err := s.findSheetID(sheetName)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	log.Printf("Creating sheet tab %q", sheetName)
	if err := s.batchUpdate(&sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: sheetName},
		},
	}); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetName, err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("%s!A1", sheetName),
			&sheets.ValueRange{Values: [][]interface{}{headerRow}}).
		ValueInputOption("USER_ENTERED").Do()
	if err != nil {
		return fmt.Errorf("failed to write header row for %q: %w", sheetName, err)
	}
	return nil
}

// deleteItemRows removes every Cookie Details row for the order, bottom
// up so earlier deletes don't shift the remaining physical rows.
func (s *SheetsStore) deleteItemRows(orderID string) error {
	itemRows, err := s.readItems()
	if err != nil {
		return err
	}
	sheetID, ok, err := s.findSheetID(SheetCookieRows)
	if err != nil || !ok {
		return err
	}

	for i := len(itemRows) - 1; i >= 0; i-- {
		if itemRows[i].item.OrderID != orderID {
			continue
		}
		rowIndex := int64(itemRows[i].num - 1) // DeleteDimension is zero-based
		if err := s.batchUpdate(&sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: rowIndex,
					EndIndex:   rowIndex + 1,
				},
			},
		}); err != nil {
			return fmt.Errorf("failed to delete item row: %w", err)
		}
	}
	return nil
}

func (s *SheetsStore) findSheetID(title string) (int64, bool, error) {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Do()
	if err != nil {
		return 0, false, fmt.Errorf("failed to load spreadsheet: %w", err)
	}
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties.SheetId, true, nil
		}
	}
	return 0, false, nil
}

func (s *SheetsStore) batchUpdate(reqs ...*sheets.Request) error {
	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: reqs}).Do()
	return err
}

var invalidSheetTitleChars = regexp.MustCompile(`[\\/?*\[\]]`)

// sanitizeSheetTitle makes an order ID safe as a tab name: max 100
// chars, no \ / ? * [ ]
func sanitizeSheetTitle(orderID string) string {
	title := invalidSheetTitleChars.ReplaceAllString(orderID, "_")
	if len(title) > 100 {
		title = title[:100]
	}
	return title
}

// columnLetter converts a zero-based column index to A1 notation
func columnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}
