package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pane int

const (
	paneTables pane = iota
	paneParts
	paneDetail
	paneCount
)

// App is the bubbletea program state: a Model plus rendering and focus
// state.
type App struct {
	model  *Model
	styles Styles

	width  int
	height int
	focus  pane

	tableCursor int
	partsTable  table.Model
	fieldCursor int

	filterInput textinput.Model
	filtering   bool

	editInput textinput.Model
	editing   bool
	editField string

	watch  *Watcher
	status string
}

// NewApp creates the GUI application. The watcher may be nil when the
// database file cannot be watched.
func NewApp(model *Model, watch *Watcher) *App {
	pt := table.New(
		table.WithColumns(partColumns(40)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	fi := textinput.New()
	fi.Placeholder = "Filter parts..."
	fi.CharLimit = 60
	fi.Width = 30

	ei := textinput.New()
	ei.CharLimit = 200
	ei.Width = 60

	a := &App{
		model:       model,
		styles:      DefaultStyles(),
		focus:       paneParts,
		partsTable:  pt,
		filterInput: fi,
		editInput:   ei,
		watch:       watch,
	}
	a.syncTableCursor()
	a.refreshParts()
	return a
}

func partColumns(width int) []table.Column {
	ipnWidth := width * 2 / 5
	if ipnWidth < 20 {
		ipnWidth = 20
	}
	return []table.Column{
		{Title: "IPN", Width: ipnWidth},
		{Title: "description", Width: width - ipnWidth},
	}
}

// Init starts watching the database file for outside changes.
func (a *App) Init() tea.Cmd {
	if a.watch == nil {
		return nil
	}
	return a.watch.Wait()
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case DBChangedMsg:
		a.model.LoadComponents()
		a.syncTableCursor()
		a.refreshParts()
		a.status = "database changed on disk, reloaded"
		return a, a.watch.Wait()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		return a.handleEditKey(msg)
	}
	if a.filtering {
		return a.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		a.focus = (a.focus + 1) % paneCount
		return a, nil
	case "r":
		a.model.LoadComponents()
		a.syncTableCursor()
		a.refreshParts()
		a.status = "reloaded"
		return a, nil
	case "/":
		a.filtering = true
		a.filterInput.Focus()
		return a, nil
	case "s":
		return a.save(false)
	case "S":
		return a.save(true)
	}

	switch a.focus {
	case paneTables:
		return a.handleTablesKey(msg)
	case paneDetail:
		return a.handleDetailKey(msg)
	default:
		var cmd tea.Cmd
		a.partsTable, cmd = a.partsTable.Update(msg)
		a.syncSelectedPart()
		return a, cmd
	}
}

func (a *App) handleTablesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tables := a.model.Tables()
	switch msg.String() {
	case "up", "k":
		if a.tableCursor > 0 {
			a.tableCursor--
		}
	case "down", "j":
		if a.tableCursor < len(tables)-1 {
			a.tableCursor++
		}
	default:
		return a, nil
	}
	if len(tables) > 0 {
		a.model.SelectTable(tables[a.tableCursor])
		a.fieldCursor = 0
		a.refreshParts()
	}
	return a, nil
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := a.model.DisplayFields()
	switch msg.String() {
	case "up", "k":
		if a.fieldCursor > 0 {
			a.fieldCursor--
		}
	case "down", "j":
		if a.fieldCursor < len(fields)-1 {
			a.fieldCursor++
		}
	case "enter", "e":
		values, ok := a.model.SelectedComponent()
		if !ok {
			return a, nil
		}
		field := fields[a.fieldCursor]
		if field == "IPN" {
			// the primary key is not editable in place
			return a, nil
		}
		if a.model.IsCheckboxField(field) {
			// flip 0/1 in place instead of editing text
			if values[field] == "1" {
				a.model.ModifyField(field, "0")
			} else {
				a.model.ModifyField(field, "1")
			}
			return a, nil
		}
		a.editing = true
		a.editField = field
		a.editInput.SetValue(values[field])
		a.editInput.Focus()
	}
	return a, nil
}

func (a *App) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.model.ModifyField(a.editField, a.editInput.Value())
		a.editing = false
		a.editInput.Blur()
		return a, nil
	case "esc":
		a.editing = false
		a.editInput.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.editInput, cmd = a.editInput.Update(msg)
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.filtering = false
		a.filterInput.Blur()
		return a, nil
	case "esc":
		a.filtering = false
		a.filterInput.SetValue("")
		a.filterInput.Blur()
		a.refreshParts()
		return a, nil
	}
	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.refreshParts()
	return a, cmd
}

func (a *App) save(all bool) (tea.Model, tea.Cmd) {
	var err error
	if all {
		err = a.model.SaveAll()
	} else if ipn := a.model.SelectedIPN(); ipn != "" {
		err = a.model.SaveComponent(ipn)
	}
	if err != nil {
		a.status = "save failed: " + err.Error()
	} else {
		a.status = "saved"
	}
	return a, nil
}

// syncTableCursor clamps the table cursor after a reload and applies the
// selection to the model.
func (a *App) syncTableCursor() {
	tables := a.model.Tables()
	if len(tables) == 0 {
		a.tableCursor = 0
		return
	}
	if a.tableCursor >= len(tables) {
		a.tableCursor = len(tables) - 1
	}
	a.model.SelectTable(tables[a.tableCursor])
}

// refreshParts rebuilds the part table rows from the model, applying the
// filter text.
func (a *App) refreshParts() {
	filter := strings.ToLower(a.filterInput.Value())

	var rows []table.Row
	for _, ipn := range a.model.IPNs() {
		values := a.model.Component(ipn)
		if filter != "" &&
			!strings.Contains(strings.ToLower(ipn), filter) &&
			!strings.Contains(strings.ToLower(values["description"]), filter) &&
			!strings.Contains(strings.ToLower(values["keywords"]), filter) {
			continue
		}
		rows = append(rows, table.Row{ipn, values["description"]})
	}
	a.partsTable.SetRows(rows)
	a.partsTable.SetCursor(0)
	a.syncSelectedPart()
}

// syncSelectedPart keeps the model selection in step with the table
// cursor.
func (a *App) syncSelectedPart() {
	row := a.partsTable.SelectedRow()
	if row == nil {
		a.model.SelectComponent("")
		a.fieldCursor = 0
		return
	}
	a.model.SelectComponent(row[0])
}

func (a *App) resize() {
	listWidth := 22
	partsWidth := a.width - listWidth - 8
	if partsWidth < 40 {
		partsWidth = 40
	}
	a.partsTable.SetColumns(partColumns(partsWidth))
	a.partsTable.SetWidth(partsWidth)

	tableHeight := a.height/2 - 4
	if tableHeight < 5 {
		tableHeight = 5
	}
	a.partsTable.SetHeight(tableHeight)
}

// View renders the application.
func (a *App) View() string {
	var sb strings.Builder

	title := fmt.Sprintf(" partdb — %s ", a.model.DBPath)
	if a.model.HasUnsavedChanges() {
		title += a.styles.Dirty.Render("[modified] ")
	}
	sb.WriteString(a.styles.Header.Render(title) + "\n")

	if a.model.ConfigErr != nil {
		sb.WriteString(a.styles.Error.Render("config: "+a.model.ConfigErr.Error()) + "\n")
	}
	if a.model.DBErr != nil {
		sb.WriteString(a.styles.Error.Render("database: "+a.model.DBErr.Error()) + "\n")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderTables(),
		a.renderParts(),
	)
	sb.WriteString(top + "\n")
	sb.WriteString(a.renderDetail() + "\n")

	if a.filtering {
		sb.WriteString("filter: " + a.filterInput.View() + "\n")
	}
	if a.editing {
		sb.WriteString(a.styles.Title.Render(a.editField) + ": " + a.editInput.View() + "\n")
	}

	help := "[tab] pane  [/] filter  [enter] edit  [s] save  [S] save all  [r] reload  [q] quit"
	footer := help
	if a.status != "" {
		footer = a.status + "  |  " + help
	}
	sb.WriteString(a.styles.Footer.Render(footer))

	return sb.String()
}

func (a *App) renderTables() string {
	var sb strings.Builder
	sb.WriteString(a.styles.Title.Render("Tables") + "\n")
	for i, t := range a.model.Tables() {
		line := t
		style := a.styles.Body
		if i == a.tableCursor {
			line = "> " + line
			style = a.styles.Selected
		} else {
			line = "  " + line
		}
		sb.WriteString(style.Render(line) + "\n")
	}
	return a.paneStyle(paneTables).Width(20).Render(sb.String())
}

func (a *App) renderParts() string {
	return a.paneStyle(paneParts).Render(a.partsTable.View())
}

func (a *App) renderDetail() string {
	values, ok := a.model.SelectedComponent()
	if !ok {
		return a.paneStyle(paneDetail).Render(a.styles.Muted.Render("no part selected"))
	}

	var sb strings.Builder
	for i, field := range a.model.DisplayFields() {
		name := a.styles.FieldName.Render(field)
		if a.focus == paneDetail && i == a.fieldCursor {
			name = a.styles.Selected.Render(fmt.Sprintf("%-18s", field))
		}
		value := values[field]
		if saved := a.model.Component(a.model.SelectedIPN()); saved != nil && saved[field] != value {
			value = a.styles.Dirty.Render(value + " *")
		}
		sb.WriteString(name + " " + value + "\n")
	}
	return a.paneStyle(paneDetail).Render(sb.String())
}

func (a *App) paneStyle(p pane) lipgloss.Style {
	if a.focus == p {
		return a.styles.FocusedPane
	}
	return a.styles.Pane
}
