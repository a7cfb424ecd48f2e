package views

import (
	"encoding/json"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/frame"
	"github.com/lccn-predictor/lazyrating/internal/ui/components/jsonview"
)

// RecordDetail shows one record as highlighted JSON.
type RecordDetail struct {
	record      predictor.Record
	width       int
	height      int
	styles      Styles
	frameStyles frame.Styles
	json        jsonview.Model
	copyKey     key.Binding
}

// NewRecordDetail creates the detail view of record.
func NewRecordDetail(record predictor.Record) *RecordDetail {
	d := &RecordDetail{
		record:  record,
		json:    jsonview.New(),
		copyKey: helpBinding([]string{"c"}, "c", "copy JSON"),
	}
	d.json.SetValue(record)
	return d
}

// Init implements View.
func (d *RecordDetail) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (d *RecordDetail) Update(msg tea.Msg) (View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, d.copyKey) {
			b, err := json.MarshalIndent(d.record, "", "  ")
			if err != nil {
				return d, nil
			}
			return d, copyCmd("record JSON", string(b))
		}
		d.json, _ = d.json.Update(msg)
	}
	return d, nil
}

// View implements View.
func (d *RecordDetail) View() string {
	box := frame.New(
		frame.WithStyles(d.frameStyles),
		frame.WithTitle(d.record.Username),
		frame.WithFilter(d.record.DataRegion),
		frame.WithContent(d.json.View()),
		frame.WithPadding(1),
		frame.WithSize(d.width, d.height),
		frame.WithFocused(true),
	)
	return box.View()
}

// Name implements View.
func (d *RecordDetail) Name() string {
	return "Record"
}

// ShortHelp implements View.
func (d *RecordDetail) ShortHelp() []key.Binding {
	return nil
}

// HintBindings implements HintProvider.
func (d *RecordDetail) HintBindings() []key.Binding {
	return []key.Binding{d.copyKey}
}

// HelpSections implements HelpProvider.
func (d *RecordDetail) HelpSections() []HelpSection {
	km := d.json.KeyMap
	return []HelpSection{{
		Title: "Record",
		Bindings: []key.Binding{
			km.LineUp, km.LineDown, km.PageUp, km.PageDown,
			km.GotoTop, km.GotoBottom, km.ScrollLeft, km.ScrollRight,
			d.copyKey,
		},
	}}
}

// SetSize implements View.
func (d *RecordDetail) SetSize(width, height int) View {
	d.width = width
	d.height = height
	d.json.SetSize(max(width-4, 1), max(height-2, 1))
	return d
}

// SetStyles implements View.
func (d *RecordDetail) SetStyles(styles Styles) View {
	d.styles = styles
	d.frameStyles = frameStylesFromTheme(styles)
	d.json.SetStyles(jsonStylesFromTheme(styles))
	return d
}
