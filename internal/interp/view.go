package interp

import (
	"golang.org/x/net/html"

	"github.com/nlui/studio/internal/uidoc"
)

// View is the narrowed, defaulted form of one node's props. Each kind maps to
// exactly one concrete view type; backends switch on it.
type View interface {
	view()
}

// Block is a rendered child list. When a container holds more than one
// Button, the buttons move out of Items into Buttons so backends can lay them
// out as a single inline row after the rest.
type Block struct {
	Items   []*html.Node
	Buttons []*html.Node
}

// Empty reports whether the block holds no markup.
func (b Block) Empty() bool { return len(b.Items) == 0 && len(b.Buttons) == 0 }

// Variant is a button emphasis level.
type Variant string

const (
	Primary   Variant = "primary"
	Secondary Variant = "secondary"
	Tertiary  Variant = "tertiary"
)

// FieldKind selects the concrete input representation of a Field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldSelect   FieldKind = "select"
	FieldDate     FieldKind = "date"
	FieldCombobox FieldKind = "combobox"
)

type (
	Page struct {
		Body Block
	}

	Header struct {
		Title    string
		Subtitle string
		Body     Block
	}

	Section struct {
		Title string
		Body  Block
	}

	Card struct {
		Title    string
		Subtitle string
		Image    string
		Body     Block
	}

	TabPane struct {
		Label string
		Panel *html.Node
	}

	// Tabs holds one pane per Tab child. Children of other kinds are
	// interpreted but not placed.
	Tabs struct {
		Panes []TabPane
	}

	TabPanel struct {
		Label string
		Body  Block
	}

	Table struct {
		Caption string
		Columns []string
		Rows    [][]Cell
	}

	Form struct {
		Title string
		Body  Block
	}

	Field struct {
		Kind        FieldKind
		InputType   string
		Label       string
		Name        string
		Placeholder string
		Value       string
		Options     []string
		Required    bool
		ReadOnly    bool
		Error       string
		Hint        string
	}

	Text struct {
		Content string
		Size    string
	}

	Badge struct {
		Label    string
		Severity Severity
	}

	Button struct {
		Variant  Variant
		Text     string
		Disabled bool
	}

	Icon struct {
		Set   string
		Name  string
		Glyph string
	}

	Banner struct {
		Title    string
		Message  string
		Severity Severity
	}

	Toast struct {
		Message  string
		Severity Severity
	}

	Modal struct {
		Title   string
		Confirm string
		Cancel  string
		Body    Block
	}

	Avatar struct {
		Name    string
		Initial string
		Src     string
		Size    string
		Variant string
	}

	Breadcrumbs struct {
		Items   []string
		Current string
	}

	Footer struct {
		Text  string
		Links []string
		Body  Block
	}

	Checkbox struct {
		Label    string
		Name     string
		Checked  bool
		Disabled bool
	}

	Radio struct {
		Label      string
		Name       string
		Options    []string
		Value      string
		Horizontal bool
		Disabled   bool
	}

	Switch struct {
		Label    string
		On       bool
		Disabled bool
	}

	TextArea struct {
		Label       string
		Name        string
		Placeholder string
		Value       string
		Rows        int
		Required    bool
		ReadOnly    bool
	}

	Tooltip struct {
		Text string
		Body Block
	}

	// Layout is a vertical stack when Stack is set, otherwise a grid.
	Layout struct {
		Stack   bool
		Columns int
		Gap     string
		Body    Block
	}

	Menu struct {
		Title string
		Items []string
	}

	Pagination struct {
		Page  int
		Total int
	}

	ColorPicker struct {
		Label    string
		Value    string
		Swatches []string
	}

	SegmentedControl struct {
		Options  []string
		Selected int
	}

	Pill struct {
		Label    string
		Variant  string
		Severity Severity
	}

	Image struct {
		Src    string
		Alt    string
		Width  int
		Height int
	}

	TimelineItem struct {
		Title  string
		When   string
		Detail string
	}

	Timeline struct {
		Items []TimelineItem
	}

	DataPoint struct {
		Label string
		Value float64
	}

	Chart struct {
		Type   string
		Title  string
		Points []DataPoint
	}

	Stepper struct {
		Steps   []string
		Current int
	}

	ProgressBar struct {
		Label   string
		Percent float64
	}

	Code struct {
		Language string
		Source   string
	}

	// Tile stands in for widgets that need a live integration (maps, uploads,
	// scanners) and render as a labelled placeholder card.
	Tile struct {
		Kind   uidoc.Kind
		Title  string
		Detail string
		Glyph  string
	}

	// Unknown is the inert placeholder for kinds outside the enumeration.
	Unknown struct {
		Kind uidoc.Kind
	}
)

func (Page) view()             {}
func (Header) view()           {}
func (Section) view()          {}
func (Card) view()             {}
func (Tabs) view()             {}
func (TabPanel) view()         {}
func (Table) view()            {}
func (Form) view()             {}
func (Field) view()            {}
func (Text) view()             {}
func (Badge) view()            {}
func (Button) view()           {}
func (Icon) view()             {}
func (Banner) view()           {}
func (Toast) view()            {}
func (Modal) view()            {}
func (Avatar) view()           {}
func (Breadcrumbs) view()      {}
func (Footer) view()           {}
func (Checkbox) view()         {}
func (Radio) view()            {}
func (Switch) view()           {}
func (TextArea) view()         {}
func (Tooltip) view()          {}
func (Layout) view()           {}
func (Menu) view()             {}
func (Pagination) view()       {}
func (ColorPicker) view()      {}
func (SegmentedControl) view() {}
func (Pill) view()             {}
func (Image) view()            {}
func (Timeline) view()         {}
func (Chart) view()            {}
func (Stepper) view()          {}
func (ProgressBar) view()      {}
func (Code) view()             {}
func (Tile) view()             {}
func (Unknown) view()          {}
