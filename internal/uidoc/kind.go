package uidoc

import "sort"

// Kind tags a node with the rendering rule that applies to it.
type Kind string

const (
	KindPage             Kind = "Page"
	KindHeader           Kind = "Header"
	KindSection          Kind = "Section"
	KindCard             Kind = "Card"
	KindTabs             Kind = "Tabs"
	KindTab              Kind = "Tab"
	KindTable            Kind = "Table"
	KindForm             Kind = "Form"
	KindField            Kind = "Field"
	KindText             Kind = "Text"
	KindBadge            Kind = "Badge"
	KindButton           Kind = "Button"
	KindIcon             Kind = "Icon"
	KindBanner           Kind = "Banner"
	KindToast            Kind = "Toast"
	KindModal            Kind = "Modal"
	KindAvatar           Kind = "Avatar"
	KindBreadcrumbs      Kind = "Breadcrumbs"
	KindFooter           Kind = "Footer"
	KindCheckbox         Kind = "Checkbox"
	KindRadio            Kind = "Radio"
	KindSwitch           Kind = "Switch"
	KindTextArea         Kind = "TextArea"
	KindTooltip          Kind = "Tooltip"
	KindLayout           Kind = "Layout"
	KindMenu             Kind = "Menu"
	KindPagination       Kind = "Pagination"
	KindColorPicker      Kind = "ColorPicker"
	KindSegmentedControl Kind = "SegmentedControl"
	KindPill             Kind = "Pill"
	KindImage            Kind = "Image"
	KindTimeline         Kind = "Timeline"
	KindCalendar         Kind = "Calendar"
	KindChart            Kind = "Chart"
	KindDatePicker       Kind = "DatePicker"
	KindMap              Kind = "Map"
	KindUpload           Kind = "Upload"
	KindDownload         Kind = "Download"
	KindScanner          Kind = "Scanner"
	KindStepper          Kind = "Stepper"
	KindProgressBar      Kind = "ProgressBar"
	KindSelect           Kind = "Select"
	KindPreview          Kind = "Preview"
	KindPoints           Kind = "Points"
	KindCode             Kind = "Code"
)

var knownKinds = map[Kind]struct{}{
	KindPage: {}, KindHeader: {}, KindSection: {}, KindCard: {}, KindTabs: {}, KindTab: {},
	KindTable: {}, KindForm: {}, KindField: {}, KindText: {}, KindBadge: {}, KindButton: {},
	KindIcon: {}, KindBanner: {}, KindToast: {}, KindModal: {}, KindAvatar: {},
	KindBreadcrumbs: {}, KindFooter: {}, KindCheckbox: {}, KindRadio: {}, KindSwitch: {},
	KindTextArea: {}, KindTooltip: {}, KindLayout: {}, KindMenu: {}, KindPagination: {},
	KindColorPicker: {}, KindSegmentedControl: {}, KindPill: {}, KindImage: {},
	KindTimeline: {}, KindCalendar: {}, KindChart: {}, KindDatePicker: {}, KindMap: {},
	KindUpload: {}, KindDownload: {}, KindScanner: {}, KindStepper: {}, KindProgressBar: {},
	KindSelect: {}, KindPreview: {}, KindPoints: {}, KindCode: {},
}

// Known reports whether k belongs to the closed enumeration.
func (k Kind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

// Kinds returns every known kind in lexical order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(knownKinds))
	for k := range knownKinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
