package generate

import (
	"strings"

	"github.com/nlui/studio/internal/uidoc"
)

// SystemPrompt builds the instruction block sent ahead of every user prompt.
// The kind list is generated from the closed enumeration so the two never drift.
func SystemPrompt() string {
	kinds := uidoc.Kinds()
	quoted := make([]string, len(kinds))
	for i, k := range kinds {
		quoted[i] = `"` + string(k) + `"`
	}

	var b strings.Builder
	b.WriteString(`You are a UI planning assistant. Output ONLY a JSON object with this shape:

UiDocument = {
  "version": "` + uidoc.Version + `",
  "title": string,
  "tree": UiNode
}
UiNode = {
  "kind": `)
	b.WriteString(strings.Join(quoted, " | "))
	b.WriteString(`,
  "props"?: { [key: string]: any },
  "children"?: UiNode[]
}

`)
	b.WriteString(guidelines)
	return b.String()
}

const guidelines = `Guidelines:
- Use Workday-like terminology and structure. The root node is a Page.
- Prefer concise labels and Canvas-like props:
  - Button: { variant: "primary" | "secondary" | "tertiary", text: string }
  - Field: { kind: "text" | "select" | "date" | "combobox", label: string, required?: boolean, readOnly?: boolean, options?: string[], error?: string, hint?: string }
  - Badge: { status: string }
  - Tabs: children are Tab nodes with { label: string }; each Tab's children are its panel
  - Table: { columns: string[], rows: Array<Record<string, string | UiNode | UiNode[]>> }
  - Avatar: { src?: string, name: string, size?: "sm" | "md" | "lg" | "xl", variant?: "circle" | "square" }
  - Card: { title?: string, image?: string }
  - Banner: { message: string, image?: string }
  - Pill: { label: string, variant?: "default" | "removable", color?: "blue" | "green" | "orange" | "red" | "gray" }
  - Image: { src: string, alt?: string, width?: string, height?: string }
  - Radio: { label: string, options: string[], value?: string, orientation?: "horizontal" | "vertical", required?: boolean, error?: string, hint?: string }
  - Layout: { direction?: "column", columns?: number, gap?: string }
  - Icon: { icon: "system.name" | "accent.name" | "applet.name" } or { name: string }
- For images in tables use the exact URLs provided by the user. Without URLs, use an emoji as a fallback.
- For Pills in table cells use node form {"kind": "Pill", "props": {"label": "Skill"}}, or an array of such nodes for several pills.
- For radio buttons use a Radio node instead of a Field.
- Avoid custom CSS or code. No markdown, no prose. JSON ONLY.`
