package dropdown

import "fmt"

// Zone ID format, all prefixed with the control ID:
//
//	{id}               whole control (label and open panel)
//	{id}:label         clickable label region
//	{id}:listbox       options panel
//	{id}:option:{idx}  option row, idx into the control's option list

func (m Model) labelZone() string   { return m.id + ":label" }
func (m Model) listboxZone() string { return m.id + ":listbox" }

func (m Model) optionZone(idx int) string {
	return fmt.Sprintf("%s:option:%d", m.id, idx)
}
