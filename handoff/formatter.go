package handoff

import "strings"

// Section headers rendered by FormatInput. Downstream workers are prompted
// with this text and must see identical structure across every hand-off, so
// these are part of the contract — do not reword them.
const (
	headerHandoffFrom      = "HANDOFF FROM "
	headerWorkCompleted    = "Work Completed"
	headerYourObjectives   = "Your Objectives"
	headerSuccessCriteria  = "Success Criteria"
	headerQualityChecklist = "Quality Checklist"
	headerRequiredTools    = "Required Tools"
)

// FormatInput renders a hand-off packet into the prompt delivered to the
// next pipeline stage. The output is a pure, deterministic template: fixed
// section order, verbatim headers, list content as one bullet per line.
func FormatInput(hc *Context) string {
	var b strings.Builder

	b.WriteString(headerHandoffFrom)
	b.WriteString(hc.FromWorker)
	b.WriteString("\n\n")

	writeSection(&b, headerWorkCompleted, hc.WorkCompleted)
	writeListSection(&b, headerYourObjectives, hc.RemainingObjectives)
	writeListSection(&b, headerSuccessCriteria, hc.SuccessCriteria)
	writeListSection(&b, headerQualityChecklist, hc.QualityChecklist)
	writeListSection(&b, headerRequiredTools, hc.ToolRequirements)

	return strings.TrimRight(b.String(), "\n")
}

func writeSection(b *strings.Builder, header, content string) {
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n\n")
}

func writeListSection(b *strings.Builder, header string, items []string) {
	b.WriteString(header)
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
