package domain

// Pipeline stage of a talent or company record, staff-controlled.
const (
	StatusLead      = "lead"
	StatusContacted = "contacted"
	StatusClient    = "client"
	StatusDiscarded = "discarded"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusLead, StatusContacted, StatusClient, StatusDiscarded:
		return true
	}
	return false
}
