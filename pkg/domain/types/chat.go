package types

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	ChatRoleBot  ChatRole = "bot"
	ChatRoleUser ChatRole = "user"
)

func (r ChatRole) String() string {
	return string(r)
}

// ExtraKind is the kind of attachment rendered under a bot reply
type ExtraKind string

const (
	ExtraChecklist ExtraKind = "checklist"
	ExtraWarning   ExtraKind = "warning"
	ExtraDownload  ExtraKind = "download"
)

// IsValid checks if the extra kind is valid
func (k ExtraKind) IsValid() bool {
	switch k {
	case ExtraChecklist,
		ExtraWarning,
		ExtraDownload:
		return true
	default:
		return false
	}
}

func (k ExtraKind) String() string {
	return string(k)
}
