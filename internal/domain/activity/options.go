package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectID    string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}

// DefaultListLimit caps listings that don't specify a limit.
const DefaultListLimit = 50
