package usecase

// SchedulerKey is exported for testing
var SchedulerKey = schedulerKey

// Scheduler scopes exported for testing
const (
	ChatSchedulerScope = chatSchedulerScope
	CTASchedulerScope  = ctaSchedulerScope
)
