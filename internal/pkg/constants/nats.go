package constants

// NATS subjects
const (
	// SubjectTrackingRelay carries channel operations between service replicas
	SubjectTrackingRelay = "tracking.relay"
)

// NSQ topics
const (
	TopicSessionStarted = "tracking.session.started"
	TopicSessionEnded   = "tracking.session.ended"
)
