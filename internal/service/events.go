package service

// EventPublisher pushes store-change notifications to connected dashboard
// clients. Satisfied by the websocket hub; nil disables publishing.
type EventPublisher interface {
	Publish(event string, data interface{})
}

// Event names broadcast over the websocket feed
const (
	EventRequestCreated = "request.created"
	EventRequestUpdated = "request.updated"
	EventStoreReset     = "store.reset"
)

// publish is a nil-safe helper shared by the services.
func publish(hub EventPublisher, event string, data interface{}) {
	if hub != nil {
		hub.Publish(event, data)
	}
}
