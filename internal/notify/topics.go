package notify

const (
	TopicCatalogChanged = "canteen.catalog.changed"
	TopicOrderPlaced    = "canteen.order.placed"
	TopicOrderStatus    = "canteen.order.status"
	TopicEventCreated   = "campus.event.created"
)

// TopicFor maps an event type to its Kafka topic. Menu additions ride the
// catalog topic: both describe catalog state.
func TopicFor(eventType string) (string, bool) {
	switch eventType {
	case EventCatalogChanged, EventMenuItemAdded:
		return TopicCatalogChanged, true
	case EventOrderPlaced:
		return TopicOrderPlaced, true
	case EventOrderStatusChanged:
		return TopicOrderStatus, true
	case EventEventCreated:
		return TopicEventCreated, true
	}
	return "", false
}
