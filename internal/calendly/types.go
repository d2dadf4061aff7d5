package calendly

// EventType is the projection of a Calendly event type sent to the site.
type EventType struct {
	Name          *string `json:"name"`
	SchedulingURL *string `json:"scheduling_url"`
	Duration      *int    `json:"duration"`
	Description   *string `json:"description"`
}

// EventTypesResponse is the body of GET /api/calendly-events.
type EventTypesResponse struct {
	EventTypes []EventType `json:"event_types"`
}

type eventTypesPayload struct {
	Collection []struct {
		Name             *string `json:"name"`
		SchedulingURL    *string `json:"scheduling_url"`
		Duration         *int    `json:"duration"`
		Description      *string `json:"description"`
		DescriptionPlain *string `json:"description_plain"`
	} `json:"collection"`
}
