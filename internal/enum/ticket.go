package enum

type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "Open"
	TicketStatusPending TicketStatus = "Pending"
	TicketStatusClosed  TicketStatus = "Closed"
)

func (s TicketStatus) String() string {
	return string(s)
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

func (p TicketPriority) String() string {
	return string(p)
}

type CommentSource string

const (
	CommentSourceCustomer CommentSource = "customer"
	CommentSourceAgent    CommentSource = "agent"
)

func (s CommentSource) String() string {
	return string(s)
}

type Taxonomy string

const (
	TaxonomyTicketStatus   Taxonomy = "ticket_status"
	TaxonomyTicketPriority Taxonomy = "ticket_priority"
)

func (t Taxonomy) String() string {
	return string(t)
}

var DefaultTicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusPending, TicketStatusClosed}

var DefaultTicketPriorities = []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh}
