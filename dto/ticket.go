package dto

const (
	DefaultTicketsPerPage = 20
	MaxTicketsPerPage     = 100
)

// TicketListFilter narrows a ticket listing. Page is 1-based.
type TicketListFilter struct {
	Page    int
	PerPage int
	Status  string
	Search  string
}

// Normalize applies paging defaults and bounds.
func (f *TicketListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultTicketsPerPage
	}
	if f.PerPage > MaxTicketsPerPage {
		f.PerPage = MaxTicketsPerPage
	}
}

func (f TicketListFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// DateLayout is the wall clock format used for dates in API responses.
const DateLayout = "2006-01-02 15:04:05"

type TicketSummary struct {
	ID        uint64 `json:"id"`
	Subject   string `json:"subject"`
	Status    string `json:"status"`
	Requester string `json:"requester"`
	Date      string `json:"date"`
}

type TicketList struct {
	Tickets []TicketSummary `json:"tickets"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

type AttachmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ConversationEntry struct {
	Author      string `json:"author"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
	Date        string `json:"date"`
}

type TicketDetail struct {
	ID           uint64              `json:"id"`
	Subject      string              `json:"subject"`
	Content      string              `json:"content"`
	Status       string              `json:"status"`
	Priority     []string            `json:"priority"`
	Requester    string              `json:"requester"`
	Attachments  []AttachmentRef     `json:"attachments"`
	Conversation []ConversationEntry `json:"conversation"`
	Date         string              `json:"date"`
}

// CreateTicketInput is an explicit ticket creation request.
type CreateTicketInput struct {
	Subject       string `json:"subject"`
	Content       string `json:"content"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
}

// Agent identifies the staff member acting through the API.
type Agent struct {
	ID   string
	Name string
}
