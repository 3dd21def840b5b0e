package postmark

// inboundEmailData is the subset of Postmark's inbound webhook JSON we consume.
type inboundEmailData struct {
	FromName    string `json:"FromName"`
	From        string `json:"From"`
	Subject     string `json:"Subject"`
	MessageID   string `json:"MessageID"`
	TextBody    string `json:"TextBody"`
	HtmlBody    string `json:"HtmlBody"`
	Attachments []struct {
		Name          string `json:"Name"`
		Content       string `json:"Content"`
		ContentType   string `json:"ContentType"`
		ContentLength int    `json:"ContentLength"`
	} `json:"Attachments"`
	Headers []struct {
		Name  string `json:"Name"`
		Value string `json:"Value"`
	} `json:"Headers"`
}

// messageID prefers the RFC 5322 Message-ID header over Postmark's own id.
func (d *inboundEmailData) messageID() string {
	for _, h := range d.Headers {
		if h.Name == "Message-ID" && h.Value != "" {
			return h.Value
		}
	}
	return d.MessageID
}
