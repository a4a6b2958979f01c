package core

import (
	"strconv"
	"time"
)

const (
	AppName          = "HelpBuddy"
	AppUserAgent     = "HelpBuddy-Agent/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/helpbuddy"
	AppVersion       = "0.1.0"

	// CorpusName is the fixed corpus every answer is grounded in. It
	// appears verbatim in user-facing fallback and refusal strings.
	CorpusName = "NCERT Science Class 8"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Interaction is one completed user/assistant exchange held in
// conversation memory. Immutable once stored.
type Interaction struct {
	Timestamp   time.Time `json:"timestamp"`
	UserQuery   string    `json:"user_query"`
	BotResponse string    `json:"bot_response"`
	Metadata    Metadata  `json:"metadata"`
}

// HistoryMessage is one half of an exchange supplied by an external
// history holder (a chat transport replaying its own log).
type HistoryMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// QueryRequest is a single question put to the assistant. ImageData
// carries a base64-encoded image when one is attached.
type QueryRequest struct {
	Query     string
	ImageData string
}

func (r QueryRequest) HasImage() bool {
	return r.ImageData != ""
}

// Result is the assistant's reply plus the routing and processing facts
// recorded while producing it. The pipeline never returns an error to
// the presentation layer; failures surface as fallback response text
// with the cause noted in Metadata.
type Result struct {
	Response string   `json:"response"`
	Metadata Metadata `json:"metadata"`
}

// Route identifies which pipeline path produced a response.
type Route string

const (
	RouteHistory    Route = "history_question"
	RouteFollowUp   Route = "follow_up"
	RouteImage      Route = "image_query"
	RouteOutOfScope Route = "out_of_scope"
	RouteNormal     Route = "normal"
)

// Passage is one retrieved unit of corpus text with page attribution.
type Passage struct {
	Content string
	Page    int
	HasPage bool
	Score   float32
}

// PageLabel renders the page for display; passages without attribution
// are labeled "Unknown".
func (p Passage) PageLabel() string {
	if !p.HasPage {
		return "Unknown"
	}
	return strconv.Itoa(p.Page)
}
