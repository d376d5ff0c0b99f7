package chat

import "github.com/fourp/smartchat/pkg/metrics"

// ActionType labels the branch that produced a response.
type ActionType string

const (
	ActionEmergency        ActionType = "emergency"
	ActionEstimate         ActionType = "estimate"
	ActionEstimateQuery    ActionType = "estimate_query"
	ActionSchedule         ActionType = "schedule"
	ActionQuestion         ActionType = "question"
	ActionTechnician       ActionType = "technician"
	ActionOther            ActionType = "other"
	ActionScheduleCall     ActionType = "schedule_call"
	ActionScheduleDeclined ActionType = "schedule_declined"
	ActionAnswer           ActionType = "answer"
)

// Control tokens sent by the widget instead of free text.
const (
	TokenEmergencyButton  = "EMERGENCY_BUTTON"
	TokenEstimateButton   = "ESTIMATE_BUTTON"
	TokenScheduleButton   = "SCHEDULE_BUTTON"
	TokenQuestionButton   = "QUESTION_BUTTON"
	TokenTechnicianButton = "TECHNICIAN_BUTTON"
	TokenOtherButton      = "OTHER_BUTTON"
)

// NextStepCalendly tells the widget to open the scheduling calendar.
const NextStepCalendly = "show_calendly"

// IntentTag is a single label describing the inferred customer concern.
type IntentTag string

// AllowedIntentTags is the closed set the classifier may choose from.
var AllowedIntentTags = []IntentTag{
	"trust", "compliance", "technology", "reputation",
	"speed", "urgency", "affordability", "community",
}

// Request is the inbound chat payload.
type Request struct {
	Question          string `json:"question"`
	ConversationID    string `json:"conversationId"`
	ConversationState string `json:"conversationState"`
}

// Response is returned to the widget for a single turn.
type Response struct {
	Question          string              `json:"question,omitempty"`
	Answer            string              `json:"answer"`
	ConversationID    string              `json:"conversationId"`
	ConversationState *string             `json:"conversationState"`
	ActionType        ActionType          `json:"actionType"`
	NextStep          string              `json:"nextStep,omitempty"`
	IntentTag         IntentTag           `json:"intentTag,omitempty"`
	IsEmergency       bool                `json:"isEmergency"`
	IsScheduling      bool                `json:"isScheduling"`
	TokenUsage        *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// ItemKind identifies the corpus a retrieved item came from.
type ItemKind string

const (
	KindFAQ      ItemKind = "faq"
	KindFeature  ItemKind = "feature"
	KindEstimate ItemKind = "estimate"
)

// RetrievedItem is a single similarity or filter match. Transient per request.
type RetrievedItem struct {
	Text     string
	Kind     ItemKind
	Metadata map[string]string
}
