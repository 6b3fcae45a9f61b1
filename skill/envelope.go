package skill

import (
	"encoding/json"
	"time"
)

// Request type constants from the Alexa request envelope.
const (
	RequestTypeLaunch          = "LaunchRequest"
	RequestTypeIntent          = "IntentRequest"
	RequestTypeSessionEnded    = "SessionEndedRequest"
	RequestTypeAccountLinked   = "AlexaSkillEvent.SkillAccountLinked"
	RequestTypeSkillDisabled   = "AlexaSkillEvent.SkillDisabled"
	RequestTypeItemsCreated    = "AlexaHouseholdListEvent.ItemsCreated"
	RequestTypeItemsUpdated    = "AlexaHouseholdListEvent.ItemsUpdated"
	RequestTypeItemsDeleted    = "AlexaHouseholdListEvent.ItemsDeleted"
	RequestTypeMessageReceived = "Messaging.MessageReceived"
)

// Intent name constants for the voice interaction model.
const (
	IntentNameHelp              = "AMAZON.HelpIntent"
	IntentNameCancel            = "AMAZON.CancelIntent"
	IntentNameStop              = "AMAZON.StopIntent"
	IntentNameAddToShoppingList = "AddToShoppingList"
)

// RequestEnvelope is the inbound Alexa request, covering the subset of the
// envelope this skill reads.
type RequestEnvelope struct {
	Version string   `json:"version"`
	Session *Session `json:"session,omitempty"`
	Context Context  `json:"context"`
	Request Request  `json:"request"`
}

// Session describes the voice session, when one exists. Skill events and
// messaging requests arrive without a session.
type Session struct {
	New       bool   `json:"new"`
	SessionID string `json:"sessionId"`
}

// Context carries the system block of the envelope.
type Context struct {
	System System `json:"System"`
}

// System identifies the calling user and the Alexa API endpoint scoped to
// this invocation.
type System struct {
	APIEndpoint    string `json:"apiEndpoint"`
	APIAccessToken string `json:"apiAccessToken"`
	User           User   `json:"user"`
}

// User identifies the Alexa user. AccessToken is the account-linking token
// and is empty when the user has not linked their USL account.
type User struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

// Request is the polymorphic request block. Which optional fields are set
// depends on Type.
type Request struct {
	Type      string    `json:"type"`
	RequestID string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`

	// Intent is set for IntentRequest.
	Intent *Intent `json:"intent,omitempty"`

	// Body is set for AlexaHouseholdListEvent requests.
	Body *ListEventBody `json:"body,omitempty"`

	// Message is set for Messaging.MessageReceived requests.
	Message json.RawMessage `json:"message,omitempty"`
}

// Intent names the voice intent the user triggered.
type Intent struct {
	Name string `json:"name"`
}

// ListEventBody identifies the household list and items a list event refers
// to.
type ListEventBody struct {
	ListID      string   `json:"listId"`
	ListItemIDs []string `json:"listItemIds"`
}

// accessToken returns the account-linking token, or an empty string when the
// user is not linked.
func (e *RequestEnvelope) accessToken() string {
	return e.Context.System.User.AccessToken
}
