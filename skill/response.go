package skill

// ResponseEnvelope is the outbound Alexa response.
type ResponseEnvelope struct {
	Version  string   `json:"version"`
	Response Response `json:"response"`
}

// Response holds the speech, card and API payload of a skill response.
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
	APIResponse      any           `json:"apiResponse,omitempty"`
}

// OutputSpeech is a plain-text speech directive.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Card is a simple home card shown in the Alexa app.
type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Reprompt re-asks the user when the session stays open without a reply.
type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech"`
}

const envelopeVersion = "1.0"

// speak builds a spoken response with a matching simple card, ending the
// session.
func speak(title, text string) *ResponseEnvelope {
	end := true

	return &ResponseEnvelope{
		Version: envelopeVersion,
		Response: Response{
			OutputSpeech:     plainText(text),
			Card:             &Card{Type: "Simple", Title: title, Content: text},
			ShouldEndSession: &end,
		},
	}
}

// askAgain builds a spoken response that keeps the session open and
// reprompts with the same text.
func askAgain(text string) *ResponseEnvelope {
	return &ResponseEnvelope{
		Version: envelopeVersion,
		Response: Response{
			OutputSpeech: plainText(text),
			Reprompt:     &Reprompt{OutputSpeech: plainText(text)},
		},
	}
}

// apiResponse builds a silent response carrying a payload for the calling
// service.
func apiResponse(payload any) *ResponseEnvelope {
	return &ResponseEnvelope{
		Version:  envelopeVersion,
		Response: Response{APIResponse: payload},
	}
}

// emptyResponse is used for events that require no reply.
func emptyResponse() *ResponseEnvelope {
	return &ResponseEnvelope{Version: envelopeVersion}
}

func plainText(text string) *OutputSpeech {
	return &OutputSpeech{Type: "PlainText", Text: text}
}
