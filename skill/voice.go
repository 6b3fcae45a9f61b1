package skill

import "strings"

// Spoken copy for the voice surface. The skill does its real work from
// list events and messages; the voice surface only explains itself.
const (
	speechWelcomeIntro = "Welcome to the Unified Shopping List Helper. This skill is designed to integrate the Alexa Shopping List, " +
		"and other To Do lists, with your Unified Shopping List. " +
		"If you're having trouble with this skill, make sure you're properly authenticated in the Alexa app."

	speechWelcomeUsage = "To use this skill, add an item to your shopping list the way you would normally do so. " +
		"There is no need to open this skill. Once your account is linked, and your shopping list is configured in the " +
		"Unified Shopping List, simply add something to your shopping list and it will automatically be synced to your unified list."

	speechNotLinked = "It looks like your account hasn't been linked. Please visit this skill's settings in the Alexa app " +
		"and link your account. Make sure you've also enabled the requested permissions, including access to your shopping list."

	speechLinked = "It looks like you've already successfully linked your account to the Unified Shopping List. " +
		"You may now add things to your shopping list and they will appear on any lists you have configured on the " +
		"Unified Shopping List. To add something to your shopping list, exit this skill, then say: " +
		`"Alexa, add apples to my shopping list".`

	speechRedirect = "To add something to your shopping list, please exit this skill and use your normal Alexa shopping list. " +
		"Please try again after exiting this skill."

	speechHelpSuffix = "If you're still having trouble, make sure you've linked your Alexa shopping list in your " +
		"Unified Shopping List account."

	speechNotUnderstood = "Sorry, I didn't quite catch it. Can you please say it again?"
)

func (s *Skill) launch(envelope *RequestEnvelope) *ResponseEnvelope {
	paragraphs := []string{speechWelcomeIntro, speechWelcomeUsage}

	if envelope.accessToken() == "" {
		paragraphs = append(paragraphs, speechNotLinked)
	} else {
		paragraphs = append(paragraphs, speechLinked)
	}

	return speak("Welcome!", strings.Join(paragraphs, "\n\n"))
}

func (s *Skill) intent(envelope *RequestEnvelope) *ResponseEnvelope {
	if envelope.Request.Intent == nil {
		return askAgain(speechNotUnderstood)
	}

	switch envelope.Request.Intent.Name {
	case IntentNameHelp:
		return s.help(envelope)

	case IntentNameCancel, IntentNameStop:
		return speak("Goodbye!", "")

	case IntentNameAddToShoppingList:
		return speak("Help", speechRedirect)

	default:
		return askAgain(speechNotUnderstood)
	}
}

func (s *Skill) help(envelope *RequestEnvelope) *ResponseEnvelope {
	text := speechNotLinked
	if envelope.accessToken() != "" {
		text = speechLinked
	}

	return speak("Help", text+" "+speechHelpSuffix)
}
