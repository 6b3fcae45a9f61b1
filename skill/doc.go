// Package skill is the top-level Alexa request handler for the Unified
// Shopping List helper skill.
//
// # Overview
//
// The [Skill] dispatches every inbound request envelope by type:
//
//   - Voice requests (launch and intents) get spoken guidance. The skill
//     has no conversational surface; it tells the user to use their normal
//     Alexa shopping list.
//   - Account lifecycle events (SkillAccountLinked, SkillDisabled) notify
//     the USL API so it can associate or unlink the user's account.
//   - Household list events (ItemsCreated, ItemsUpdated, ItemsDeleted) are
//     handed to the event translator, which syncs items to the USL.
//   - Skill messages (Messaging.MessageReceived) are handed to the message
//     router, which runs generic list CRUD on behalf of the USL.
//
// Processing errors never fail the invocation; the skill answers with a
// spoken retry prompt instead, the way the voice surface degrades for any
// unrecognized utterance.
//
// # Getting Started
//
//	sk, err := skill.New(skill.Config{
//		USLBaseURL:   "https://usl.example.com",
//		LinkRoute:    "alexa/account-link",
//		UnlinkRoute:  "alexa/account-link",
//		ClientID:     clientID,
//		ClientSecret: clientSecret,
//	}, store, logger)
//	if err != nil {
//		return err
//	}
//
//	response, err := sk.Handle(ctx, envelope)
package skill
