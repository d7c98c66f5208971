package classify

import (
	"fmt"
	"strings"
)

const classificationPrompt = `You route messages for Aura, an app that forms small squads of people around a shared goal.

Classify the user's message and answer with a single JSON object and nothing else:
{"type": "greeting" | "conversational" | "squad_match", "reply": string, "squad_type": string, "intent": string}

- "greeting": hellos and small talk. Put a short friendly reply in "reply".
- "conversational": questions about Aura or anything that needs no squad. Answer in "reply".
- "squad_match": the user wants help reaching a goal with other people. Set "squad_type" to one of
  %s
  and summarize what they want in "intent". Leave "reply" empty.

User message: %q`

const personalizationPrompt = `You are Aura. Write a warm two-sentence invitation for the user to join a squad.

Squad: %s %s
About: %s
Roles: %s
Time: %s
What the user wants: %s

Reply with the message text only.`

const fallbackMessage = "%s I found a squad for you: %s. %s Ready to jump in?"

func buildClassificationPrompt(query string) string {
	names := make([]string, len(squadTypes))
	for i, t := range squadTypes {
		names[i] = string(t)
	}
	return fmt.Sprintf(classificationPrompt, strings.Join(names, ", "), query)
}

func buildPersonalizationPrompt(tmpl Template, intent string) string {
	return fmt.Sprintf(personalizationPrompt,
		tmpl.Emoji, tmpl.Name, tmpl.Description,
		strings.Join(tmpl.Roles, ", "), tmpl.TimeEstimate, intent,
	)
}

// FallbackMessage is the invitation used when personalization fails
func FallbackMessage(tmpl Template) string {
	return fmt.Sprintf(fallbackMessage, tmpl.Emoji, tmpl.Name, tmpl.Description)
}
