package workflow

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var greetingWords = []string{
	"hi", "hello", "hey", "gm", "ga", "ge",
	"good morning", "good afternoon", "good evening",
}

// intentIndicators mark a message as a real question, not smalltalk.
var intentIndicators = []string{
	"?", "can", "could", "would", "please", "project", "details", "all",
	"give", "show", "help", "how", "what", "who", "where", "when", "why",
}

// Greeting returns a reply only for short, pure greetings; anything that
// looks like a question returns "" so the main flow proceeds.
func Greeting(message, userName string) string {
	text := strings.TrimSpace(message)
	if text == "" {
		return ""
	}
	normalized := strings.ToLower(text)

	for _, ind := range intentIndicators {
		if strings.Contains(normalized, ind) {
			return ""
		}
	}
	if len(strings.Fields(normalized)) > 4 {
		return ""
	}

	greeted := false
	for _, g := range greetingWords {
		if strings.Contains(normalized, g) {
			greeted = true
			break
		}
	}
	if !greeted {
		return ""
	}

	tod := timeOfDay(time.Now().Hour())
	if userName != "" {
		templates := []string{
			fmt.Sprintf("Good %s, %s! How can I help you?", tod, userName),
			fmt.Sprintf("Hey %s! What would you like help with today?", userName),
			fmt.Sprintf("Hi %s! How's your %s going?", userName, tod),
		}
		return templates[rand.Intn(len(templates))]
	}

	templates := []string{
		fmt.Sprintf("Good %s! How can I help you?", tod),
		"Hey there! What can I do for you?",
		"Hi! How can I assist?",
	}
	return templates[rand.Intn(len(templates))]
}

func timeOfDay(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}
