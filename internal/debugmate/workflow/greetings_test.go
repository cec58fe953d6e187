package workflow

import (
	"strings"
	"testing"
)

func TestGreetingPure(t *testing.T) {
	for _, msg := range []string{"hi", "hello", "hey there", "gm", "good morning"} {
		if got := Greeting(msg, ""); got == "" {
			t.Errorf("Greeting(%q) = empty, want a reply", msg)
		}
	}
}

func TestGreetingUsesName(t *testing.T) {
	got := Greeting("hello", "Alice")
	if got == "" || !strings.Contains(got, "Alice") {
		t.Errorf("Greeting = %q, want the name in it", got)
	}
}

func TestGreetingSkipsQuestions(t *testing.T) {
	for _, msg := range []string{
		"hi, can you help me?",
		"hello, what is the project status",
		"hey, show me all details",
		"hi please give me the report",
	} {
		if got := Greeting(msg, ""); got != "" {
			t.Errorf("Greeting(%q) = %q, want empty", msg, got)
		}
	}
}

func TestGreetingSkipsLongMessages(t *testing.T) {
	if got := Greeting("hello to everyone on this lovely fine day", ""); got != "" {
		t.Errorf("Greeting = %q, want empty for long message", got)
	}
}

func TestGreetingSkipsNonGreetings(t *testing.T) {
	for _, msg := range []string{"", "   ", "thanks", "ok bye"} {
		if got := Greeting(msg, ""); got != "" {
			t.Errorf("Greeting(%q) = %q, want empty", msg, got)
		}
	}
}
