package facts

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func factMap(fs []Fact) map[string]string {
	m := make(map[string]string, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Value
	}
	return m
}

func TestExtractName(t *testing.T) {
	got := factMap(Extract("Hi, my name is Alice"))
	if got["name"] != "Alice" {
		t.Errorf("name = %q, want Alice", got["name"])
	}
}

func TestExtractMultipleFacts(t *testing.T) {
	got := factMap(Extract("I am 29 years old and I live in Surat"))
	if got["age"] != "29" {
		t.Errorf("age = %q, want 29", got["age"])
	}
	if got["location"] != "Surat" {
		t.Errorf("location = %q, want Surat", got["location"])
	}
}

func TestExtractEmail(t *testing.T) {
	got := factMap(Extract("you can reach me at dev@we3vision.com anytime"))
	if got["email"] != "dev@we3vision.com" {
		t.Errorf("email = %q", got["email"])
	}
}

func TestExtractPhoneStripsWhitespace(t *testing.T) {
	got := factMap(Extract("my phone number is +91 98765 43210"))
	phone, ok := got["phone"]
	if !ok {
		t.Fatal("phone not extracted")
	}
	if strings.ContainsAny(phone, " \t") {
		t.Errorf("phone %q still contains whitespace", phone)
	}
	if !strings.HasPrefix(phone, "+91") {
		t.Errorf("phone = %q", phone)
	}
}

func TestExtractCapsLength(t *testing.T) {
	long := strings.Repeat("refactoring the billing service ", 10)
	got := factMap(Extract("i am working on " + long))
	task, ok := got["current_task"]
	if !ok {
		t.Fatal("current_task not extracted")
	}
	if len(task) > 120 {
		t.Errorf("current_task length = %d, want <= 120", len(task))
	}

	got = factMap(Extract("my skills are " + strings.Repeat("go, postgres, docker, ", 12)))
	skills, ok := got["skills"]
	if !ok {
		t.Fatal("skills not extracted")
	}
	if len(skills) > 160 {
		t.Errorf("skills length = %d, want <= 160", len(skills))
	}
}

// The byte cap must land on a rune boundary, never inside a multi-byte
// character.
func TestExtractCapKeepsValidUTF8(t *testing.T) {
	// leading ASCII char misaligns the 3-byte runes against the 120-byte cap
	got := factMap(Extract("i am working on x" + strings.Repeat("日", 100)))
	task, ok := got["current_task"]
	if !ok {
		t.Fatal("current_task not extracted")
	}
	if len(task) > 120 {
		t.Errorf("current_task length = %d, want <= 120", len(task))
	}
	if !utf8.ValidString(task) {
		t.Errorf("current_task is not valid UTF-8: %q", task)
	}
}

func TestExtractNormalizesWhitespaceAndPunctuation(t *testing.T) {
	got := factMap(Extract("i live in   New    Delhi."))
	if got["location"] != "New Delhi" {
		t.Errorf("location = %q, want New Delhi", got["location"])
	}
}

func TestExtractNothing(t *testing.T) {
	if fs := Extract("what is the project status"); len(fs) != 0 {
		t.Errorf("Extract = %v, want none", fs)
	}
	if fs := Extract("   "); fs != nil {
		t.Errorf("Extract = %v, want nil", fs)
	}
}
