package gemini

import (
	"strings"
	"testing"
)

func TestParseSentimentResponse_PlainLabels(t *testing.T) {
	got, err := parseSentimentResponse("POSITIVE\nNEGATIVE\nPOSITIVE\n", 3)
	if err != nil {
		t.Fatalf("parseSentimentResponse: %v", err)
	}
	want := []bool{true, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseSentimentResponse_NumberedEcho(t *testing.T) {
	resp := "1. POSITIVE\n2) NEGATIVE\n 3 - POSITIVE"
	got, err := parseSentimentResponse(resp, 3)
	if err != nil {
		t.Fatalf("parseSentimentResponse: %v", err)
	}
	if !got[0] || got[1] || !got[2] {
		t.Errorf("labels = %v, want [true false true]", got)
	}
}

func TestParseSentimentResponse_TooFewLabels(t *testing.T) {
	_, err := parseSentimentResponse("POSITIVE\n", 3)
	if err == nil {
		t.Fatal("expected error for short response")
	}
}

func TestBuildSentimentPrompt_NumbersSentences(t *testing.T) {
	prompt := buildSentimentPrompt([]string{"Profits rose", "Lawsuit filed"})
	if !strings.Contains(prompt, "1. Profits rose") || !strings.Contains(prompt, "2. Lawsuit filed") {
		t.Errorf("prompt missing numbered sentences:\n%s", prompt)
	}
}
