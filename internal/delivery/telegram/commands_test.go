package telegram

import (
	"testing"
)

type fixedScorer float64

func (s fixedScorer) Score(heard, expected string) float64 { return float64(s) }

func TestParseLessonRef(t *testing.T) {
	tests := []struct {
		args    string
		code    string
		n       int
		wantErr bool
	}{
		{"it 1", "it", 1, false},
		{"  FR   3 ", "fr", 3, false},
		{"it", "", 0, true},
		{"it 0", "", 0, true},
		{"it one", "", 0, true},
		{"it 1 2", "", 0, true},
	}

	for _, tt := range tests {
		code, n, err := parseLessonRef(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLessonRef(%q) err = %v", tt.args, err)
			continue
		}
		if code != tt.code || n != tt.n {
			t.Errorf("parseLessonRef(%q) = %q, %d", tt.args, code, n)
		}
	}
}

func TestParseCompleteArgs(t *testing.T) {
	tests := []struct {
		args    string
		score   float64
		wantErr bool
	}{
		{"it 1", 1, false},
		{"it 2 0.75", 0.75, false},
		{"it 2 1.5", 0, true},
		{"it 2 abc", 0, true},
		{"it", 0, true},
	}

	for _, tt := range tests {
		_, _, score, err := parseCompleteArgs(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCompleteArgs(%q) err = %v", tt.args, err)
			continue
		}
		if score != tt.score {
			t.Errorf("parseCompleteArgs(%q) score = %v, want %v", tt.args, score, tt.score)
		}
	}
}

func TestParseWordPair(t *testing.T) {
	tests := []struct {
		in          string
		word, trans string
		ok          bool
	}{
		{"ciao = hello", "ciao", "hello", true},
		{"buenos días=good morning", "buenos días", "good morning", true},
		{"ciao", "", "", false},
		{" = hello", "", "", false},
		{"ciao = ", "", "", false},
	}

	for _, tt := range tests {
		w, tr, ok := parseWordPair(tt.in)
		if ok != tt.ok || w != tt.word || tr != tt.trans {
			t.Errorf("parseWordPair(%q) = %q, %q, %v", tt.in, w, tr, ok)
		}
	}
}

func TestParseIndexArg(t *testing.T) {
	n, rest, err := parseIndexArg(" 2 ciao = hello ")
	if err != nil || n != 2 || rest != "ciao = hello" {
		t.Errorf("got %d, %q, %v", n, rest, err)
	}

	for _, bad := range []string{"", "0", "-1 x", "two"} {
		if _, _, err := parseIndexArg(bad); err == nil {
			t.Errorf("parseIndexArg(%q) accepted", bad)
		}
	}
}

func TestParseSpeakArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		scorer   PronunciationScorer
		accuracy float64
		text     string
		wantErr  bool
	}{
		{"fraction", "0.8 buongiorno", nil, 0.8, "buongiorno", false},
		{"percent", "85 ciao a tutti", nil, 0.85, "ciao a tutti", false},
		{"percent sign", "90% ciao", nil, 0.9, "ciao", false},
		{"scored", "chow = ciao", fixedScorer(0.5), 0.5, "ciao", false},
		{"no text", "0.8", nil, 0, "", true},
		{"too high", "150 ciao", nil, 0, "", true},
		{"pair without scorer", "chow = ciao", nil, 0, "", true},
		{"empty", "  ", nil, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, text, err := parseSpeakArgs(tt.args, tt.scorer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := acc - tt.accuracy; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("accuracy = %v, want %v", acc, tt.accuracy)
			}
			if text != tt.text {
				t.Errorf("text = %q, want %q", text, tt.text)
			}
		})
	}
}

func TestParsePositiveInt(t *testing.T) {
	if n, err := parsePositiveInt("15"); err != nil || n != 15 {
		t.Errorf("got %d, %v", n, err)
	}
	if _, err := parsePositiveInt("0"); err == nil {
		t.Error("zero accepted")
	}
}
