package postprocess

import "testing"

func TestClean_ThinkingBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"closed block",
			"<thinking>the user wants a post</thinking>Launch day is here.",
			"Launch day is here.",
		},
		{
			"truncated block",
			"Launch day is here.<think>but maybe",
			"Launch day is here.",
		},
		{
			"reasoning variant",
			"<reasoning>hmm</reasoning>\nShip it.",
			"Ship it.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_InstructionEchoes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Here is the revised post: Launch day is here.", "Launch day is here."},
		{"Here's your post:\nLaunch day is here.", "Launch day is here."},
		{"Sure, here is the post: Launch day.", "Launch day."},
		{"The final version: Launch day.", "Launch day."},
		{"Posting daily keeps the audience warm.", "Posting daily keeps the audience warm."},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClean_QuoteWrapping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"Launch day is here."`, "Launch day is here."},
		{"«Launch day»", "Launch day"},
		{`"He said "quoted" inside"`, `"He said "quoted" inside"`},
		{`"`, `"`},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClean_Combined(t *testing.T) {
	in := "<thinking>plan</thinking>Here is the post: \"Launch day is here.\""
	if got := Clean(in); got != "Launch day is here." {
		t.Errorf("Clean(%q) = %q", in, got)
	}
}
