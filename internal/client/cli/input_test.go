package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Name?\n> " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEmptyEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer
	if _, err := GetSimpleText(in, "Name?", &out); err == nil {
		t.Fatal("expected EOF error")
	}
}

func TestGetPassphrase(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	got, err := GetPassphrase(&out)
	if err != nil || string(got) != "s3cret" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassphrase_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassphrase(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetTextWithDefault(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{name: "empty keeps current", input: "\n", current: "Marie", want: "Marie"},
		{name: "value replaces", input: "Paul\n", current: "Marie", want: "Paul"},
		{name: "dash clears", input: "-\n", current: "Marie", want: ""},
		{name: "no current", input: "\n", current: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetTextWithDefault(bufio.NewReader(strings.NewReader(tc.input)), "Name", tc.current, &out)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
