// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"你好", 4},
		{"é", 1},
		{"• ", 2},
	}
	for _, test := range tests {
		if got := DisplayWidth(test.text); got != test.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", test.text, got, test.want)
		}
	}
}

func TestSplitByWidth(t *testing.T) {
	tests := []struct {
		text     string
		maxWidth int
		head     string
		tail     string
	}{
		{"abcdef", 3, "abc", "def"},
		{"café", 3, "caf", "é"},
		{"你好", 2, "你", "好"},
		{"你好世", 3, "你", "好世"},
		// A cluster wider than the limit is still taken whole.
		{"你好", 1, "你", "好"},
		{"éx", 1, "é", "x"},
		{"hello", 0, "", "hello"},
		{"hi", 10, "hi", ""},
	}
	for _, test := range tests {
		head, tail := SplitByWidth(test.text, test.maxWidth)
		if head != test.head || tail != test.tail {
			t.Errorf("SplitByWidth(%q, %d) = (%q, %q), want (%q, %q)",
				test.text, test.maxWidth, head, tail, test.head, test.tail)
		}
	}
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name      string
		words     []string
		width     int
		hyphenate bool
		want      []string
	}{
		{"fits one line", []string{"Hello", " world"}, 20, true, []string{"Hello world"}},
		{"breaks at boundary", []string{"aaaa", " ", "bbb"}, 5, true, []string{"aaaa ", "bbb"}},
		{"trims moved word", []string{"aaaa", " bbb"}, 5, true, []string{"aaaa", "bbb"}},
		{"hyphenates long word", []string{"abcdefghij"}, 5, true, []string{"abcd-", "efgh-", "ij"}},
		{"no hyphen when narrow", []string{"abcdefg"}, 3, true, []string{"abc", "def", "g"}},
		{"no hyphen when disabled", []string{"abcdefghij"}, 5, false, []string{"abcde", "fghij"}},
		{"existing hyphen", []string{"abcdefgh-"}, 5, true, []string{"abcde", "fgh-"}},
		{"wide characters", []string{"你好世界"}, 5, true, []string{"你好-", "世界"}},
		{"flushes tiny remainder", []string{"abc", "defghijklm"}, 6, true, []string{"abc", "defgh-", "ijklm"}},
		{"hard break", []string{"one", "\ntwo"}, 40, true, []string{"one", "two"}},
		{"zero width clamps to one", []string{"ab"}, 0, true, []string{"a", "b"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := lineTexts(WrapWords(normal(test.words...), test.width, test.hyphenate))
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("WrapWords mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapWordsEmpty(t *testing.T) {
	if lines := WrapWords(nil, 10, true); len(lines) != 0 {
		t.Errorf("WrapWords(nil) = %v, want no lines", lines)
	}
}

func TestWrapWordsPreservesTypes(t *testing.T) {
	lines := WrapWords([]Word{word("abcdefghijkl", Bold)}, 5, true)
	if len(lines) < 2 {
		t.Fatalf("expected the word to be split, got %d lines", len(lines))
	}
	for _, line := range lines {
		for index := range line {
			if line[index].Type() != Bold {
				t.Errorf("fragment %q has type %v, want Bold", line[index].Content(), line[index].Type())
			}
		}
	}
}

func TestUnwrapRestoresInput(t *testing.T) {
	input := []Word{
		word("one", Normal),
		word(" two", Italic),
		word("\nthree", Normal),
		word(" abcdefghijklmnop", Bold),
		word(" four", Normal),
	}
	lines := WrapWords(input, 6, true)
	if diff := cmp.Diff(contents(input), contents(unwrap(lines))); diff != "" {
		t.Errorf("unwrap did not restore the input (-want +got):\n%s", diff)
	}
}

func TestWrapWordsWideClusterKeepsWordBoundary(t *testing.T) {
	input := []Word{word("好", Normal), word(" site", Link), word("x", Normal)}
	lines := WrapWords(input, 1, false)
	if got := lineTexts(lines)[0]; got != "好" {
		t.Errorf("first line = %q, want 好", got)
	}
	restored := unwrap(lines)
	if diff := cmp.Diff(contents(input), contents(restored)); diff != "" {
		t.Errorf("unwrap merged words (-want +got):\n%s", diff)
	}
	if restored[1].Type() != Link {
		t.Errorf("second word type = %v, want Link", restored[1].Type())
	}
}

// randomWords builds a word sequence from ASCII, wide and accented
// characters, some with a leading space. No word contains '-'.
func randomWords(random *rand.Rand) []Word {
	alphabet := []string{"a", "b", "c", "x", "y", "z", "é", "你", "好", "ö"}
	count := random.IntN(12) + 1
	words := make([]Word, 0, count)
	for range count {
		var builder strings.Builder
		if random.IntN(2) == 0 {
			builder.WriteString(" ")
		}
		for range random.IntN(14) + 1 {
			builder.WriteString(alphabet[random.IntN(len(alphabet))])
		}
		words = append(words, NewWord(builder.String(), Normal))
	}
	return words
}

func TestWrapWordsProperties(t *testing.T) {
	random := rand.New(rand.NewPCG(1, 2))
	for iteration := range 500 {
		words := randomWords(random)
		width := random.IntN(30) + 1
		hyphenate := random.IntN(2) == 0

		lines := WrapWords(words, width, hyphenate)

		var want, got strings.Builder
		for index := range words {
			want.WriteString(strings.ReplaceAll(words[index].Content(), " ", ""))
		}
		for _, line := range lines {
			for index := range line {
				text := strings.ReplaceAll(line[index].Content(), "-", "")
				got.WriteString(strings.ReplaceAll(text, " ", ""))
			}
			// Only a single wide character can overflow a one-cell line.
			if lineWidth := CellWidth(line); width > 1 && lineWidth > width {
				t.Errorf("iteration %d: line %q is %d cells, wider than %d", iteration, joinContent(line), lineWidth, width)
			}
		}
		if want.String() != got.String() {
			t.Fatalf("iteration %d (width %d, hyphenate %v): content changed\nwant %q\ngot  %q",
				iteration, width, hyphenate, want.String(), got.String())
		}

		if diff := cmp.Diff(contents(words), contents(unwrap(lines))); diff != "" {
			t.Fatalf("iteration %d: unwrap mismatch (-want +got):\n%s", iteration, diff)
		}
	}
}
