// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bayaniph/bayani/pkg/slug"
)

/*
TestFrom checks the full normalization pipeline against names that actually
appear in the catalogue.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accented_name", "José Rizal", "jose-rizal"},
		{"plain_name", "Lea Salonga", "lea-salonga"},
		{"already_slug", "marie-curie", "marie-curie"},
		{"punctuation", "Leonardo da Vinci!", "leonardo-da-vinci"},
		{"multiple_spaces", "Stephen   Hawking", "stephen-hawking"},
		{"mixed_case", "Frida KAHLO", "frida-kahlo"},
		{"digits", "Apollo 11", "apollo-11"},
		{"leading_trailing_junk", "  --Nelson Mandela--  ", "nelson-mandela"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
