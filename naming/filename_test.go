package naming

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"House Wash!!", "House-Wash"},
		{"St. Louis, MO", "St-Louis-MO"},
		{"--Roof / Clean--", "Roof-Clean"},
		{"already-clean", "already-clean"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Slug(tc.in), "slug of %q", tc.in)
	}
}

func TestCompose(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	name := Compose("House Wash!!", "St. Louis, MO", date, 0)
	assert.Equal(t, "House-Wash-St-Louis-MO-01-05-2024.jpg", name)
	assert.NotContains(t, name, "--")
	assert.True(t, strings.HasSuffix(name, ".jpg"))
}

func TestComposeCounter(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "House-Wash-Troy-MO-01-05-2024-1.jpg",
		Compose("House Wash", "Troy, MO", date, 1))
	assert.Equal(t, "House-Wash-Troy-MO-01-05-2024-2.jpg",
		Compose("House Wash", "Troy, MO", date, 2))
}

func TestComposeEmptyParts(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Troy-MO-01-05-2024.jpg", Compose("", "Troy, MO", date, 0))
	assert.Equal(t, "01-05-2024.jpg", Compose("", "", date, 0))
}

func TestComposeFrame(t *testing.T) {
	tests := []struct {
		index int
		total int
		want  string
	}{
		{0, 10, "house-washing-01-before.jpg"},
		{9, 10, "house-washing-10-after.jpg"},
		{1, 10, "house-washing-02-action-1.jpg"},
		{5, 10, "house-washing-06-action-5.jpg"},
		{0, 1, "house-washing-01-before.jpg"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ComposeFrame("House Washing", tc.index, tc.total))
	}
}
