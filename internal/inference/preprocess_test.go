package inference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareInput(t *testing.T) {
	long := strings.Repeat("a", MinTextLength)

	tests := []struct {
		name      string
		text      string
		minLength int
		want      string
		wantErr   error
	}{
		{
			name:      "trims surrounding whitespace",
			text:      "  \t" + long + "\n ",
			minLength: MinTextLength,
			want:      long,
		},
		{
			name:      "collapses whitespace runs",
			text:      "hello   world\n\nagain\t\tand again " + long,
			minLength: MinTextLength,
			want:      "hello world again and again " + long,
		},
		{
			name:      "too short after trimming",
			text:      "   short   ",
			minLength: MinTextLength,
			wantErr:   ErrInputTooShort,
		},
		{
			name:      "empty input",
			text:      "",
			minLength: MinEmbedTextLength,
			wantErr:   ErrInputTooShort,
		},
		{
			name:      "exactly at the floor",
			text:      long,
			minLength: MinTextLength,
			want:      long,
		},
		{
			name:      "lower floor admits shorter text",
			text:      "a headline to embed",
			minLength: MinEmbedTextLength,
			wantErr:   ErrInputTooShort,
		},
		{
			name:      "embed floor met",
			text:      "a headline to embed!",
			minLength: MinEmbedTextLength,
			want:      "a headline to embed!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrepareInput(tt.text, tt.minLength)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrepareInputCapsLength(t *testing.T) {
	oversized := strings.Repeat("x", MaxInputLength+500)

	got, err := PrepareInput(oversized, MinTextLength)
	require.NoError(t, err)
	assert.Len(t, got, MaxInputLength)
}
