package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avior/infuser/internal/domain"
)

func TestNewParameterRules_RejectsBadPatterns(t *testing.T) {
	_, err := NewParameterRules([]ParameterRule{{Match: ""}})
	assert.Error(t, err)

	_, err = NewParameterRules([]ParameterRule{{Match: "/srv/[a-"}})
	assert.Error(t, err)

	rules, err := NewParameterRules(nil)
	require.NoError(t, err)
	assert.Nil(t, rules.Apply("/a", nil))
}

func TestParameterRules_Apply(t *testing.T) {
	rules, err := NewParameterRules([]ParameterRule{
		{
			Match:      "/srv/recordings/**/*.ts",
			Parameters: []domain.CustomParameter{{Key: "deinterlace", Value: "yadif"}},
		},
		{
			Match:      "/srv/recordings/arte/**",
			Parameters: []domain.CustomParameter{{Key: "audio", Value: "ac3"}, {Key: "deinterlace", Value: "bwdif"}},
		},
		{
			Match:      "/srv/movies/**",
			Parameters: []domain.CustomParameter{{Key: "crf", Value: "18"}},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		params []domain.CustomParameter
		want   []domain.CustomParameter
	}{
		{
			name: "no rule matches",
			path: "/home/user/clip.mkv",
			want: nil,
		},
		{
			name: "first matching rule wins on shared keys",
			path: "/srv/recordings/arte/doc.ts",
			want: []domain.CustomParameter{
				{Key: "deinterlace", Value: "yadif"},
				{Key: "audio", Value: "ac3"},
			},
		},
		{
			name:   "caller parameters are kept",
			path:   "/srv/movies/film.mkv",
			params: []domain.CustomParameter{{Key: "crf", Value: "23"}},
			want:   []domain.CustomParameter{{Key: "crf", Value: "23"}},
		},
		{
			name: "backslashes are normalized",
			path: `\srv\movies\film.mkv`,
			want: []domain.CustomParameter{{Key: "crf", Value: "18"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Apply(tt.path, tt.params))
		})
	}
}

func TestParameterRules_NilIsNoop(t *testing.T) {
	var rules *ParameterRules
	params := []domain.CustomParameter{{Key: "a", Value: "b"}}
	assert.Equal(t, params, rules.Apply("/x", params))
}
