package collector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSubmissions(t *testing.T) {
	dump := `{"id":"p1","title":"Invoice pain","body_text":"manual work","community":"r/smallbusiness","upvotes":120,"comments":30,"created_at":"2026-07-01T10:00:00Z"}

{"id":"p2","title":"Expense tracker idea","community":"r/freelance","upvotes":5,"comments":1,"created_at":"2026-07-02T09:30:00Z"}
`

	subs, err := ReadSubmissions(strings.NewReader(dump))
	require.NoError(t, err)
	require.Len(t, subs, 2, "blank lines are skipped")

	assert.Equal(t, "p1", subs[0].ID)
	assert.Equal(t, "Invoice pain", subs[0].Title)
	assert.Equal(t, "manual work", subs[0].BodyText)
	assert.Equal(t, "r/smallbusiness", subs[0].Community)
	assert.Equal(t, 120, subs[0].Upvotes)
	assert.Equal(t, 30, subs[0].Comments)
	assert.Equal(t, 2026, subs[0].CreatedAt.Year())

	assert.Equal(t, "p2", subs[1].ID)
	assert.Empty(t, subs[1].BodyText)
}

func TestReadSubmissionsEmptyInput(t *testing.T) {
	subs, err := ReadSubmissions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestReadSubmissionsErrors(t *testing.T) {
	tests := []struct {
		name    string
		dump    string
		wantErr string
	}{
		{
			name:    "malformed JSON reports line number",
			dump:    `{"id":"p1","title":"ok","community":"r/x","created_at":"2026-07-01T10:00:00Z"}` + "\n{not json}",
			wantErr: "line 2",
		},
		{
			name:    "missing id",
			dump:    `{"title":"ok","community":"r/x","created_at":"2026-07-01T10:00:00Z"}`,
			wantErr: "missing submission id",
		},
		{
			name:    "missing title",
			dump:    `{"id":"p1","community":"r/x","created_at":"2026-07-01T10:00:00Z"}`,
			wantErr: "missing title",
		},
		{
			name:    "missing community",
			dump:    `{"id":"p1","title":"ok","created_at":"2026-07-01T10:00:00Z"}`,
			wantErr: "missing community",
		},
		{
			name:    "negative engagement",
			dump:    `{"id":"p1","title":"ok","community":"r/x","upvotes":-4,"created_at":"2026-07-01T10:00:00Z"}`,
			wantErr: "negative engagement",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSubmissions(strings.NewReader(tt.dump))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
