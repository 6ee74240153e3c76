package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCmd  string
		wantRest string
		wantErr  bool
	}{
		{"bare command", "help", "help", "", false},
		{"command with args", `add name="Task A" prio=HIGH`, "add", `name="Task A" prio=HIGH`, false},
		{"leading whitespace", "   print", "print", "", false},
		{"no word characters", "!!!", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, rest, err := splitCommand(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindInvalidArgument, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestTokenizeArgs(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		want    map[string]string
		wantErr bool
	}{
		{"empty", "", map[string]string{}, false},
		{"bare value", "name=shopping", map[string]string{"name": "shopping"}, false},
		{"double quoted with spaces", `name="Task A"`, map[string]string{"name": "Task A"}, false},
		{"single quoted", `desc='buy milk'`, map[string]string{"desc": "buy milk"}, false},
		{"empty quoted value", `name=""`, map[string]string{"name": ""}, false},
		{"spaces around equals", `name = "x"`, map[string]string{"name": "x"}, false},
		{"several pairs", `name="A" due=05-10-2025 prio=HIGH`,
			map[string]string{"name": "A", "due": "05-10-2025", "prio": "HIGH"}, false},
		{"quoted key value", `property="type" val="SCHOOL"`,
			map[string]string{"property": "type", "val": "SCHOOL"}, false},
		{"trailing garbage", `name="A" garbage`, nil, true},
		{"only garbage", "garbage", nil, true},
		{"dangling equals", "name=", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tokenizeArgs(tt.segment)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindInvalidArgument, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Duplicate keys are not merged; the last occurrence wins. The behavior is
// deliberate and pinned here.
func TestTokenizeArgsDuplicateKeyLastWins(t *testing.T) {
	got, err := tokenizeArgs(`name="first" name="second"`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "second"}, got)
}

// Only non-whitespace text after the final recognized pair is rejected;
// stray text before a pair is skipped by the scan.
func TestTokenizeArgsStrayTextBeforePair(t *testing.T) {
	got, err := tokenizeArgs(`!!! name="A"`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "A"}, got)
}

func TestTokenizeArgsQuotesKeepCase(t *testing.T) {
	got, err := tokenizeArgs(`val="School Work"`)
	require.NoError(t, err)
	assert.Equal(t, "School Work", got["val"])
}
