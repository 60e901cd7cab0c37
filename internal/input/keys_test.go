package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDecodeMapsBoundKeys(t *testing.T) {
	t.Parallel()

	k := NewKeyMap()
	cases := []struct {
		msg  tea.KeyMsg
		want Control
	}{
		{keyPress('j'), ScrollDown{}},
		{keyPress('k'), ScrollUp{}},
		{tea.KeyMsg{Type: tea.KeyDown}, ScrollDown{}},
		{tea.KeyMsg{Type: tea.KeyCtrlD}, ScrollPageDown{}},
		{tea.KeyMsg{Type: tea.KeyCtrlU}, ScrollPageUp{}},
		{keyPress('g'), ScrollTop{}},
		{keyPress('G'), ScrollBottom{}},
		{keyPress(':'), StartGoto{}},
		{keyPress('/'), StartSearch{}},
		{keyPress('*'), StartColumnsFilter{}},
		{tea.KeyMsg{Type: tea.KeyEscape}, ResetFilters{}},
		{keyPress('q'), Quit{}},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, Quit{}},
	}
	for _, tc := range cases {
		got, ok := k.Decode(tc.msg)
		require.True(t, ok, "key %q should be bound", tc.msg.String())
		require.Equal(t, tc.want, got)
	}
}

func TestDecodeUnboundKey(t *testing.T) {
	t.Parallel()

	k := NewKeyMap()
	got, ok := k.Decode(keyPress('z'))
	require.False(t, ok)
	require.Nil(t, got)
}

func TestHelpListsBindings(t *testing.T) {
	t.Parallel()

	k := NewKeyMap()
	require.Len(t, k.ShortHelp(), 5)
	require.Len(t, k.FullHelp(), 3)
}
