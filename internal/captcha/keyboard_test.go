package captcha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonKeyboard(t *testing.T) {
	kb := ButtonKeyboard("Press me", "tok123", false)

	assert.Len(t, kb, 1)
	assert.Equal(t, Button{Text: "Press me", Data: "tok123"}, kb[0][0])
}

func TestButtonKeyboard_WithCancel(t *testing.T) {
	kb := ButtonKeyboard("Press me", "tok123", true)

	assert.Len(t, kb, 2)
	assert.Equal(t, AdminCancelData, kb[1][0].Data)
}

func TestSlotMachineKeyboard(t *testing.T) {
	tests := []struct {
		name      string
		matched   []string
		firstText string
	}{
		{
			name:      "no progress shows two stars",
			matched:   nil,
			firstText: SlotSymbols[0] + "**",
		},
		{
			name:      "one reel matched",
			matched:   []string{SlotSymbols[2]},
			firstText: SlotSymbols[2] + SlotSymbols[0] + "*",
		},
		{
			name:      "two reels matched",
			matched:   []string{SlotSymbols[2], SlotSymbols[1]},
			firstText: SlotSymbols[2] + SlotSymbols[1] + SlotSymbols[0],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := SlotMachineKeyboard(tt.matched)

			// four symbols, two per row
			assert.Len(t, kb, 2)
			assert.Len(t, kb[0], 2)
			assert.Len(t, kb[1], 2)

			assert.Equal(t, tt.firstText, kb[0][0].Text)
			for i, symbol := range SlotSymbols {
				assert.Equal(t, symbol, kb[i/2][i%2].Data)
			}
		})
	}
}

func TestExpressionKeyboard(t *testing.T) {
	kb := ExpressionKeyboard([]int{1, 2, 3, 4, 5, 6}, false)

	assert.Len(t, kb, 2)
	assert.Len(t, kb[0], 3)
	assert.Len(t, kb[1], 3)
	assert.Equal(t, "4", kb[1][0].Text)
	assert.Equal(t, "4", kb[1][0].Data)
}

func TestExpressionKeyboard_UnevenRowsAndCancel(t *testing.T) {
	kb := ExpressionKeyboard([]int{-1, 0, 7, 9}, true)

	assert.Len(t, kb, 3)
	assert.Len(t, kb[0], 3)
	assert.Len(t, kb[1], 1)
	assert.Equal(t, "-1", kb[0][0].Data)
	assert.Equal(t, AdminCancelData, kb[2][0].Data)
}
