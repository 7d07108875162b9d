package captcha

import (
	"strconv"
	"strings"
)

// AdminCancelData is the callback payload of the admin-cancel button.
// It is an in-band signal: pressing it is an ordinary callback that is
// decoded into the CancelledByAdmin outcome.
const AdminCancelData = "cancel"

const adminCancelText = "Cancel (Admins only)"

// ButtonKeyboard builds the single-button challenge keyboard
func ButtonKeyboard(buttonText, token string, withCancel bool) Keyboard {
	kb := Keyboard{{{Text: buttonText, Data: token}}}
	if withCancel {
		kb = append(kb, []Button{{Text: adminCancelText, Data: AdminCancelData}})
	}
	return kb
}

// SlotMachineKeyboard builds the stage keyboard for the slot-machine
// challenge. matched holds the symbols already clicked in order; each button
// shows the progress so far, one candidate symbol and a star per reel still
// to guess.
func SlotMachineKeyboard(matched []string) Keyboard {
	prefix := strings.Join(matched, "")
	stars := strings.Repeat("*", 2-len(matched))

	row := make([]Button, 0, len(SlotSymbols))
	for _, symbol := range SlotSymbols {
		row = append(row, Button{Text: prefix + symbol + stars, Data: symbol})
	}

	kb := Keyboard{}
	for i := 0; i < len(row); i += 2 {
		kb = append(kb, row[i:i+2])
	}
	return kb
}

// ExpressionKeyboard lays the answer choices out three per row
func ExpressionKeyboard(answers []int, withCancel bool) Keyboard {
	row := make([]Button, 0, len(answers))
	for _, answer := range answers {
		text := strconv.Itoa(answer)
		row = append(row, Button{Text: text, Data: text})
	}

	kb := Keyboard{}
	for i := 0; i < len(row); i += 3 {
		end := i + 3
		if end > len(row) {
			end = len(row)
		}
		kb = append(kb, row[i:end])
	}
	if withCancel {
		kb = append(kb, []Button{{Text: adminCancelText, Data: AdminCancelData}})
	}
	return kb
}
