package captcha

import (
	"fmt"
	"math/rand"
	"strconv"
)

// NewButtonToken generates the opaque callback token for the button captcha.
// Only a press carrying this exact token, from the challenged user, on the
// challenge message counts as an answer.
func NewButtonToken(rng *rand.Rand) string {
	const hex = "0123456789abcdef"
	b := make([]byte, 16)
	for i := range b {
		b[i] = hex[rng.Intn(len(hex))]
	}
	return string(b)
}

// SlotSymbols are the four reel faces of the Telegram slot-machine dice,
// ordered by their encoding in the dice value
var SlotSymbols = [4]string{"BAR", "\U0001F347", "\U0001F34B", "7️⃣"}

// ReelsFromValue decodes a slot-machine dice value (1..64) into the ordered
// triple of reel symbols. The value encodes the reels in base 4, left reel
// in the low bits.
func ReelsFromValue(value int) [3]string {
	raw := value - 1
	return [3]string{
		SlotSymbols[raw&0b11],
		SlotSymbols[(raw>>2)&0b11],
		SlotSymbols[(raw>>4)&0b11],
	}
}

// Expression is one generated arithmetic challenge
type Expression struct {
	Text   string
	Result int
}

var expressionOps = []struct {
	sign  string
	apply func(a, b int) int
}{
	{"+", func(a, b int) int { return a + b }},
	{"-", func(a, b int) int { return a - b }},
}

// NewExpression builds a chain of binary +/- operations over operands in
// [0, maxOperand]. The running value after each operation is carried into
// the next one.
func NewExpression(rng *rand.Rand, maxOperand, operations int) Expression {
	current := rng.Intn(maxOperand + 1)
	text := strconv.Itoa(current)
	for i := 0; i < operations; i++ {
		op := expressionOps[rng.Intn(len(expressionOps))]
		operand := rng.Intn(maxOperand + 1)
		current = op.apply(current, operand)
		text += fmt.Sprintf(" %s %s", op.sign, strconv.Itoa(operand))
	}
	return Expression{Text: text, Result: current}
}

// ExpressionAnswers produces the displayed answer list: count-1 decoys
// generated by the same process as the real expression, with the true
// result inserted at a uniformly random position. Decoys may numerically
// collide with the true answer.
func ExpressionAnswers(rng *rand.Rand, result, count, maxOperand, operations int) []int {
	answers := make([]int, 0, count)
	for i := 0; i < count-1; i++ {
		answers = append(answers, NewExpression(rng, maxOperand, operations).Result)
	}
	pos := rng.Intn(len(answers) + 1)
	answers = append(answers, 0)
	copy(answers[pos+1:], answers[pos:])
	answers[pos] = result
	return answers
}
