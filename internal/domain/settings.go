package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProviderType discriminates the captcha provider variants
type ProviderType string

const (
	ProviderButton      ProviderType = "button"
	ProviderSlotMachine ProviderType = "slot_machine"
	ProviderExpression  ProviderType = "expression"
)

// ChatSettings holds per-chat captcha configuration
type ChatSettings struct {
	ChatID             int64
	Provider           ProviderConfig
	AutoRemoveCommands bool
	AutoRemoveEvents   bool
	Enabled            bool
}

// DefaultSettings returns settings used when a chat has none stored yet
func DefaultSettings(chatID int64) *ChatSettings {
	return &ChatSettings{
		ChatID:           chatID,
		Provider:         DefaultButtonConfig(),
		AutoRemoveEvents: true,
		Enabled:          true,
	}
}

// ProviderConfig is the closed tagged union of provider configurations.
// Exactly one variant pointer is non-nil.
type ProviderConfig struct {
	Type        ProviderType
	Button      *ButtonConfig
	SlotMachine *SlotMachineConfig
	Expression  *ExpressionConfig
}

// ButtonConfig configures the single-button captcha
type ButtonConfig struct {
	CheckTimeSeconds int    `json:"checkTimeSeconds"`
	PromptText       string `json:"promptText"`
	ButtonText       string `json:"buttonText"`
	KickOnFail       bool   `json:"kickOnFail"`
}

// SlotMachineConfig configures the slot-machine captcha
type SlotMachineConfig struct {
	CheckTimeSeconds int    `json:"checkTimeSeconds"`
	PromptText       string `json:"promptText"`
	KickOnFail       bool   `json:"kickOnFail"`
}

// ExpressionConfig configures the arithmetic-expression captcha
type ExpressionConfig struct {
	CheckTimeSeconds  int    `json:"checkTimeSeconds"`
	PromptText        string `json:"promptText"`
	RetryText         string `json:"retryText"`
	MaxOperand        int    `json:"maxOperand"`
	OperationCount    int    `json:"operationCount"`
	AnswerChoiceCount int    `json:"answerChoiceCount"`
	MaxAttempts       int    `json:"maxAttempts"`
	KickOnFail        bool   `json:"kickOnFail"`
}

// DefaultButtonConfig returns the button provider with built-in defaults
func DefaultButtonConfig() ProviderConfig {
	return ProviderConfig{
		Type: ProviderButton,
		Button: &ButtonConfig{
			CheckTimeSeconds: 60,
			PromptText:       "press this button to pass captcha:",
			ButtonText:       "Press me\U0001F60A",
			KickOnFail:       true,
		},
	}
}

// DefaultSlotMachineConfig returns the slot-machine provider with built-in defaults
func DefaultSlotMachineConfig() ProviderConfig {
	return ProviderConfig{
		Type: ProviderSlotMachine,
		SlotMachine: &SlotMachineConfig{
			CheckTimeSeconds: 300,
			PromptText:       "solve this captcha:",
			KickOnFail:       true,
		},
	}
}

// DefaultExpressionConfig returns the expression provider with built-in defaults
func DefaultExpressionConfig() ProviderConfig {
	return ProviderConfig{
		Type: ProviderExpression,
		Expression: &ExpressionConfig{
			CheckTimeSeconds:  60,
			PromptText:        "Solve next captcha:",
			RetryText:         "Nope, left retries: ",
			MaxOperand:        10,
			OperationCount:    2,
			AnswerChoiceCount: 6,
			MaxAttempts:       3,
			KickOnFail:        true,
		},
	}
}

// CheckTime returns the verification deadline duration of the active variant
func (p ProviderConfig) CheckTime() time.Duration {
	var seconds int
	switch p.Type {
	case ProviderButton:
		seconds = p.Button.CheckTimeSeconds
	case ProviderSlotMachine:
		seconds = p.SlotMachine.CheckTimeSeconds
	case ProviderExpression:
		seconds = p.Expression.CheckTimeSeconds
	}
	return time.Duration(seconds) * time.Second
}

// KickOnFail reports whether failed users should be banned
func (p ProviderConfig) KickOnFail() bool {
	switch p.Type {
	case ProviderButton:
		return p.Button.KickOnFail
	case ProviderSlotMachine:
		return p.SlotMachine.KickOnFail
	case ProviderExpression:
		return p.Expression.KickOnFail
	}
	return false
}

// Validate checks variant invariants
func (p ProviderConfig) Validate() error {
	if p.CheckTime() <= 0 {
		return fmt.Errorf("check time must be positive")
	}
	if p.Type == ProviderExpression {
		e := p.Expression
		if e.AnswerChoiceCount < 1 {
			return fmt.Errorf("answer choice count must be at least 1")
		}
		if e.MaxAttempts < 1 {
			return fmt.Errorf("max attempts must be at least 1")
		}
	}
	return nil
}

// providerEnvelope is the stored JSON form; the tag preserves the variant
type providerEnvelope struct {
	Type        ProviderType       `json:"type"`
	Button      *ButtonConfig      `json:"button,omitempty"`
	SlotMachine *SlotMachineConfig `json:"slotMachine,omitempty"`
	Expression  *ExpressionConfig  `json:"expression,omitempty"`
}

// MarshalJSON serializes the union with its discriminant tag
func (p ProviderConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(providerEnvelope{
		Type:        p.Type,
		Button:      p.Button,
		SlotMachine: p.SlotMachine,
		Expression:  p.Expression,
	})
}

// UnmarshalJSON restores the union, filling defaults for the tagged variant
// so rows written by older versions keep working
func (p *ProviderConfig) UnmarshalJSON(data []byte) error {
	var env providerEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Type {
	case ProviderButton:
		*p = DefaultButtonConfig()
		if env.Button != nil {
			p.Button = env.Button
		}
	case ProviderSlotMachine:
		*p = DefaultSlotMachineConfig()
		if env.SlotMachine != nil {
			p.SlotMachine = env.SlotMachine
		}
	case ProviderExpression:
		*p = DefaultExpressionConfig()
		if env.Expression != nil {
			p.Expression = env.Expression
		}
	default:
		return fmt.Errorf("unknown provider type: %q", env.Type)
	}
	return nil
}
