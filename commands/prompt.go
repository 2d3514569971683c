package commands

import (
	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/config"
)

// ColorizePrompt applies the prompt color mode (always|auto|never).
func ColorizePrompt(prompt, mode string, isTerminal bool) string {
	switch {
	case mode == config.ColorAlways, mode == config.ColorAuto && isTerminal:
		c := color.New(color.FgGreen, color.Bold)
		c.EnableColor()
		return c.Sprint(prompt)
	default:
		return prompt
	}
}
